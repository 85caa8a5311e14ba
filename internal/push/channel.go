// Package push connects to the real-time service and forwards named
// server-pushed events to subscribers. It carries no state of its own:
// payloads go straight to handlers, which feed them into view state.
package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event names consumed by views.
const (
	EventNewTask             = "newTask"
	EventNotificationCreated = "notificationCreated"
)

// Event names emitted after successful mutations.
const (
	EventTaskCreated  = "taskCreated"
	EventTaskUpdated  = "taskUpdated"
	EventTaskAssigned = "taskAssigned"
	EventTaskDeleted  = "taskDeleted"
	EventUserUpdated  = "userUpdated"
	EventUserDeleted  = "userDeleted"
)

// Broadcaster is the view-facing surface of the channel. Emits are
// fire-and-forget broadcasts with no acknowledgment or ordering
// guarantee; the emitter never receives its own emissions.
type Broadcaster interface {
	// Register binds the connection to a user for targeted delivery.
	Register(userID string)

	// Subscribe attaches a handler for a named event. The returned
	// subscription must be closed on view teardown.
	Subscribe(event string, fn func(data json.RawMessage)) Subscription

	// Emit broadcasts a named event with a JSON payload.
	Emit(event string, payload any)
}

// Subscription is a disposable handle for one subscribed handler.
type Subscription interface {
	Close()
}

// frame is the wire shape for both transports.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Channel is a lazily connected client of the push service. It prefers a
// websocket and falls back to HTTP polling when the upgrade fails;
// reconnection is internal and opaque to subscribers.
type Channel struct {
	base   string
	debugf func(format string, args ...any)
	http   *http.Client

	mu      sync.Mutex
	wmu     sync.Mutex // websocket writes are single-writer
	conn    *websocket.Conn
	subs    map[string]map[int]func(json.RawMessage)
	nextID  int
	userID  string
	cursor  int
	started bool
	closed  chan struct{}
}

// New creates an unconnected channel for the given base URL. The first
// Register, Subscribe or Emit connects it. debugf may be nil.
func New(baseURL string, debugf func(format string, args ...any)) *Channel {
	if debugf == nil {
		debugf = func(string, ...any) {}
	}
	return &Channel{
		base:   strings.TrimRight(baseURL, "/"),
		debugf: debugf,
		http:   &http.Client{Timeout: 30 * time.Second},
		subs:   make(map[string]map[int]func(json.RawMessage)),
		closed: make(chan struct{}),
	}
}

// Register implements Broadcaster.
func (c *Channel) Register(userID string) {
	c.mu.Lock()
	c.userID = userID
	c.mu.Unlock()
	c.Emit("register", userID)
}

// Subscribe implements Broadcaster.
func (c *Channel) Subscribe(event string, fn func(data json.RawMessage)) Subscription {
	c.ensureStarted()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	if c.subs[event] == nil {
		c.subs[event] = make(map[int]func(json.RawMessage))
	}
	c.subs[event][id] = fn
	return &subscription{c: c, event: event, id: id}
}

// Emit implements Broadcaster. When the websocket is up the frame goes
// out on it; otherwise it is posted to the polling endpoint. Failures
// are logged and dropped.
func (c *Channel) Emit(event string, payload any) {
	c.ensureStarted()

	data, err := json.Marshal(payload)
	if err != nil {
		c.debugf("push: cannot encode %s payload: %v", event, err)
		return
	}
	f := frame{Event: event, Data: data}

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		c.wmu.Lock()
		err := conn.WriteJSON(f)
		c.wmu.Unlock()
		if err == nil {
			return
		}
		c.debugf("push: websocket write failed: %v", err)
	}

	body, _ := json.Marshal(f)
	resp, err := c.http.Post(c.base+"/api/events", "application/json", bytes.NewReader(body))
	if err != nil {
		c.debugf("push: emit %s failed: %v", event, err)
		return
	}
	resp.Body.Close()
}

// Close tears the connection down and stops reconnecting.
func (c *Channel) Close() error {
	c.mu.Lock()
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
	return nil
}

func (c *Channel) ensureStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true
	go c.run()
}

func (c *Channel) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// run owns the connection lifecycle: websocket first, one polling pass
// when the upgrade fails, then retry.
func (c *Channel) run() {
	const retryDelay = time.Second
	for {
		if c.isClosed() {
			return
		}
		if err := c.runWebsocket(); err != nil {
			c.debugf("push: websocket unavailable: %v", err)
			c.pollOnce()
		}
		select {
		case <-c.closed:
			return
		case <-time.After(retryDelay):
		}
	}
}

// runWebsocket dials, re-registers, and reads frames until the
// connection drops. A nil return means the channel was closed.
func (c *Channel) runWebsocket() error {
	target, err := wsURL(c.base)
	if err != nil {
		return err
	}
	conn, resp, err := websocket.DefaultDialer.Dial(target, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.isClosed() {
		c.mu.Unlock()
		conn.Close()
		return nil
	}
	c.conn = conn
	user := c.userID
	c.mu.Unlock()

	// re-bind targeted delivery after every (re)connect
	if user != "" {
		data, _ := json.Marshal(user)
		c.wmu.Lock()
		_ = conn.WriteJSON(frame{Event: "register", Data: data})
		c.wmu.Unlock()
	}

	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			c.mu.Unlock()
			conn.Close()
			if c.isClosed() {
				return nil
			}
			return err
		}
		c.dispatch(f)
	}
}

// pollOnce performs one polling-transport pass against the events
// endpoint and dispatches whatever arrived since the last cursor.
func (c *Channel) pollOnce() {
	c.mu.Lock()
	user := c.userID
	cursor := c.cursor
	c.mu.Unlock()

	target := fmt.Sprintf("%s/api/events?cursor=%d", c.base, cursor)
	if user != "" {
		target += "&user=" + url.QueryEscape(user)
	}
	resp, err := c.http.Get(target)
	if err != nil {
		c.debugf("push: poll failed: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.debugf("push: poll failed with status %d", resp.StatusCode)
		return
	}

	var payload struct {
		Cursor int     `json:"cursor"`
		Events []frame `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.debugf("push: poll returned malformed payload: %v", err)
		return
	}

	c.mu.Lock()
	c.cursor = payload.Cursor
	c.mu.Unlock()
	for _, f := range payload.Events {
		c.dispatch(f)
	}
}

// dispatch fans a server-read frame out to subscribers. Only frames read
// from the server come through here: locally emitted events are never
// echoed back to the emitting client.
func (c *Channel) dispatch(f frame) {
	c.mu.Lock()
	handlers := make([]func(json.RawMessage), 0, len(c.subs[f.Event]))
	for _, fn := range c.subs[f.Event] {
		handlers = append(handlers, fn)
	}
	c.mu.Unlock()
	for _, fn := range handlers {
		fn(f.Data)
	}
}

func (c *Channel) unsubscribe(event string, id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs[event], id)
}

type subscription struct {
	c     *Channel
	event string
	id    int
	once  sync.Once
}

func (s *subscription) Close() {
	s.once.Do(func() { s.c.unsubscribe(s.event, s.id) })
}

// wsURL converts the configured HTTP base URL into the websocket
// endpoint address.
func wsURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/socket"
	return u.String(), nil
}

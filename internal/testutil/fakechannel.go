package testutil

import (
	"encoding/json"
	"sync"

	"organizo/internal/push"
)

// Emission records one Emit call.
type Emission struct {
	Event string
	Data  json.RawMessage
}

// FakeChannel is an in-memory push.Broadcaster for testing. Emits are
// recorded, and Deliver simulates server-pushed frames.
type FakeChannel struct {
	mu         sync.Mutex
	registered []string
	emitted    []Emission
	handlers   map[string]map[int]func(json.RawMessage)
	nextID     int
}

// NewFakeChannel creates an empty FakeChannel.
func NewFakeChannel() *FakeChannel {
	return &FakeChannel{handlers: make(map[string]map[int]func(json.RawMessage))}
}

// Register implements push.Broadcaster.
func (f *FakeChannel) Register(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, userID)
}

// Subscribe implements push.Broadcaster.
func (f *FakeChannel) Subscribe(event string, fn func(json.RawMessage)) push.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	if f.handlers[event] == nil {
		f.handlers[event] = make(map[int]func(json.RawMessage))
	}
	f.handlers[event][id] = fn
	return &fakeSubscription{ch: f, event: event, id: id}
}

// Emit implements push.Broadcaster. The emitting client never receives
// its own emissions, so handlers are not invoked here.
func (f *FakeChannel) Emit(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emitted = append(f.emitted, Emission{Event: event, Data: data})
}

// Deliver simulates a server-pushed frame reaching subscribers.
func (f *FakeChannel) Deliver(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	f.mu.Lock()
	fns := make([]func(json.RawMessage), 0, len(f.handlers[event]))
	for _, fn := range f.handlers[event] {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(data)
	}
}

// Registered returns the user ids passed to Register.
func (f *FakeChannel) Registered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.registered))
	copy(out, f.registered)
	return out
}

// Emitted returns the recorded emissions.
func (f *FakeChannel) Emitted() []Emission {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Emission, len(f.emitted))
	copy(out, f.emitted)
	return out
}

// EmittedEvents returns just the event names, in order.
func (f *FakeChannel) EmittedEvents() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.emitted))
	for i, e := range f.emitted {
		out[i] = e.Event
	}
	return out
}

// SubscriberCount reports how many handlers are attached for an event.
func (f *FakeChannel) SubscriberCount(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers[event])
}

type fakeSubscription struct {
	ch    *FakeChannel
	event string
	id    int
	once  sync.Once
}

func (s *fakeSubscription) Close() {
	s.once.Do(func() {
		s.ch.mu.Lock()
		defer s.ch.mu.Unlock()
		delete(s.ch.handlers[s.event], s.id)
	})
}

package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"organizo/internal/push"
	"organizo/internal/service"
	"organizo/internal/session"
	"organizo/internal/state"
)

// Feed is the notification bell: ephemeral, rebuilt on every mount from
// one fetch plus any push events received since. Nothing here is
// persisted.
type Feed struct {
	Notifications *state.Store[service.Notification]

	// OnChange, when set, observes every notification the feed admits
	// after mount. The live watch view uses it to repaint.
	OnChange func(service.Notification)

	sess session.Session
	svc  service.Service
	ch   push.Broadcaster
	subs []push.Subscription

	now func() time.Time
}

// NewFeed creates an unmounted notification feed.
func NewFeed(sess session.Session, svc service.Service, ch push.Broadcaster) *Feed {
	return &Feed{
		Notifications: state.NewStore[service.Notification](),
		sess:          sess,
		svc:           svc,
		ch:            ch,
		now:           time.Now,
	}
}

// Mount binds the push connection to the user, subscribes before
// fetching so nothing delivered mid-fetch is lost to a later replace,
// then loads the current list.
func (f *Feed) Mount(ctx context.Context) error {
	if !f.sess.LoggedIn() {
		return ErrNotLoggedIn
	}

	if f.ch != nil {
		f.ch.Register(f.sess.UserID)
		f.subs = append(f.subs,
			f.ch.Subscribe(push.EventNewTask, f.onNewTask),
			f.ch.Subscribe(push.EventNotificationCreated, f.onNotificationCreated),
		)
	}

	notifications, err := f.svc.ListNotifications(ctx)
	if err != nil {
		f.Notifications.Fail(err.Error())
		return err
	}
	f.Notifications.Replace(notifications)
	return nil
}

// Unmount releases the push subscriptions. Cleanup on view teardown is
// the caller's responsibility; forgetting it leaks handlers.
func (f *Feed) Unmount() {
	for _, s := range f.subs {
		s.Close()
	}
	f.subs = nil
}

// UnreadCount returns the badge number.
func (f *Feed) UnreadCount() int {
	count := 0
	for _, n := range f.Notifications.Items() {
		if !n.Read {
			count++
		}
	}
	return count
}

// onNewTask synthesizes a local notification from a pushed task, the
// way the bell does for targeted task assignments. The id is local-only
// display state.
func (f *Feed) onNewTask(data json.RawMessage) {
	var task service.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return
	}
	n := service.Notification{
		ID:        fmt.Sprintf("local-%d", f.now().UnixNano()),
		Message:   "New task assigned: " + task.Title,
		Read:      false,
		CreatedAt: f.now().UTC().Format(time.RFC3339),
	}
	f.Notifications.Prepend(n)
	if f.OnChange != nil {
		f.OnChange(n)
	}
}

func (f *Feed) onNotificationCreated(data json.RawMessage) {
	var n service.Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return
	}
	f.Notifications.Prepend(n)
	if f.OnChange != nil {
		f.OnChange(n)
	}
}

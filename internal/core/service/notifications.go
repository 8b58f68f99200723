package service

import (
	"sync"
	"time"

	"github.com/foodcritique/critique-web/internal/api/metrics"
)

// DefaultNotificationTTL matches the auto-hide delay of the error snackbar.
const DefaultNotificationTTL = 5 * time.Second

// Notification is one transient, user-visible message.
type Notification struct {
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raised_at"`
}

// Notifications is a per-session queue of transient messages. A message
// dismisses itself once it is older than the TTL; reading the queue with
// Drain dismisses everything that was shown.
type Notifications struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []Notification
}

// NewNotifications returns an empty queue. ttl <= 0 selects
// DefaultNotificationTTL.
func NewNotifications(ttl time.Duration) *Notifications {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifications{ttl: ttl, now: time.Now}
}

// Notify queues msg. Blank messages are ignored.
func (n *Notifications) Notify(msg string) {
	if msg == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, Notification{Message: msg, RaisedAt: n.now()})
	metrics.NotificationsTotal.Inc()
}

// Live returns the messages that have not yet expired, oldest first.
func (n *Notifications) Live() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.expireLocked()
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Drain returns the live messages and dismisses them.
func (n *Notifications) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.expireLocked()
	out := n.items
	n.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Latest returns the most recent live message, or "".
func (n *Notifications) Latest() string {
	live := n.Live()
	if len(live) == 0 {
		return ""
	}
	return live[len(live)-1].Message
}

func (n *Notifications) expireLocked() {
	cutoff := n.now().Add(-n.ttl)
	kept := n.items[:0]
	for _, it := range n.items {
		if it.RaisedAt.After(cutoff) {
			kept = append(kept, it)
		}
	}
	n.items = kept
}

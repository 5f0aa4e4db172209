package decor

import (
	"sync"

	"github.com/zjrosen/orglyph/internal/pubsub"
)

// NotifyTitle tags every decoration-failure notification.
const NotifyTitle = "orglyph"

// Severity grades a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

// Notification is a user-facing message published off the redraw path.
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}

// Notifier delivers notifications asynchronously and at most once per
// distinct message: a failing overlay that recurs on every redraw produces a
// single notification.
type Notifier struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	broker *pubsub.Broker[Notification]
}

// NewNotifier creates a notifier with an empty dedup set.
func NewNotifier() *Notifier {
	return &Notifier{
		seen:   make(map[string]struct{}),
		broker: pubsub.NewBroker[Notification](),
	}
}

// Broker exposes the underlying broker for subscribers.
func (n *Notifier) Broker() *pubsub.Broker[Notification] { return n.broker }

// Error publishes an error notification unless the same message was already
// published. Delivery happens on a separate goroutine so the caller's redraw
// callback returns without reentering the host.
func (n *Notifier) Error(message string) {
	n.mu.Lock()
	if _, dup := n.seen[message]; dup {
		n.mu.Unlock()
		return
	}
	n.seen[message] = struct{}{}
	n.mu.Unlock()

	go n.broker.Publish(pubsub.NotifyEvent, Notification{
		Title:    NotifyTitle,
		Message:  message,
		Severity: SeverityError,
	})
}

// Close shuts down the underlying broker.
func (n *Notifier) Close() {
	n.broker.Close()
}

// Package notify fans change notifications out to subscribers.
package notify

import "sync"

// Notifier calls every subscribed callback, synchronously and in
// subscription order, each time Notify is called.
type Notifier struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

type subscription struct {
	id uint64
	fn func()
}

// New creates a notifier with no subscribers.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once has no further effect.
func (n *Notifier) Subscribe(fn func()) (unsubscribe func()) {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, fn: fn})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, sub := range n.subs {
		if sub.id == id {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return
		}
	}
}

// Notify calls all current subscribers. Callbacks may subscribe or
// unsubscribe; such changes take effect from the next Notify.
func (n *Notifier) Notify() {
	n.mu.Lock()
	subs := n.subs
	n.mu.Unlock()

	for _, sub := range subs {
		sub.fn()
	}
}

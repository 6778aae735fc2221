package event

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// Listener handles an event. Returning an error stops delivery to the
// remaining listeners and fails the dispatch.
type Listener interface {
	HandleEvent(ctx context.Context, evt Event) error
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(ctx context.Context, evt Event) error

func (f ListenerFunc) HandleEvent(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

type subscription struct {
	name     string
	priority int
	seq      int
	listener Listener
}

// Dispatcher delivers events synchronously, in process, to the listeners
// subscribed to the event's name. Listeners run by descending priority, then
// in subscription order.
type Dispatcher struct {
	mu   sync.RWMutex
	subs map[Name][]subscription
	seq  int
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[Name][]subscription)}
}

// Subscribe registers a named listener for an event at priority 0.
func (d *Dispatcher) Subscribe(evt Name, name string, l Listener) {
	d.SubscribeWithPriority(evt, name, 0, l)
}

// SubscribeWithPriority registers a named listener; higher priorities run first.
func (d *Dispatcher) SubscribeWithPriority(evt Name, name string, priority int, l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	subs := append(slices.Clone(d.subs[evt]), subscription{name: name, priority: priority, seq: d.seq, listener: l})
	slices.SortStableFunc(subs, func(a, b subscription) int {
		if c := cmp.Compare(b.priority, a.priority); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	d.subs[evt] = subs
}

// Listeners returns the names of the listeners of evt in delivery order.
func (d *Dispatcher) Listeners(evt Name) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, len(d.subs[evt]))
	for i, s := range d.subs[evt] {
		names[i] = s.name
	}
	return names
}

// Dispatch delivers evt and returns it, possibly mutated by listeners.
func (d *Dispatcher) Dispatch(ctx context.Context, evt Event) (Event, error) {
	d.mu.RLock()
	subs := d.subs[evt.EventName()]
	d.mu.RUnlock()

	for _, s := range subs {
		if err := s.listener.HandleEvent(ctx, evt); err != nil {
			return evt, fmt.Errorf("%s listener %s: %w", evt.EventName(), s.name, err)
		}
	}
	return evt, nil
}

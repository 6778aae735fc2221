// Package listener provides the stock event listeners: logging, metrics,
// audit trail and exact-match list filters.
package listener

import (
	"github.com/heartmarshall/crudkit/internal/event"
)

// subscriber is the registration side of event.Dispatcher.
type subscriber interface {
	Subscribe(evt event.Name, name string, l event.Listener)
}

// SubscribeAll registers l under name for every event in evts.
func SubscribeAll(d subscriber, name string, l event.Listener, evts ...event.Name) {
	for _, evt := range evts {
		d.Subscribe(evt, name, l)
	}
}

// PostEvents are the events dispatched after a successful flush.
var PostEvents = []event.Name{event.PostPersist, event.PostUpdate, event.PostDelete}

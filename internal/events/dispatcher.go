package events

import (
	"context"
	"fmt"
	"reflect"
)

// Handler reacts to a dispatched event. A non-nil error aborts the
// dispatch of the current event and propagates to the firer.
type Handler func(ctx context.Context, event Event) error

// Dispatcher delivers events to subscribed handlers. Handlers for one
// event run sequentially in subscription order; the dispatcher itself
// holds no per-event mutable state, so it is safe to reuse across a run
// as long as Fire is not called concurrently.
type Dispatcher struct {
	handlers map[reflect.Type][]Handler
}

// NewDispatcher creates an empty Dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[reflect.Type][]Handler)}
}

// Listen subscribes a handler to the event type of prototype.
// Returns the dispatcher so subscriptions can be chained.
func (d *Dispatcher) Listen(prototype Event, handler Handler) *Dispatcher {
	t := reflect.TypeOf(prototype)
	d.handlers[t] = append(d.handlers[t], handler)
	return d
}

// Fire delivers the event to every handler subscribed to its type
func (d *Dispatcher) Fire(ctx context.Context, event Event) error {
	t := reflect.TypeOf(event)
	for _, handler := range d.handlers[t] {
		if err := handler(ctx, event); err != nil {
			return fmt.Errorf("handle %s: %w", t, err)
		}
	}
	return nil
}

package util

import "sync"

// EventType is the type for skimmer events
type EventType int

// Events is a type that associates EventType to any data
type Events map[EventType]interface{}

// EventBox is a coalescing mailbox. Setting an event that is still pending
// overwrites its value, so a waiter always sees the latest value of each
// event type and never falls behind the producers.
type EventBox struct {
	events Events
	cond   *sync.Cond
	ignore map[EventType]bool
}

// NewEventBox returns a new EventBox
func NewEventBox() *EventBox {
	return &EventBox{
		events: make(Events),
		cond:   sync.NewCond(&sync.Mutex{}),
		ignore: make(map[EventType]bool)}
}

// Wait blocks the goroutine until at least one event is pending, then runs
// the callback with the pending events while holding the lock
func (b *EventBox) Wait(callback func(*Events)) {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()

	for len(b.events) == 0 {
		b.cond.Wait()
	}

	callback(&b.events)
}

// Set turns on the event type on the box
func (b *EventBox) Set(event EventType, value interface{}) {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	b.events[event] = value
	if _, found := b.ignore[event]; !found {
		b.cond.Broadcast()
	}
}

// Clear clears the events
// Unsynchronized; should be called within Wait routine
func (events *Events) Clear() {
	for event := range *events {
		delete(*events, event)
	}
}

// Peek peeks at the event box if the given event is set
func (b *EventBox) Peek(event EventType) bool {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	_, ok := b.events[event]
	return ok
}

// Take removes the given event from the box and returns its value
func (b *EventBox) Take(event EventType) (interface{}, bool) {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	value, ok := b.events[event]
	if ok {
		delete(b.events, event)
	}
	return value, ok
}

// Watch deletes the events from the ignore list
func (b *EventBox) Watch(events ...EventType) {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	for _, event := range events {
		delete(b.ignore, event)
	}
}

// Unwatch adds the events to the ignore list. Ignored events are still
// recorded but do not wake up the waiter.
func (b *EventBox) Unwatch(events ...EventType) {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	for _, event := range events {
		b.ignore[event] = true
	}
}

// WaitFor blocks the execution until the event is received
func (b *EventBox) WaitFor(event EventType) {
	looping := true
	for looping {
		b.Wait(func(events *Events) {
			if _, found := (*events)[event]; found {
				looping = false
				return
			}
			// Leave other events for the next waiter but avoid spinning on them
			if len(*events) > 0 {
				b.cond.Wait()
			}
		})
	}
}

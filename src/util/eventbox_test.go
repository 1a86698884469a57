package util

import "testing"

const (
	evtReadNew EventType = iota
	evtReadFin
	evtSearchNew
	evtSearchProgress
	evtSearchFin
)

func TestEventBox(t *testing.T) {
	eb := NewEventBox()

	// Wait should return immediately
	ch := make(chan bool)

	go func() {
		eb.Set(evtReadNew, 10)
		ch <- true
		<-ch
		eb.Set(evtSearchNew, 10)
		eb.Set(evtSearchNew, 15)
		eb.Set(evtSearchNew, 20)
		eb.Set(evtSearchProgress, 30)
		ch <- true
		<-ch
		eb.Set(evtSearchFin, 40)
		ch <- true
		<-ch
	}()

	count := 0
	sum := 0
	looping := true
	for looping {
		<-ch
		eb.Wait(func(events *Events) {
			for _, value := range *events {
				switch val := value.(type) {
				case int:
					sum += val
					looping = sum < 100
				}
			}
			events.Clear()
		})
		ch <- true
		count++
	}

	if count != 3 {
		t.Error("Invalid number of events", count)
	}
	if sum != 100 {
		t.Error("Invalid sum", sum)
	}
}

func TestEventBoxCoalesces(t *testing.T) {
	eb := NewEventBox()
	eb.Set(evtSearchProgress, 1)
	eb.Set(evtSearchProgress, 2)
	eb.Set(evtSearchProgress, 3)

	eb.Wait(func(events *Events) {
		if len(*events) != 1 {
			t.Errorf("Expected a single pending event, got %d", len(*events))
		}
		if (*events)[evtSearchProgress] != 3 {
			t.Errorf("Expected the latest value, got %v", (*events)[evtSearchProgress])
		}
		events.Clear()
	})
	if eb.Peek(evtSearchProgress) {
		t.Error("Event should have been cleared")
	}
}

func TestEventBoxTake(t *testing.T) {
	eb := NewEventBox()
	if _, ok := eb.Take(evtSearchNew); ok {
		t.Error("Nothing should be pending")
	}
	eb.Set(evtSearchNew, "foo")
	value, ok := eb.Take(evtSearchNew)
	if !ok || value != "foo" {
		t.Errorf("Unexpected value: %v (%v)", value, ok)
	}
	if eb.Peek(evtSearchNew) {
		t.Error("Take should remove the event")
	}
}

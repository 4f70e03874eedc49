package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/inkbeat/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < 5; i++ {
		q.Push(GameEvent{Type: EventBeat, Payload: &BeatPayload{Index: i}, Frame: int64(i)})
	}

	if q.Len() != 5 {
		t.Errorf("Expected 5 pending, got %d", q.Len())
	}

	got := q.Consume()
	if len(got) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(got))
	}
	for i, ev := range got {
		if p := ev.Payload.(*BeatPayload); p.Index != i {
			t.Errorf("Expected beat %d at position %d, got %d", i, i, p.Index)
		}
	}

	if again := q.Consume(); again != nil {
		t.Errorf("Expected empty queue, got %d events", len(again))
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewEventQueue()
	extra := 10
	for i := 0; i < parameter.EventQueueSize+extra; i++ {
		q.Push(GameEvent{Type: EventBeat, Frame: int64(i)})
	}

	got := q.Consume()
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(got))
	}
	if got[0].Frame != int64(extra) {
		t.Errorf("Expected oldest surviving frame %d, got %d", extra, got[0].Frame)
	}
	if q.Dropped() != uint64(extra) {
		t.Errorf("Expected %d dropped, got %d", extra, q.Dropped())
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(GameEvent{Type: EventScheduleReloaded})
			}
		}()
	}
	wg.Wait()

	if n := len(q.Consume()); n != 400 {
		t.Errorf("Expected 400 events, got %d", n)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventBeat.String() != "Beat" {
		t.Errorf("Expected Beat, got %s", EventBeat.String())
	}
	if EventType(9999).String() != "Unknown" {
		t.Errorf("Expected Unknown, got %s", EventType(9999).String())
	}
}

package event

import (
	"testing"
	"time"
)

func TestBusDeliversToTopicSubscribers(t *testing.T) {
	b := NewBus()
	defer b.Close()

	sub := b.Subscribe(TopicDisplay, 4)
	other := b.Subscribe(TopicRecordState, 4)

	b.Publish(TopicDisplay, "CTRL+A")

	select {
	case msg := <-sub.C():
		if msg.Topic != TopicDisplay {
			t.Errorf("Topic = %v, want %v", msg.Topic, TopicDisplay)
		}
		if msg.Payload.(string) != "CTRL+A" {
			t.Errorf("Payload = %v, want CTRL+A", msg.Payload)
		}
		if msg.Time.IsZero() {
			t.Error("message has no timestamp")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber received nothing")
	}

	select {
	case msg := <-other.C():
		t.Errorf("wrong-topic subscriber received %v", msg)
	default:
	}
}

func TestBusFanOut(t *testing.T) {
	b := NewBus()
	defer b.Close()

	a := b.Subscribe(TopicCountdown, 4)
	c := b.Subscribe(TopicCountdown, 4)
	b.Publish(TopicCountdown, 2*time.Second)

	for _, sub := range []*Subscription{a, c} {
		select {
		case msg := <-sub.C():
			if msg.Payload.(time.Duration) != 2*time.Second {
				t.Errorf("Payload = %v, want 2s", msg.Payload)
			}
		case <-time.After(time.Second):
			t.Fatal("fan-out subscriber received nothing")
		}
	}
}

func TestBusPublishNeverBlocks(t *testing.T) {
	b := NewBus()
	defer b.Close()

	sub := b.Subscribe(TopicDisplay, 2)
	for i := 0; i < 100; i++ {
		b.Publish(TopicDisplay, i)
	}

	// The freshest messages survive; the oldest were dropped.
	var got []int
	for {
		select {
		case msg := <-sub.C():
			got = append(got, msg.Payload.(int))
			continue
		default:
		}
		break
	}
	if len(got) != 2 {
		t.Fatalf("received %d messages, want 2", len(got))
	}
	if got[len(got)-1] != 99 {
		t.Errorf("last message = %d, want 99", got[len(got)-1])
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	b := NewBus()
	defer b.Close()

	sub := b.Subscribe(TopicNotice, 1)
	b.Unsubscribe(sub)

	if _, ok := <-sub.C(); ok {
		t.Error("channel still open after Unsubscribe")
	}

	// Publishing after unsubscribe is harmless.
	b.Publish(TopicNotice, "saved")
}

func TestBusClose(t *testing.T) {
	b := NewBus()
	sub := b.Subscribe(TopicDisplay, 1)
	b.Close()

	if _, ok := <-sub.C(); ok {
		t.Error("channel still open after Close")
	}

	// Subscribing after close yields a closed channel instead of a leak.
	late := b.Subscribe(TopicDisplay, 1)
	if _, ok := <-late.C(); ok {
		t.Error("late subscription channel open after Close")
	}
	b.Publish(TopicDisplay, "ignored")
	b.Close()
}

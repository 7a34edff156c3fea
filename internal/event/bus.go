package event

import (
	"sync"
	"time"
)

// Topic is a hierarchical event type such as "display.keys".
type Topic string

const (
	// TopicDisplay carries the current chord display text (string).
	TopicDisplay Topic = "display.keys"

	// TopicRecordState carries recording active flips (bool).
	TopicRecordState Topic = "record.state"

	// TopicPlaybackState carries playback state names (string).
	TopicPlaybackState Topic = "playback.state"

	// TopicCountdown carries remaining countdown time (time.Duration).
	TopicCountdown Topic = "playback.countdown"

	// TopicNotice carries user-facing notices such as recovered errors
	// and save confirmations (string).
	TopicNotice Topic = "app.notice"
)

// Message is one published event.
type Message struct {
	Topic   Topic
	Payload any
	Time    time.Time
}

// Subscription receives messages for a single topic.
type Subscription struct {
	id    int
	topic Topic
	ch    chan Message
}

// C returns the subscription's message channel. It is closed when the
// subscription is cancelled or the bus shuts down.
func (s *Subscription) C() <-chan Message {
	return s.ch
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// Bus fans messages out to per-topic subscribers.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic][]*Subscription
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]*Subscription)}
}

// Subscribe registers a subscriber for one topic. The buffer bounds how
// many undelivered messages the subscription holds; values below one are
// raised to one.
func (b *Bus) Subscribe(topic Topic, buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:    b.nextID,
		topic: topic,
		ch:    make(chan Message, buffer),
	}
	if !b.closed {
		b.subs[topic] = append(b.subs[topic], sub)
	} else {
		close(sub.ch)
	}
	return sub
}

// Unsubscribe cancels a subscription and closes its channel.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[sub.topic]
	for i, s := range list {
		if s.id == sub.id {
			b.subs[sub.topic] = append(list[:i], list[i+1:]...)
			close(sub.ch)
			return
		}
	}
}

// Publish delivers a payload to every subscriber of the topic without
// blocking. A full subscription drops its oldest message to make room,
// so slow consumers see the freshest state.
func (b *Bus) Publish(topic Topic, payload any) {
	msg := Message{Topic: topic, Payload: payload, Time: time.Now()}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, sub := range b.subs[topic] {
		for {
			select {
			case sub.ch <- msg:
			default:
				// Full: discard the oldest and retry.
				select {
				case <-sub.ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// Close shuts the bus down and closes all subscription channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, list := range b.subs {
		for _, sub := range list {
			close(sub.ch)
		}
	}
	b.subs = make(map[Topic][]*Subscription)
}

package stream

import (
	"github.com/cskr/pubsub"
)

// Topics for the two acquisition streams. They deliver on independent
// cadences with no pairing guarantee between them.
const (
	TopicLocation = "location"
	TopicSignal   = "signal"
)

// LocationFix is one position sample from the location stream
type LocationFix struct {
	Timestamp int64   `json:"timestamp"` // Unix ms
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// SignalReading is one cellular measurement from the signal stream
type SignalReading struct {
	RSRP int `json:"rsrp"`
	RSRQ int `json:"rsrq"`
}

// Subscription is a channel of published samples
type Subscription chan interface{}

// Bus fans acquisition samples out to subscribers
type Bus struct {
	ps *pubsub.PubSub
}

// NewBus creates a bus with a per-subscriber buffer
func NewBus() *Bus {
	return &Bus{ps: pubsub.New(128)}
}

// Publish delivers a sample to all subscribers of the topic
func (b *Bus) Publish(topic string, msg interface{}) {
	b.ps.Pub(msg, topic)
}

// Subscribe returns a channel receiving all samples published to the topic
func (b *Bus) Subscribe(topic string) Subscription {
	return b.ps.Sub(topic)
}

// Unsubscribe removes the channel from the given topics, or all when none given
func (b *Bus) Unsubscribe(ch Subscription, topics ...string) {
	if len(topics) == 0 {
		b.ps.Unsub(ch)
		return
	}
	b.ps.Unsub(ch, topics...)
}

// Close shuts the bus down and closes all subscription channels
func (b *Bus) Close() {
	b.ps.Shutdown()
}

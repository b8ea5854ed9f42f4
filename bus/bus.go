// Package bus provides an in-process typed message bus. Publishing a payload
// routes it to a channel keyed by the payload's type, where it stays pending
// until a consumer collects it. Consumers may instead subscribe a function to
// a payload type to be called synchronously on publish.
package bus

import (
	"log"
	"reflect"

	"github.com/ticklab/writeafter/hooking"
)

// HookPosPublish marks when a payload is published on the bus.
var HookPosPublish = &hooking.HookPos{Name: "Bus Publish"}

// A Sink accepts payloads for delivery to interested consumers.
type Sink interface {
	Publish(payload any)
}

// Cloneable is implemented by payloads that can duplicate themselves. A
// payload registered to be republished several times must implement it unless
// sharing the same value across deliveries is acceptable.
type Cloneable interface {
	Clone() any
}

// A Bus routes published payloads to per-type channels and subscribers.
//
// A Bus is not safe for concurrent use. It is meant to be driven from the
// same single-threaded update loop that processes the pools publishing to it.
type Bus struct {
	hooking.HookableBase

	name        string
	capacity    int
	channels    map[reflect.Type]*Channel
	subscribers map[reflect.Type][]func(payload any)
}

// New creates a bus whose channels hold an unbounded number of pending
// payloads.
func New(name string) *Bus {
	return NewWithCapacity(name, 0)
}

// NewWithCapacity creates a bus whose channels each hold at most capacity
// pending payloads. Publishing to a full channel panics.
func NewWithCapacity(name string, capacity int) *Bus {
	return &Bus{
		name:        name,
		capacity:    capacity,
		channels:    make(map[reflect.Type]*Channel),
		subscribers: make(map[reflect.Type][]func(payload any)),
	}
}

// Name returns the name of the bus.
func (b *Bus) Name() string {
	return b.name
}

// Publish routes a payload to the channel for its type and invokes the
// subscribers registered for that type.
func (b *Bus) Publish(payload any) {
	if payload == nil {
		log.Panic("cannot publish a nil payload")
	}

	t := reflect.TypeOf(payload)
	b.channelFor(t).push(payload)

	if b.NumHooks() > 0 {
		b.InvokeHook(hooking.HookCtx{
			Domain: b,
			Pos:    HookPosPublish,
			Item:   payload,
			Detail: t.String(),
		})
	}

	for _, fn := range b.subscribers[t] {
		fn(payload)
	}
}

// ChannelOf returns the channel holding payloads of the given type, creating
// it if needed.
func (b *Bus) ChannelOf(payloadType reflect.Type) *Channel {
	return b.channelFor(payloadType)
}

// SubscribeType registers fn to be called synchronously whenever a payload of
// the given type is published.
func (b *Bus) SubscribeType(payloadType reflect.Type, fn func(payload any)) {
	b.subscribers[payloadType] = append(b.subscribers[payloadType], fn)
}

func (b *Bus) channelFor(t reflect.Type) *Channel {
	ch, ok := b.channels[t]
	if !ok {
		ch = newChannel(b.name+"."+t.String(), b.capacity)
		b.channels[t] = ch
	}

	return ch
}

// Subscribe registers fn to be called synchronously whenever a payload of
// type T is published on the bus.
func Subscribe[T any](b *Bus, fn func(payload T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.SubscribeType(t, func(payload any) {
		fn(payload.(T))
	})
}

// Collect removes and returns all pending payloads of type T in publish
// order.
func Collect[T any](b *Bus) []T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	raw := b.channelFor(t).Drain()

	payloads := make([]T, len(raw))
	for i, p := range raw {
		payloads[i] = p.(T)
	}

	return payloads
}

// Pending returns the number of pending payloads of type T without removing
// them.
func Pending[T any](b *Bus) int {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return b.channelFor(t).Size()
}

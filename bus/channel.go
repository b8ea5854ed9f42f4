package bus

import (
	"log"

	"github.com/ticklab/writeafter/hooking"
)

// HookPosChannelPush marks when a payload is pushed into a channel.
var HookPosChannelPush = &hooking.HookPos{Name: "Channel Push"}

// HookPosChannelPop marks when a payload is popped from a channel.
var HookPosChannelPop = &hooking.HookPos{Name: "Channel Pop"}

// A Channel is a FIFO of published payloads of one type, held until a
// consumer retrieves them.
type Channel struct {
	hooking.HookableBase

	name     string
	capacity int
	payloads []any
}

func newChannel(name string, capacity int) *Channel {
	return &Channel{
		name:     name,
		capacity: capacity,
	}
}

// Name returns the name of the channel.
func (c *Channel) Name() string {
	return c.name
}

// Capacity returns the maximum number of pending payloads the channel holds.
// Zero means unbounded.
func (c *Channel) Capacity() int {
	return c.capacity
}

// Size returns the number of pending payloads.
func (c *Channel) Size() int {
	return len(c.payloads)
}

func (c *Channel) push(payload any) {
	if c.capacity > 0 && len(c.payloads) >= c.capacity {
		log.Panicf("channel %s overflow", c.name)
	}

	c.payloads = append(c.payloads, payload)

	if c.NumHooks() > 0 {
		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    HookPosChannelPush,
			Item:   payload,
		})
	}
}

// Peek returns the oldest pending payload without removing it, or nil if the
// channel is empty.
func (c *Channel) Peek() any {
	if len(c.payloads) == 0 {
		return nil
	}

	return c.payloads[0]
}

// Pop removes and returns the oldest pending payload, or nil if the channel
// is empty.
func (c *Channel) Pop() any {
	if len(c.payloads) == 0 {
		return nil
	}

	payload := c.payloads[0]
	c.payloads = c.payloads[1:]

	if c.NumHooks() > 0 {
		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    HookPosChannelPop,
			Item:   payload,
		})
	}

	return payload
}

// Drain removes and returns all pending payloads in publish order.
func (c *Channel) Drain() []any {
	payloads := c.payloads
	c.payloads = nil
	return payloads
}

// Clear discards all pending payloads.
func (c *Channel) Clear() {
	c.payloads = nil
}

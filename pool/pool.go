// Package pool implements a delayed-delivery message pool. Callers enqueue a
// payload with a delay; the pool holds it until the delay elapses against the
// externally supplied tick time, then publishes it exactly once on the sink.
// A pool can also carry a one-shot drain notification that fires whenever a
// delivery batch leaves it empty.
package pool

import (
	"log"

	"github.com/ticklab/writeafter/bus"
	"github.com/ticklab/writeafter/hooking"
	"github.com/ticklab/writeafter/id"
	"github.com/ticklab/writeafter/timing"
)

// HookPosEnqueue marks when an entry is appended to a pool.
var HookPosEnqueue = &hooking.HookPos{Name: "Pool Enqueue"}

// HookPosDeliver marks when an entry's payload is handed to the sink.
var HookPosDeliver = &hooking.HookPos{Name: "Pool Deliver"}

// HookPosDrain marks when a delivery batch leaves the pool empty and the
// drain notification fires.
var HookPosDrain = &hooking.HookPos{Name: "Pool Drain"}

// HookPosCancel marks when a pending entry is cancelled.
var HookPosCancel = &hooking.HookPos{Name: "Pool Cancel"}

// Drained is published on the sink when a delivery batch leaves a pool empty
// and a drain payload is registered. It identifies the pool that drained.
type Drained struct {
	Pool string
}

// A Handle identifies a pending entry so that it can be cancelled.
type Handle string

// EntryInfo describes an entry to hooks. PayloadType is the type of the
// payload for entries enqueued through WriteAfter; for custom Deliverables it
// is the PayloadTyper hint when implemented, otherwise the action's own type.
type EntryInfo struct {
	ID          string
	Pool        string
	Delay       timing.Seconds
	PayloadType string
}

type entry struct {
	id        string
	delay     timing.Seconds
	countdown timing.Countdown
	action    Deliverable
	cancelled bool
}

// A Pool is an ordered collection of delayed entries. Entries are delivered
// in enqueue order among those that expire on the same Process call.
//
// A Pool has no internal locking. All operations on one Pool instance must
// come from a single caller, typically the host's update loop. Distinct Pool
// instances share no state and may be processed independently.
type Pool struct {
	hooking.HookableBase

	name    string
	sink    bus.Sink
	entries []*entry

	drainPayload any
}

// NewPool creates a pool that delivers to sink.
func NewPool(name string, sink bus.Sink) *Pool {
	if name == "" {
		log.Panic("pool must have a name")
	}
	if sink == nil {
		log.Panic("pool must have a sink")
	}

	return &Pool{
		name: name,
		sink: sink,
	}
}

// Name returns the name of the pool.
func (p *Pool) Name() string {
	return p.name
}

// WriteAfter enqueues payload to be published on the sink once delay has
// elapsed. Delivery never happens inside WriteAfter, even for a zero or
// negative delay; it happens on the first Process call at or after expiry.
// The returned handle can cancel the entry while it is still pending.
func (p *Pool) WriteAfter(payload any, delay timing.Seconds) Handle {
	return p.WriteActionAfter(Message(payload), delay)
}

// WriteActionAfter enqueues an arbitrary invoke-once action to run once delay
// has elapsed. The pool invokes the action exactly once and then discards it.
func (p *Pool) WriteActionAfter(
	action Deliverable,
	delay timing.Seconds,
) Handle {
	if action == nil {
		log.Panic("cannot enqueue a nil action")
	}

	e := &entry{
		id:        id.Generate(),
		delay:     delay,
		countdown: timing.NewCountdown(delay),
		action:    action,
	}
	p.entries = append(p.entries, e)

	if p.NumHooks() > 0 {
		p.InvokeHook(hooking.HookCtx{
			Domain: p,
			Pos:    HookPosEnqueue,
			Item:   action,
			Detail: p.entryInfo(e),
		})
	}

	return Handle(e.id)
}

// WriteWhenEmpty registers payload to be published every time a delivery
// batch leaves the pool empty, right after the Drained notification. A later
// registration replaces an earlier one. If the payload implements
// bus.Cloneable, it is cloned for each firing, since drain can recur after
// the pool refills and empties again.
func (p *Pool) WriteWhenEmpty(payload any) {
	if payload == nil {
		log.Panic("cannot register a nil drain payload")
	}

	p.drainPayload = payload
}

// Cancel withdraws a pending entry. The entry is skipped and discarded on the
// next Process pass without being delivered. Cancel reports whether the entry
// was still pending. Removal by cancellation never fires the drain
// notification.
func (p *Pool) Cancel(h Handle) bool {
	for _, e := range p.entries {
		if e.id != string(h) || e.cancelled {
			continue
		}

		e.cancelled = true

		if p.NumHooks() > 0 {
			p.InvokeHook(hooking.HookCtx{
				Domain: p,
				Pos:    HookPosCancel,
				Detail: p.entryInfo(e),
			})
		}

		return true
	}

	return false
}

// Len returns the number of pending entries, excluding cancelled ones.
func (p *Pool) Len() int {
	n := 0
	for _, e := range p.entries {
		if !e.cancelled {
			n++
		}
	}

	return n
}

// IsEmpty returns true if the pool holds no pending entries.
func (p *Pool) IsEmpty() bool {
	return p.Len() == 0
}

// Process advances every pending entry by elapsed, delivers the entries whose
// countdowns finished, and fires the drain notification if the deliveries
// left the pool empty.
//
// Entries that expire on the same call are delivered in enqueue order, even
// if a later-enqueued entry had the shorter delay. The drain notification
// fires at most once per Process call, and only when the batch delivered at
// least one entry.
func (p *Pool) Process(elapsed timing.Seconds) {
	batch := p.expire(elapsed)
	if len(batch) == 0 {
		return
	}

	for _, e := range batch {
		p.deliver(e)
	}

	if len(p.entries) == 0 && p.drainPayload != nil {
		p.fireDrained()
	}
}

// expire ticks every live entry and extracts the ones that are now finished,
// preserving enqueue order. Cancelled entries are dropped without delivery.
func (p *Pool) expire(elapsed timing.Seconds) []*entry {
	var batch []*entry

	live := p.entries[:0]
	for _, e := range p.entries {
		if e.cancelled {
			continue
		}

		e.countdown.Tick(elapsed)
		if e.countdown.Finished() {
			batch = append(batch, e)
			continue
		}

		live = append(live, e)
	}
	p.entries = live

	return batch
}

func (p *Pool) deliver(e *entry) {
	if p.NumHooks() > 0 {
		p.InvokeHook(hooking.HookCtx{
			Domain: p,
			Pos:    HookPosDeliver,
			Item:   e.action,
			Detail: p.entryInfo(e),
		})
	}

	action := e.action
	e.action = nil
	action.Deliver(p.sink)
}

func (p *Pool) fireDrained() {
	payload := p.drainPayload
	if c, ok := payload.(bus.Cloneable); ok {
		payload = c.Clone()
	}

	if p.NumHooks() > 0 {
		p.InvokeHook(hooking.HookCtx{
			Domain: p,
			Pos:    HookPosDrain,
			Item:   payload,
			Detail: p.name,
		})
	}

	p.sink.Publish(Drained{Pool: p.name})
	p.sink.Publish(payload)
}

func (p *Pool) entryInfo(e *entry) EntryInfo {
	return EntryInfo{
		ID:          e.id,
		Pool:        p.name,
		Delay:       e.delay,
		PayloadType: payloadTypeName(e.action),
	}
}

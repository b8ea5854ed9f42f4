package pool

import (
	"log"
	"reflect"

	"github.com/ticklab/writeafter/bus"
)

// A Deliverable is an invoke-once action that hands a captured payload to the
// sink. It is the type-erasure mechanism that lets one pool hold entries of
// heterogeneous payload types.
type Deliverable interface {
	Deliver(sink bus.Sink)
}

// Message wraps a payload in a Deliverable that publishes it as-is.
func Message(payload any) Deliverable {
	if payload == nil {
		log.Panic("cannot build a deliverable from a nil payload")
	}

	return message{payload: payload}
}

type message struct {
	payload any
}

func (m message) Deliver(sink bus.Sink) {
	sink.Publish(m.payload)
}

// PayloadTyper lets a custom Deliverable tell hooks which payload type it
// will publish. Without it, hooks see the action's own type instead.
type PayloadTyper interface {
	PayloadType() string
}

func payloadTypeName(d Deliverable) string {
	if m, ok := d.(message); ok {
		return reflect.TypeOf(m.payload).String()
	}

	if t, ok := d.(PayloadTyper); ok {
		return t.PayloadType()
	}

	return reflect.TypeOf(d).String()
}

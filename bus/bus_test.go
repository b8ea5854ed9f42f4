package bus_test

import (
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ticklab/writeafter/bus"
	"github.com/ticklab/writeafter/hooking"
)

type greeting struct {
	Text string
}

type farewell struct {
	Text string
}

var _ = Describe("Bus", func() {
	var b *bus.Bus

	BeforeEach(func() {
		b = bus.New("TestBus")
	})

	It("should hold published payloads until collected", func() {
		b.Publish(greeting{Text: "hello"})
		b.Publish(greeting{Text: "hello2"})

		Expect(bus.Pending[greeting](b)).To(Equal(2))

		payloads := bus.Collect[greeting](b)

		Expect(payloads).To(Equal([]greeting{
			{Text: "hello"},
			{Text: "hello2"},
		}))
		Expect(bus.Pending[greeting](b)).To(Equal(0))
	})

	It("should route payload types to separate channels", func() {
		b.Publish(greeting{Text: "hi"})
		b.Publish(farewell{Text: "bye"})

		Expect(bus.Collect[greeting](b)).To(HaveLen(1))
		Expect(bus.Collect[farewell](b)).To(HaveLen(1))
	})

	It("should invoke subscribers synchronously in order", func() {
		var received []string

		bus.Subscribe(b, func(g greeting) {
			received = append(received, "first:"+g.Text)
		})
		bus.Subscribe(b, func(g greeting) {
			received = append(received, "second:"+g.Text)
		})

		b.Publish(greeting{Text: "hello"})

		Expect(received).To(Equal([]string{"first:hello", "second:hello"}))
	})

	It("should not invoke subscribers of other types", func() {
		called := false
		bus.Subscribe(b, func(farewell) { called = true })

		b.Publish(greeting{Text: "hello"})

		Expect(called).To(BeFalse())
	})

	It("should invoke publish hooks", func() {
		var items []any
		b.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			if ctx.Pos == bus.HookPosPublish {
				items = append(items, ctx.Item)
			}
		}))

		b.Publish(greeting{Text: "hello"})

		Expect(items).To(HaveLen(1))
	})

	It("should panic when publishing nil", func() {
		Expect(func() { b.Publish(nil) }).To(Panic())
	})
})

var _ = Describe("Channel", func() {
	var (
		b  *bus.Bus
		ch *bus.Channel
	)

	BeforeEach(func() {
		b = bus.New("TestBus")
		ch = b.ChannelOf(reflect.TypeOf(greeting{}))
	})

	It("should peek without removing", func() {
		b.Publish(greeting{Text: "hello"})

		Expect(ch.Peek()).To(Equal(greeting{Text: "hello"}))
		Expect(ch.Size()).To(Equal(1))
	})

	It("should pop in publish order", func() {
		b.Publish(greeting{Text: "a"})
		b.Publish(greeting{Text: "b"})

		Expect(ch.Pop()).To(Equal(greeting{Text: "a"}))
		Expect(ch.Pop()).To(Equal(greeting{Text: "b"}))
		Expect(ch.Pop()).To(BeNil())
	})

	It("should clear pending payloads", func() {
		b.Publish(greeting{Text: "a"})

		ch.Clear()

		Expect(ch.Size()).To(Equal(0))
	})

	It("should panic on overflow when bounded", func() {
		bounded := bus.NewWithCapacity("Bounded", 1)
		bounded.Publish(greeting{Text: "a"})

		Expect(func() {
			bounded.Publish(greeting{Text: "b"})
		}).To(Panic())
	})
})

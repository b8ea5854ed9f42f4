package registry

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ticklab/writeafter/bus"
	"github.com/ticklab/writeafter/hooking"
	"github.com/ticklab/writeafter/pool"
)

type testNote struct {
	Text string
}

var _ = Describe("Registry", func() {
	var (
		b *bus.Bus
		r *Registry
	)

	BeforeEach(func() {
		b = bus.New("TestBus")
		r = New(b)
	})

	It("should create and locate pools by name", func() {
		p := r.CreatePool("UI")

		Expect(r.Pool("UI")).To(BeIdenticalTo(p))
		Expect(r.Pool("missing")).To(BeNil())
	})

	It("should panic on a duplicate pool name", func() {
		r.CreatePool("UI")

		Expect(func() { r.CreatePool("UI") }).To(Panic())
	})

	It("should lazily create one default pool", func() {
		p := r.Default()

		Expect(p.Name()).To(Equal(DefaultPoolName))
		Expect(r.Default()).To(BeIdenticalTo(p))
	})

	It("should process every pool once per tick", func() {
		a := r.CreatePool("A")
		z := r.CreatePool("Z")

		a.WriteAfter(testNote{Text: "from a"}, 1.0)
		z.WriteAfter(testNote{Text: "from z"}, 1.0)

		r.ProcessAll(0.5)
		Expect(bus.Collect[testNote](b)).To(BeEmpty())

		r.ProcessAll(0.5)
		Expect(bus.Collect[testNote](b)).To(Equal([]testNote{
			{Text: "from a"},
			{Text: "from z"},
		}))
	})

	It("should keep pools independent", func() {
		a := r.CreatePool("A")
		z := r.CreatePool("Z")

		a.WriteAfter(testNote{Text: "from a"}, 1.0)

		r.ProcessAll(1.0)

		Expect(a.IsEmpty()).To(BeTrue())
		Expect(z.IsEmpty()).To(BeTrue())
		Expect(bus.Collect[testNote](b)).To(HaveLen(1))
	})

	It("should list pools in creation order", func() {
		a := r.CreatePool("A")
		z := r.CreatePool("Z")

		Expect(r.Pools()).To(Equal([]*pool.Pool{a, z}))
	})

	It("should attach pool hooks to current and future pools", func() {
		before := r.CreatePool("Before")

		var seen []string
		r.AcceptPoolHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			if ctx.Pos == pool.HookPosEnqueue {
				seen = append(seen, ctx.Detail.(pool.EntryInfo).Pool)
			}
		}))

		after := r.CreatePool("After")

		before.WriteAfter(testNote{Text: "x"}, 1.0)
		after.WriteAfter(testNote{Text: "y"}, 1.0)

		Expect(seen).To(Equal([]string{"Before", "After"}))
	})
})

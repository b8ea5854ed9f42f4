package pool

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ticklab/writeafter/bus"
)

var _ = Describe("DeliveryLogger", func() {
	var (
		buf *bytes.Buffer
		p   *Pool
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		p = NewPool("LoggedPool", bus.New("TestBus"))
		p.AcceptHook(NewDeliveryLogger(log.New(buf, "", 0)))
	})

	It("should log the entry lifecycle", func() {
		h := p.WriteAfter(testNote{Text: "hello"}, 1.0)
		p.Cancel(h)

		p.WriteAfter(testNote{Text: "hello2"}, 1.0)
		p.WriteWhenEmpty(restockNote{Shelf: "a"})
		p.Process(1.0)

		out := buf.String()
		Expect(out).To(ContainSubstring(
			"enqueue, LoggedPool, pool.testNote, 1.0000"))
		Expect(out).To(ContainSubstring("cancel, LoggedPool, pool.testNote"))
		Expect(out).To(ContainSubstring("deliver, LoggedPool, pool.testNote"))
		Expect(out).To(ContainSubstring("drain, LoggedPool"))
	})
})

package timing

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ManualClock", func() {
	var clock *ManualClock

	BeforeEach(func() {
		clock = NewManualClock()
	})

	It("should report zero before any advance", func() {
		Expect(clock.Delta()).To(BeNumerically("==", 0))
	})

	It("should accumulate advances into one delta", func() {
		clock.Advance(0.5)
		clock.Advance(0.25)

		Expect(clock.Delta()).To(BeNumerically("~", 0.75, 1e-12))
	})

	It("should reset after a delta is read", func() {
		clock.Advance(1.0)
		clock.Delta()

		Expect(clock.Delta()).To(BeNumerically("==", 0))
	})

	It("should ignore negative advances", func() {
		clock.Advance(-1.0)

		Expect(clock.Delta()).To(BeNumerically("==", 0))
	})
})

var _ = Describe("WallClock", func() {
	It("should report the time between delta reads", func() {
		current := time.Unix(100, 0)
		clock := NewWallClock()
		clock.now = func() time.Time { return current }
		clock.last = current

		current = current.Add(1500 * time.Millisecond)

		Expect(clock.Delta()).To(BeNumerically("~", 1.5, 1e-9))
	})

	It("should clamp a backwards clock to zero", func() {
		current := time.Unix(100, 0)
		clock := NewWallClock()
		clock.now = func() time.Time { return current }
		clock.last = current

		current = current.Add(-time.Second)

		Expect(clock.Delta()).To(BeNumerically("==", 0))
	})
})

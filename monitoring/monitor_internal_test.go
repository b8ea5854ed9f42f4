package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ticklab/writeafter/bus"
	"github.com/ticklab/writeafter/registry"
)

type sampleNote struct {
	Text string
}

var _ = Describe("Monitor", func() {
	var (
		reg     *registry.Registry
		monitor *Monitor
	)

	BeforeEach(func() {
		reg = registry.New(bus.New("TestBus"))
		reg.CreatePool("A").WriteAfter(sampleNote{Text: "x"}, 1.0)
		reg.CreatePool("B")

		monitor = NewMonitor()
		monitor.RegisterRegistry(reg)
	})

	It("should list registered pools", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/pools", nil)

		monitor.listPools(w, r)

		var rsp []poolRsp
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(Equal([]poolRsp{
			{Name: "A", Pending: 1, Empty: false},
			{Name: "B", Pending: 0, Empty: true},
		}))
	})

	It("should serialize one pool's state", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/pool/A", nil)
		r = mux.SetURLVars(r, map[string]string{"name": "A"})

		monitor.poolDetails(w, r)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.Len()).NotTo(BeZero())
	})

	It("should 404 on an unknown pool", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/pool/missing", nil)
		r = mux.SetURLVars(r, map[string]string{"name": "missing"})

		monitor.poolDetails(w, r)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})

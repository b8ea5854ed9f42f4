// Package monitoring turns a running set of pools into a small web server so
// that pending entries and host resources can be inspected from outside.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/ticklab/writeafter/pool"
	"github.com/ticklab/writeafter/registry"
)

// Monitor exposes the state of registered pools over HTTP.
type Monitor struct {
	pools      []*pool.Pool
	portNumber int
	actualPort int
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number the monitor serves on. Ports below 1000
// are rejected and replaced with a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterPool registers one pool to be monitored.
func (m *Monitor) RegisterPool(p *pool.Pool) {
	m.pools = append(m.pools, p)
}

// RegisterRegistry registers every pool the registry currently holds.
func (m *Monitor) RegisterRegistry(r *registry.Registry) {
	for _, p := range r.Pools() {
		m.RegisterPool(p)
	}
}

// Port returns the port the monitor is serving on. Valid after StartServer.
func (m *Monitor) Port() int {
	return m.actualPort
}

// StartServer starts serving the monitoring API in the background.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/pools", m.listPools)
	r.HandleFunc("/api/pool/{name}", m.poolDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.actualPort = listener.Addr().(*net.TCPAddr).Port

	fmt.Fprintf(os.Stderr,
		"Monitoring pools with http://localhost:%d/api/pools\n",
		m.actualPort)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

// OpenDashboard opens the pool listing in the local browser.
func (m *Monitor) OpenDashboard() {
	url := fmt.Sprintf("http://localhost:%d/api/pools", m.actualPort)
	err := browser.OpenURL(url)
	dieOnErr(err)
}

type poolRsp struct {
	Name    string `json:"name"`
	Pending int    `json:"pending"`
	Empty   bool   `json:"empty"`
}

func (m *Monitor) listPools(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]poolRsp, 0, len(m.pools))
	for _, p := range m.pools {
		rsp = append(rsp, poolRsp{
			Name:    p.Name(),
			Pending: p.Len(),
			Empty:   p.IsEmpty(),
		})
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) poolDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	p := m.findPoolOr404(w, name)
	if p == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(p)
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findPoolOr404(
	w http.ResponseWriter,
	name string,
) *pool.Pool {
	for _, p := range m.pools {
		if p.Name() == name {
			return p
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Pool not found"))
	dieOnErr(err)

	return nil
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}

// Package monitoring turns a running simulation into a small HTTP
// server so the controller state and the recent command trace can be
// inspected from a browser while the simulation runs.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"

	// Enable profiling endpoints.
	_ "net/http/pprof"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/sdram/ctrl"
	"github.com/sarchlab/sdram/tracing"
)

// Monitor serves the state of a registered controller over HTTP.
type Monitor struct {
	portNumber int
	controller *ctrl.Comp
	tracer     *tracing.BusTracer
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port the server listens on. Ports below
// 1000 are refused and replaced with a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server, "+
				"using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterController registers the controller to be monitored.
func (m *Monitor) RegisterController(c *ctrl.Comp) {
	m.controller = c
}

// RegisterBusTracer registers the tracer whose recent commands are
// served under /api/trace.
func (m *Monitor) RegisterBusTracer(t *tracing.BusTracer) {
	m.tracer = t
}

// StartServer starts the monitoring server and opens a browser tab
// pointing at it.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()
	r.HandleFunc("/api/status", m.serveStatus)
	r.HandleFunc("/api/trace", m.serveTrace)
	http.Handle("/", r)

	listener, err := net.Listen("tcp",
		fmt.Sprintf(":%d", m.portNumber))
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Monitoring simulation with http://localhost:%d\n",
		listener.Addr().(*net.TCPAddr).Port)

	go func() {
		_ = browser.OpenURL(fmt.Sprintf(
			"http://localhost:%d/api/status",
			listener.Addr().(*net.TCPAddr).Port))
	}()

	go func() {
		err := http.Serve(listener, nil)
		if err != nil {
			panic(err)
		}
	}()
}

type status struct {
	Name         string  `json:"name"`
	Ready        bool    `json:"ready"`
	Phase        int     `json:"phase"`
	Owner        string  `json:"owner"`
	CycleCount   uint64  `json:"cycle_count"`
	RefreshCount uint64  `json:"refresh_count"`
	CPUPercent   float64 `json:"cpu_percent"`
	MemoryRSS    uint64  `json:"memory_rss"`
}

func (m *Monitor) serveStatus(w http.ResponseWriter, _ *http.Request) {
	s := status{}

	if m.controller != nil {
		s.Name = m.controller.Name()
		s.Ready = m.controller.Ready()
		s.Phase = m.controller.Phase()
		s.Owner = m.controller.CurrentOwner().String()
		s.CycleCount = m.controller.CycleCount()
		s.RefreshCount = m.controller.RefreshCount()
	}

	p, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if cpu, err := p.CPUPercent(); err == nil {
			s.CPUPercent = cpu
		}

		if mem, err := p.MemoryInfo(); err == nil {
			s.MemoryRSS = mem.RSS
		}
	}

	writeJSON(w, s)
}

func (m *Monitor) serveTrace(w http.ResponseWriter, _ *http.Request) {
	if m.tracer == nil {
		writeJSON(w, []tracing.CommandRecord{})
		return
	}

	writeJSON(w, m.tracer.Recent())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/sdram/bus"
	"github.com/sarchlab/sdram/ctrl"
	"github.com/sarchlab/sdram/datarecording"
	"github.com/sarchlab/sdram/device"
	"github.com/sarchlab/sdram/monitoring"
	"github.com/sarchlab/sdram/queueing"
	"github.com/sarchlab/sdram/timing"
	"github.com/sarchlab/sdram/tracing"
)

var (
	flagCycles       uint64
	flagDataWidth    int
	flagRowWidth     int
	flagColWidth     int
	flagTRCD         int
	flagCASLatency   int
	flagRefreshEvery uint64
	flagSeed         int64
	flagFreqMHz      float64
	flagTraceDB      string
	flagMonitor      bool
	flagMonitorPort  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a randomized read/write workload through the controller.",
	Run: func(_ *cobra.Command, _ []string) {
		runWorkload()
	},
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Uint64Var(&flagCycles, "cycles", 20000,
		"number of bus cycles to simulate")
	runCmd.Flags().IntVar(&flagDataWidth, "data-width", 32,
		"data bus width in bits (16 or 32)")
	runCmd.Flags().IntVar(&flagRowWidth, "row-width", 11,
		"row address width in bits")
	runCmd.Flags().IntVar(&flagColWidth, "col-width", 8,
		"column address width in bits")
	runCmd.Flags().IntVar(&flagTRCD, "trcd", 2,
		"RAS-to-CAS delay in phases")
	runCmd.Flags().IntVar(&flagCASLatency, "cas-latency", 2,
		"CAS latency in phases")
	runCmd.Flags().Uint64Var(&flagRefreshEvery, "refresh-every", 64,
		"raise the refresh request every N bus cycles")
	runCmd.Flags().Int64Var(&flagSeed, "seed", 1,
		"random seed for the traffic generators")
	runCmd.Flags().Float64Var(&flagFreqMHz, "freq-mhz", 100,
		"controller clock frequency in MHz")
	runCmd.Flags().StringVar(&flagTraceDB, "trace-db", "",
		"record the command stream into this SQLite database")
	runCmd.Flags().BoolVar(&flagMonitor, "monitor", false,
		"serve controller state over HTTP while running")
	runCmd.Flags().IntVar(&flagMonitorPort, "monitor-port", 0,
		"port for the monitoring server, 0 picks a random one")
}

// syncPeriod is the tick period of the external bus cadence. It
// leaves room for the two-stage sync sampler plus the seven phases of
// a cycle.
const syncPeriod = 12

type workload struct {
	controller *ctrl.Comp
	dev        *device.Comp
	tracer     *tracing.BusTracer

	rng      *rand.Rand
	pending2 queueing.Buffer

	addrMask uint32

	busData uint32
	prevAck bool

	port1 bus.Request
	port2 bus.Request

	refreshDue bool

	mirror map[uint32]uint16

	lastCycle  uint64
	cycleOwner bus.Owner

	reads      uint64
	writes     uint64
	refreshes  uint64
	idleCycles uint64
	mismatches uint64
}

func runWorkload() {
	if flagTraceDB == "" {
		flagTraceDB = os.Getenv("SDRAMSIM_TRACE_DB")
	}

	w := &workload{
		rng:      rand.New(rand.NewSource(flagSeed)),
		addrMask: 1<<12 - 1,
		mirror:   make(map[uint32]uint16),
	}

	builder := ctrl.MakeBuilder().
		WithDataWidth(flagDataWidth).
		WithRowWidth(flagRowWidth).
		WithColWidth(flagColWidth).
		WithRASToCASDelay(flagTRCD).
		WithCASLatency(flagCASLatency).
		WithAddrWidth(clientAddrWidth())

	if flagTraceDB != "" {
		recorder := datarecording.New(flagTraceDB)
		w.tracer = tracing.NewBusTracer(recorder)
		builder = builder.WithAdditionalHooks(w.tracer)
	}

	w.controller = builder.Build("Ctrl")

	w.dev = device.MakeBuilder().
		WithDataWidth(flagDataWidth).
		WithRowWidth(flagRowWidth).
		WithColWidth(flagColWidth).
		WithCASLatency(flagCASLatency).
		Build("Device")

	w.pending2 = queueing.BufferBuilder{}.
		WithCapacity(8).
		Build("Port2Queue")

	if flagMonitor {
		monitor := monitoring.NewMonitor().
			WithPortNumber(flagMonitorPort)
		monitor.RegisterController(w.controller)
		monitor.RegisterBusTracer(w.tracer)
		monitor.StartServer()
	}

	ticks := w.run()
	w.report(ticks)

	if w.mismatches > 0 {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func clientAddrWidth() int {
	shift := 0
	if flagDataWidth == 32 {
		shift = 1
	}

	return flagColWidth + flagRowWidth + 2 + shift
}

func (w *workload) run() (ticks uint64) {
	for w.controller.CycleCount() < flagCycles {
		w.generateTraffic()

		in := bus.Input{
			Sync:       ticks%syncPeriod < 3,
			Port1:      w.port1,
			Port2:      w.port2,
			RefreshReq: w.refreshDue,
			Data:       w.busData,
		}

		out := w.controller.Tick(in)
		w.busData = w.dev.Tick(out)

		if w.controller.Phase() == 1 {
			w.cycleOwner = w.controller.CurrentOwner()
		}

		w.collectCompletions(out)

		ticks++
	}

	return ticks
}

// generateTraffic keeps the request lines busy. Port1 fires directly;
// Port2 operations are produced into a fixed-depth queue and driven
// onto the bus one at a time.
func (w *workload) generateTraffic() {
	if !w.port1.Valid && w.rng.Float64() < 0.6 {
		w.port1 = w.randomRequest()
	}

	if w.pending2.CanPush() && w.rng.Float64() < 0.4 {
		w.pending2.Push(w.randomRequest())
	}

	if !w.port2.Valid && !w.pending2.Empty() {
		w.port2 = w.pending2.Pop().(bus.Request)
	}

	if w.controller.CycleCount() > 0 &&
		w.controller.CycleCount()%flagRefreshEvery == 0 {
		w.refreshDue = true
	}
}

func (w *workload) randomRequest() bus.Request {
	req := bus.Request{
		Addr:    w.rng.Uint32() & w.addrMask,
		IsWrite: w.rng.Intn(2) == 0,
		Valid:   true,
	}

	if req.IsWrite {
		req.Data = uint16(w.rng.Uint32())

		// Occasionally write a single byte.
		switch w.rng.Intn(4) {
		case 0:
			req.Strobe = 0x1
		case 1:
			req.Strobe = 0x2
		}
	}

	return req
}

// collectCompletions retires requests at cycle boundaries, checks read
// data against the scoreboard, and updates it for writes.
func (w *workload) collectCompletions(out bus.Output) {
	cycleDone := w.controller.CycleCount() > w.lastCycle
	if !cycleDone {
		return
	}

	w.lastCycle = w.controller.CycleCount()

	switch w.cycleOwner {
	case bus.OwnerPort1:
		w.retire(&w.port1, out.Port1Data)
	case bus.OwnerPort2:
		if out.Port2Ack == w.prevAck {
			panic("Port2 cycle completed without acknowledgment toggle")
		}

		w.prevAck = out.Port2Ack
		w.retire(&w.port2, out.Port2Data)
	case bus.OwnerRefresh:
		w.refreshDue = false
		w.refreshes++
	case bus.OwnerIdle:
		w.idleCycles++
	}

	w.cycleOwner = bus.OwnerIdle
}

func (w *workload) retire(req *bus.Request, readData uint16) {
	if req.IsWrite {
		w.applyWrite(*req)
		w.writes++
	} else {
		expected := w.mirror[req.Addr]
		if readData != expected {
			fmt.Fprintf(os.Stderr,
				"read mismatch at %#x: got %#x, want %#x\n",
				req.Addr, readData, expected)
			w.mismatches++
		}

		w.reads++
	}

	req.Valid = false
}

func (w *workload) applyWrite(req bus.Request) {
	old := w.mirror[req.Addr]
	value := old

	if req.Strobe&0x1 == 0 {
		value = value&0xFF00 | req.Data&0x00FF
	}

	if req.Strobe&0x2 == 0 {
		value = value&0x00FF | req.Data&0xFF00
	}

	w.mirror[req.Addr] = value
}

func (w *workload) report(ticks uint64) {
	freq := timing.Freq(flagFreqMHz) * timing.MHz
	simTime := freq.NCyclesLater(int(ticks), 0)

	fmt.Printf("cycles:        %d\n", w.controller.CycleCount())
	fmt.Printf("ticks:         %d (%.6f simulated seconds)\n",
		ticks, float64(simTime))
	fmt.Printf("reads:         %d\n", w.reads)
	fmt.Printf("writes:        %d\n", w.writes)
	fmt.Printf("refresh:       %d cycles, %d device pulses\n",
		w.refreshes, w.dev.RefreshCount())
	fmt.Printf("idle cycles:   %d\n", w.idleCycles)
	fmt.Printf("mismatches:    %d\n", w.mismatches)
}

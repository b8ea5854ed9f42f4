package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ticklab/writeafter/bus"
	"github.com/ticklab/writeafter/monitoring"
	"github.com/ticklab/writeafter/pool"
	"github.com/ticklab/writeafter/recording"
	"github.com/ticklab/writeafter/registry"
	"github.com/ticklab/writeafter/timing"
)

type reminder struct {
	Text string
}

type refill struct {
	Round int
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted delayed-delivery schedule against the wall clock.",
	Run: func(cmd *cobra.Command, _ []string) {
		runDemo(cmd)
	},
}

func init() {
	demoCmd.Flags().Float64("duration", 10.0,
		"how long to run the demo, in seconds")
	demoCmd.Flags().Int("tick-ms", 50,
		"interval between pool processing ticks, in milliseconds")
	demoCmd.Flags().Bool("monitor", false,
		"serve the monitoring API while the demo runs")
	demoCmd.Flags().Int("monitor-port", 0,
		"port for the monitoring API, 0 picks a random port")
	demoCmd.Flags().Bool("open", false,
		"open the monitoring dashboard in the browser")
	demoCmd.Flags().String("record", "",
		"record deliveries into a SQLite database at this path")

	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command) {
	loadEnv(cmd)

	duration, _ := cmd.Flags().GetFloat64("duration")
	tickMs, _ := cmd.Flags().GetInt("tick-ms")

	b := bus.New("demo")
	reg := registry.New(b)

	setUpRecording(cmd, reg)

	p := reg.Default()
	scheduleDemoRounds(b, p)

	setUpMonitoring(cmd, reg)

	runTickLoop(reg, duration, tickMs)

	atexit.Exit(0)
}

// loadEnv fills unset flags from a .env file and the environment. Flags given
// on the command line win.
func loadEnv(cmd *cobra.Command) {
	// Missing .env files are fine.
	_ = godotenv.Load()

	fromEnv := map[string]string{
		"duration":     os.Getenv("WRITEAFTER_DURATION"),
		"tick-ms":      os.Getenv("WRITEAFTER_TICK_MS"),
		"monitor-port": os.Getenv("WRITEAFTER_MONITOR_PORT"),
		"record":       os.Getenv("WRITEAFTER_RECORD"),
	}

	for name, value := range fromEnv {
		if value == "" || cmd.Flags().Changed(name) {
			continue
		}

		err := cmd.Flags().Set(name, value)
		if err != nil {
			log.Fatalf("invalid %s from environment: %v", name, err)
		}
	}
}

// scheduleDemoRounds enqueues the first round of reminders and rearms the
// pool on every drain, up to three rounds.
func scheduleDemoRounds(b *bus.Bus, p *pool.Pool) {
	bus.Subscribe(b, func(r reminder) {
		log.Printf("reminder delivered: %s", r.Text)
	})
	bus.Subscribe(b, func(d pool.Drained) {
		log.Printf("pool %s drained", d.Pool)
	})
	bus.Subscribe(b, func(r refill) {
		if r.Round > 3 {
			return
		}

		log.Printf("refilling, round %d", r.Round)
		round := strconv.Itoa(r.Round)
		p.WriteAfter(reminder{Text: "hello " + round}, 1.0)
		p.WriteAfter(reminder{Text: "hello2 " + round}, 2.0)
		p.WriteWhenEmpty(refill{Round: r.Round + 1})
	})

	p.WriteAfter(reminder{Text: "hello"}, 1.0)
	p.WriteAfter(reminder{Text: "hello2"}, 2.0)
	p.WriteWhenEmpty(refill{Round: 1})
}

func setUpRecording(cmd *cobra.Command, reg *registry.Registry) {
	recordPath, _ := cmd.Flags().GetString("record")
	if recordPath == "" {
		return
	}

	reg.AcceptPoolHook(recording.NewDeliveryLog(recording.New(recordPath)))
}

func setUpMonitoring(cmd *cobra.Command, reg *registry.Registry) {
	monitor, _ := cmd.Flags().GetBool("monitor")
	if !monitor {
		return
	}

	monitorPort, _ := cmd.Flags().GetInt("monitor-port")
	open, _ := cmd.Flags().GetBool("open")

	m := monitoring.NewMonitor()
	if monitorPort != 0 {
		m.WithPortNumber(monitorPort)
	}
	m.RegisterRegistry(reg)
	m.StartServer()

	if open {
		m.OpenDashboard()
	}
}

func runTickLoop(reg *registry.Registry, duration float64, tickMs int) {
	clock := timing.NewWallClock()
	ticker := time.NewTicker(time.Duration(tickMs) * time.Millisecond)
	defer ticker.Stop()

	deadline := time.Now().Add(
		timing.Seconds(duration).Duration())

	for range ticker.C {
		reg.ProcessAll(clock.Delta())

		if time.Now().After(deadline) {
			return
		}
	}
}

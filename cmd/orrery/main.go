package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/stream"
	"github.com/lixenwraith/orrery/telemetry"
)

var (
	configFlag   = flag.String("config", "", "Path to a TOML config file")
	debugFlag    = flag.Bool("debug", false, "Write debug logs to logs/orrery.log")
	headlessFlag = flag.Bool("headless", false, "Run the simulation without a terminal UI")
	framesFlag   = flag.Int("frames", 0, "Headless frame cap, 0 runs until interrupted")
)

const serverShutdownTimeout = 5 * time.Second

func main() {
	// Panic Recovery: Ensure terminal is reset even if the viewer crashes
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n\x1b[31mORRERY CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "orrery: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag, os.LookupEnv)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, logFile, err := newLogger(cfg, *debugFlag, *headlessFlag)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.TracingSettings(), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer telemetry.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	startCtx, span := telemetry.Tracer().Start(ctx, "startup")
	specs, err := cfg.BodySpecs()
	if err != nil {
		span.End()
		return err
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		span.End()
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := telemetry.NewCollector(reg)
	if err != nil {
		span.End()
		return fmt.Errorf("init metrics: %w", err)
	}

	deps := engine.Deps{
		Clock:   clockwork.NewRealClock(),
		Keys:    keys,
		Metrics: metrics,
		Logger:  log,
	}

	if cfg.Stream.Addr != "" {
		hub := stream.NewHub(stream.HubConfig{
			RateHz:     cfg.Stream.RateHz,
			MaxClients: cfg.Stream.MaxClients,
			QueueSize:  cfg.Stream.QueueSize,
		}, deps.Clock, metrics, log)
		srv := stream.NewServer(cfg.Stream.Addr, hub, metrics, log)
		if err := srv.Start(); err != nil {
			span.End()
			return err
		}
		defer func() {
			if err := srv.ShutdownWithTimeout(serverShutdownTimeout); err != nil {
				log.Warn(context.Background(), "stream server shutdown failed", logging.Err(err))
			}
		}()
		deps.Publisher = hub
	}

	if !*headlessFlag {
		// Audio is optional: a failed speaker leaves the viewer silent
		player := audio.NewCuePlayer(cfg.AudioSettings())
		if err := player.Initialize(); err != nil {
			log.Warn(startCtx, "audio unavailable, continuing without sound", logging.Err(err))
		} else {
			defer player.Cleanup()
			deps.Audio = player
		}
	}
	span.End()

	opts := viewerOptions(cfg, *headlessFlag, *framesFlag)

	if *headlessFlag {
		v, err := engine.NewViewer(specs, opts, deps)
		if err != nil {
			return err
		}
		return v.Run(ctx, nil)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	deps.Screen = screen
	deps.CrashHandler = func(r any) {
		// Use \r\n for raw mode compatibility to avoid zig-zag output
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mVIEWER CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}

	v, err := engine.NewViewer(specs, opts, deps)
	if err != nil {
		return err
	}

	events := make(chan tcell.Event, 256)
	go pollEvents(screen, events)

	return v.Run(ctx, events)
}

// pollEvents forwards terminal events until the screen is finalized
func pollEvents(screen tcell.Screen, events chan<- tcell.Event) {
	defer close(events)
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		events <- ev
	}
}

// newLogger picks the log sink: stderr when headless, the rotated file under
// -debug, and nothing otherwise since the terminal owns stdout
func newLogger(cfg *config.Config, debugMode, headless bool) (logging.Logger, *os.File, error) {
	lc := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if headless && !debugMode {
		return logging.New(os.Stderr, lc), nil, nil
	}
	log, f, err := logging.Setup(debugMode, logging.LogDir, lc)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logging: %w", err)
	}
	return log, f, nil
}

// viewerOptions maps validated config onto the frame loop options
func viewerOptions(cfg *config.Config, headless bool, frames int) engine.Options {
	opts := engine.Options{
		FPS:             cfg.View.FPS,
		InitialSpeed:    cfg.Clock.InitialSpeed,
		FocusSpeed:      cfg.Clock.FocusSpeed,
		FocusLocksSpeed: cfg.Clock.FocusLocksSpeed,
		StartPaused:     cfg.Clock.StartPaused,
		ShowInfo:        cfg.View.ShowInfo,
		StarCount:       cfg.View.StarCount,
		StarSeed:        cfg.View.StarSeed,
		Camera:          cfg.CameraSettings(),
	}
	if headless && frames > 0 {
		opts.MaxFrames = frames
	}
	return opts
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/pursuit/audio"
	"github.com/lixenwraith/pursuit/config"
	"github.com/lixenwraith/pursuit/engine"
	"github.com/lixenwraith/pursuit/event"
	"github.com/lixenwraith/pursuit/telemetry"
)

var (
	configFlag   = flag.String("config", "", "TOML config file (defaults when empty)")
	headlessFlag = flag.Bool("headless", false, "Run without a terminal UI")
	durationFlag = flag.Duration("duration", 60*time.Second, "Simulated time for a headless run")
	carsFlag     = flag.Int("cars", 3, "Cars spawned at start of a headless run")
	policeFlag   = flag.Int("police", 1, "Police spawned at start of a headless run")
	plotFlag     = flag.String("plot", "", "Write a telemetry chart to this file on exit (png, svg, pdf)")
	muteFlag     = flag.Bool("mute", false, "Disable audio cues")
	seedFlag     = flag.Uint64("seed", 0, "Intercept target seed (config value when 0)")
	logFlag      = flag.String("log", "", "Log file for interactive runs (discarded when empty)")
	levelFlag    = flag.String("level", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := config.Default()
	if *configFlag != "" {
		cfg, err = config.Load(*configFlag)
		if config.Fatal(err) {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		if err != nil {
			logger.Warn("config values rejected, defaults kept", "path", *configFlag, "err", err)
		}
	}

	bus := event.NewBus()
	opts := []engine.Option{engine.WithLogger(logger), engine.WithBus(bus)}
	if *seedFlag != 0 {
		opts = append(opts, engine.WithSeed(*seedFlag))
	}
	sim, err := engine.New(cfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create simulation: %v\n", err)
		os.Exit(1)
	}

	rec := telemetry.NewRecorder(sim.RunID())

	if *headlessFlag {
		runHeadless(sim, rec, logger)
	} else {
		player := startAudio(bus, logger)
		defer player.Close()

		if err := runInteractive(sim, rec, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to run: %v\n", err)
			os.Exit(1)
		}
	}

	logger.Info("run summary", rec.Summary().KeyVals()...)
	if *plotFlag != "" {
		if err := rec.SavePlot(*plotFlag); err != nil {
			logger.Error("plot not written", "err", err)
		} else {
			logger.Info("plot written", "path", *plotFlag)
		}
	}
}

// newLogger writes to stderr for headless runs; interactive runs own the
// terminal so logs go to a file or nowhere
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(*levelFlag)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = io.Discard
	closer := func() {}
	switch {
	case *headlessFlag:
		w = os.Stderr
	case *logFlag != "":
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "pursuit",
		Level:           level,
	})
	return logger, closer, nil
}

func startAudio(bus *event.Bus, logger *log.Logger) *audio.Player {
	cfg := audio.LoadConfig()
	if *muteFlag {
		cfg.Enabled = false
	}
	player := audio.NewPlayer(cfg)
	if err := player.Start(); err != nil {
		if !errors.Is(err, audio.ErrDisabled) {
			logger.Warn("audio start failed, continuing without audio", "err", err)
		}
		return player
	}
	bus.Subscribe(player.Notify)
	return player
}

// recoverTerminal restores the terminal before reporting a crash
func recoverTerminal(fini func()) {
	if r := recover(); r != nil {
		fini()
		fmt.Fprintf(os.Stderr, "\n\x1b[31mPURSUIT CRASHED: %v\x1b[0m\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
		os.Exit(1)
	}
}

package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pursuit/config"
	"github.com/lixenwraith/pursuit/engine"
	"github.com/lixenwraith/pursuit/parameter"
	"github.com/lixenwraith/pursuit/render"
	"github.com/lixenwraith/pursuit/telemetry"
)

// runHeadless advances at a fixed step until the requested simulated time
func runHeadless(sim *engine.Simulation, rec *telemetry.Recorder, logger *log.Logger) {
	for i := 0; i < *carsFlag; i++ {
		sim.SpawnCarAfter(float64(i))
	}
	for i := 0; i < *policeFlag; i++ {
		sim.SpawnPoliceAfter(float64(i) + 0.5)
	}

	end := durationFlag.Seconds()
	start := time.Now()
	for sim.Now() < end {
		sim.Advance(parameter.TickSeconds)
		rec.Observe(sim)
	}
	logger.Info("headless run finished",
		"simulated", *durationFlag, "ticks", sim.Ticks(), "wall", time.Since(start).Round(time.Millisecond))
}

// runInteractive drives the simulation from the frame clock on the main
// goroutine; terminal events arrive over a channel
func runInteractive(sim *engine.Simulation, rec *telemetry.Recorder, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	defer recoverTerminal(screen.Fini)

	screen.EnableMouse()
	screen.HideCursor()

	view := render.NewView(screen, sim.Config().World.Frame)
	sim.Bus().Subscribe(view.Note)
	var input render.Input

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(parameter.TickInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-eventChan:
			action, req := input.Translate(ev, view.Viewport())
			switch action {
			case render.ActionQuit:
				return nil
			case render.ActionInput:
				sim.HandleInput(req)
			case render.ActionResize:
				screen.Sync()
				view.Resize()
			case render.ActionReload:
				reload(sim, logger)
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), parameter.MaxTickSeconds)
			last = now
			sim.Advance(dt)
			rec.Observe(sim)
			view.Draw(sim)
		}
	}
}

// reload re-reads the config file and applies its tuning; world changes
// need a restart
func reload(sim *engine.Simulation, logger *log.Logger) {
	if *configFlag == "" {
		logger.Info("reload skipped, no config file")
		return
	}
	cfg, err := config.Load(*configFlag)
	if config.Fatal(err) {
		logger.Error("reload failed", "path", *configFlag, "err", err)
		return
	}
	if err != nil {
		logger.Warn("reload values rejected", "path", *configFlag, "err", err)
	}
	// rejections are logged by the simulation
	_ = sim.Reconfigure(cfg.Tuning())
}

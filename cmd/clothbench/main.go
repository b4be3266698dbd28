// Package main is a headless soak test and benchmark for the cloth solver.
// It steps the demo scene without a window and reports solver timing and
// constraint error statistics, flagging any numeric blow-up.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/meshview/meshview/internal/config"
	"github.com/meshview/meshview/internal/demo"
	"github.com/meshview/meshview/internal/engine/cloth"
	"github.com/meshview/meshview/internal/logger"
)

// Bench-specific flags; wind speed, log level and the rest come from the
// shared config flags (-wind, -debug, ...).
var (
	flagFrames  = flag.Int("frames", 1000, "number of frames to simulate")
	flagDt      = flag.Float64("dt", 0.016, "timestep per frame in seconds")
	flagWindDir = flag.Float64("wind-dir", 0, "wind heading override in degrees")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	cfg.Cloth.WindDirection = float32(*flagWindDir)
	cfg.Normalize()

	if *flagFrames <= 0 || *flagDt <= 0 {
		fmt.Fprintln(os.Stderr, "frames and dt must be positive")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sc := demo.NewScene()
	sc.UpdateWorldTransforms()

	manager := cloth.NewManager(cfg, sc)
	manager.InitSimulations(sc.Meshes())

	sims := manager.Simulations()
	if len(sims) == 0 {
		logger.Fatal("no simulations built from demo scene")
	}

	var particles, constraints int
	for _, sim := range sims {
		particles += len(sim.Particles())
		constraints += len(sim.Constraints())
	}
	logger.Info("bench starting",
		zap.Int("frames", *flagFrames),
		zap.Float64("dt", *flagDt),
		zap.Int("simulations", len(sims)),
		zap.Int("particles", particles),
		zap.Int("constraints", constraints),
	)

	dt := *flagDt
	start := time.Now()
	for frame := 0; frame < *flagFrames; frame++ {
		demo.Animate(sc, float64(frame)*dt)
		sc.UpdateWorldTransforms()
		manager.Step(float32(dt))

		if !allFinite(sims) {
			logger.Fatal("solver produced non-finite positions",
				zap.Int("frame", frame))
		}
	}
	total := time.Since(start)

	logger.Info("bench finished",
		zap.Duration("total", total),
		zap.Duration("per_frame", total/time.Duration(*flagFrames)),
		zap.Float64("mean_extension", meanExtension(sims)),
	)
}

// allFinite reports whether every particle position is finite.
func allFinite(sims []*cloth.Simulation) bool {
	for _, sim := range sims {
		for _, p := range sim.Particles() {
			if !p.Position.IsFinite() {
				return false
			}
		}
	}
	return true
}

// meanExtension returns the average absolute deviation of constraint
// lengths from their rest lengths, a proxy for how settled the cloth is.
func meanExtension(sims []*cloth.Simulation) float64 {
	var sum float64
	var n int
	for _, sim := range sims {
		particles := sim.Particles()
		for _, c := range sim.Constraints() {
			length := particles[c.A].Position.Distance(particles[c.B].Position)
			ext := float64(length - c.RestLength)
			if ext < 0 {
				ext = -ext
			}
			sum += ext
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

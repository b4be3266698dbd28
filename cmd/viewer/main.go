// Package main is the entry point for the MeshView model viewer.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/meshview/meshview/internal/config"
	"github.com/meshview/meshview/internal/demo"
	"github.com/meshview/meshview/internal/engine/camera"
	"github.com/meshview/meshview/internal/engine/cloth"
	"github.com/meshview/meshview/internal/engine/input"
	"github.com/meshview/meshview/internal/engine/renderer"
	"github.com/meshview/meshview/internal/engine/window"
	"github.com/meshview/meshview/internal/logger"
	"github.com/meshview/meshview/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== MeshView ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      "MeshView",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer win.Close()

	rend, err := renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Close()

	in := input.New()
	cam := camera.NewOrbitCamera()

	sc := demo.NewScene()
	sc.UpdateWorldTransforms()

	manager := cloth.NewManager(cfg, sc)
	manager.InitSimulations(sc.Meshes())

	lightDir := math.Vec3{X: -0.4, Y: -1.0, Z: -0.3}.Normalize()

	var (
		dragging     bool
		lastX, lastY int
		elapsed      float64
	)

	lastFrame := time.Now()
	for {
		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now
		elapsed += float64(dt)

		if quit := in.Update(); quit {
			return nil
		}

		for _, ev := range in.Events() {
			switch ev.Type {
			case input.EventWindowResize:
				rend.Resize(ev.Width, ev.Height)

			case input.EventKeyDown:
				switch ev.Key {
				case sdl.SCANCODE_ESCAPE:
					return nil
				case sdl.SCANCODE_R:
					manager.Reset()
					manager.InitSimulations(sc.Meshes())
				case sdl.SCANCODE_C:
					cfg.Cloth.Enabled = !cfg.Cloth.Enabled
					if !cfg.Cloth.Enabled {
						manager.Reset()
					} else {
						manager.InitSimulations(sc.Meshes())
					}
					logger.Info("cloth simulation toggled",
						zap.Bool("enabled", cfg.Cloth.Enabled))
				case sdl.SCANCODE_UP:
					cfg.Cloth.WindSpeed += 0.5
				case sdl.SCANCODE_DOWN:
					cfg.Cloth.WindSpeed -= 0.5
				case sdl.SCANCODE_LEFT:
					cfg.Cloth.WindDirection -= 15
				case sdl.SCANCODE_RIGHT:
					cfg.Cloth.WindDirection += 15
				}
				cfg.Normalize()

			case input.EventMouseDown:
				if ev.Button == sdl.BUTTON_LEFT {
					dragging = true
					lastX, lastY = ev.MouseX, ev.MouseY
				}
			case input.EventMouseUp:
				if ev.Button == sdl.BUTTON_LEFT {
					dragging = false
				}
			case input.EventMouseMove:
				if dragging {
					cam.HandleDrag(float32(ev.MouseX-lastX), float32(ev.MouseY-lastY))
					lastX, lastY = ev.MouseX, ev.MouseY
				}
			case input.EventMouseWheel:
				cam.HandleZoom(ev.Wheel)
			}
		}

		demo.Animate(sc, elapsed)
		sc.UpdateWorldTransforms()
		manager.Step(dt)

		rend.Begin(cam.ViewMatrix(), rend.ProjectionMatrix(), lightDir)
		for _, mesh := range sc.Meshes() {
			rend.DrawMesh(mesh, meshColor(mesh.Name, mesh.Cloth != nil))
		}
		win.SwapBuffers()

		if cfg.Graphics.FPSLimit > 0 {
			frameBudget := time.Second / time.Duration(cfg.Graphics.FPSLimit)
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}
}

// meshColor picks a display color: cloth in red, collision proxies in gray.
func meshColor(name string, isCloth bool) math.Vec3 {
	if isCloth {
		return math.Vec3{X: 0.85, Y: 0.2, Z: 0.2}
	}
	if strings.HasPrefix(strings.ToLower(name), "col_") {
		return math.Vec3{X: 0.45, Y: 0.48, Z: 0.52}
	}
	return math.Vec3{X: 0.7, Y: 0.6, Z: 0.4}
}

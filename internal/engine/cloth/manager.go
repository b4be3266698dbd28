package cloth

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/meshview/meshview/internal/config"
	"github.com/meshview/meshview/internal/engine/model"
	"github.com/meshview/meshview/internal/engine/scene"
	"github.com/meshview/meshview/internal/logger"
	"github.com/meshview/meshview/pkg/math"
)

// Manager owns every active cloth simulation. The host render loop drives it
// single-threaded: InitSimulations when cloth is enabled and meshes appear,
// Step once per frame after the scene's world transforms are updated, Reset
// to deactivate. Wind settings are read from the config every frame.
type Manager struct {
	cfg   *config.Config
	scene *scene.Scene

	sims   []*Simulation
	active map[*model.Mesh]bool

	// elapsed accumulates simulation time for the wind gust waves.
	elapsed float64
}

// NewManager creates a manager bound to a scene and live configuration.
func NewManager(cfg *config.Config, sc *scene.Scene) *Manager {
	return &Manager{
		cfg:    cfg,
		scene:  sc,
		active: make(map[*model.Mesh]bool),
	}
}

// InitSimulations builds simulations for every eligible mesh that is not
// already simulated. Eligible means the mesh carries cloth metadata.
// Idempotent: already-simulated meshes are skipped.
func (m *Manager) InitSimulations(meshes []*model.Mesh) {
	if !m.cfg.Cloth.Enabled {
		return
	}
	for _, mesh := range meshes {
		if mesh == nil || mesh.Cloth == nil || m.active[mesh] {
			continue
		}
		sim := Build(mesh, m.scene)
		if sim == nil {
			continue
		}
		m.sims = append(m.sims, sim)
		m.active[mesh] = true
	}
}

// Step advances all active simulations by one frame. dt is the frame delta
// in seconds; the integrator clamps it internally.
func (m *Manager) Step(dt float32) {
	if !m.cfg.Cloth.Enabled || len(m.sims) == 0 {
		return
	}
	m.elapsed += float64(dt)

	wind := m.windAccel()
	for _, sim := range m.sims {
		sim.Step(dt, wind)
	}
}

// Reset restores every simulation to its rest pose, pushes the rest pose
// into the render meshes, and discards all simulations. Re-enabling rebuilds
// from scratch through Build.
func (m *Manager) Reset() {
	for _, sim := range m.sims {
		sim.reset()
	}
	if len(m.sims) > 0 {
		logger.Info("cloth: simulations reset", zap.Int("count", len(m.sims)))
	}
	m.sims = nil
	m.active = make(map[*model.Mesh]bool)
	m.elapsed = 0
}

// Simulations returns the active simulations, primarily for diagnostics.
func (m *Manager) Simulations() []*Simulation {
	return m.sims
}

// windAccel derives the current wind acceleration from the configured speed
// and heading. Two offset sine waves modulate the speed between 0.5x and
// 1.5x so the wind never feels perfectly uniform.
func (m *Manager) windAccel() math.Vec3 {
	speed := m.cfg.Cloth.WindSpeed
	if speed <= 0 {
		return math.Vec3{}
	}

	rad := float64(m.cfg.Cloth.WindDirection) * gomath.Pi / 180.0
	dir := math.Vec3{
		X: float32(gomath.Sin(rad)),
		Z: float32(gomath.Cos(rad)),
	}

	gust := 1.0 + 0.25*gomath.Sin(m.elapsed*1.3) + 0.25*gomath.Sin(m.elapsed*2.3)
	return dir.Scale(speed * float32(gust))
}

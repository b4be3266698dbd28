package camera

import (
	"testing"

	"github.com/meshview/meshview/pkg/math"
)

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch = %v, want clamped to %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -20000)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch = %v, want clamped to %v", c.RotationX, c.MinPitch)
	}
}

func TestHandleZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(10)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %v, want clamped to %v", c.Distance, c.MinDistance)
	}
}

func TestPositionRespectsDistance(t *testing.T) {
	c := NewOrbitCamera()
	d := c.Position().Distance(c.Center)
	if d < c.Distance-1e-3 || d > c.Distance+1e-3 {
		t.Errorf("camera at distance %v from center, want %v", d, c.Distance)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.Vec3{X: -2, Y: 0, Z: -2}, math.Vec3{X: 2, Y: 4, Z: 2})
	if c.Center != (math.Vec3{X: 0, Y: 2, Z: 0}) {
		t.Errorf("center = %v, want bounds midpoint", c.Center)
	}
	if c.Distance <= 0 {
		t.Error("distance must stay positive")
	}
}

// Package projection maps simulation state onto 2D screen coordinates.
package projection

import "math"

// ScreenPoint is a pixel-space position derived fresh every frame.
type ScreenPoint struct {
	X, Y float64
}

// Affine projects phase space onto the x/z plane:
// X = (x + OffsetX) * ScaleX, Y = (z + OffsetY) * ScaleY.
// The y coordinate is deliberately dropped.
type Affine struct {
	OffsetX, OffsetY float64
	ScaleX, ScaleY   float64
}

func (a Affine) Project(x, _, z float64) ScreenPoint {
	return ScreenPoint{
		X: (x + a.OffsetX) * a.ScaleX,
		Y: (z + a.OffsetY) * a.ScaleY,
	}
}

// Unproject returns the phase-space point on the y = 0 plane that
// projects to p.
func (a Affine) Unproject(p ScreenPoint) (x, y, z float64) {
	return p.X/a.ScaleX - a.OffsetX, 0, p.Y/a.ScaleY - a.OffsetY
}

// Viewport is the visible pixel rectangle [0, Width) x [0, Height).
type Viewport struct {
	Width, Height int
}

// Pixel truncates p toward zero and reports whether the pixel is visible.
// Invisible points are discarded by callers, never clamped.
func (v Viewport) Pixel(p ScreenPoint) (int, int, bool) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return 0, 0, false
	}
	if p.X <= -1 || p.Y <= -1 || p.X >= float64(v.Width) || p.Y >= float64(v.Height) {
		return 0, 0, false
	}
	px, py := int(p.X), int(p.Y)
	return px, py, px >= 0 && px < v.Width && py >= 0 && py < v.Height
}

// Kinematics converts pendulum angles into bob positions around a fixed
// pivot. Angles are measured from straight down; screen y grows downward.
type Kinematics struct {
	OriginX, OriginY float64
	L1, L2           float64
}

func (k Kinematics) Origin() ScreenPoint {
	return ScreenPoint{X: k.OriginX, Y: k.OriginY}
}

// Bobs returns both bob positions. Nothing is clipped; bobs may land
// off-screen.
func (k Kinematics) Bobs(theta1, theta2 float64) (ScreenPoint, ScreenPoint) {
	b1 := ScreenPoint{
		X: k.OriginX + k.L1*math.Sin(theta1),
		Y: k.OriginY + k.L1*math.Cos(theta1),
	}
	b2 := ScreenPoint{
		X: b1.X + k.L2*math.Sin(theta2),
		Y: b1.Y + k.L2*math.Cos(theta2),
	}
	return b1, b2
}

// Package camera provides the first-person look camera. It owns only
// orientation (yaw and pitch from mouse deltas); position comes from the
// character controller every frame.
package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	defaultLookSpeed = 0.1
	pitchLimit       = 89.0
)

// LookCamera accumulates yaw and pitch in degrees.
type LookCamera struct {
	Yaw       float32
	Pitch     float32
	LookSpeed float32
	FOV       float32
}

func NewLookCamera() *LookCamera {
	return &LookCamera{
		LookSpeed: defaultLookSpeed,
		FOV:       70,
	}
}

// UpdateLook applies one frame of mouse movement and clamps pitch so the
// view never flips over the poles.
func (c *LookCamera) UpdateLook() {
	delta := rl.GetMouseDelta()
	c.Yaw += delta.X * c.LookSpeed
	c.Pitch -= delta.Y * c.LookSpeed

	if c.Pitch > pitchLimit {
		c.Pitch = pitchLimit
	}
	if c.Pitch < -pitchLimit {
		c.Pitch = -pitchLimit
	}
}

// Forward is the unit view direction from yaw and pitch.
func (c *LookCamera) Forward() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180.0
	pitchRad := float64(c.Pitch) * math.Pi / 180.0

	return rl.Vector3{
		X: float32(math.Cos(pitchRad) * math.Sin(yawRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(-math.Cos(pitchRad) * math.Cos(yawRad)),
	}
}

// Camera3D builds the raylib camera for rendering from the given eye
// position.
func (c *LookCamera) Camera3D(eye rl.Vector3) rl.Camera3D {
	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Add(eye, c.Forward()),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

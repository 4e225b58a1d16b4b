// Package player owns the authoritative motion state of the single
// first-person agent. The controller runs in two strictly ordered phases
// per frame: UpdatePrePhysics proposes and resolves motion before the
// world step, PostPhysics reconciles with whatever the step committed, so
// camera smoothing and animation-speed signals always derive from what
// actually happened rather than from intent.
package player

import (
	"math"

	"cabin3d/internal/config"
	"cabin3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// stopThreshold is the horizontal speed below which velocity snaps to
// exact zero to avoid perpetual drift.
const stopThreshold = 0.01

var worldUp = rl.Vector3{X: 0, Y: 1, Z: 0}

// defaultForward is the fallback move basis when the camera looks
// straight up or down and its horizontal projection degenerates.
var defaultForward = rl.Vector3{X: 0, Y: 0, Z: -1}

type Controller struct {
	cfg     config.Movement
	backend engine.MovementBackend

	position     rl.Vector3
	prevPosition rl.Vector3

	velocity           rl.Vector3
	horizontalVelocity rl.Vector3
	verticalVelocity   float32
	horizontalSpeed    float32

	stamina   float32
	grounded  bool
	crouching bool
}

// NewController places the agent at start with full stamina, grounded.
func NewController(cfg config.Movement, backend engine.MovementBackend, start rl.Vector3) *Controller {
	return &Controller{
		cfg:          cfg,
		backend:      backend,
		position:     start,
		prevPosition: start,
		stamina:      cfg.StaminaMax,
		grounded:     true,
	}
}

// UpdatePrePhysics integrates input into a desired displacement and
// resolves it through the movement backend. A non-finite or non-positive
// dt aborts the whole update and the previous state holds (tab-suspend
// and first-frame artifacts).
func (c *Controller) UpdatePrePhysics(dt float32, in Input, cameraForward rl.Vector3) {
	if !isFinite(dt) || dt <= 0 {
		return
	}

	c.crouching = in.Crouch
	moving := in.AnyMovement()

	// Stamina drains only while actually sprinting; everything else
	// recovers. Saturates silently at both ends.
	if in.Sprint && moving && !c.crouching {
		c.stamina -= c.cfg.SprintDrain * dt
	} else {
		c.stamina += c.cfg.SprintRecover * dt
	}
	c.stamina = clamp(c.stamina, 0, c.cfg.StaminaMax)

	dir := c.moveDirection(in, cameraForward)

	targetSpeed := c.cfg.WalkSpeed
	switch {
	case c.crouching:
		targetSpeed = c.cfg.CrouchSpeed
	case in.Sprint && moving && c.stamina > 0:
		targetSpeed = c.cfg.SprintSpeed
	}

	if moving && rl.Vector3Length(dir) > 0 {
		t := clamp(c.cfg.Acceleration*dt, 0, 1)
		target := rl.Vector3Scale(dir, targetSpeed)
		c.horizontalVelocity = rl.Vector3Lerp(c.horizontalVelocity, target, t)
	} else {
		decay := 1 - c.cfg.Deceleration*dt
		if decay < 0 {
			decay = 0
		}
		c.horizontalVelocity = rl.Vector3Scale(c.horizontalVelocity, decay)
		if rl.Vector3Length(c.horizontalVelocity) < stopThreshold {
			c.horizontalVelocity = rl.Vector3Zero()
		}
	}

	// Grounded at the start of the frame pins a small downward velocity
	// so the agent stays pressed against the floor instead of flickering
	// between air and ground.
	if c.grounded {
		c.verticalVelocity = -c.cfg.GroundStick
	} else {
		c.verticalVelocity -= c.cfg.Gravity * dt
		if c.verticalVelocity < -c.cfg.MaxFallSpeed {
			c.verticalVelocity = -c.cfg.MaxFallSpeed
		}
	}

	desired := rl.Vector3{
		X: c.horizontalVelocity.X * dt,
		Y: c.verticalVelocity * dt,
		Z: c.horizontalVelocity.Z * dt,
	}

	corrected, grounded := c.backend.ResolveDisplacement(
		c.position, desired, c.cfg.Radius,
		c.position.Y, c.position.Y+c.cfg.Height,
	)

	moved := rl.Vector3Subtract(corrected, c.position)
	c.position = corrected
	c.grounded = grounded

	if dt > 0 {
		c.horizontalSpeed = float32(math.Hypot(float64(moved.X), float64(moved.Z))) / dt
	}
}

// PostPhysics re-derives velocity from the change in authoritative
// position since the previous frame. Finite differencing captures the
// correction the resolver actually applied, not the pre-physics estimate.
func (c *Controller) PostPhysics(dt float32) {
	if !isFinite(dt) || dt <= 0 {
		return
	}

	delta := rl.Vector3Subtract(c.position, c.prevPosition)
	c.velocity = rl.Vector3Scale(delta, 1/dt)
	c.horizontalSpeed = float32(math.Hypot(float64(c.velocity.X), float64(c.velocity.Z)))

	if c.grounded {
		c.verticalVelocity = -c.cfg.GroundStick
	}

	c.prevPosition = c.position
}

// moveDirection combines the camera-relative basis with the signed input
// axes. The camera forward is projected onto the horizontal plane; a
// degenerate projection falls back to a fixed forward.
func (c *Controller) moveDirection(in Input, cameraForward rl.Vector3) rl.Vector3 {
	fwd := rl.Vector3{X: cameraForward.X, Y: 0, Z: cameraForward.Z}
	if rl.Vector3Length(fwd) < 0.0001 {
		fwd = defaultForward
	} else {
		fwd = rl.Vector3Normalize(fwd)
	}
	right := rl.Vector3CrossProduct(fwd, worldUp)

	var axisF, axisR float32
	if in.Forward {
		axisF++
	}
	if in.Backward {
		axisF--
	}
	if in.Right {
		axisR++
	}
	if in.Left {
		axisR--
	}

	dir := rl.Vector3Add(rl.Vector3Scale(fwd, axisF), rl.Vector3Scale(right, axisR))
	if rl.Vector3Length(dir) < 0.0001 {
		return rl.Vector3Zero()
	}
	return rl.Vector3Normalize(dir)
}

// Position returns the agent's feet position.
func (c *Controller) Position() rl.Vector3 {
	return c.position
}

// SetPosition teleports the agent (scene spawn points, tests).
func (c *Controller) SetPosition(pos rl.Vector3) {
	c.position = pos
	c.prevPosition = pos
}

// CameraPosition returns the eye position: feet plus eye height, reduced
// multiplicatively while crouching.
func (c *Controller) CameraPosition() rl.Vector3 {
	eye := c.cfg.EyeHeight
	if c.crouching {
		eye *= c.cfg.CrouchEyeScale
	}
	return rl.Vector3{X: c.position.X, Y: c.position.Y + eye, Z: c.position.Z}
}

// MoveSpeed returns the horizontal speed the agent actually achieved this
// frame, after collision correction.
func (c *Controller) MoveSpeed() float32 {
	return c.horizontalSpeed
}

func (c *Controller) Velocity() rl.Vector3 {
	return c.velocity
}

func (c *Controller) StaminaPercent() float32 {
	if c.cfg.StaminaMax <= 0 {
		return 0
	}
	return c.stamina / c.cfg.StaminaMax
}

func (c *Controller) Stamina() float32 {
	return c.stamina
}

func (c *Controller) IsGrounded() bool {
	return c.grounded
}

func (c *Controller) IsCrouching() bool {
	return c.crouching
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

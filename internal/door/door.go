package door

import (
	"math"

	"cabin3d/internal/config"
	"cabin3d/internal/engine"
	"cabin3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Door is one hinged object instance. Progress runs from 0 (closed) to 1
// (open); Target is the only externally settable field, via Toggle.
type Door struct {
	Name   string
	Label  string
	Locked bool
	Pivot  *engine.GameObject
	Desc   RigDescriptor

	speed         float32
	openThreshold float32

	progress float32
	target   float32

	colliderID  engine.BlockerID
	hasCollider bool
	bodyID      engine.BodyID
	hasBody     bool

	hingeWorld       rl.Vector3
	interactionWorld rl.Vector3
}

func (d *Door) OpenProgress() float32 { return d.progress }

// IsOpen reports whether the door has swung past the blocking threshold.
func (d *Door) IsOpen() bool { return d.progress > d.openThreshold }

// IsBlocking is the collider-presence predicate: a collider exists iff
// the door is still in the blocking range.
func (d *Door) IsBlocking() bool { return d.progress < d.openThreshold }

func (d *Door) HasCollider() bool { return d.hasCollider }

// HingeWorld is the pivot's world position, recomputed each frame since
// parent transforms may have changed.
func (d *Door) HingeWorld() rl.Vector3 { return d.hingeWorld }

// InteractionPoint is the stable world-space point prompts anchor to.
func (d *Door) InteractionPoint() rl.Vector3 { return d.interactionWorld }

// PromptLabel is the text the interaction prompt shows for this door.
func (d *Door) PromptLabel() string {
	if d.Locked {
		return "Locked"
	}
	if d.target > 0.5 {
		return "Close " + d.Label
	}
	return "Open " + d.Label
}

// worldBounds computes the door slab's current world-axis-aligned bounds
// through the live pivot. Recomputed fresh every time: the axis-aligned
// bounds of a rotating box change shape, not just position.
func (d *Door) worldBounds() (rl.Vector3, rl.Vector3) {
	center := d.Pivot.TransformPoint(rl.Vector3Scale(
		rl.Vector3Add(d.Desc.BoxMinLocal, d.Desc.BoxMaxLocal), 0.5))
	slab := physics.NewOBB(center, d.Desc.Size, d.Pivot.WorldOrientation())
	box := physics.NewAABBFromPoints(slab.Corners()...)
	return box.Min, box.Max
}

// System owns every door rig. It is an explicit value constructed with
// its dependencies; registration before construction is the owning scene
// assembly's problem, not this package's.
type System struct {
	OnToggled engine.EventWithArg[*Door]

	log     *zap.Logger
	cfg     config.Door
	backend engine.MovementBackend
	sink    engine.KinematicSink // non-nil only for the physics backend
	doors   []*Door
}

func NewSystem(cfg config.Door, backend engine.MovementBackend, log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	sink, _ := backend.(engine.KinematicSink)
	return &System{
		log:     log,
		cfg:     cfg,
		backend: backend,
		sink:    sink,
	}
}

// Options tweak one registered door.
type Options struct {
	Name      string
	Label     string
	Locked    bool
	StartOpen bool
	Speed     float32 // 0 means the configured default
}

// Register attaches a derived rig to a live pivot node and starts
// tracking it. The caller has already applied the descriptor to the scene
// graph (pivot created, mesh re-parented).
func (s *System) Register(pivot *engine.GameObject, desc RigDescriptor, opts Options) *Door {
	speed := opts.Speed
	if speed <= 0 {
		speed = s.cfg.Speed
	}
	label := opts.Label
	if label == "" {
		label = "door"
	}

	d := &Door{
		Name:          opts.Name,
		Label:         label,
		Locked:        opts.Locked,
		Pivot:         pivot,
		Desc:          desc,
		speed:         speed,
		openThreshold: s.cfg.OpenThreshold,
	}
	if opts.StartOpen {
		d.progress = 1
		d.target = 1
		pivot.SetWorldOrientation(desc.OpenOrientation)
	} else {
		pivot.SetWorldOrientation(desc.ClosedOrientation)
	}

	d.hingeWorld = pivot.WorldPosition()
	d.interactionWorld = pivot.TransformPoint(desc.InteractionOffset)

	if s.sink != nil {
		center := pivot.TransformPoint(rl.Vector3Scale(
			rl.Vector3Add(desc.BoxMinLocal, desc.BoxMaxLocal), 0.5))
		d.bodyID = s.sink.CreateKinematicBody(desc.Size, center, pivot.WorldOrientation())
		d.hasBody = true
	} else {
		s.syncCollider(d)
	}

	s.doors = append(s.doors, d)
	s.log.Info("door registered",
		zap.String("name", d.Name),
		zap.Bool("locked", d.Locked),
		zap.Bool("open", opts.StartOpen))
	return d
}

// Toggle flips the door's target to the far side of wherever progress
// currently sits. Locked doors reject the change.
func (s *System) Toggle(d *Door) bool {
	if d.Locked {
		return false
	}
	d.target = 1 - float32(math.Round(float64(d.progress)))
	s.OnToggled.Invoke(d)
	return true
}

// Update advances every door. Must run after the character controller's
// resolution for the frame: doors mutate the blocking set the controller
// reads, and a frame-stale door state would collide the player wrongly.
func (s *System) Update(dt float32) {
	if dt <= 0 {
		return
	}
	for _, d := range s.doors {
		s.updateDoor(d, dt)
	}
}

func (s *System) updateDoor(d *Door, dt float32) {
	prev := d.progress
	if d.progress < d.target {
		d.progress += d.speed * dt
		if d.progress > d.target {
			d.progress = d.target
		}
	} else if d.progress > d.target {
		d.progress -= d.speed * dt
		if d.progress < d.target {
			d.progress = d.target
		}
	}

	current := rl.QuaternionSlerp(d.Desc.ClosedOrientation, d.Desc.OpenOrientation, d.progress)
	d.Pivot.SetWorldOrientation(current)

	d.hingeWorld = d.Pivot.WorldPosition()
	d.interactionWorld = d.Pivot.TransformPoint(d.Desc.InteractionOffset)

	if s.sink != nil && d.hasBody {
		center := d.Pivot.TransformPoint(rl.Vector3Scale(
			rl.Vector3Add(d.Desc.BoxMinLocal, d.Desc.BoxMaxLocal), 0.5))
		s.sink.SetNextKinematicPose(d.bodyID, center, d.Pivot.WorldOrientation())
		return
	}

	if d.progress != prev || (d.IsBlocking() && !d.hasCollider) {
		s.syncCollider(d)
	}
}

// syncCollider enforces the blocking invariant on the lightweight
// backend: a collider exists iff progress is under the open threshold.
// The collider is swapped, never resized; rebuilding the world-aligned
// bounds of a rotated slab is the only correct "resize".
func (s *System) syncCollider(d *Door) {
	if d.IsBlocking() {
		if d.hasCollider {
			s.backend.RemoveBlocker(d.colliderID)
		}
		lo, hi := d.worldBounds()
		d.colliderID = s.backend.AddBlockerBox(lo, hi)
		d.hasCollider = true
		return
	}
	if d.hasCollider {
		s.backend.RemoveBlocker(d.colliderID)
		d.hasCollider = false
	}
}

// ForEach visits every registered door.
func (s *System) ForEach(fn func(*Door)) {
	for _, d := range s.doors {
		fn(d)
	}
}

func (s *System) Count() int {
	return len(s.doors)
}

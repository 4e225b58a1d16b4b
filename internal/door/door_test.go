package door

import (
	"testing"

	"cabin3d/internal/collide"
	"cabin3d/internal/config"
	"cabin3d/internal/engine"
	"cabin3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// riggedPivot builds a real scene-graph pivot for a standard slab at the
// given world pose, the same way the scene assembly does it.
func riggedPivot(t *testing.T, worldPos rl.Vector3) (*engine.GameObject, RigDescriptor) {
	t.Helper()

	orient := rl.QuaternionFromAxisAngle(rl.Vector3{X: 0, Y: 1, Z: 0}, 110*rl.Deg2rad)
	scene := engine.NewScene("test")
	mesh := engine.NewGameObject("door")
	mesh.Transform.Position = worldPos
	mesh.Transform.Orientation = orient
	scene.AddGameObject(mesh)

	desc, err := DeriveHingeRig(slabBox(), worldPos, orient, RigConfig{
		OpenAngle: 110 * rl.Deg2rad, OpenDirection: 1, Hinge: HingeMinX,
	})
	if err != nil {
		t.Fatal(err)
	}

	pivot := engine.NewGameObject("door pivot")
	pivot.Transform.Position = desc.PivotPosition
	pivot.Transform.Orientation = desc.OpenOrientation
	scene.AddGameObject(pivot)
	scene.Reparent(mesh, pivot)
	mesh.Transform.Position = desc.MeshLocalOffset

	return pivot, desc
}

func TestColliderPresenceTracksBlocking(t *testing.T) {
	reg := collide.NewRegistry()
	sys := NewSystem(config.Default().Door, reg, nil)
	pivot, desc := riggedPivot(t, rl.Vector3{})

	d := sys.Register(pivot, desc, Options{Name: "front"})

	if !d.IsBlocking() || !d.HasCollider() {
		t.Fatal("closed door must block and carry a collider")
	}
	if reg.Count() != 1 {
		t.Fatalf("backend obstacle count = %d, want 1", reg.Count())
	}

	if !sys.Toggle(d) {
		t.Fatal("Toggle on unlocked door returned false")
	}

	// Full open, then close again, checking the invariant every step.
	const dt = float32(1.0 / 60.0)
	for i := 0; i < 120; i++ {
		sys.Update(dt)
		if d.HasCollider() != d.IsBlocking() {
			t.Fatalf("step %d: hasCollider=%v blocking=%v progress=%v",
				i, d.HasCollider(), d.IsBlocking(), d.OpenProgress())
		}
	}
	if d.OpenProgress() != 1 {
		t.Fatalf("progress after full swing = %v, want 1", d.OpenProgress())
	}
	if reg.Count() != 0 {
		t.Errorf("open door left %d obstacles behind", reg.Count())
	}

	sys.Toggle(d)
	for i := 0; i < 120; i++ {
		sys.Update(dt)
		if d.HasCollider() != d.IsBlocking() {
			t.Fatalf("closing step %d: hasCollider=%v blocking=%v",
				i, d.HasCollider(), d.IsBlocking())
		}
	}
	if reg.Count() != 1 {
		t.Errorf("closed door obstacle count = %d, want 1", reg.Count())
	}
}

func TestProgressMonotonicAndClamped(t *testing.T) {
	reg := collide.NewRegistry()
	sys := NewSystem(config.Default().Door, reg, nil)
	pivot, desc := riggedPivot(t, rl.Vector3{})
	d := sys.Register(pivot, desc, Options{})

	sys.Toggle(d)
	prev := d.OpenProgress()
	for i := 0; i < 300; i++ {
		sys.Update(1.0 / 60.0)
		p := d.OpenProgress()
		if p < prev {
			t.Fatalf("progress regressed %v -> %v while opening", prev, p)
		}
		if p < 0 || p > 1 {
			t.Fatalf("progress out of range: %v", p)
		}
		prev = p
	}
}

func TestToggleMidSwingReverses(t *testing.T) {
	reg := collide.NewRegistry()
	sys := NewSystem(config.Default().Door, reg, nil)
	pivot, desc := riggedPivot(t, rl.Vector3{})
	d := sys.Register(pivot, desc, Options{})

	sys.Toggle(d)
	// Advance past the rounding midpoint, then toggle again.
	for d.OpenProgress() < 0.6 {
		sys.Update(1.0 / 60.0)
	}
	sys.Toggle(d)

	at := d.OpenProgress()
	sys.Update(1.0 / 60.0)
	if d.OpenProgress() >= at {
		t.Errorf("toggle past midpoint should reverse: %v -> %v", at, d.OpenProgress())
	}
}

func TestToggleBeforeMidpointKeepsOpening(t *testing.T) {
	reg := collide.NewRegistry()
	sys := NewSystem(config.Default().Door, reg, nil)
	pivot, desc := riggedPivot(t, rl.Vector3{})
	d := sys.Register(pivot, desc, Options{})

	sys.Toggle(d)
	for d.OpenProgress() < 0.3 {
		sys.Update(1.0 / 60.0)
	}
	// Progress rounds down to 0, so the target stays fully open.
	sys.Toggle(d)

	at := d.OpenProgress()
	sys.Update(1.0 / 60.0)
	if d.OpenProgress() <= at {
		t.Errorf("toggle before midpoint should keep opening: %v -> %v", at, d.OpenProgress())
	}
}

func TestLockedDoorRejectsToggle(t *testing.T) {
	reg := collide.NewRegistry()
	sys := NewSystem(config.Default().Door, reg, nil)
	pivot, desc := riggedPivot(t, rl.Vector3{})
	d := sys.Register(pivot, desc, Options{Locked: true})

	fired := false
	sys.OnToggled.AddListener(func(*Door) { fired = true })

	if sys.Toggle(d) {
		t.Error("Toggle on locked door returned true")
	}
	sys.Update(1.0 / 60.0)
	if d.OpenProgress() != 0 {
		t.Errorf("locked door moved to %v", d.OpenProgress())
	}
	if fired {
		t.Error("locked toggle fired OnToggled")
	}
	if got := d.PromptLabel(); got != "Locked" {
		t.Errorf("PromptLabel = %q, want Locked", got)
	}
}

func TestToggledEventFires(t *testing.T) {
	reg := collide.NewRegistry()
	sys := NewSystem(config.Default().Door, reg, nil)
	pivot, desc := riggedPivot(t, rl.Vector3{})
	d := sys.Register(pivot, desc, Options{Label: "shed door"})

	var got *Door
	sys.OnToggled.AddListener(func(x *Door) { got = x })
	sys.Toggle(d)
	if got != d {
		t.Error("OnToggled did not deliver the toggled door")
	}
}

func TestStartOpen(t *testing.T) {
	reg := collide.NewRegistry()
	sys := NewSystem(config.Default().Door, reg, nil)
	pivot, desc := riggedPivot(t, rl.Vector3{})
	d := sys.Register(pivot, desc, Options{Label: "back door", StartOpen: true})

	if d.OpenProgress() != 1 || !d.IsOpen() {
		t.Fatalf("StartOpen progress = %v", d.OpenProgress())
	}
	if d.HasCollider() {
		t.Error("open door registered a collider")
	}
	if got := d.PromptLabel(); got != "Close back door" {
		t.Errorf("PromptLabel = %q", got)
	}
}

// TestRegistryColliderMatchesSlabPose walks an agent at the doorway on
// the lightweight backend: the closed slab's rebuilt world bounds block,
// and a fully opened door frees the same path.
func TestRegistryColliderMatchesSlabPose(t *testing.T) {
	reg := collide.NewRegistry()
	sys := NewSystem(config.Default().Door, reg, nil)
	pivot, desc := riggedPivot(t, rl.Vector3{X: -0.55, Y: 0, Z: 0})
	d := sys.Register(pivot, desc, Options{})

	march := func() float32 {
		pos := rl.Vector3{X: 0, Y: 0, Z: 2}
		for i := 0; i < 120; i++ {
			pos = reg.ResolveHorizontal(pos, rl.Vector3{Z: -0.05}, 0.35, 0, 1.8)
		}
		return pos.Z
	}

	// Closed: the slab spans the walker's path at z = 0.
	if z := march(); z < 0.3 {
		t.Errorf("closed door collider did not block: final z = %v", z)
	}

	sys.Toggle(d)
	for i := 0; i < 120; i++ {
		sys.Update(1.0 / 60.0)
	}
	if z := march(); z > -2 {
		t.Errorf("open door still blocks: final z = %v", z)
	}
}

// TestKinematicBodySwingsAside runs the door on the kinematic backend: a
// closed slab across a doorway blocks a walker, and the swung-open slab
// lets the same walk through.
func TestKinematicBodySwingsAside(t *testing.T) {
	walk := func(startOpen bool) float32 {
		world := physics.NewWorld()
		sys := NewSystem(config.Default().Door, world, nil)
		pivot, desc := riggedPivot(t, rl.Vector3{X: -0.55, Y: 0, Z: 0})
		sys.Register(pivot, desc, Options{StartOpen: startOpen})

		// March a character box straight at the doorway from +Z.
		pos := rl.Vector3{X: 0, Y: 0, Z: 2}
		for i := 0; i < 120; i++ {
			world.Step(1.0 / 60.0)
			pos, _ = world.ResolveDisplacement(pos, rl.Vector3{Z: -0.05}, 0.35, pos.Y, pos.Y+1.8)
		}
		return pos.Z
	}

	blockedZ := walk(false)
	if blockedZ < 0.3 {
		t.Errorf("closed slab did not block: final z = %v", blockedZ)
	}

	openZ := walk(true)
	if openZ > -2 {
		t.Errorf("open slab still blocks: final z = %v", openZ)
	}
}

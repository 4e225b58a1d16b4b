package collide

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const agentRadius = 0.35

func dist2(a rl.Vector3, x, z float32) float32 {
	dx := a.X - x
	dz := a.Z - z
	return float32(math.Sqrt(float64(dx*dx + dz*dz)))
}

func TestBoxPushOut(t *testing.T) {
	r := NewRegistry()
	r.AddBox(rl.Vector2{X: -1, Y: -1}, rl.Vector2{X: 1, Y: 1}, 0, 2)

	// Try to move straight into the box from the +Z side.
	pos := rl.Vector3{X: 0, Y: 0, Z: 2}
	for i := 0; i < 50; i++ {
		pos = r.ResolveHorizontal(pos, rl.Vector3{Z: -0.2}, agentRadius, 0, 1.8)
	}

	if pos.Z < 1+agentRadius-0.001 {
		t.Errorf("agent penetrated box face: z = %v, want >= %v", pos.Z, 1+agentRadius)
	}
	if pos.X != 0 {
		t.Errorf("head-on approach should not drift sideways, x = %v", pos.X)
	}
}

func TestCirclePushOut(t *testing.T) {
	r := NewRegistry()
	r.AddCircle(rl.Vector2{X: 0, Y: 0}, 0.85, 0, 3)

	pos := rl.Vector3{X: 0.1, Y: 0, Z: 3}
	for i := 0; i < 60; i++ {
		pos = r.ResolveHorizontal(pos, rl.Vector3{Z: -0.1}, agentRadius, 0, 1.8)
	}

	want := float32(0.85 + agentRadius)
	if got := dist2(pos, 0, 0); got < want-0.001 {
		t.Errorf("agent inside column: distance = %v, want >= %v", got, want)
	}
}

func TestResolveIsFixedPoint(t *testing.T) {
	r := NewRegistry()
	r.AddBox(rl.Vector2{X: -1, Y: -1}, rl.Vector2{X: 1, Y: 1}, 0, 2)
	r.AddCircle(rl.Vector2{X: 3, Y: 0}, 0.5, 0, 2)

	pos := rl.Vector3{X: 0, Y: 0, Z: 0.9} // overlapping the box
	pos = r.ResolveHorizontal(pos, rl.Vector3{}, agentRadius, 0, 1.8)

	again := r.ResolveHorizontal(pos, rl.Vector3{}, agentRadius, 0, 1.8)
	if d := dist2(again, pos.X, pos.Z); d > 0.001 {
		t.Errorf("resolved position moved again by %v, want stable", d)
	}
}

func TestVerticalBandFilter(t *testing.T) {
	r := NewRegistry()
	// Overhead beam well above the agent plus step slack.
	r.AddBox(rl.Vector2{X: -5, Y: -5}, rl.Vector2{X: 5, Y: 5}, 3.0, 4.0)
	// Buried obstacle entirely below the feet.
	r.AddBox(rl.Vector2{X: -5, Y: -5}, rl.Vector2{X: 5, Y: 5}, -2.0, -0.5)

	pos := r.ResolveHorizontal(rl.Vector3{}, rl.Vector3{X: 0.5}, agentRadius, 0, 1.8)
	if pos.X != 0.5 || pos.Z != 0 {
		t.Errorf("out-of-band obstacles affected motion: got %+v", pos)
	}
}

func TestStepSlackIncludesLowLip(t *testing.T) {
	r := NewRegistry()
	// A sill whose bottom starts just above the agent's head would be
	// skipped without the slack band; here it starts inside the band.
	r.AddBox(rl.Vector2{X: -1, Y: -1}, rl.Vector2{X: 1, Y: 1}, 2.0, 2.5)

	pos := r.ResolveHorizontal(rl.Vector3{Z: 1.25}, rl.Vector3{Z: -0.2}, agentRadius, 0, 1.8)
	if pos.Z < 1+agentRadius-0.001 {
		t.Errorf("lip inside slack band should block, z = %v", pos.Z)
	}
}

func TestDegenerateShapesIgnored(t *testing.T) {
	r := NewRegistry()
	r.AddBox(rl.Vector2{X: 1, Y: 1}, rl.Vector2{X: 1, Y: 1}, 0, 2) // empty box
	r.AddCircle(rl.Vector2{X: 0, Y: 0}, 0, 0, 2)                   // zero radius

	start := rl.Vector3{X: 1, Y: 0, Z: 1}
	pos := r.ResolveHorizontal(start, rl.Vector3{}, agentRadius, 0, 1.8)
	if pos != start {
		t.Errorf("degenerate shapes moved the agent: %+v -> %+v", start, pos)
	}
}

func TestCoincidentCircleCenterNudges(t *testing.T) {
	r := NewRegistry()
	r.AddCircle(rl.Vector2{X: 0, Y: 0}, 0.5, 0, 2)

	pos := r.ResolveHorizontal(rl.Vector3{}, rl.Vector3{}, agentRadius, 0, 1.8)
	if pos.X == 0 && pos.Z == 0 {
		t.Error("agent stuck exactly at circle center, expected a nudge out")
	}
}

func circleOverlapsBox(pos rl.Vector3, radius float32, min, max rl.Vector2) bool {
	cx := pos.X
	if cx < min.X {
		cx = min.X
	} else if cx > max.X {
		cx = max.X
	}
	cz := pos.Z
	if cz < min.Y {
		cz = min.Y
	} else if cz > max.Y {
		cz = max.Y
	}
	dx := pos.X - cx
	dz := pos.Z - cz
	return dx*dx+dz*dz < radius*radius-0.0001
}

func TestCornerTwoPass(t *testing.T) {
	r := NewRegistry()
	// Inside corner formed by two perpendicular walls.
	wallA := [2]rl.Vector2{{X: -3, Y: -0.2}, {X: 0, Y: 0}}
	wallB := [2]rl.Vector2{{X: -0.2, Y: -3}, {X: 0, Y: 0}}
	r.AddBox(wallA[0], wallA[1], 0, 2)
	r.AddBox(wallB[0], wallB[1], 0, 2)

	// Push diagonally into the corner.
	pos := rl.Vector3{X: -1.5, Y: 0, Z: 0.5}
	for i := 0; i < 40; i++ {
		pos = r.ResolveHorizontal(pos, rl.Vector3{X: 0.1, Z: -0.1}, agentRadius, 0, 1.8)
		if circleOverlapsBox(pos, agentRadius, wallA[0], wallA[1]) {
			t.Fatalf("step %d: agent inside wall A at %+v", i, pos)
		}
		if circleOverlapsBox(pos, agentRadius, wallB[0], wallB[1]) {
			t.Fatalf("step %d: agent inside wall B at %+v", i, pos)
		}
	}
}

func TestRemoveOpensPassage(t *testing.T) {
	r := NewRegistry()
	id := r.AddBox(rl.Vector2{X: -1, Y: -1}, rl.Vector2{X: 1, Y: 1}, 0, 2)
	if r.Count() != 1 {
		t.Fatalf("Count = %d, want 1", r.Count())
	}

	blocked := r.ResolveHorizontal(rl.Vector3{Z: 1.5}, rl.Vector3{Z: -1.5}, agentRadius, 0, 1.8)
	if blocked.Z < 1 {
		t.Fatalf("expected box to block, z = %v", blocked.Z)
	}

	r.Remove(id)
	r.Remove(id) // second remove of the same id is a no-op
	if r.Count() != 0 {
		t.Fatalf("Count after remove = %d, want 0", r.Count())
	}

	free := r.ResolveHorizontal(rl.Vector3{Z: 1.5}, rl.Vector3{Z: -1.5}, agentRadius, 0, 1.8)
	if free.Z != 0 {
		t.Errorf("removed box still blocks, z = %v", free.Z)
	}
}

func TestYPassesThrough(t *testing.T) {
	r := NewRegistry()
	r.AddBox(rl.Vector2{X: -1, Y: -1}, rl.Vector2{X: 1, Y: 1}, 0, 2)

	pos := r.ResolveHorizontal(rl.Vector3{X: 5, Y: 1.25, Z: 5}, rl.Vector3{X: 0.1}, agentRadius, 1.25, 3.05)
	if pos.Y != 1.25 {
		t.Errorf("solver modified Y: got %v, want 1.25", pos.Y)
	}
}

func TestCircleApproachStopsAtCombinedRadius(t *testing.T) {
	r := NewRegistry()
	r.AddCircle(rl.Vector2{X: 0, Y: 2}, 1.0, 0, 2)

	// A 0.2 radius agent walking +Z at the column must never get closer
	// than 1.2 to its center, i.e. never past z = 0.8.
	pos := rl.Vector3{X: 0, Y: 0, Z: -1}
	for i := 0; i < 100; i++ {
		pos = r.ResolveHorizontal(pos, rl.Vector3{Z: 0.05}, 0.2, 0, 1.8)
		if pos.Z > 0.8001 {
			t.Fatalf("step %d: agent at z = %v, past the contact line", i, pos.Z)
		}
	}

	if got := dist2(pos, 0, 2); got < 1.199 || got > 1.25 {
		t.Errorf("final distance to center = %v, want about 1.2", got)
	}
}

func TestDenseClusterNoPenetration(t *testing.T) {
	r := NewRegistry()
	// Overlapping pile of boxes and circles around the origin.
	offsets := []float32{-0.8, -0.3, 0.2, 0.7}
	for _, ox := range offsets {
		for _, oz := range offsets {
			r.AddBox(
				rl.Vector2{X: ox - 0.5, Y: oz - 0.5},
				rl.Vector2{X: ox + 0.5, Y: oz + 0.5}, 0, 2)
			r.AddCircle(rl.Vector2{X: ox, Y: oz}, 0.4, 0, 2)
		}
	}

	pos := rl.Vector3{X: 4, Y: 0, Z: 4}
	for i := 0; i < 200; i++ {
		pos = r.ResolveHorizontal(pos, rl.Vector3{X: -0.15, Z: -0.15}, agentRadius, 0, 1.8)
	}

	// The cluster spans roughly [-1.3, 1.2] on both axes; the agent must
	// end outside it by its radius.
	settled := r.ResolveHorizontal(pos, rl.Vector3{}, agentRadius, 0, 1.8)
	if d := dist2(settled, pos.X, pos.Z); d > 0.02 {
		t.Errorf("dense cluster left residual penetration of %v", d)
	}
}

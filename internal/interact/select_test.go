package interact

import (
	"testing"

	"cabin3d/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var lookNorth = rl.Vector3{X: 0, Y: 0, Z: -1}

func cand(kind Kind, x, y, z float32) Candidate {
	return Candidate{Kind: kind, WorldPoint: rl.Vector3{X: x, Y: y, Z: z}}
}

func TestSelectEmpty(t *testing.T) {
	if _, ok := SelectBest(rl.Vector3{}, lookNorth, nil, config.Default().Interact); ok {
		t.Error("empty candidate list selected something")
	}
}

func TestSelectRejectsOutOfRange(t *testing.T) {
	cfg := config.Default().Interact // max distance 3
	cands := []Candidate{
		cand(KindDoor, 0, 0, -5),
		cand(KindDoor, 0, 0, 0), // coincident with the player
	}
	if _, ok := SelectBest(rl.Vector3{}, lookNorth, cands, cfg); ok {
		t.Error("selected a candidate outside range or at zero distance")
	}
}

func TestSelectRejectsBehind(t *testing.T) {
	cfg := config.Default().Interact
	cands := []Candidate{cand(KindDoor, 0, 0, 2)} // behind a north-facing player
	if _, ok := SelectBest(rl.Vector3{}, lookNorth, cands, cfg); ok {
		t.Error("selected a candidate behind the camera")
	}
}

func TestNearestWinsAmongAligned(t *testing.T) {
	cfg := config.Default().Interact
	cands := []Candidate{
		cand(KindChop, 0, 0, -2.5),
		cand(KindChop, 0, 0, -1.0),
		cand(KindChop, 0, 0, -2.0),
	}
	idx, ok := SelectBest(rl.Vector3{}, lookNorth, cands, cfg)
	if !ok || idx != 1 {
		t.Errorf("best = %d ok=%v, want index 1", idx, ok)
	}
}

func TestFacingBreaksDistanceTie(t *testing.T) {
	cfg := config.Default().Interact
	// Equal distance; one dead ahead, one at the edge of the cone.
	aligned := cand(KindChop, 0, 0, -2)
	offAxis := cand(KindChop, 1.2, 0, -1.6)
	idx, ok := SelectBest(rl.Vector3{}, lookNorth, []Candidate{offAxis, aligned}, cfg)
	if !ok || idx != 1 {
		t.Errorf("best = %d ok=%v, want the aligned candidate", idx, ok)
	}
}

// TestHorizontalConeRescuesSteepLook pitches the camera sharply down at a
// close candidate: the 3D cone fails but the horizontal cone keeps it.
func TestHorizontalConeRescuesSteepLook(t *testing.T) {
	cfg := config.Default().Interact

	// Candidate 1.2 m ahead at eye height; camera pitched 50 degrees down.
	down := rl.Vector3Normalize(rl.Vector3{X: 0, Y: -1.19, Z: -1})
	cands := []Candidate{cand(KindDoor, 0, 1.6, -1.2)}

	player := rl.Vector3{X: 0, Y: 1.6, Z: 0}
	if _, ok := SelectBest(player, down, cands, cfg); !ok {
		t.Error("steep look lost a close candidate the horizontal cone should keep")
	}

	// With the horizontal cone disabled the same look must fail.
	strict := cfg
	strict.FacingHorizontal = 1.01
	if _, ok := SelectBest(player, down, cands, strict); ok {
		t.Error("candidate passed the strict 3D cone unexpectedly")
	}
}

func TestEligibleMatchesSelectionGates(t *testing.T) {
	cfg := config.Default().Interact
	player := rl.Vector3{}

	near := cand(KindDoor, 0, 0, -2)
	if !Eligible(player, lookNorth, near, cfg) {
		t.Error("in-range faced candidate reported ineligible")
	}

	far := cand(KindDoor, 0, 0, -6.5)
	if Eligible(player, lookNorth, far, cfg) {
		t.Error("candidate beyond max distance reported eligible")
	}

	behind := cand(KindDoor, 0, 0, 2)
	if Eligible(player, lookNorth, behind, cfg) {
		t.Error("candidate behind the camera reported eligible")
	}

	// Eligible and SelectBest must agree: a lone candidate is selected
	// exactly when it is eligible.
	for _, c := range []Candidate{near, far, behind} {
		_, selected := SelectBest(player, lookNorth, []Candidate{c}, cfg)
		if selected != Eligible(player, lookNorth, c, cfg) {
			t.Errorf("SelectBest and Eligible disagree for %+v", c.WorldPoint)
		}
	}
}

func TestPromptArbitration(t *testing.T) {
	p := NewPromptArbiter()

	if !p.Show(KindChop, "Chop tree 1") {
		t.Fatal("free slot refused a prompt")
	}
	if p.Show(KindGeneric, "Inspect") {
		t.Error("lower priority stole the slot")
	}
	if _, text, held := p.Active(); !held || text != "Chop tree 1" {
		t.Errorf("active = %q held=%v", text, held)
	}

	// Equal priority replaces (latest equal claim wins).
	if !p.Show(KindFirepit, "Light firepit") {
		t.Error("equal priority could not take the slot")
	}
	// Higher priority always wins.
	if !p.Show(KindDoor, "Open front door") {
		t.Error("door could not take the slot from firepit")
	}

	// Only the owner can hide.
	p.Hide(KindChop)
	if _, _, held := p.Active(); !held {
		t.Error("non-owner Hide cleared the slot")
	}
	p.Hide(KindDoor)
	if _, _, held := p.Active(); held {
		t.Error("owner Hide did not clear the slot")
	}
}

func TestSameOwnerUpdatesText(t *testing.T) {
	p := NewPromptArbiter()
	p.Show(KindDoor, "Open front door")
	if !p.Show(KindDoor, "Close front door") {
		t.Fatal("same owner refused a text update")
	}
	if _, text, _ := p.Active(); text != "Close front door" {
		t.Errorf("text = %q, want updated label", text)
	}
}

func TestPriorityOrdering(t *testing.T) {
	order := []Kind{KindGeneric, KindChop, KindBoarding, KindDoor}
	for i := 1; i < len(order); i++ {
		if priority(order[i]) <= priority(order[i-1]) {
			t.Errorf("priority(%v) = %d not above priority(%v) = %d",
				order[i], priority(order[i]), order[i-1], priority(order[i-1]))
		}
	}
	if priority(KindFirepit) != priority(KindChop) {
		t.Error("firepit and chop should share a priority tier")
	}
}

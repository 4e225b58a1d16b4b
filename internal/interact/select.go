// Package interact implements best-candidate target acquisition and the
// single-slot interaction prompt with owner-priority arbitration. Every
// "look at and press E" feature (doors, boarding, tree chopping) funnels
// through here so only one prompt ever shows, and the right one wins.
package interact

import (
	"cabin3d/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind tags a candidate with the feature that produced it. It doubles as
// the prompt owner for arbitration.
type Kind int

const (
	KindGeneric Kind = iota
	KindChop
	KindFirepit
	KindBoarding
	KindDoor
)

// priority ranks prompt owners; higher wins the slot. A tree three meters
// behind the door you are facing must not steal the door's prompt.
func priority(k Kind) int {
	switch k {
	case KindDoor:
		return 4
	case KindBoarding:
		return 3
	case KindFirepit, KindChop:
		return 2
	default:
		return 1
	}
}

// Candidate is a transient per-frame value produced by a feature registry
// and scored here. Data carries the feature's own handle back out.
type Candidate struct {
	Kind       Kind
	WorldPoint rl.Vector3
	Label      string
	Data       any
}

// facingBasis normalizes the camera forward and its horizontal
// projection once per query.
func facingBasis(cameraForward rl.Vector3) (fwd3, fwdH rl.Vector3) {
	fwd3 = rl.Vector3Normalize(cameraForward)
	fwdH = rl.Vector3{X: cameraForward.X, Y: 0, Z: cameraForward.Z}
	if rl.Vector3Length(fwdH) > 0.0001 {
		fwdH = rl.Vector3Normalize(fwdH)
	}
	return fwd3, fwdH
}

// gate applies the range and facing filters to one candidate and returns
// its facing scores when it survives.
//
// Two facing thresholds apply: a strict full-3D cone and a looser
// horizontal-only cone. Passing either keeps the candidate, so looking
// slightly up or down at a door at close range does not lose the target.
func gate(playerPos, fwd3, fwdH rl.Vector3, c Candidate, cfg config.Interact) (distSq, facing3, facingH float32, ok bool) {
	to := rl.Vector3Subtract(c.WorldPoint, playerPos)
	distSq = rl.Vector3DotProduct(to, to)
	if distSq > cfg.MaxDistance*cfg.MaxDistance || distSq < 0.000001 {
		return 0, 0, 0, false
	}

	dir3 := rl.Vector3Normalize(to)
	facing3 = rl.Vector3DotProduct(dir3, fwd3)

	toH := rl.Vector3{X: to.X, Y: 0, Z: to.Z}
	facingH = -1
	if rl.Vector3Length(toH) > 0.0001 {
		facingH = rl.Vector3DotProduct(rl.Vector3Normalize(toH), fwdH)
	}

	if facing3 < cfg.FacingThreshold && facingH < cfg.FacingHorizontal {
		return 0, 0, 0, false
	}
	return distSq, facing3, facingH, true
}

// Eligible reports whether one candidate passes the range and facing
// filters, with no scoring against the rest of the frame's candidates.
// Prompt owners use it to decide whether they still have a live target.
func Eligible(playerPos, cameraForward rl.Vector3, c Candidate, cfg config.Interact) bool {
	fwd3, fwdH := facingBasis(cameraForward)
	_, _, _, ok := gate(playerPos, fwd3, fwdH, c, cfg)
	return ok
}

// SelectBest scores candidates by proximity and facing alignment and
// returns the index of the single best one, or false when none qualify.
// Among survivors the score distanceSq - w1*facingHoriz - w2*facing3D is
// minimized; the facing bonus breaks distance ties in favor of what the
// camera is actually pointed at.
func SelectBest(playerPos, cameraForward rl.Vector3, candidates []Candidate, cfg config.Interact) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}

	fwd3, fwdH := facingBasis(cameraForward)
	bestIdx := -1
	var bestScore float32

	for i, c := range candidates {
		distSq, facing3, facingH, ok := gate(playerPos, fwd3, fwdH, c, cfg)
		if !ok {
			continue
		}

		score := distSq - cfg.WeightHorizontal*facingH - cfg.Weight3D*facing3
		if bestIdx < 0 || score < bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	if bestIdx < 0 {
		return 0, false
	}
	return bestIdx, true
}

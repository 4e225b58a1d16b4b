package player

// Input is the per-frame input snapshot the controller consumes. The core
// never mutates it; whoever samples the keyboard builds a fresh one each
// tick.
type Input struct {
	Forward         bool
	Backward        bool
	Left            bool
	Right           bool
	Sprint          bool
	Crouch          bool
	InteractPressed bool
}

// AnyMovement reports whether any movement key is held.
func (in Input) AnyMovement() bool {
	return in.Forward || in.Backward || in.Left || in.Right
}

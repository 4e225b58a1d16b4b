package interact

// PromptArbiter owns the single on-screen interaction prompt. At most one
// owner holds the slot; a lower-priority Show against a held slot is a
// no-op, and only the holder's Hide clears it.
type PromptArbiter struct {
	held  bool
	owner Kind
	text  string
}

func NewPromptArbiter() *PromptArbiter {
	return &PromptArbiter{}
}

// Show claims the prompt slot for owner. Succeeds when the slot is free,
// already held by the same owner, or held by a lower-or-equal priority
// owner. Returns whether the prompt was taken.
func (p *PromptArbiter) Show(owner Kind, text string) bool {
	if p.held && owner != p.owner && priority(owner) < priority(p.owner) {
		return false
	}
	p.held = true
	p.owner = owner
	p.text = text
	return true
}

// Hide clears the prompt only when called by the owning feature.
func (p *PromptArbiter) Hide(owner Kind) {
	if p.held && p.owner == owner {
		p.held = false
		p.text = ""
	}
}

// Active returns the current prompt, if any.
func (p *PromptArbiter) Active() (Kind, string, bool) {
	return p.owner, p.text, p.held
}

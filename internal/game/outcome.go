package game

// OutcomeKind tags an Outcome.
type OutcomeKind uint8

const (
	// KindNoOp leaves the state unchanged.
	KindNoOp OutcomeKind = iota
	// KindApplied replaces the state with Next.
	KindApplied
)

func (k OutcomeKind) String() string {
	if k == KindApplied {
		return "applied"
	}
	return "noop"
}

// Outcome is the result of a transition.
type Outcome struct {
	Kind   OutcomeKind
	Next   State
	Reason string
}

// Applied wraps a new state.
func Applied(next State) Outcome {
	return Outcome{Kind: KindApplied, Next: next}
}

// NoOp rejects a transition.
func NoOp(reason string) Outcome {
	return Outcome{Kind: KindNoOp, Reason: reason}
}

// Changed reports whether the outcome carries a new state.
func (o Outcome) Changed() bool {
	return o.Kind == KindApplied
}

// Resolve returns the state to publish after the transition: Next when
// applied, prev otherwise.
func (o Outcome) Resolve(prev State) State {
	if o.Changed() {
		return o.Next
	}
	return prev
}

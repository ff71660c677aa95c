package ops

import (
	"slices"
	"strings"
)

// Phase identifies an execution phase of the training loop.
type Phase string

const (
	Train Phase = "train"
	Eval  Phase = "eval"
	Test  Phase = "test"
)

// Mode declares the phases an op applies to. The zero value applies to every
// phase, so ops that do not care about phases need no explicit mode.
//
// Mode is a closed representation: it is either "every phase" or an explicit
// set of phases, never a partially-typed union.
type Mode struct {
	phases []Phase
}

// EveryPhase returns the Mode that applies to all execution phases.
func EveryPhase() Mode {
	return Mode{}
}

// In returns a Mode restricted to the given phases. Duplicates are removed and
// the set is order-insensitive. In() with no arguments is EveryPhase.
func In(phases ...Phase) Mode {
	if len(phases) == 0 {
		return Mode{}
	}
	set := slices.Clone(phases)
	slices.Sort(set)

	return Mode{phases: slices.Compact(set)}
}

// All reports whether the mode applies to every phase.
func (m Mode) All() bool {
	return len(m.phases) == 0
}

// Matches reports whether the mode applies to phase p.
func (m Mode) Matches(p Phase) bool {
	return m.All() || slices.Contains(m.phases, p)
}

// Equal reports whether two modes cover exactly the same phases.
func (m Mode) Equal(o Mode) bool {
	return slices.Equal(m.phases, o.phases)
}

// String renders the mode for error messages and logs.
func (m Mode) String() string {
	if m.All() {
		return "all"
	}
	parts := make([]string, len(m.phases))
	for i, p := range m.phases {
		parts[i] = string(p)
	}

	return strings.Join(parts, ",")
}

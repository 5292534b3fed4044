package slotset

import "fmt"

// Outcome classifies the result of a probe.
type Outcome uint8

const (
	// Miss means the probe stopped at an empty slot.
	Miss Outcome = iota

	// Hit means the probe stopped at a slot holding an equal value.
	Hit

	// Full means every slot was visited without a hit or an empty slot.
	Full
)

func (o Outcome) String() string {
	switch o {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Probe is the result of FindSlot. Index is only meaningful for Hit and
// Miss, and is -1 for Full.
type Probe struct {
	Outcome Outcome
	Index   int
}

var fullProbe = Probe{Outcome: Full, Index: -1}

func (p Probe) String() string {
	if p.Outcome == Full {
		return p.Outcome.String()
	}
	return fmt.Sprintf("%s(%d)", p.Outcome, p.Index)
}

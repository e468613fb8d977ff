package session

import (
	"github.com/sarchlab/vmpagesim/policy"
	"github.com/sarchlab/vmpagesim/simcore"
)

// StateView is a read-only snapshot of one engine's state, safe to hand to
// a hosting front-end: it holds no pointers back into the engine, so the
// engine may keep stepping after a StateView is taken.
type StateView struct {
	Algorithm    policy.Name
	Frames       []simcore.Frame
	Pages        []simcore.Page
	Metrics      simcore.Metrics
	HandPosition int
}

func viewOf(e *simcore.Engine) StateView {
	return StateView{
		Algorithm:    e.Algorithm(),
		Frames:       e.Frames(),
		Pages:        e.Pages(),
		Metrics:      e.Metrics(),
		HandPosition: e.HandPosition(),
	}
}

// Snapshot bundles the two engines' views the way a UI wants to compare
// them side by side.
type Snapshot struct {
	OPT    StateView
	Chosen StateView
}

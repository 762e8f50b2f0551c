package transition

import (
	"fmt"
	"slices"
)

// SimulatedLoader stands in for a real scene loader. Each load reports
// progress in equal increments and completes after Frames polls. Scenes not
// in Known fail to load when Known is non-empty.
type SimulatedLoader struct {
	Frames int
	Known  []string
}

func (l SimulatedLoader) Load(sceneID string) (Operation, error) {
	if len(l.Known) > 0 && !slices.Contains(l.Known, sceneID) {
		return nil, fmt.Errorf("unknown scene %q", sceneID)
	}
	return &simulatedOp{frames: max(l.Frames, 1)}, nil
}

type simulatedOp struct {
	frames int
	polls  int
}

func (o *simulatedOp) Poll() (float64, bool) {
	o.polls++
	if o.polls >= o.frames {
		return 1, true
	}
	return float64(o.polls) / float64(o.frames), false
}

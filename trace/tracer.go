package trace

import "github.com/sarchlab/vmpagesim/session"

// stepEntry is one policy's metrics after one step, in the "step_metrics"
// table. Field order defines column order, so it must match CreateTable's
// sample and InsertData's values exactly.
type stepEntry struct {
	SessionID        string
	StepIndex        int
	Algorithm        string
	PageFaults       int
	PageHits         int
	TotalTime        float64
	ThrashingTime    float64
	RAMUsedKB        int
	VRAMUsedKB       int
	RunningProcesses int
}

// StepTracer records both engines' metrics after every session step.
type StepTracer struct {
	recorder Recorder
}

// NewStepTracer wraps recorder and creates the table it writes to.
func NewStepTracer(recorder Recorder) *StepTracer {
	recorder.CreateTable("step_metrics", stepEntry{})

	return &StepTracer{recorder: recorder}
}

// RecordStep writes one row per engine for the snapshot taken after
// stepping sessionID to stepIndex.
func (t *StepTracer) RecordStep(sessionID string, stepIndex int, snap session.Snapshot) {
	t.recorder.InsertData("step_metrics", entryFrom(sessionID, stepIndex, snap.OPT))
	t.recorder.InsertData("step_metrics", entryFrom(sessionID, stepIndex, snap.Chosen))
}

func entryFrom(sessionID string, stepIndex int, view session.StateView) stepEntry {
	m := view.Metrics

	return stepEntry{
		SessionID:        sessionID,
		StepIndex:        stepIndex,
		Algorithm:        string(view.Algorithm),
		PageFaults:       m.PageFaults,
		PageHits:         m.PageHits,
		TotalTime:        m.TotalTime,
		ThrashingTime:    m.ThrashingTime,
		RAMUsedKB:        m.RAMUsedKB,
		VRAMUsedKB:       m.VRAMUsedKB,
		RunningProcesses: m.RunningProcesses,
	}
}

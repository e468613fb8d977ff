package simcore

// HitTime and FaultTime are the simulated-second costs of a page hit and a
// page fault. FaultTime counts in full toward ThrashingTime.
const (
	HitTime   = 1.0
	FaultTime = 5.0
)

// Metrics bundles the counters and derived figures the spec requires two
// policies to be compared on. PageFaults, PageHits, TotalTime and
// ThrashingTime accumulate incrementally as instructions are applied;
// every other field is recomputed from scratch at each step boundary by
// Recompute rather than maintained incrementally, since they depend on the
// full occupancy picture rather than the single instruction just applied.
type Metrics struct {
	PageFaults int
	PageHits   int

	TotalTime     float64
	ThrashingTime float64

	RAMUsedKB               int
	VRAMUsedKB              int
	InternalFragmentationKB float64
	RunningProcesses        int

	RAMUsedPercent  float64
	VRAMUsedPercent float64
}

// recordHit accounts for a page hit.
func (m *Metrics) recordHit() {
	m.PageHits++
	m.TotalTime += HitTime
}

// recordFault accounts for a page fault. The full fault cost counts toward
// thrashing time.
func (m *Metrics) recordFault() {
	m.PageFaults++
	m.TotalTime += FaultTime
	m.ThrashingTime += FaultTime
}

// Recompute derives every non-incremental field from the authoritative
// state: the frame array and the MMU's live pages. totalFrames is the RAM
// capacity used to compute percentages.
func (m *Metrics) Recompute(frames []Frame, mm *mmu, totalFrames int) {
	residentCount := 0
	fragmentationKB := 0.0

	for _, f := range frames {
		if !f.Occupied {
			continue
		}

		residentCount++

		page, ok := mm.get(f.PageID)
		if ok {
			fragmentationKB += float64(PageSizeBytes-page.ContentSizeBytes) / 1024
		}
	}

	nonResidentCount := 0

	for _, p := range mm.pages {
		if !p.Resident {
			nonResidentCount++
		}
	}

	m.RAMUsedKB = residentCount * (PageSizeBytes / 1024)
	m.VRAMUsedKB = nonResidentCount * (PageSizeBytes / 1024)
	m.InternalFragmentationKB = fragmentationKB
	m.RunningProcesses = mm.runningProcesses()

	ramCapacityKB := totalFrames * (PageSizeBytes / 1024)
	if ramCapacityKB > 0 {
		m.RAMUsedPercent = 100 * float64(m.RAMUsedKB) / float64(ramCapacityKB)
		m.VRAMUsedPercent = 100 * float64(m.VRAMUsedKB) / float64(ramCapacityKB)
	}
}

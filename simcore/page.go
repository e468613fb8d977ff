package simcore

import (
	"github.com/sarchlab/vmpagesim/policy"
	"github.com/sarchlab/vmpagesim/workload"
)

// PageSizeBytes is the size of one logical page / physical frame.
const PageSizeBytes = 4096

// Page is one logical page: a 4 KB slice of a `new` allocation. It is
// either resident (FrameID meaningful) or swapped (DiskAddress
// meaningful); the two are mutually exclusive.
type Page struct {
	ID    policy.PageID
	PID   workload.PID
	PtrID workload.PtrID
	Index int

	Resident    bool
	FrameID     int
	DiskAddress uint64

	LoadedTimestamp     float64
	LastAccessTimestamp float64
	ReferenceBit        bool

	// ContentSizeBytes is PageSizeBytes for every page except possibly the
	// last page of a ptr, which carries the remainder of the allocation
	// and so may be smaller, producing internal fragmentation.
	ContentSizeBytes int
}

// numPages returns how many PageSizeBytes-slices sizeBytes needs, and the
// content size of the last (possibly partial) page.
func numPages(sizeBytes int) (count int, lastPageContent int) {
	count = (sizeBytes + PageSizeBytes - 1) / PageSizeBytes
	if count == 0 {
		count = 1
	}

	lastPageContent = sizeBytes % PageSizeBytes
	if lastPageContent == 0 {
		lastPageContent = PageSizeBytes
	}

	return count, lastPageContent
}

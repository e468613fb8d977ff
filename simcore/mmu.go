package simcore

import (
	"github.com/sarchlab/vmpagesim/policy"
	"github.com/sarchlab/vmpagesim/workload"
)

// activePointer is the authoritative record of one live allocation: which
// process owns it, and its logical pages in allocation order.
type activePointer struct {
	pid   workload.PID
	pages []policy.PageID
}

// mmu is the engine's table of every live logical page, plus the active
// pointers table that groups pages back into allocations.
type mmu struct {
	pages   map[policy.PageID]*Page
	pointer map[workload.PtrID]*activePointer
}

func newMMU() *mmu {
	return &mmu{
		pages:   make(map[policy.PageID]*Page),
		pointer: make(map[workload.PtrID]*activePointer),
	}
}

func (m *mmu) insert(p *Page) {
	m.pages[p.ID] = p

	entry, ok := m.pointer[p.PtrID]
	if !ok {
		entry = &activePointer{pid: p.PID}
		m.pointer[p.PtrID] = entry
	}

	entry.pages = append(entry.pages, p.ID)
}

func (m *mmu) remove(id policy.PageID) {
	delete(m.pages, id)
}

func (m *mmu) get(id policy.PageID) (*Page, bool) {
	p, ok := m.pages[id]
	return p, ok
}

// pagesOf returns the ordered pages of ptr, and whether ptr is live.
func (m *mmu) pagesOf(ptr workload.PtrID) ([]policy.PageID, bool) {
	entry, ok := m.pointer[ptr]
	if !ok {
		return nil, false
	}

	return entry.pages, true
}

func (m *mmu) ownerOf(ptr workload.PtrID) (workload.PID, bool) {
	entry, ok := m.pointer[ptr]
	if !ok {
		return "", false
	}

	return entry.pid, true
}

func (m *mmu) dropPointer(ptr workload.PtrID) {
	delete(m.pointer, ptr)
}

// ptrsOwnedBy returns every live ptr_id currently owned by pid.
func (m *mmu) ptrsOwnedBy(pid workload.PID) []workload.PtrID {
	var out []workload.PtrID

	for ptr, entry := range m.pointer {
		if entry.pid == pid {
			out = append(out, ptr)
		}
	}

	return out
}

// runningProcesses returns the count of distinct pids with at least one
// live ptr_id.
func (m *mmu) runningProcesses() int {
	seen := make(map[workload.PID]struct{})
	for _, entry := range m.pointer {
		seen[entry.pid] = struct{}{}
	}

	return len(seen)
}

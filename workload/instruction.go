// Package workload defines the instruction stream that drives the
// simulator: the four operation kinds a synthetic process program can
// contain, and the generator/parser/serializer that produce and consume
// the textual form of that stream.
package workload

import "fmt"

// PID identifies a simulated process, e.g. "P1".
type PID string

// PtrID identifies a single allocation made by a `new` instruction. It is
// assigned globally and sequentially, starting at 1, independent of which
// process owns the allocation.
type PtrID uint32

// Kind distinguishes the four instruction cases.
type Kind int

// The four instruction kinds a workload can contain.
const (
	KindNew Kind = iota
	KindUse
	KindDelete
	KindKill
)

// String renders the kind the way it appears in the textual format.
func (k Kind) String() string {
	switch k {
	case KindNew:
		return "new"
	case KindUse:
		return "use"
	case KindDelete:
		return "delete"
	case KindKill:
		return "kill"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Instruction is one line of a workload. Only the fields relevant to Kind
// are meaningful: New uses PID, SizeBytes and PtrID; Use and Delete use
// PtrID; Kill uses PID.
type Instruction struct {
	Kind      Kind
	PID       PID
	SizeBytes int
	PtrID     PtrID
}

// New builds a `new` instruction.
func New(pid PID, sizeBytes int, ptr PtrID) Instruction {
	return Instruction{Kind: KindNew, PID: pid, SizeBytes: sizeBytes, PtrID: ptr}
}

// Use builds a `use` instruction.
func Use(ptr PtrID) Instruction {
	return Instruction{Kind: KindUse, PtrID: ptr}
}

// Delete builds a `delete` instruction.
func Delete(ptr PtrID) Instruction {
	return Instruction{Kind: KindDelete, PtrID: ptr}
}

// Kill builds a `kill` instruction.
func Kill(pid PID) Instruction {
	return Instruction{Kind: KindKill, PID: pid}
}

// String renders the instruction the way it is emitted by Serialize; note
// that PtrID is never printed for `new`, since it is implicit in ordering.
func (in Instruction) String() string {
	switch in.Kind {
	case KindNew:
		return fmt.Sprintf("new(%s,%d)", in.PID, in.SizeBytes)
	case KindUse:
		return fmt.Sprintf("use(%d)", in.PtrID)
	case KindDelete:
		return fmt.Sprintf("delete(%d)", in.PtrID)
	case KindKill:
		return fmt.Sprintf("kill(%s)", in.PID)
	default:
		return fmt.Sprintf("<invalid instruction kind %d>", int(in.Kind))
	}
}

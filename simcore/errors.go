package simcore

import "fmt"

// UnknownPointerError reports a `use`/`delete` referencing a ptr_id that
// was never introduced by a `new`, or that has already been deleted or
// killed. The engine logs it, treats the instruction as a no-op, and also
// returns it from Apply so a caller that cares can observe which
// instruction was skipped.
type UnknownPointerError struct {
	Op string
}

func (e *UnknownPointerError) Error() string {
	return fmt.Sprintf("%s: unknown or dead ptr_id", e.Op)
}

// InvariantViolationError signals that the bidirectional frame/page mapping
// failed to hold at a step boundary, or that a policy was asked to evict
// from empty RAM. This is an engine bug, not a workload problem, and
// callers should treat it as fatal to the session.
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return "internal invariant violation: " + e.Detail
}

package workload

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ParseWarning reports a line that could not be recognized. Parsing never
// fails outright on a bad line; it collects warnings and skips them.
type ParseWarning struct {
	LineNumber int
	Line       string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: unrecognized instruction %q", w.LineNumber, w.Line)
}

var lineRE = regexp.MustCompile(
	`(?i)^\s*(new\((\w+),(\d+)\)|use\((\d+)\)|delete\((\d+)\)|kill\((\w+)\))\s*$`,
)

// Parse reads a textual workload. `new` lines have their ptr_id reassigned
// in appearance order starting at 1, and the resulting pid ownership is
// recorded so later use/delete lines can be resolved to a process; the
// return value ptr_id -> pid is exposed via the returned instructions
// themselves (New instructions carry the pid; Use/Delete do not, by
// design, and must be resolved against a preceding New during simulation).
func Parse(r io.Reader) (instructions []Instruction, warnings []ParseWarning, nextPtrID PtrID) {
	scanner := bufio.NewScanner(r)

	next := PtrID(1)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		in, ok := parseLine(line, &next)
		if !ok {
			warnings = append(warnings, ParseWarning{LineNumber: lineNo, Line: line})
			continue
		}

		instructions = append(instructions, in)
	}

	return instructions, warnings, next
}

func parseLine(line string, next *PtrID) (Instruction, bool) {
	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return Instruction{}, false
	}

	switch {
	case m[2] != "":
		size, err := strconv.Atoi(m[3])
		if err != nil {
			return Instruction{}, false
		}

		in := New(PID(m[2]), size, *next)
		*next++

		return in, true
	case m[4] != "":
		ptr, err := strconv.Atoi(m[4])
		if err != nil {
			return Instruction{}, false
		}

		return Use(PtrID(ptr)), true
	case m[5] != "":
		ptr, err := strconv.Atoi(m[5])
		if err != nil {
			return Instruction{}, false
		}

		return Delete(PtrID(ptr)), true
	case m[6] != "":
		return Kill(PID(m[6])), true
	default:
		return Instruction{}, false
	}
}

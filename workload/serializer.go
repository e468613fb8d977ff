package workload

import (
	"io"
)

// Serialize writes instructions in the textual format Parse accepts. It is
// the inverse of Parse: PtrID is not emitted on `new` lines, since it is
// implicit in ordering.
func Serialize(w io.Writer, instructions []Instruction) error {
	for _, in := range instructions {
		if _, err := io.WriteString(w, in.String()+"\n"); err != nil {
			return err
		}
	}

	return nil
}

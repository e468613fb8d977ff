// Command vmpagesim runs the virtual-memory page-replacement simulator
// from the terminal: generate a synthetic workload, or replay one against
// a chosen policy compared side by side against OPT.
package main

import "github.com/sarchlab/vmpagesim/cmd/vmpagesim/cmd"

func main() {
	cmd.Execute()
}

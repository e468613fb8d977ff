package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/vmpagesim/workload"
)

var (
	genProcesses int
	genOps       int
	genSeed      string
	genOut       string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic instruction stream.",
	RunE: func(_ *cobra.Command, _ []string) error {
		instructions, _ := workload.Generate(workload.GenerateConfig{
			ProcessCount: genProcesses,
			OpCount:      genOps,
			Seed:         genSeed,
		})

		out := os.Stdout

		if genOut != "" {
			f, err := os.Create(genOut)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			defer f.Close()

			out = f
		}

		return workload.Serialize(out, instructions)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVar(&genProcesses, "processes", 4, "number of processes")
	generateCmd.Flags().IntVar(&genOps, "ops", 200, "number of instructions to generate")
	generateCmd.Flags().StringVar(&genSeed, "seed", defaults.Seed, "PRNG seed")
	generateCmd.Flags().StringVar(&genOut, "out", "", "output file (default: stdout)")
}

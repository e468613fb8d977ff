// Package config resolves vmpagesim's environment-provided defaults: a
// VMPAGESIM_SEED, VMPAGESIM_ALGORITHM or VMPAGESIM_FRAMES set in the
// process environment or in a .env file overrides the command's built-in
// defaults, letting a deployment pin them without editing flags.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults holds the environment-resolved fallback values for the run and
// generate commands' flags.
type Defaults struct {
	Seed      string
	Algorithm string
	Frames    int
}

// Load reads a .env file if one is present in the working directory (a
// missing file is not an error) and returns the defaults it and the
// process environment provide. Flags explicitly set on the command line
// always take precedence over these.
func Load() Defaults {
	_ = godotenv.Load()

	d := Defaults{
		Seed:      "vmpagesim",
		Algorithm: "LRU",
	}

	if v := os.Getenv("VMPAGESIM_SEED"); v != "" {
		d.Seed = v
	}

	if v := os.Getenv("VMPAGESIM_ALGORITHM"); v != "" {
		d.Algorithm = v
	}

	if v := os.Getenv("VMPAGESIM_FRAMES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			d.Frames = n
		}
	}

	return d
}

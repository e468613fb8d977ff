package cmd

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/vmpagesim/httpapi"
	"github.com/sarchlab/vmpagesim/policy"
	"github.com/sarchlab/vmpagesim/session"
	"github.com/sarchlab/vmpagesim/simcore"
	"github.com/sarchlab/vmpagesim/trace"
	"github.com/sarchlab/vmpagesim/workload"
)

var (
	runIn          string
	runSeed        string
	runAlgo        string
	runFrames      int
	runTraceDB     string
	runServeTCP    string
	runOpenBrowser bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay an instruction stream and compare a policy against OPT.",
	RunE: func(_ *cobra.Command, _ []string) error {
		algo := policy.Name(strings.ToUpper(runAlgo))
		if !algo.Valid() {
			return fmt.Errorf("run: %q is not one of %v", runAlgo, policy.Names())
		}

		instructions, nextPtrID, err := loadInstructions()
		if err != nil {
			return err
		}

		frames := runFrames
		if frames <= 0 {
			frames = simcore.TotalRAMFrames
		}

		sess, err := session.MakeBuilder().
			WithSeed(runSeed).
			WithAlgorithm(algo).
			WithFrameCount(frames).
			WithInstructions(instructions, nextPtrID).
			Build()
		if err != nil {
			return err
		}

		var tracer *trace.StepTracer
		if runTraceDB != "" {
			tracer = trace.NewStepTracer(trace.New(runTraceDB))
		}

		if runServeTCP != "" {
			return serveForever(sess)
		}

		return runToCompletion(sess, tracer)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runIn, "in", "", "workload file to parse (default: generate one)")
	runCmd.Flags().StringVar(&runSeed, "seed", defaults.Seed, "PRNG seed")
	runCmd.Flags().StringVar(&runAlgo, "algorithm", defaults.Algorithm, "policy to compare against OPT")
	runCmd.Flags().IntVar(&runFrames, "frames", defaults.Frames, "RAM capacity in frames (default: spec default)")
	runCmd.Flags().StringVar(&runTraceDB, "trace-db", "", "record per-step metrics into a SQLite database")
	runCmd.Flags().StringVar(&runServeTCP, "serve", "", "serve the session over HTTP at this address instead of running to completion")
	runCmd.Flags().BoolVar(&runOpenBrowser, "open", false, "open the dashboard in a browser once --serve starts listening")
}

func loadInstructions() ([]workload.Instruction, workload.PtrID, error) {
	if runIn == "" {
		instructions, next := workload.Generate(workload.GenerateConfig{
			ProcessCount: 4,
			OpCount:      200,
			Seed:         runSeed,
		})

		return instructions, next, nil
	}

	f, err := os.Open(runIn)
	if err != nil {
		return nil, 0, fmt.Errorf("run: %w", err)
	}
	defer f.Close()

	instructions, warnings, next := workload.Parse(f)
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, w.String())
	}

	return instructions, next, nil
}

func runToCompletion(sess *session.Session, tracer *trace.StepTracer) error {
	step := 0

	for {
		outcome := sess.Step()
		step++

		if tracer != nil {
			tracer.RecordStep(sess.ID(), step, sess.Snapshot())
		}

		if outcome.ReachedEnd {
			break
		}
	}

	snap := sess.Snapshot()
	printComparison(snap)

	return nil
}

func printComparison(snap session.Snapshot) {
	fmt.Printf("%-10s %10s %10s\n", "metric", "OPT", string(snap.Chosen.Algorithm))
	fmt.Printf("%-10s %10d %10d\n", "faults", snap.OPT.Metrics.PageFaults, snap.Chosen.Metrics.PageFaults)
	fmt.Printf("%-10s %10d %10d\n", "hits", snap.OPT.Metrics.PageHits, snap.Chosen.Metrics.PageHits)
	fmt.Printf("%-10s %10.0f %10.0f\n", "time(s)", snap.OPT.Metrics.TotalTime, snap.Chosen.Metrics.TotalTime)
	fmt.Printf("%-10s %10.0f %10.0f\n", "thrash(s)", snap.OPT.Metrics.ThrashingTime, snap.Chosen.Metrics.ThrashingTime)
}

func serveForever(sess *session.Session) error {
	srv := httpapi.NewServer(sess)

	ln, err := net.Listen("tcp", runServeTCP)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Fprintf(os.Stderr, "vmpagesim: serving on %s\n", runServeTCP)

	if runOpenBrowser {
		url := "http://" + runServeTCP + "/api/snapshot"
		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "vmpagesim: could not open browser: %v\n", err)
		}
	}

	return http.Serve(ln, srv.Router())
}

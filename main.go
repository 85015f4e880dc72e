package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gosat/satkit/cnf"
	"github.com/gosat/satkit/parsers"
	"github.com/gosat/satkit/solver"
	"github.com/gosat/satkit/solver/cdcl"
	"github.com/gosat/satkit/solver/dpll"
	"github.com/gosat/satkit/solver/probsat"
	"github.com/gosat/satkit/solver/walksat"
)

var log = logrus.New()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	flagCNF     string
	flagVerbose bool
	flagTimeout time.Duration
	flagSeed    int64
)

var rootCmd = &cobra.Command{
	Use:   "satkit",
	Short: "satkit runs the suite's five CNF SAT engines against a DIMACS instance",
}

func init() {
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log search progress at debug level")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "wall-clock budget; 0 disables the watchdog")

	dpllCmd.Flags().StringVar(&flagCNF, "cnf", "", "path to a DIMACS CNF instance (required)")
	dpllCmd.Flags().Bool("jw", false, "use the Jeroslow-Wang branching rule instead of first-literal")
	dpllCmd.Flags().Int64Var(&flagSeed, "seed", 1, "unused by DPLL; accepted for CLI symmetry")
	dpllCmd.MarkFlagRequired("cnf")

	walksatCmd.Flags().StringVar(&flagCNF, "cnf", "", "path to a DIMACS CNF instance (required)")
	walksatCmd.Flags().Int64("max-flips", walksat.DefaultOptions.MaxFlips, "maximum flips per restart attempt")
	walksatCmd.Flags().Float64("noise", walksat.DefaultOptions.Noise, "probability of a random (vs. greedy) flip")
	walksatCmd.Flags().Int("restarts", walksat.DefaultOptions.Restarts, "number of restart attempts")
	walksatCmd.Flags().Int64Var(&flagSeed, "seed", walksat.DefaultOptions.Seed, "PRNG seed")
	walksatCmd.MarkFlagRequired("cnf")

	probsatCmd.Flags().StringVar(&flagCNF, "cnf", "", "path to a DIMACS CNF instance (required)")
	probsatCmd.Flags().Int64("max-flips", probsat.DefaultOptions.MaxFlips, "maximum flips per restart attempt")
	probsatCmd.Flags().Float64("epsilon", probsat.DefaultOptions.Epsilon, "break-count weighting base")
	probsatCmd.Flags().Int("restarts", probsat.DefaultOptions.Restarts, "number of restart attempts")
	probsatCmd.Flags().Int64Var(&flagSeed, "seed", probsat.DefaultOptions.Seed, "PRNG seed")
	probsatCmd.MarkFlagRequired("cnf")

	cdclCmd.Flags().StringVar(&flagCNF, "cnf", "", "path to a DIMACS CNF instance (required)")
	cdclCmd.Flags().Int64Var(&flagSeed, "seed", 1, "unused by CDCL; accepted for CLI symmetry")
	cdclCmd.MarkFlagRequired("cnf")

	sudokuEncodeCmd.Flags().String("grid", "", "path to a 9x9 Sudoku grid (required)")
	sudokuEncodeCmd.Flags().String("out", "", "path to write the generated DIMACS CNF (required)")
	sudokuEncodeCmd.MarkFlagRequired("grid")
	sudokuEncodeCmd.MarkFlagRequired("out")

	sudokuDecodeCmd.Flags().String("assignment", "", "path to a solver.Result JSON file (required)")
	sudokuDecodeCmd.Flags().String("out", "", "path to write the decoded grid (required)")
	sudokuDecodeCmd.MarkFlagRequired("assignment")
	sudokuDecodeCmd.MarkFlagRequired("out")

	sudokuCmd.AddCommand(sudokuEncodeCmd, sudokuDecodeCmd)
	rootCmd.AddCommand(dpllCmd, walksatCmd, probsatCmd, cdclCmd, sudokuCmd)
}

var dpllCmd = &cobra.Command{
	Use:   "dpll",
	Short: "solve a CNF instance with DPLL (baseline or Jeroslow-Wang branching)",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := parsers.LoadFormula(flagCNF, false)
		if err != nil {
			return err
		}
		jw, _ := cmd.Flags().GetBool("jw")
		opts := dpll.Options{Log: entryFor(cmd)}
		name := "dpll"
		if jw {
			opts.Branch = dpll.JeroslowWang
			name = "dpll-jw"
		}
		return runSolve(cmd, f, func() *solver.Result { return dpll.Solve(name, f, opts) })
	},
}

var walksatCmd = &cobra.Command{
	Use:   "walksat",
	Short: "solve a CNF instance with WalkSAT local search",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := parsers.LoadFormula(flagCNF, false)
		if err != nil {
			return err
		}
		opts := walksat.DefaultOptions
		opts.Log = entryFor(cmd)
		opts.MaxFlips, _ = cmd.Flags().GetInt64("max-flips")
		opts.Noise, _ = cmd.Flags().GetFloat64("noise")
		opts.Restarts, _ = cmd.Flags().GetInt("restarts")
		opts.Seed = flagSeed
		return runSolve(cmd, f, func() *solver.Result { return walksat.Solve(f, opts) })
	},
}

var probsatCmd = &cobra.Command{
	Use:   "probsat",
	Short: "solve a CNF instance with probSAT local search",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := parsers.LoadFormula(flagCNF, false)
		if err != nil {
			return err
		}
		opts := probsat.DefaultOptions
		opts.Log = entryFor(cmd)
		opts.MaxFlips, _ = cmd.Flags().GetInt64("max-flips")
		opts.Epsilon, _ = cmd.Flags().GetFloat64("epsilon")
		opts.Restarts, _ = cmd.Flags().GetInt("restarts")
		opts.Seed = flagSeed
		return runSolve(cmd, f, func() *solver.Result { return probsat.Solve(f, opts) })
	},
}

var cdclCmd = &cobra.Command{
	Use:   "cdcl",
	Short: "solve a CNF instance with conflict-driven clause learning",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := parsers.LoadFormula(flagCNF, false)
		if err != nil {
			return err
		}
		opts := cdcl.DefaultOptions
		opts.Log = entryFor(cmd)
		return runSolve(cmd, f, func() *solver.Result { return cdcl.Solve(f, opts) })
	},
}

var sudokuCmd = &cobra.Command{
	Use:   "sudoku",
	Short: "encode a Sudoku grid to CNF, or decode a solved assignment back to a grid",
}

var sudokuEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "encode a 9x9 Sudoku grid into a DIMACS CNF file",
	RunE: func(cmd *cobra.Command, args []string) error {
		gridPath, _ := cmd.Flags().GetString("grid")
		outPath, _ := cmd.Flags().GetString("out")

		lines, err := parsers.LoadLines(gridPath)
		if err != nil {
			return err
		}
		grid, err := cnf.ParseGrid(lines)
		if err != nil {
			return err
		}
		f := cnf.EncodeSudoku(grid)

		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()
		return cnf.WriteDIMACS(out, f)
	},
}

var sudokuDecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "decode a satisfying assignment (solver.Result JSON) into a 9x9 Sudoku grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		assignmentPath, _ := cmd.Flags().GetString("assignment")
		outPath, _ := cmd.Flags().GetString("out")

		data, err := os.ReadFile(assignmentPath)
		if err != nil {
			return err
		}
		var res solver.Result
		if err := json.Unmarshal(data, &res); err != nil {
			return err
		}
		if res.Status != solver.SAT {
			return fmt.Errorf("assignment file reports status %s, want SAT", res.Status)
		}
		grid, err := cnf.DecodeSudoku(res.Assignment)
		if err != nil {
			return err
		}
		return os.WriteFile(outPath, []byte(cnf.FormatGrid(grid)), 0o644)
	},
}

// entryFor builds the logrus entry a solver package should trace to,
// honoring --verbose.
func entryFor(cmd *cobra.Command) *logrus.Entry {
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(log).WithField("cmd", cmd.Name())
}

// runSolve races solve against --timeout (spec.md §5's externally-imposed
// wall-clock budget): the solver loops themselves never poll a context, so
// a timed-out solve's goroutine is abandoned and its partial result
// discarded, exactly as §5 describes for cooperative-cancellation-free
// engines.
func runSolve(cmd *cobra.Command, f *cnf.Formula, solve func() *solver.Result) error {
	start := time.Now()

	if flagTimeout <= 0 {
		res := solve()
		return emit(cmd, res, time.Since(start))
	}

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	done := make(chan *solver.Result, 1)
	go func() { done <- solve() }()

	select {
	case res := <-done:
		return emit(cmd, res, time.Since(start))
	case <-ctx.Done():
		return emit(cmd, &solver.Result{
			Solver:     cmd.Name(),
			Status:     solver.Timeout,
			NumVars:    f.NumVars,
			NumClauses: len(f.Clauses),
		}, time.Since(start))
	}
}

type resultEnvelope struct {
	*solver.Result
	WallTime float64 `json:"wall_time"`
}

func emit(cmd *cobra.Command, res *solver.Result, elapsed time.Duration) error {
	env := resultEnvelope{Result: res, WallTime: elapsed.Seconds()}
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
)

// benchOpts holds the command-line flags for the bench command.
type benchOpts struct {
	count   int
	pattern string
	seed    int64
	compare bool
	verify  bool
	runs    int
}

func newBenchCmd() *cobra.Command {
	var opts benchOpts

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Pack generated item sets and report timing and fill",
		Long: `Bench generates items with a fixed pattern and packs them.

Patterns:
  bench    width i, height (i mod 10) * 10
  squares  width and height i
  random   whole sizes from 1 to 128 drawn from --seed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context()).config
			flags := cmd.Flags()
			if !flags.Changed("count") {
				opts.count = cfg.BenchCount
			}
			if !flags.Changed("pattern") {
				opts.pattern = string(cfg.BenchPattern)
			}
			if !flags.Changed("seed") {
				opts.seed = cfg.BenchSeed
			}
			if opts.compare {
				return runCompare(cmd.Context(), opts, cmd.OutOrStdout())
			}
			return runBench(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 1000, "number of items to generate")
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", string(model.PatternBench), "item pattern: bench, squares, random")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "seed for the random pattern")
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "run every pattern and compare")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "check every result for overlaps and coverage")
	cmd.Flags().IntVar(&opts.runs, "runs", 1, "pack the same items this many times and report the fastest")

	return cmd
}

// benchPacker returns a packer using the config defaults, like pack does for
// non-project inputs.
func benchPacker(cfg model.AppConfig) *engine.Packer {
	s := model.DefaultSettings()
	cfg.ApplyToSettings(&s)
	return engine.New(s)
}

// runBench packs one generated item set, opts.runs times.
func runBench(ctx context.Context, opts benchOpts, out io.Writer) error {
	logger := loggerFromContext(ctx)

	items, err := engine.GenerateItems(model.BenchPattern(opts.pattern), opts.count, opts.seed)
	if err != nil {
		return err
	}
	logger.Debug("Generated items", "pattern", opts.pattern, "count", len(items), "seed", opts.seed)

	packer := benchPacker(configFromContext(ctx).config)

	runs := opts.runs
	if runs < 1 {
		runs = 1
	}

	var (
		result model.Result
		best   time.Duration
	)
	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		prog := newProgress(logger)
		result, err = packer.Pack(items)
		if err != nil {
			return err
		}
		if d := prog.elapsed(); i == 0 || d < best {
			best = d
		}
		logger.Debug("Run finished", "run", i+1, "elapsed", prog.elapsed())
	}

	if opts.verify {
		if err := engine.Verify(result, len(items)); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}

	pr := printer{w: out}
	pr.title(fmt.Sprintf("%s (%d items)", opts.pattern, len(items)))
	pr.keyValue("Elapsed", best.String())
	pr.keyValue("Target fill", fmt.Sprintf("%g", packer.Settings.TargetFill))
	pr.keyValue("Size", fmt.Sprintf("%g x %g", result.Packing.W, result.Packing.H))
	pr.keyValue("Fill", StyleNumber.Render(fmt.Sprintf("%.4f", result.Packing.Fill)))
	pr.keyValue("Free spaces", fmt.Sprintf("%d", len(result.FreeSpaces)))
	if opts.verify {
		pr.success("Verified")
	}
	return nil
}

// runCompare packs every bench pattern and prints one line per scenario.
func runCompare(ctx context.Context, opts benchOpts, out io.Writer) error {
	logger := loggerFromContext(ctx)

	scenarios, err := engine.BuildBenchScenarios(opts.count, opts.seed)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	prog := newProgress(logger)
	results := engine.CompareScenarios(benchPacker(configFromContext(ctx).config), scenarios)
	prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))

	pr := printer{w: out}
	pr.title("Scenario comparison")
	best := engine.BestScenario(results)
	failed := 0
	for i, r := range results {
		if r.Err != nil {
			failed++
			pr.error("%s: %v", r.Scenario.Name, r.Err)
			continue
		}
		if opts.verify {
			if err := engine.Verify(r.Result, r.ItemCount); err != nil {
				failed++
				pr.error("%s: verification failed: %v", r.Scenario.Name, err)
				continue
			}
		}
		line := fmt.Sprintf("%-22s %6d items  %10s  %g x %g  fill %.4f  %d free",
			r.Scenario.Name, r.ItemCount, r.Elapsed.Round(time.Microsecond),
			r.Result.Packing.W, r.Result.Packing.H, r.Result.Packing.Fill, r.FreeSpaceCount)
		if i == best {
			pr.info("%s %s", line, styleBest.Render("best"))
		} else {
			pr.info("%s", line)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/experiment"
	"github.com/san-kum/nbody/internal/system"
)

var (
	compareNumerics    []string
	compareIntegrators []string
	compareJobs        int
	benchWorkers       []int
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [system]",
		Short: "run one system under several representations and integrators",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareRuns,
	}
	cmd.Flags().StringSliceVar(&compareNumerics, "numerics", nil, "representations to compare (default all)")
	cmd.Flags().StringSliceVar(&compareIntegrators, "integrators", nil, "integrators to compare (default all)")
	cmd.Flags().IntVar(&compareJobs, "jobs", 1, "runs in flight at once (times are wall clock per run)")
	return cmd
}

func systemArg(args []string) (system.Definition, error) {
	if len(args) == 1 {
		return system.Resolve(args[0])
	}
	return system.Resolve(cfg.System)
}

func compareRuns(cmd *cobra.Command, args []string) error {
	def, err := systemArg(args)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	numerics := compareNumerics
	if len(numerics) == 0 {
		numerics = registry.ListNumerics()
	}
	ints := compareIntegrators
	if len(ints) == 0 {
		ints = registry.ListIntegrators()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rows, err := compareGrid(ctx, registry, def, cfg, numerics, ints, compareJobs)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("comparing %s (dt=%g, steps=%d)", def.ID, cfg.Dt, cfg.Steps)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUMERIC\tINTEGRATOR\tFINAL_X0\tENERGY_DRIFT\tTIME_MS")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%.8f\t%.2e\t%.2f\n",
			r.numeric, r.integrator, r.finalX0, r.energyDrift, float64(r.elapsed.Microseconds())/1000)
	}
	return w.Flush()
}

type compareRow struct {
	numeric     string
	integrator  string
	finalX0     float64
	energyDrift float64
	elapsed     time.Duration
}

// compareGrid runs def once per numeric and integrator pair, at most jobs at a
// time. Rows come back in grid order. The first failure cancels the rest.
func compareGrid(ctx context.Context, reg *experiment.Registry, def system.Definition, c *config.Config, numerics, ints []string, jobs int) ([]compareRow, error) {
	rows := make([]compareRow, len(numerics)*len(ints))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	for ni, num := range numerics {
		for ii, in := range ints {
			idx := ni*len(ints) + ii
			g.Go(func() error {
				exp := experiment.New(experiment.Config{
					Definition:  def,
					Numeric:     num,
					Integrator:  in,
					Dt:          c.Dt,
					Steps:       c.Steps,
					Cycles:      1,
					Workers:     c.Workers,
					SampleEvery: c.SampleEvery,
					Logger:      log,
				})
				if err := exp.Setup(reg); err != nil {
					return fmt.Errorf("%s/%s: %w", num, in, err)
				}

				result, err := exp.Run(ctx)
				if err != nil {
					return fmt.Errorf("%s/%s: %w", num, in, err)
				}

				row := compareRow{
					numeric:     num,
					integrator:  in,
					energyDrift: result.Metrics["energy_drift"],
					elapsed:     result.Elapsed,
				}
				if last := result.Frames[len(result.Frames)-1]; last.Len() > 0 {
					row.finalX0 = last.Positions[0].X
				}
				rows[idx] = row
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench [system]",
		Short: "measure step throughput across worker counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchSystem,
	}
	cmd.Flags().IntSliceVar(&benchWorkers, "workers-list", []int{1, 2, 4, 8}, "worker counts to measure")
	return cmd
}

func benchSystem(cmd *cobra.Command, args []string) error {
	def, err := systemArg(args)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	fmt.Printf("benchmarking %s (%d bodies, %s)\n\n", def.ID, def.Len(), cfg.Numeric)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tSTEPS\tTIME\tSTEPS/SEC")

	for _, workers := range benchWorkers {
		runner, err := registry.NewRunner(cfg.Numeric, def, experiment.RunnerOptions{
			Integrator: cfg.Integrator,
			Cycles:     1,
			Workers:    workers,
			Logger:     log,
		})
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < cfg.Steps; i++ {
			runner.Step(cfg.Dt)
		}
		elapsed := time.Since(start)

		stepsPerSec := float64(cfg.Steps) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", workers, cfg.Steps, elapsed, stepsPerSec)
	}

	return w.Flush()
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/experiment"
	"github.com/san-kum/nbody/internal/metrics"
	"github.com/san-kum/nbody/internal/storage"
	"github.com/san-kum/nbody/internal/system"
)

var (
	save bool
	plot bool
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "run a simulation from a preset or definition file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}

	f := runCmd.Flags()
	f.Float64("dt", config.DefaultDt, "timestep")
	f.Int("steps", config.DefaultSteps, "number of steps")
	f.Int("cycles", config.DefaultCycles, "history ring capacity")
	f.String("numeric", config.DefaultNumeric, "number representation (f64, q32, dec)")
	f.String("integrator", config.DefaultIntegrator, "integrator (euler, symplectic)")
	f.Int("workers", config.DefaultWorkers, "force loop goroutines")
	f.Int("sample", config.DefaultSampleEvery, "record a frame every n steps")
	f.Int("trail", config.DefaultTrail, "history states to print for the first body")
	f.BoolVar(&save, "save", false, "persist the run to the data directory")
	f.BoolVar(&plot, "plot", false, "plot total energy")

	for key, flag := range map[string]string{
		"dt":           "dt",
		"steps":        "steps",
		"cycles":       "cycles",
		"numeric":      "numeric",
		"integrator":   "integrator",
		"workers":      "workers",
		"sample_every": "sample",
		"trail":        "trail",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	return runCmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	name := cfg.System
	if len(args) == 1 {
		name = args[0]
	}

	def, err := system.Resolve(name)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Definition:  def,
		Numeric:     cfg.Numeric,
		Integrator:  cfg.Integrator,
		Dt:          cfg.Dt,
		Steps:       cfg.Steps,
		Cycles:      cfg.Cycles,
		Workers:     cfg.Workers,
		SampleEvery: cfg.SampleEvery,
		Trail:       cfg.Trail,
		Logger:      log,
	})
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().
		Str("system", def.ID).
		Int("bodies", def.Len()).
		Str("numeric", cfg.Numeric).
		Str("integrator", cfg.Integrator).
		Float64("dt", cfg.Dt).
		Int("steps", cfg.Steps).
		Msg("running")

	result, runErr := exp.Run(ctx)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		log.Warn().Err(runErr).Int("steps", result.StepsTaken).Msg("run interrupted")
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s  %d bodies  %s/%s", def.ID, def.Len(), cfg.Numeric, cfg.Integrator)))
	fmt.Println(dimStyle.Render(fmt.Sprintf("steps: %d  frames: %d  elapsed: %v", result.StepsTaken, len(result.Frames), result.Elapsed)))
	fmt.Println()

	final := exp.Runner().Current()
	if err := printState(final); err != nil {
		return err
	}

	if len(result.Trail) > 0 && final.Len() > 0 {
		fmt.Println()
		fmt.Println(titleStyle.Render("trail: " + final.IDs[0]))
		if err := printTrail(result.Trail, 0); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("metrics"))
	printMetrics(result.Metrics)

	if plot {
		fmt.Println()
		plotEnergy(result.Frames, def.GravitationalConstant, def.SofteningConstant)
	}

	if save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			System:     name,
			Numeric:    cfg.Numeric,
			Integrator: cfg.Integrator,
			Dt:         cfg.Dt,
			Steps:      result.StepsTaken,
			Cycles:     cfg.Cycles,
			Workers:    cfg.Workers,
			G:          def.GravitationalConstant,
			Softening:  def.SofteningConstant,
			Bodies:     def.Len(),
			Elapsed:    result.Elapsed,
			Metrics:    result.Metrics,
		}, result.Frames)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	return runErr
}

func printState(f dynamo.Frame) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMASS\tPOSITION\tVELOCITY\tACCELERATION")
	for i := 0; i < f.Len(); i++ {
		fmt.Fprintf(w, "%s\t%g\t%s\t%s\t%s\n",
			f.IDs[i],
			f.Masses[i],
			formatVec(f.Positions[i]),
			formatVec(f.Velocities[i]),
			formatVec(f.Accelerations[i]),
		)
	}
	return w.Flush()
}

func printTrail(trail []dynamo.Frame, body int) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPOSITION\tVELOCITY")
	for _, f := range trail {
		fmt.Fprintf(w, "%d\t%s\t%s\n", f.Step, formatVec(f.Positions[body]), formatVec(f.Velocities[body]))
	}
	return w.Flush()
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func plotEnergy(frames []dynamo.Frame, g, softening float64) {
	if len(frames) < 2 {
		fmt.Println(dimStyle.Render("not enough frames to plot"))
		return
	}
	data := make([]float64, len(frames))
	for i, f := range frames {
		data[i] = metrics.TotalEnergy(f, g, softening)
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total energy"),
	)
	fmt.Println(graph)
}

func formatVec(v r3.Vec) string {
	return fmt.Sprintf("(%.6g, %.6g, %.6g)", v.X, v.Y, v.Z)
}

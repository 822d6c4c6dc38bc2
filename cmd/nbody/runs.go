package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbody/internal/export"
	"github.com/san-kum/nbody/internal/storage"
	"github.com/san-kum/nbody/internal/system"
	"github.com/san-kum/nbody/internal/viz"
)

var (
	orbit     bool
	outPath   string
	svgPlane  string
	svgWidth  int
	svgHeight int
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "list built-in systems, or print one as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		def, err := system.Preset(args[0])
		if err != nil {
			return fmt.Errorf("%w (available: %v)", err, system.ListPresets())
		}
		data, err := system.Marshal(def, system.FormatJSON)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tG\tSOFTENING")
	for _, name := range system.ListPresets() {
		def, _ := system.Preset(name)
		fmt.Fprintf(w, "%s\t%d\t%g\t%g\n", name, def.Len(), def.GravitationalConstant, def.SofteningConstant)
	}
	return w.Flush()
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tBODIES\tSTEPS\tDT\tNUMERIC\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%s\t%s\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Steps,
			run.Dt,
			run.Numeric,
			run.Integrator,
		)
	}

	return w.Flush()
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and body positions of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().BoolVar(&orbit, "orbit", false, "draw the orbits instead of per-body plots")
	cmd.Flags().StringVar(&svgPlane, "plane", "xy", "projection plane for --orbit (xy, xz, yz)")
	return cmd
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("samples: %d\n\n", len(frames))

	plotEnergy(frames, meta.G, meta.Softening)
	fmt.Println()

	if orbit {
		plane, err := viz.ParsePlane(svgPlane)
		if err != nil {
			return err
		}
		canvas, err := viz.RenderOrbits(frames, 80, 24, plane)
		if err != nil {
			return err
		}
		fmt.Println(titleStyle.Render("orbits (" + svgPlane + ")"))
		fmt.Print(canvas.String())
		return nil
	}

	maxPlots := 6
	numBodies := frames[0].Len()
	if numBodies > maxPlots {
		numBodies = maxPlots
	}

	for body := 0; body < numBodies; body++ {
		data := make([]float64, len(frames))
		for i, f := range frames {
			if body < f.Len() {
				data[i] = f.Positions[body].X
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s x vs step", frames[0].IDs[body])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

// output returns stdout when outPath is empty.
func output() (io.WriteCloser, error) {
	if outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func newExportJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	return storage.ExportJSON(w, *meta, frames)
}

func newExportSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the trajectories of a saved run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&svgPlane, "plane", "xy", "projection plane (xy, xz, yz)")
	cmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	cmd.Flags().IntVar(&svgHeight, "height", 800, "image height")
	return cmd
}

func exportSVG(cmd *cobra.Command, args []string) error {
	plane, err := viz.ParsePlane(svgPlane)
	if err != nil {
		return err
	}

	frames, err := storage.New(cfg.DataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	return export.TrajectorySVG(w, frames, svgWidth, svgHeight, plane)
}

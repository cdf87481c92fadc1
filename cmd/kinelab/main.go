package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/kinelab/kinelab/internal/config"
	"github.com/kinelab/kinelab/internal/explain"
	"github.com/kinelab/kinelab/internal/metrics"
	"github.com/kinelab/kinelab/internal/store"
	"github.com/kinelab/kinelab/internal/timeline"
	"github.com/kinelab/kinelab/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	step       float64
	horizon    float64
	xa, va, aa float64
	xb, vb, ab float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kinelab",
		Short: "two-body kinematics lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// No scenario flags on the bare root; start from the default
			// chase scenario and edit interactively.
			return tui.Run(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kinelab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "sample a scenario, report the crossing, save the run",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive playback with graph editing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}
	addScenarioFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's position curves",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "stream a run's samples as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-10s %s vs %s\n", name, p.BodyA.Name, p.BodyB.Name)
			}
		},
	}

	explainCmd := &cobra.Command{
		Use:   "explain",
		Short: "run a scenario and explain the outcome",
		RunE:  explainScenario,
	}
	addScenarioFlags(explainCmd)

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd, explainCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in scenario name")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "sampling step (s)")
	cmd.Flags().Float64Var(&horizon, "time", config.DefaultHorizon, "horizon (s)")
	cmd.Flags().Float64Var(&xa, "xa", 0, "body A initial position (m)")
	cmd.Flags().Float64Var(&va, "va", 5, "body A initial velocity (m/s)")
	cmd.Flags().Float64Var(&aa, "aa", 0, "body A acceleration (m/s²)")
	cmd.Flags().Float64Var(&xb, "xb", 50, "body B initial position (m)")
	cmd.Flags().Float64Var(&vb, "vb", -2, "body B initial velocity (m/s)")
	cmd.Flags().Float64Var(&ab, "ab", 0, "body B acceleration (m/s²)")
}

// resolveConfig layers preset < config file < flags.
func resolveConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
		return cfg, nil
	}
	cfg := config.DefaultConfig()
	cfg.Step = step
	cfg.Horizon = horizon
	cfg.BodyA = config.BodyConfig{Name: "a", X0: xa, V0: va, A: aa}
	cfg.BodyB = config.BodyConfig{Name: "b", X0: xb, V0: vb, A: ab}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	a, b := cfg.Bodies()
	snap := timeline.Build(a, b, cfg.Step, cfg.Horizon)

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, snap)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%d samples, step %.2fs, horizon %.0fs)\n",
		runID, len(snap.Timeline.Frames), cfg.Step, cfg.Horizon)
	if snap.Crossing != nil {
		fmt.Printf("crossing: t=%.2fs x=%.2fm\n", snap.Crossing.T, snap.Crossing.X)
	} else {
		approach := metrics.Summarize(snap.Timeline)
		fmt.Printf("no crossing; closest approach %.2fm at t=%.2fs\n",
			approach.MinSeparation, approach.AtTime)
	}

	text, err := explain.TemplateExplainer{}.Explain(context.Background(), explain.NewRequest(a, b, snap))
	if err == nil {
		fmt.Println(text)
	}
	return nil
}

func explainScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	a, b := cfg.Bodies()
	snap := timeline.Build(a, b, cfg.Step, cfg.Horizon)

	text, err := explain.TemplateExplainer{}.Explain(context.Background(), explain.NewRequest(a, b, snap))
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tBODY A\tBODY B\tCROSSING")
	for _, r := range runs {
		crossing := "-"
		if r.Crossing != nil {
			crossing = fmt.Sprintf("t=%.2fs", r.Crossing.T)
		}
		fmt.Fprintf(w, "%s\t%s\t%s (%s)\t%s (%s)\t%s\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"),
			r.BodyA.Name, r.BodyA.Mode, r.BodyB.Name, r.BodyB.Mode, crossing)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	tl, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	seriesA := make([]float64, len(tl.Frames))
	seriesB := make([]float64, len(tl.Frames))
	for i, f := range tl.Frames {
		seriesA[i] = f.A.X
		seriesB[i] = f.B.X
	}

	fmt.Println(asciigraph.PlotMany(
		[][]float64{seriesA, seriesB},
		asciigraph.Height(16),
		asciigraph.Width(72),
		asciigraph.Caption("position (m) over time"),
	))

	if c, ok := timeline.DetectCrossing(tl); ok {
		fmt.Printf("crossing: t=%.2fs x=%.2fm\n", c.T, c.X)
	} else {
		fmt.Println("no crossing within the horizon")
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.LoadMetadata(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	f, err := os.Open(st.SamplesPath(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, f)
	return err
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/wavelab/internal/analysis"
	"github.com/san-kum/wavelab/internal/config"
	"github.com/san-kum/wavelab/internal/export"
	"github.com/san-kum/wavelab/internal/field"
	"github.com/san-kum/wavelab/internal/gui"
	"github.com/san-kum/wavelab/internal/mesh"
	"github.com/san-kum/wavelab/internal/scene"
	"github.com/san-kum/wavelab/internal/share"
	"github.com/san-kum/wavelab/internal/surface"
	"github.com/san-kum/wavelab/internal/tui"
)

var (
	configFile string
	preset     string
	shareCode  string
	styleName  string
	modeName   string
	speed      float64
	atTime     float64
	// Sampling controls for plot and spectrum
	samples int
	span    float64
	probeDt float64
	// Export target
	outPath string
	format  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wavelab",
		Short: "wave interference visualizer",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to interactive GUI mode when no command given
			gui.RunInteractive()
		},
	}

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "open the GUI on a configured scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := sceneFromFlags(cmd)
			if err != nil {
				return err
			}
			gui.Run(sc)
			return nil
		},
	}
	addSceneFlags(viewCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal source editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := sceneFromFlags(cmd)
			if err != nil {
				return err
			}
			return tui.Run(sc)
		},
	}
	addSceneFlags(tuiCmd)

	evalCmd := &cobra.Command{
		Use:   "eval [x] [y]",
		Short: "evaluate the field at a point",
		Args:  cobra.ExactArgs(2),
		RunE:  evalPoint,
	}
	addSceneFlags(evalCmd)
	evalCmd.Flags().Float64Var(&atTime, "time", 0.0, "evaluation time")

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "evaluate the full surface and export it",
		RunE:  exportGrid,
	}
	addSceneFlags(gridCmd)
	gridCmd.Flags().Float64Var(&atTime, "time", 0.0, "evaluation time")
	gridCmd.Flags().StringVar(&outPath, "out", "field.json", "output path")
	gridCmd.Flags().StringVar(&format, "format", "json", "output format (json, csv)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot a cross-section of the field",
		RunE:  plotSection,
	}
	addSceneFlags(plotCmd)
	plotCmd.Flags().Float64Var(&atTime, "time", 0.0, "evaluation time")
	plotCmd.Flags().IntVar(&samples, "samples", 120, "sample count")
	plotCmd.Flags().Float64Var(&span, "span", 400, "half-width of the section")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [x] [y]",
		Short: "frequency analysis of a probe point",
		Args:  cobra.ExactArgs(2),
		RunE:  probeSpectrum,
	}
	addSceneFlags(spectrumCmd)
	spectrumCmd.Flags().IntVar(&samples, "samples", 512, "probe sample count")
	spectrumCmd.Flags().Float64Var(&probeDt, "dt", 0.125, "probe sample interval")

	shareCmd := &cobra.Command{
		Use:   "share",
		Short: "encode and decode shareable scene codes",
	}
	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "print the share code for a configured scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := sceneFromFlags(cmd)
			if err != nil {
				return err
			}
			fmt.Println(share.EncodeString(sc.ToShare()))
			return nil
		},
	}
	addSceneFlags(encodeCmd)
	decodeCmd := &cobra.Command{
		Use:   "decode [code]",
		Short: "print the scene a share code describes",
		Args:  cobra.ExactArgs(1),
		RunE:  decodeShare,
	}
	shareCmd.AddCommand(encodeCmd, decodeCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scene presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d sources\tc=%.0f\t%s\n",
					name, len(cfg.Sources), cfg.Speed, cfg.Mode)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(viewCmd, tuiCmd, evalCmd, gridCmd, plotCmd, spectrumCmd, shareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scene config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in preset name")
	cmd.Flags().StringVar(&shareCode, "share", "", "share code to restore")
	cmd.Flags().StringVar(&styleName, "style", "water", "render style (water, 3d, 2d)")
	cmd.Flags().StringVar(&modeName, "mode", "elongation", "display mode")
	cmd.Flags().Float64Var(&speed, "speed", scene.DefaultSpeed, "propagation speed")
}

// sceneFromFlags builds the starting scene: preset, then config file, then a
// share code, with changed flags overriding on top.
func sceneFromFlags(cmd *cobra.Command) (*scene.Scene, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	sc := cfg.Scene()

	if shareCode != "" {
		st, ok := share.DecodeString(shareCode)
		if !ok {
			return nil, fmt.Errorf("invalid share code")
		}
		sc.ApplyShare(st)
	}

	if cmd.Flags().Changed("style") {
		sc.Style = scene.ParseStyle(styleName)
	}
	if cmd.Flags().Changed("mode") {
		sc.Mode = field.ParseMode(modeName)
	}
	if cmd.Flags().Changed("speed") {
		sc.Speed = speed
	}
	return sc, nil
}

func parsePoint(args []string) (x, y float64, err error) {
	if x, err = strconv.ParseFloat(args[0], 64); err != nil {
		return 0, 0, fmt.Errorf("bad x coordinate: %s", args[0])
	}
	if y, err = strconv.ParseFloat(args[1], 64); err != nil {
		return 0, 0, fmt.Errorf("bad y coordinate: %s", args[1])
	}
	return x, y, nil
}

func evalPoint(cmd *cobra.Command, args []string) error {
	x, y, err := parsePoint(args)
	if err != nil {
		return err
	}
	sc, err := sceneFromFlags(cmd)
	if err != nil {
		return err
	}

	s := field.Eval(x, y, atTime, sc.Sources(), sc.Speed, sc.Mode, false)
	fmt.Printf("point     (%.2f, %.2f) at t=%.3fs\n", x, y, atTime)
	fmt.Printf("%-9s %.6f\n", sc.Mode, s.Value)
	fmt.Printf("elevation %.6f\n", s.Elongation)
	fmt.Printf("gradient  (%.6f, %.6f)\n", s.GradX, s.GradY)
	return nil
}

func exportGrid(cmd *cobra.Command, args []string) error {
	sc, err := sceneFromFlags(cmd)
	if err != nil {
		return err
	}

	g := mesh.New(mesh.ResolutionFor(sc.Speed))
	f := surface.NewField(g)
	snap := surface.Snapshot{
		Sources: sc.Sources(),
		Speed:   sc.Speed,
		Time:    atTime,
		Mode:    sc.Mode,
		Damped:  sc.Style == scene.StyleWater,
	}
	f.Evaluate(snap)

	out := export.Build(f, snap)
	switch format {
	case "csv":
		err = export.WriteCSV(outPath, out)
	case "json":
		err = export.WriteJSON(outPath, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d vertices)\n", outPath, out.Resolution+1, out.Resolution+1)
	return nil
}

func plotSection(cmd *cobra.Command, args []string) error {
	sc, err := sceneFromFlags(cmd)
	if err != nil {
		return err
	}

	if samples < 2 {
		samples = 2
	}
	values := make([]float64, samples)
	for i := range values {
		x := (float64(i)/float64(samples-1)*2 - 1) * span
		values[i] = field.Eval(x, 0, atTime, sc.Sources(), sc.Speed, sc.Mode, false).Value
	}

	fmt.Printf("%s along y=0, x in [%.0f, %.0f], t=%.2fs\n\n", sc.Mode, -span, span, atTime)
	fmt.Println(asciigraph.Plot(values, asciigraph.Height(16), asciigraph.Width(80)))
	return nil
}

func probeSpectrum(cmd *cobra.Command, args []string) error {
	x, y, err := parsePoint(args)
	if err != nil {
		return err
	}
	sc, err := sceneFromFlags(cmd)
	if err != nil {
		return err
	}

	series := analysis.ProbeSeries(x, y, sc.Sources(), sc.Speed, sc.Mode, 0, probeDt, samples)
	spectrum := analysis.PowerSpectrum(series)
	if len(spectrum) == 0 {
		return fmt.Errorf("not enough samples")
	}

	fmt.Printf("probe (%.2f, %.2f), %d samples at %.3fs\n\n", x, y, samples, probeDt)
	fmt.Println(asciigraph.Plot(spectrum, asciigraph.Height(12), asciigraph.Width(80)))
	fmt.Printf("\ndominant frequency: %.3f Hz\n", analysis.DominantFrequency(spectrum, probeDt))
	return nil
}

func decodeShare(cmd *cobra.Command, args []string) error {
	st, ok := share.DecodeString(args[0])
	if !ok {
		return fmt.Errorf("invalid share code")
	}

	fmt.Printf("speed %.2f  style %s  mode %s\n\n",
		st.Speed, scene.Style(st.AppMode), field.Mode(st.ParamMode))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tx\ty\tamp\tfreq\tphase\tvisible")
	for _, src := range st.Sources {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%v\n",
			src.ID, src.X, src.Y, src.Amplitude, src.Frequency, src.Phase, src.Visible)
	}
	return w.Flush()
}

package main

import (
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bfarr/prism/internal/anim"
	"github.com/bfarr/prism/internal/config"
	"github.com/bfarr/prism/internal/corner"
	"github.com/bfarr/prism/internal/demo"
	"github.com/bfarr/prism/internal/export"
	"github.com/bfarr/prism/internal/hist"
	"github.com/bfarr/prism/internal/store"
	"github.com/bfarr/prism/internal/tui"
)

var (
	dataDir string

	// render
	outPath    string
	fps        int
	length     float64
	samps      int
	bins       int
	markerSize float64
	color      string
	histStyle  string
	configFile string
	labelsFlag string
	truthsFlag string
	live       bool

	// preview / export
	frame       int
	width       int
	panelSize   int
	exportOut   string
	exportPanel int

	// demo
	steps   int
	walkers int
	means   string
	sigmas  string
	mcStep  float64
	seed    int64
	name    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prism",
		Short: "animate corner plots of evolving sample chains",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".prism", "chain directory")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "generate a demo chain with a Metropolis ensemble",
		RunE:  runDemo,
	}
	demoCmd.Flags().IntVar(&steps, "steps", 600, "timesteps to record")
	demoCmd.Flags().IntVar(&walkers, "walkers", 120, "walkers in the ensemble")
	demoCmd.Flags().StringVar(&means, "means", "0,2,-1", "target means (comma separated)")
	demoCmd.Flags().StringVar(&sigmas, "sigmas", "1,0.5,2", "target sigmas (comma separated)")
	demoCmd.Flags().Float64Var(&mcStep, "step", 0.4, "proposal scale in sigmas")
	demoCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	demoCmd.Flags().StringVar(&name, "name", "demo", "chain name")

	renderCmd := &cobra.Command{
		Use:   "render [chain_id]",
		Short: "render a chain to video",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&outPath, "out", "corner.avi", "output file (.avi, .gif, or .html)")
	renderCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	renderCmd.Flags().Float64Var(&length, "length", config.DefaultRoughLength, "rough duration in seconds")
	renderCmd.Flags().IntVar(&samps, "samps", config.DefaultSampsPerFrame, "timesteps per frame")
	renderCmd.Flags().IntVar(&bins, "bins", config.DefaultFinalBins, "target bins over the final posterior")
	renderCmd.Flags().Float64Var(&markerSize, "ms", config.DefaultMarkerSize, "scatter marker size")
	renderCmd.Flags().StringVar(&color, "color", config.DefaultColor, "sample color")
	renderCmd.Flags().StringVar(&histStyle, "hist", "step", "histogram style (step or bar)")
	renderCmd.Flags().IntVar(&panelSize, "panel", config.DefaultPanelSize, "panel size in pixels")
	renderCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	renderCmd.Flags().StringVar(&labelsFlag, "labels", "", "parameter labels (comma separated)")
	renderCmd.Flags().StringVar(&truthsFlag, "truths", "", "true parameter values (comma separated)")
	renderCmd.Flags().BoolVar(&live, "live", false, "show live encoding progress")

	previewCmd := &cobra.Command{
		Use:   "preview [chain_id]",
		Short: "preview a frame in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	previewCmd.Flags().IntVar(&frame, "frame", -1, "frame index (-1 for final)")
	previewCmd.Flags().IntVar(&width, "width", 60, "preview width in characters")

	exportCmd := &cobra.Command{
		Use:   "export [chain_id]",
		Short: "export a single frame (.svg or .png)",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().IntVar(&frame, "frame", -1, "frame index (-1 for final)")
	exportCmd.Flags().StringVar(&exportOut, "out", "frame.svg", "output file")
	exportCmd.Flags().IntVar(&exportPanel, "panel", 160, "panel size in pixels")

	infoCmd := &cobra.Command{
		Use:   "info [chain_id]",
		Short: "show chain statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored chains",
		RunE:  runList,
	}

	rootCmd.AddCommand(demoCmd, renderCmd, previewCmd, exportCmd, infoCmd, listCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	mu, err := parseFloats(means)
	if err != nil {
		return fmt.Errorf("bad means: %w", err)
	}
	sg, err := parseFloats(sigmas)
	if err != nil {
		return fmt.Errorf("bad sigmas: %w", err)
	}

	target, err := demo.Gaussian(mu, sg)
	if err != nil {
		return err
	}

	fmt.Printf("sampling %d steps x %d walkers in %d dimensions...\n", steps, walkers, target.Dim())
	start := time.Now()
	c, err := demo.NewSampler(target, mcStep, seed).Run(steps, walkers)
	if err != nil {
		return err
	}
	fmt.Printf("sampled in %v\n", time.Since(start))

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	labels := make([]string, target.Dim())
	for d := range labels {
		labels[d] = fmt.Sprintf("p%d", d)
	}

	id, err := st.Save(name, c, labels, mu, seed)
	if err != nil {
		return err
	}
	fmt.Printf("chain id: %s\n", id)
	fmt.Printf("render it with: prism render %s\n", id)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	c, meta, err := store.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	// CLI flags override config, which overrides chain metadata.
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("length") {
		cfg.RoughLength = length
	}
	if cmd.Flags().Changed("samps") {
		cfg.SampsPerFrame = samps
	}
	if cmd.Flags().Changed("bins") {
		cfg.FinalBins = bins
	}
	if cmd.Flags().Changed("ms") {
		cfg.MarkerSize = markerSize
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = color
	}
	if cmd.Flags().Changed("hist") {
		cfg.Hist.Style = histStyle
	}
	if cmd.Flags().Changed("panel") {
		cfg.PanelSize = panelSize
	}

	labels := meta.Labels
	if cfg.Labels != nil {
		labels = cfg.Labels
	}
	if cmd.Flags().Changed("labels") {
		labels = parseLabels(labelsFlag)
	}

	truths := meta.Truths
	if cfg.Truths != nil {
		truths = cfg.Truths
	}
	if cmd.Flags().Changed("truths") {
		truths, err = parseFloats(truthsFlag)
		if err != nil {
			return fmt.Errorf("bad truths: %w", err)
		}
	}

	style, err := cfg.Style()
	if err != nil {
		return err
	}

	binning, err := hist.Compute(c, cfg.FinalBins)
	if err != nil {
		return err
	}

	grid, err := corner.NewGrid(c, binning, labels, truths, style)
	if err != nil {
		return err
	}

	a, err := anim.New(c, grid, cfg.Options())
	if err != nil {
		return err
	}

	fmt.Printf("chain: %s (%d steps, %d walkers, %d parameters)\n",
		meta.ID, meta.Steps, meta.Walkers, meta.Dim)
	if a.ThinFactor() > 1 {
		fmt.Printf("thinning by %d: %d frames retained\n", a.ThinFactor(), a.Frames())
	}
	fmt.Printf("encoding %d frames at %d fps (%.1fs)...\n", a.Frames(), a.FPS(), a.Duration())

	start := time.Now()
	if live {
		err = saveLive(a, outPath)
	} else {
		a.Progress = func(frame, total int) {
			if total >= 10 && (frame+1)%(total/10) == 0 {
				fmt.Printf("  %d/%d frames\n", frame+1, total)
			}
		}
		err = a.Save(outPath)
	}
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s in %v\n", outPath, time.Since(start))
	return nil
}

func saveLive(a *anim.Animation, out string) error {
	msgs := make(chan tea.Msg, 1)
	a.Progress = func(frame, total int) {
		msgs <- tui.FrameMsg{Frame: frame, Total: total}
	}
	go func() {
		msgs <- tui.DoneMsg{Err: a.Save(out)}
	}()

	final, err := tea.NewProgram(tui.NewModel(out, a.Frames(), msgs)).Run()
	if err != nil {
		tui.Drain(msgs)
		return err
	}
	m := final.(tui.Model)
	if m.Aborted() {
		tui.Drain(msgs)
		return fmt.Errorf("aborted")
	}
	return m.Err()
}

func runPreview(cmd *cobra.Command, args []string) error {
	c, meta, err := store.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	binning, err := hist.Compute(c, config.DefaultFinalBins)
	if err != nil {
		return err
	}

	f := frame
	if f < 0 {
		f = c.Steps() - 1
	}

	out, err := export.Terminal(c, binning, meta.Labels, f, width)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	c, meta, err := store.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	binning, err := hist.Compute(c, config.DefaultFinalBins)
	if err != nil {
		return err
	}

	f := frame
	if f < 0 {
		f = c.Steps() - 1
	}

	switch {
	case strings.HasSuffix(exportOut, ".svg"):
		svg, err := export.SVG(c, binning, meta.Truths, f, exportPanel)
		if err != nil {
			return err
		}
		return os.WriteFile(exportOut, []byte(svg), 0644)

	case strings.HasSuffix(exportOut, ".png"):
		style := corner.DefaultStyle()
		style.PanelSize = exportPanel
		grid, err := corner.NewGrid(c, binning, meta.Labels, meta.Truths, style)
		if err != nil {
			return err
		}
		if err := grid.Update(f, c); err != nil {
			return err
		}
		img, err := grid.Render()
		if err != nil {
			return err
		}
		file, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer file.Close()
		return png.Encode(file, img)

	default:
		return fmt.Errorf("unsupported export format %q (want .svg or .png)", exportOut)
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	c, meta, err := store.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("chain: %s\n", meta.ID)
	fmt.Printf("created: %s\n", meta.Created.Format("2006-01-02 15:04:05"))
	fmt.Printf("shape: %d steps x %d walkers x %d parameters\n\n", meta.Steps, meta.Walkers, meta.Dim)

	binning, err := hist.Compute(c, config.DefaultFinalBins)
	if err != nil {
		fmt.Printf("binning: %v\n", err)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tLABEL\tMIN\tMAX\tBINS\tTRUTH")
	for d := 0; d < meta.Dim; d++ {
		label := ""
		if meta.Labels != nil {
			label = meta.Labels[d]
		}
		truth := ""
		if meta.Truths != nil {
			truth = strconv.FormatFloat(meta.Truths[d], 'g', 4, 64)
		}
		fmt.Fprintf(w, "%d\t%s\t%.4g\t%.4g\t%d\t%s\n",
			d, label, binning.Extents[d].Min, binning.Extents[d].Max, len(binning.Edges[d]), truth)
	}
	return w.Flush()
}

func runList(cmd *cobra.Command, args []string) error {
	chains, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(chains) == 0 {
		fmt.Println("no chains found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tSTEPS\tWALKERS\tDIM")
	for _, meta := range chains {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			meta.ID,
			meta.Name,
			meta.Created.Format("2006-01-02 15:04:05"),
			meta.Steps,
			meta.Walkers,
			meta.Dim,
		)
	}
	return w.Flush()
}

func parseLabels(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/boxdrop/internal/bootstrap"
	"github.com/san-kum/boxdrop/internal/config"
	"github.com/san-kum/boxdrop/internal/export"
	"github.com/san-kum/boxdrop/internal/gui"
	"github.com/san-kum/boxdrop/internal/headless"
	"github.com/san-kum/boxdrop/internal/integrators"
	"github.com/san-kum/boxdrop/internal/metrics"
	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/scene"
	"github.com/san-kum/boxdrop/internal/storage"
	"github.com/san-kum/boxdrop/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string

	backend    string
	integrator string
	fps        int

	frames int
	dt     float64
	save   bool

	width  int
	height int

	plotMesh string
	svgOut   string

	configOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "boxdrop",
		Short:         "a box dropped on a bouncy floor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".boxdrop", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "default", "scene preset")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	sceneFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "physics backend (anything unregistered runs without physics)")
		cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator used by the rigid backend")
		cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the scene in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	sceneFlags(guiCmd)
	guiCmd.Flags().IntVar(&width, "width", 1280, "window width")
	guiCmd.Flags().IntVar(&height, "height", 720, "window height")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "render the scene in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	sceneFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "step the scene without a display and record it",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	sceneFlags(runCmd)
	runCmd.Flags().IntVar(&frames, "frames", 300, "frames to render")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "seconds per frame (default 1/fps)")
	runCmd.Flags().BoolVar(&save, "save", true, "save the run under the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a mesh's height over a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotMesh, "mesh", "", "mesh to plot (default: the box)")

	exportCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "print a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	svgCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write a mesh's height over a saved run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVar(&plotMesh, "mesh", "", "mesh to plot (default: the box)")
	svgCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default: stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}
	sceneFlags(configCmd)
	configCmd.Flags().StringVarP(&configOut, "output", "o", "", "write to a file instead of stdout")

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, listCmd, plotCmd, exportCmd, svgCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig applies the preset, then the config file, then any flag the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Physics.Backend = backend
	}
	if flags.Changed("integrator") {
		cfg.Physics.Integrator = integrator
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if _, err := integrators.Get(cfg.Physics.Integrator); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func newLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", logLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func bootOptions(cfg *config.Config, log *slog.Logger, factory bootstrap.EngineFactory) bootstrap.Options {
	return bootstrap.Options{
		NewEngine: factory,
		Physics:   physics.Default(cfg.Physics.Integrator, cfg.Physics.Substeps),
		Logger:    log,
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	doc := gui.OpenDocument(cfg.SurfaceID, width, height, "boxdrop")
	defer doc.Close()

	driver, err := bootstrap.Boot(doc, cfg, bootOptions(cfg, log, func(s scene.Surface) (scene.Engine, error) {
		return gui.NewEngine(s, cfg.FPS)
	}))
	if err != nil {
		return err
	}
	defer driver.Close()

	ctx, cancel := signalContext()
	defer cancel()
	return driver.Run(ctx)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(st.Dir(), "boxdrop.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log, err := newLogger(logFile)
	if err != nil {
		return err
	}

	doc := viz.NewDocument(cfg.SurfaceID, 80, 24)
	driver, err := bootstrap.Boot(doc, cfg, bootOptions(cfg, log, func(s scene.Surface) (scene.Engine, error) {
		return viz.NewEngine(s, cfg.FPS)
	}))
	if err != nil {
		return err
	}
	defer driver.Close()

	ctx, cancel := signalContext()
	defer cancel()
	return driver.Run(ctx)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	step := dt
	if step <= 0 {
		step = 1 / float64(cfg.FPS)
	}

	var engine *headless.Engine
	doc := headless.NewDocument(cfg.SurfaceID, 800, 600)
	driver, err := bootstrap.Boot(doc, cfg, bootOptions(cfg, log, func(s scene.Surface) (scene.Engine, error) {
		e, err := headless.NewEngine(s, frames, step)
		engine = e
		return e, err
	}))
	if err != nil {
		return err
	}
	defer driver.Close()

	ctx, cancel := signalContext()
	defer cancel()
	if err := driver.Run(ctx); err != nil {
		return err
	}

	sc := driver.Scene()
	fmt.Printf("preset: %s\n", preset)
	fmt.Printf("physics: %s\n", physicsSummary(sc, cfg))
	fmt.Printf("frames: %d (%.3fs)\n", driver.Frames(), sc.Elapsed())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MESH\tX\tY\tZ")
	for _, m := range sc.Meshes() {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", m.Name, m.Position.X, m.Position.Y, m.Position.Z)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	var summary map[string]float64
	if sc.PhysicsEnabled() {
		summary = metrics.Collect(engine.Samples(), metrics.ForBody(cfg.Box.Name, cfg.Box.Mass, cfg.Physics.Gravity[1])...)
		fmt.Println()
		for _, name := range []string{"max_speed", "bounces", "settle_time", "energy_loss"} {
			fmt.Printf("%-12s %.4f\n", name+":", summary[name])
		}
	}

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset:     preset,
		Backend:    cfg.Physics.Backend,
		Integrator: cfg.Physics.Integrator,
		Physics:    sc.PhysicsEnabled(),
		Dt:         step,
		Frames:     driver.Frames(),
		Metrics:    summary,
	}, engine.Samples())
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved: %s\n", runID)
	return nil
}

func physicsSummary(sc *scene.Scene, cfg *config.Config) string {
	if !sc.PhysicsEnabled() {
		return "off (backend " + cfg.Physics.Backend + " not available)"
	}
	return fmt.Sprintf("%s/%s, gravity %.2f", sc.PhysicsEngine().Name(), cfg.Physics.Integrator, sc.Gravity().Y)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tDT\tPHYSICS\tINTEG")
	for _, run := range runs {
		phys := "off"
		if run.Physics {
			phys = run.Backend
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			phys,
			run.Integrator,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	mesh := meshOrBox()
	ys := storage.Series(samples, mesh)
	if len(ys) == 0 {
		return fmt.Errorf("no samples for mesh %q in run %s", mesh, runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(ys))

	graph := asciigraph.Plot(ys,
		asciigraph.Height(12),
		asciigraph.Width(min(len(ys), 80)),
		asciigraph.Caption(mesh+" height"),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	samples, err := storage.New(dataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return export.WriteHeightSVG(w, samples, meshOrBox(), 800, 400)
}

func meshOrBox() string {
	if plotMesh != "" {
		return plotMesh
	}
	return config.DefaultConfig().Box.Name
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if configOut != "" {
		return config.Save(configOut, cfg)
	}
	return config.Write(os.Stdout, cfg)
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wheelspin/internal/config"
	"github.com/san-kum/wheelspin/internal/engine"
	"github.com/san-kum/wheelspin/internal/export"
	"github.com/san-kum/wheelspin/internal/server"
	"github.com/san-kum/wheelspin/internal/sim"
	"github.com/san-kum/wheelspin/internal/viz"
	"github.com/san-kum/wheelspin/internal/wheel"
	"github.com/spf13/cobra"
)

var (
	// Global
	configFile string
	preset     string
	logLevel   string
	// Spin
	velocity  float64
	direction string
	maxTicks  int
	plot      bool
	// Sweep
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	// Trace
	format  string
	outFile string
	// Play / serve
	theme string
	addr  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "wheelspin",
		Short:        "drag-to-spin wheel selector",
		SilenceUsage: true,
		RunE:         runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "spin the wheel in the terminal",
		RunE:  runPlay,
	}
	playCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	spinCmd := &cobra.Command{
		Use:   "spin",
		Short: "simulate a single release headlessly",
		RunE:  runSpin,
	}
	addSpinFlags(spinCmd)
	spinCmd.Flags().BoolVar(&plot, "plot", false, "plot angular velocity decay")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "export the frames of a simulated spin",
		RunE:  runTrace,
	}
	addSpinFlags(traceCmd)
	traceCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json, svg)")
	traceCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare selections across release velocities",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.5, "lowest release velocity (px/ms)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 5, "highest release velocity (px/ms)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of velocities")
	sweepCmd.Flags().StringVar(&direction, "direction", "right", "release direction (left, right)")
	sweepCmd.Flags().IntVar(&maxTicks, "max-ticks", sim.DefaultConfig().MaxTicks, "tick limit per spin")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve wheels over websocket at /ws",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFRICTION\tSCALE\tTICK RATE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.3f\t%.2f\t%d\n", name, p.FrictionAir, p.ScaleFactor, p.TickRate)
			}
			return w.Flush()
		},
	}

	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "list the wheel's items in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, _, err := loadConfig()
			if err != nil {
				return err
			}
			for i, item := range ec.Catalog.Items() {
				fmt.Printf("%2d  %s\n", i, item)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := fileConfig()
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(playCmd, spinCmd, traceCmd, sweepCmd, serveCmd, presetsCmd, itemsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSpinFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&velocity, "velocity", 2.5, "release velocity (px/ms)")
	cmd.Flags().StringVar(&direction, "direction", "right", "release direction (left, right)")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", sim.DefaultConfig().MaxTicks, "tick limit")
}

// fileConfig applies the preset, then the config file on top of it.
func fileConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		if !config.ApplyPreset(cfg, preset) {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func loadConfig() (engine.Config, *log.Logger, error) {
	cfg, err := fileConfig()
	if err != nil {
		return engine.Config{}, nil, err
	}
	lvl, err := cfg.Level()
	if err != nil {
		return engine.Config{}, nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		Prefix:          "wheelspin",
		ReportTimestamp: true,
	})

	ec, err := cfg.Engine()
	if err != nil {
		return engine.Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return ec, logger, nil
}

func parseDirection(s string) (wheel.Direction, error) {
	switch strings.ToLower(s) {
	case "right", "r", "1", "+1", "cw":
		return wheel.Right, nil
	case "left", "l", "-1", "ccw":
		return wheel.Left, nil
	}
	return wheel.None, fmt.Errorf("unknown direction: %q (want left or right)", s)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ec, _, err := loadConfig()
	if err != nil {
		return err
	}
	// Logging to the terminal would tear the alternate screen.
	return viz.Run(ec, log.New(io.Discard), theme)
}

func simulate() (*sim.Result, error) {
	ec, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dir, err := parseDirection(direction)
	if err != nil {
		return nil, err
	}

	ctx, cancel := signalContext()
	defer cancel()

	s := sim.New(ec)
	s.SetLogger(logger)
	cfg := sim.DefaultConfig()
	cfg.MaxTicks = maxTicks
	return s.RunFlick(ctx, velocity, dir, cfg)
}

func runSpin(cmd *cobra.Command, args []string) error {
	result, err := simulate()
	if err != nil {
		return fmt.Errorf("spin failed: %w", err)
	}

	rel := result.Release
	fmt.Printf("release:   %.3f px/ms %s\n", rel.Velocity, rel.Direction)
	fmt.Printf("impulse:   %.4f rad/tick\n", rel.Impulse)
	fmt.Printf("selection: %s\n\n", rel.Window)

	if result.SettledAt >= 0 {
		fmt.Printf("settled after %d ticks\n\n", result.SettledAt)
	} else {
		fmt.Printf("still spinning after %d ticks\n\n", result.StepsTaken)
	}

	printMetrics(result.Metrics)

	if plot && len(result.Frames) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Velocities(),
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("angular velocity (rad/tick) vs tick"),
		))
	}
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, m[name])
	}
	w.Flush()
}

func runTrace(cmd *cobra.Command, args []string) error {
	result, err := simulate()
	if err != nil {
		return fmt.Errorf("trace failed: %w", err)
	}

	out := io.Writer(os.Stdout)
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "csv":
		err = export.WriteCSV(out, result)
	case "json":
		err = export.WriteJSON(out, result)
	case "svg":
		svg := export.CurveToSVG(result.Velocities(), 800, 300, "#00aaff")
		if svg == "" {
			return fmt.Errorf("not enough frames to plot")
		}
		_, err = io.WriteString(out, svg)
	default:
		return fmt.Errorf("unknown format: %s (want csv, json or svg)", format)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "wrote %d frames to %s\n", len(result.Frames), outFile)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepSteps < 1 {
		return fmt.Errorf("steps must be positive")
	}
	ec, logger, err := loadConfig()
	if err != nil {
		return err
	}
	dir, err := parseDirection(direction)
	if err != nil {
		return err
	}

	velocities := make([]float64, sweepSteps)
	for i := range velocities {
		velocities[i] = sweepFrom
		if sweepSteps > 1 {
			velocities[i] += (sweepTo - sweepFrom) * float64(i) / float64(sweepSteps-1)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	s := sim.New(ec)
	s.SetLogger(logger)
	cfg := sim.DefaultConfig()
	cfg.MaxTicks = maxTicks
	results, err := s.Sweep(ctx, velocities, dir, cfg)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VELOCITY\tIMPULSE\tSTART\tITEMS\tSETTLE\tREVS")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%.4f\t%d\t%s\t%d\t%.2f\n",
			r.Release.Velocity,
			r.Release.Impulse,
			r.Release.Window.Start,
			strings.Join(r.Release.Window.Items[:], ", "),
			r.SettledAt,
			r.Metrics["revolutions"],
		)
	}
	return w.Flush()
}

func runServe(cmd *cobra.Command, args []string) error {
	ec, logger, err := loadConfig()
	if err != nil {
		return err
	}
	srv, err := server.New(server.Config{Engine: ec}, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	return srv.ListenAndServe(ctx, addr)
}

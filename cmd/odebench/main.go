package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/odebench/internal/backend"
	"github.com/san-kum/odebench/internal/config"
	"github.com/san-kum/odebench/internal/equiv"
	"github.com/san-kum/odebench/internal/harness"
	"github.com/san-kum/odebench/internal/model"
	"github.com/san-kum/odebench/internal/results"
	"github.com/san-kum/odebench/internal/sweep"
)

var (
	configFile  string
	dataDir     string
	modelName   string
	backendName string
	modeName    string
	rtol        float64
	atol        float64
	reportPath  string
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// main registers commands and executes the root command. One bench
// invocation measures one trajectory count: counts span orders of
// magnitude and backends may need process isolation between sizes, so
// the sweep over counts lives in the caller's shell loop.
func main() {
	rootCmd := &cobra.Command{
		Use:   "odebench",
		Short: "benchmark and cross-validate ODE ensemble solver backends",
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (overrides config)")

	benchCmd := &cobra.Command{
		Use:   "bench [count]",
		Short: "measure one trajectory count against a backend",
		Args:  cobra.ExactArgs(1),
		RunE:  runBench,
	}
	benchCmd.Flags().StringVar(&modelName, "model", "", "model name (default from config)")
	benchCmd.Flags().StringVar(&backendName, "backend", "cpu", "backend adapter")
	benchCmd.Flags().StringVar(&modeName, "mode", "both", "stepping mode: fixed, adaptive or both")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "pairwise comparison of stored calibration snapshots",
		RunE:  runCompare,
	}
	compareCmd.Flags().Float64Var(&rtol, "rtol", 0, "relative tolerance (default from config)")
	compareCmd.Flags().Float64Var(&atol, "atol", 0, "absolute tolerance (default from config)")
	compareCmd.Flags().StringVar(&reportPath, "out", "pairwise_comparisons.md", "report output path")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list catalog models",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := model.NewCatalog()
			for _, name := range catalog.Names() {
				def, err := catalog.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Printf("%-12s dim=%d  %s in [%g, %g]  t in [%g, %g]\n",
					def.Name, def.Dim(), def.Param.Name, def.Param.Lo, def.Param.Hi, def.Span.T0, def.Span.T1)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [count]",
		Short: "print the parameter sweep a count would produce",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&modelName, "model", "", "model name (default from config)")

	rootCmd.AddCommand(benchCmd, compareCmd, modelsCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if modelName == "" {
		modelName = cfg.Model
	}
	return cfg, nil
}

func parseCount(arg string) (int, error) {
	count, err := strconv.Atoi(arg)
	if err != nil || count < 1 {
		return 0, fmt.Errorf("%w: got %q", sweep.ErrInvalidCount, arg)
	}
	return count, nil
}

func benchModes() ([]backend.Mode, error) {
	switch modeName {
	case "fixed":
		return []backend.Mode{backend.Fixed}, nil
	case "adaptive":
		return []backend.Mode{backend.Adaptive}, nil
	case "both":
		return []backend.Mode{backend.Fixed, backend.Adaptive}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q (want fixed, adaptive or both)", modeName)
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	count, err := parseCount(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Everything below must fail before any device work begins.
	def, err := model.NewCatalog().Lookup(modelName)
	if err != nil {
		return err
	}
	ad, err := backend.New(backendName)
	if err != nil {
		return err
	}
	modes, err := benchModes()
	if err != nil {
		return err
	}
	prec, err := sweep.ParsePrecision(cfg.Precision)
	if err != nil {
		return err
	}
	params, err := sweep.Generate(def.Param.Lo, def.Param.Hi, count, prec)
	if err != nil {
		return err
	}

	store := results.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return err
	}
	h := harness.New(store, cfg.RepeatOverrides())

	for _, mode := range modes {
		stepCfg := cfg.StepConfig(mode)
		logger.Info("measuring cell",
			"model", def.Name, "backend", ad.Name(), "mode", string(mode),
			"count", count, "repeats", h.Repeats(ad.Class()))

		res, err := h.Measure(ad, def, stepCfg, params)
		if err != nil {
			return err
		}
		fmt.Printf("%d ODE solves with %s time-stepping completed in %.1f ms\n",
			res.Count, mode, res.ElapsedMS)

		// The calibration count also produces the snapshot the
		// comparison step reads.
		if count == cfg.CalibrationCount {
			final, err := h.FinalStates(ad, def, stepCfg, params)
			if err != nil {
				return err
			}
			if err := store.WriteSnapshot(ad.Name(), string(mode), final); err != nil {
				return err
			}
			logger.Info("calibration snapshot written",
				"backend", ad.Name(), "mode", string(mode), "rows", len(final))
		}
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if rtol == 0 {
		rtol = cfg.Compare.Rtol
	}
	if atol == 0 {
		atol = cfg.Compare.Atol
	}

	store := results.New(cfg.DataDir)
	snaps, err := store.LoadAllSnapshots()
	if err != nil {
		return err
	}

	report, err := equiv.ComparePairs(snaps, equiv.Tolerances{Rtol: rtol, Atol: atol})
	if err != nil {
		if errors.Is(err, equiv.ErrMissingSnapshot) {
			return fmt.Errorf("%w (run the calibration count first)", err)
		}
		return err
	}

	for _, p := range report.Pairs {
		if p.Err != nil {
			logger.Warn("pair not comparable", "error", p.Err)
			continue
		}
		s := p.Stats
		fmt.Printf("%s vs %s: close=%v  %d/%d (%.2f%%)  max=%.6e mean=%.6e\n",
			p.A, p.B, s.IsClose, s.NumClose, s.Total, s.PercentClose,
			s.AbsDiff.Max, s.AbsDiff.Mean)
		for _, m := range s.Worst {
			fmt.Printf("  [%d, %d]: %s=%.6e, %s=%.6e, diff=%.6e\n",
				m.Row, m.Col, p.A, m.A, p.B, m.B, m.Diff)
		}
	}

	if err := os.WriteFile(reportPath, []byte(report.Markdown()), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	logger.Info("report written", "path", reportPath, "snapshots", len(report.Names), "pairs", len(report.Pairs))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	count, err := parseCount(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	def, err := model.NewCatalog().Lookup(modelName)
	if err != nil {
		return err
	}
	prec, err := sweep.ParsePrecision(cfg.Precision)
	if err != nil {
		return err
	}
	params, err := sweep.Generate(def.Param.Lo, def.Param.Hi, count, prec)
	if err != nil {
		return err
	}

	fmt.Printf("# %s: %s over [%g, %g], %d trajectories\n",
		def.Name, def.Param.Name, def.Param.Lo, def.Param.Hi, count)
	for _, v := range params {
		fmt.Println(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/tuitioncast/internal/config"
	"github.com/theirongolddev/tuitioncast/internal/pipeline"
	"github.com/theirongolddev/tuitioncast/internal/source"
	"github.com/theirongolddev/tuitioncast/internal/store"
	"github.com/theirongolddev/tuitioncast/internal/tui/theme"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagDataDir string
	flagNoCache bool
	flagQuiet   bool
	flagVerbose bool

	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tuitioncast",
	Short: "Tuition cost estimator",
	Long: `Estimate future tuition costs from historical CSV datasets.

Two models are available: an additive trend per school type or program
(mean yearly dollar change extrapolated from the last observed year), and
a one-hot linear regression over state, school type, program length and year.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		theme.SetActive(cfg.Appearance.Theme)

		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if flagVerbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
	RunE: runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the CSV datasets (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the SQLite trend cache, reparse every dataset")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")
}

// progressf writes a progress line to stderr unless --quiet is set.
func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// dataDir returns the effective dataset directory.
func dataDir() string {
	return config.ResolveDataDir(cfg, flagDataDir)
}

// newForecaster is the shared query path used by the trend commands.
// The returned func releases the cache and must always be called.
func newForecaster() (*pipeline.Forecaster, func()) {
	paths := config.DatasetPaths(cfg, dataDir())
	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	done := func() {}

	if !flagNoCache && !cfg.General.NoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			// Cache open failed, fall back to parsing every time
			progressf("  Cache unavailable, doing full parse\n")
			logger.Warn("opening trend cache", zap.Error(err))
		} else {
			opts = append(opts, pipeline.WithCache(cache))
			done = func() { _ = cache.Close() }
		}
	}

	return pipeline.NewForecaster(paths, opts...), done
}

// loadTrends builds (or reads cached) trends for kind and reports where they came from.
func loadTrends(f *pipeline.Forecaster, kind source.Kind) error {
	progressf("  Loading %s dataset...\n", kind)
	trends, err := f.Trends(kind)
	if err != nil {
		return err
	}
	if f.FromCache(kind) {
		progressf("  Loaded %d trends from cache\n", len(trends))
	} else {
		progressf("  Built %d trends\n", len(trends))
	}
	return nil
}

// openStore opens the SQLite store that holds trained models.
func openStore() (*store.Cache, error) {
	s, err := store.Open(pipeline.CachePath())
	if err != nil {
		return nil, fmt.Errorf("opening model store: %w", err)
	}
	return s, nil
}

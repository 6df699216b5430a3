package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nuclidex/internal/config"
	"nuclidex/internal/core"
	"nuclidex/internal/loader"
	"nuclidex/internal/source"
	"nuclidex/internal/storage"
	"nuclidex/pkg/domain"
)

// app carries global flag values and the state built in PersistentPreRunE.
type app struct {
	configPath string
	verbose    bool
	fromStore  bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "nuclidex",
		Short: "Crustal abundance heatmap and nuclide stability explorer",
		Long: `nuclidex paints the periodic table by log-scaled crustal abundance,
lists each element's isotopes with their natural abundance, and resolves
isotope stability, half-life and decay constant from a nuclide decay table.

Datasets come from the configured source (embedded samples by default) or,
with --from-store, from the last imported snapshot.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&a.fromStore, "from-store", false, "read the catalog from the snapshot store instead of the source")

	root.AddCommand(
		a.tableCmd(),
		a.elementCmd(),
		a.isotopesCmd(),
		a.resolveCmd(),
		a.importCmd(),
		a.publishCmd(),
		a.serveMetricsCmd(),
	)
	return root
}

func (a *app) init(*cobra.Command, []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	level, _ := cfg.LogLevel()
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	if a.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// catalog loads the datasets from the snapshot store or the source.
func (a *app) catalog(ctx context.Context) (domain.Catalog, error) {
	if a.fromStore {
		st, err := storage.Open(ctx, a.cfg.Storage)
		if err != nil {
			return domain.Catalog{}, err
		}
		defer func() { _ = st.Close() }()
		cat, err := st.Load(ctx)
		if errors.Is(err, domain.ErrNoSnapshot) {
			return domain.Catalog{}, fmt.Errorf("%w; run `nuclidex import` first", err)
		}
		return cat, err
	}
	src, err := source.Open(ctx, a.cfg.Source)
	if err != nil {
		return domain.Catalog{}, err
	}
	return loader.Load(ctx, src, a.cfg.Datasets, a.logger)
}

// service builds the engine over the loaded catalog.
func (a *app) service(ctx context.Context, extra ...core.Option) (*core.Service, error) {
	cat, err := a.catalog(ctx)
	if err != nil {
		return nil, err
	}
	tag, _ := a.cfg.LocaleTag()
	rule := core.BlankIsStable
	if a.cfg.Engine.BlankHalfLife == config.BlankUnknown {
		rule = core.BlankIsUnknown
	}
	opts := append([]core.Option{
		core.WithLogger(a.logger),
		core.WithLocale(tag),
		core.WithBlankRule(rule),
	}, extra...)
	return core.NewService(cat, opts...), nil
}

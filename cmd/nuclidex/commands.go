package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nuclidex/internal/core"
	"nuclidex/internal/loader"
	"nuclidex/internal/render"
	"nuclidex/internal/source"
	"nuclidex/internal/storage"
	"nuclidex/pkg/domain"
)

func (a *app) tableCmd() *cobra.Command {
	var css bool
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Render the abundance heatmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			cells := svc.ElementCells()
			out := cmd.OutOrStdout()
			if css {
				for _, c := range cells {
					fmt.Fprintf(out, ".element-%d { %s }\n", c.Element.Number, render.CSS(c.Style))
				}
				return nil
			}
			fmt.Fprintln(out, render.New(out).Table(cells))
			return nil
		},
	}
	cmd.Flags().BoolVar(&css, "css", false, "print one CSS rule per element instead of the table")
	return cmd
}

func (a *app) elementCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "element <symbol|number>",
		Short: "Show the info panel for one element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			el, err := svc.FindElement(args[0])
			if err != nil {
				return err
			}
			info, err := svc.ElementInfo(el.Number)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, info)
			}
			cell, err := svc.ElementCell(el.Number)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, render.New(out).InfoPanel(info, cell.Style))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) isotopesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "isotopes <symbol|number>",
		Short: "List an element's isotopes with abundance and stability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			el, err := svc.FindElement(args[0])
			if err != nil {
				return err
			}
			cards, err := svc.IsotopeCards(el.Number)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, cards)
			}
			fmt.Fprintln(out, render.New(out).IsotopeCards(el, cards))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

type resolution struct {
	Nuclide string `json:"nuclide"`
	domain.StabilityDescriptor
}

func (a *app) resolveCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "resolve <Symbol-Mass>...",
		Short: "Resolve isotope stability, half-life and decay constant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			results := make([]resolution, 0, len(args))
			for _, id := range args {
				results = append(results, resolution{Nuclide: id, StabilityDescriptor: svc.ResolveID(id)})
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, results)
			}
			for _, r := range results {
				fmt.Fprintf(out, "%s\t%s\t%s\n", r.Nuclide, r.HalfLife, r.DecayConstant)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load datasets from the source and save a snapshot to the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, err := source.Open(ctx, a.cfg.Source)
			if err != nil {
				return err
			}
			cat, err := loader.Load(ctx, src, a.cfg.Datasets, a.logger)
			if err != nil {
				return err
			}
			st, err := storage.Open(ctx, a.cfg.Storage)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()
			if err := st.Save(ctx, cat); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			a.logger.Info("snapshot saved",
				zap.String("storage", string(a.cfg.Storage.Driver)),
				zap.Int("elements", len(cat.Elements)),
				zap.Int("nuclides", len(cat.Nuclides)))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d elements, %d isotope groups, %d nuclides\n",
				len(cat.Elements), len(cat.Isotopes), len(cat.Nuclides))
			return nil
		},
	}
}

func (a *app) publishCmd() *cobra.Command {
	var dst source.Config
	var driver string
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the current catalog as datasets into another source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dst.Driver = source.Driver(driver)
			if dst.Driver == source.DriverEmbedded {
				return errors.New("the embedded source is read-only")
			}
			cat, err := a.catalog(ctx)
			if err != nil {
				return err
			}
			target, err := source.Open(ctx, dst)
			if err != nil {
				return err
			}
			if err := loader.Publish(ctx, target, a.cfg.Datasets, cat); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %d elements to %s\n", len(cat.Elements), target.Driver())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&driver, "driver", string(source.DriverFilesystem), "target source driver (fs|s3)")
	f.StringVar(&dst.FSRoot, "fs-root", "./datasets", "target directory for the fs driver")
	f.StringVar(&dst.S3.Bucket, "s3-bucket", "", "target bucket for the s3 driver")
	f.StringVar(&dst.S3.Prefix, "s3-prefix", "", "key prefix inside the bucket")
	f.StringVar(&dst.S3.Region, "s3-region", "", "bucket region")
	f.StringVar(&dst.S3.Endpoint, "s3-endpoint", "", "custom endpoint (MinIO)")
	f.BoolVar(&dst.S3.PathStyle, "s3-path-style", false, "use path-style addressing")
	return cmd
}

func (a *app) serveMetricsCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "Expose Prometheus metrics for styling and resolution outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Metrics.Addr
			}
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			rec, err := core.NewPrometheusMetricsRecorder(reg, a.cfg.Metrics.Namespace)
			if err != nil {
				return err
			}
			svc, err := a.service(cmd.Context(), core.WithMetrics(rec))
			if err != nil {
				return err
			}
			warm(svc)
			a.logger.Info("serving metrics", zap.String("addr", addr))
			return serveMetrics(cmd.Context(), addr, metricsHandler(reg), a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to metrics.addr)")
	return cmd
}

// warm styles every cell and resolves every isotope card once.
func warm(svc *core.Service) {
	for _, c := range svc.ElementCells() {
		_, _ = svc.IsotopeCards(c.Element.Number)
	}
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func serveMetrics(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down metrics server")
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

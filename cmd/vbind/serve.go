package main

import (
	"net"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vbind/internal/config"
	"github.com/vango-dev/vbind/internal/preview"
	"github.com/vango-dev/vbind/pkg/compiler"
	"github.com/vango-dev/vbind/pkg/middleware"
	"github.com/vango-dev/vbind/pkg/render"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var (
		data     string
		selector string
		addr     string
		noWatch  bool
	)

	cmd := &cobra.Command{
		Use:   "serve TEMPLATE",
		Short: "Serve a live preview of a compiled template",
		Long: `Serve a template compiled against a data file.

Every request reloads and recompiles the sources. Local files are
watched and connected browsers reload when they change.

Endpoints:
  /              compiled page
  /_vbind/data   the decoded data as JSON
  /metrics       Prometheus metrics (metrics.enabled)
  /healthz       liveness

Examples:
  vbind serve index.html --data data.json
  vbind serve index.html --data data.yaml --addr 0.0.0.0:8080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("selector") {
				cfg.Compiler.Selector = selector
			}
			if flags.Changed("addr") {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return err
				}
				cfg.Serve.Host = host
				if cfg.Serve.Port, err = strconv.Atoi(port); err != nil {
					return err
				}
			}
			if noWatch {
				cfg.Serve.Watch = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			server := newPreviewServer(cmd, cfg, args[0], data)
			success(cmd.ErrOrStderr(), "Serving %s at http://%s", args[0], cfg.ServeAddress())
			return server.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "Data file (JSON or YAML)")
	cmd.Flags().StringVarP(&selector, "selector", "s", config.DefaultSelector, "Mount target selector")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, localhost:4000)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Disable live reload")

	return cmd
}

// newPreviewServer wires the compiler, metrics and loader into a preview
// server.
func newPreviewServer(cmd *cobra.Command, cfg *config.Config, template, data string) *preview.Server {
	logger := newLogger(cfg, cmd.ErrOrStderr())

	copts := []compiler.Option{
		compiler.WithLogger(logger),
		compiler.WithMissingKey(cfg.MissingKeyPolicy()),
		compiler.WithStripDirectives(cfg.Compiler.StripDirectives),
	}

	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		copts = append(copts, compiler.WithMetrics(compiler.NewMetrics(
			compiler.WithRegistry(reg),
			compiler.WithNamespace(cfg.Metrics.Namespace),
		)))
	}

	opts := preview.Options{
		Template:     template,
		Data:         data,
		Selector:     cfg.Compiler.Selector,
		Addr:         cfg.ServeAddress(),
		Loader:       newLoader(cmd.InOrStdin(), logger, template, data),
		Compiler:     compiler.New(copts...),
		Render:       render.Config{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent},
		Watch:        cfg.Serve.Watch,
		PollInterval: cfg.PollInterval(),
		Registry:     reg,
		Logger:       logger,
	}
	if reg != nil {
		opts.MetricsOptions = []middleware.MetricsOption{middleware.WithNamespace(cfg.Metrics.Namespace)}
	}
	if cfg.Tracing.Enabled {
		opts.TracerName = cfg.Tracing.TracerName
	}
	return preview.NewServer(opts)
}

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vbind/internal/config"
	"github.com/vango-dev/vbind/internal/errors"
	"github.com/vango-dev/vbind/internal/source"
	"github.com/vango-dev/vbind/pkg/compiler"
	"github.com/vango-dev/vbind/pkg/render"
	"github.com/vango-dev/vbind/pkg/vdom"
	"github.com/vango-dev/vbind/pkg/viewmodel"
)

type compileOptions struct {
	data       string
	selector   string
	out        string
	missingKey string
	pretty     bool
	strip      bool
}

func compileCmd(g *globalFlags) *cobra.Command {
	var o compileOptions

	cmd := &cobra.Command{
		Use:   "compile TEMPLATE",
		Short: "Compile a template and print the HTML",
		Long: `Compile a template against a data file and write the resulting HTML.

TEMPLATE and --data accept a file path, "-" for stdin, or an
s3://bucket/key location. Data files are JSON or YAML.

Examples:
  vbind compile index.html --data data.json
  vbind compile index.html --data data.yaml --selector "#main" --out dist/index.html
  cat index.html | vbind compile - --data s3://site/data.json --strip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("selector") {
				cfg.Compiler.Selector = o.selector
			}
			if flags.Changed("missingkey") {
				cfg.Compiler.MissingKey = o.missingKey
			}
			if flags.Changed("strip") {
				cfg.Compiler.StripDirectives = o.strip
			}
			if flags.Changed("pretty") {
				cfg.Render.Pretty = o.pretty
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())
			loader := newLoader(cmd.InOrStdin(), logger, args[0], o.data)

			html, err := runCompile(cmd.Context(), cfg, loader, logger, args[0], o.data)
			if err != nil {
				return err
			}
			return writeOutput(cmd, o.out, html)
		},
	}

	cmd.Flags().StringVarP(&o.data, "data", "d", "", "Data file (JSON or YAML)")
	cmd.Flags().StringVarP(&o.selector, "selector", "s", config.DefaultSelector, `Mount target selector ("" compiles the whole document)`)
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&o.missingKey, "missingkey", "error", "Missing data keys: error or zero")
	cmd.Flags().BoolVarP(&o.pretty, "pretty", "p", false, "Indent the output")
	cmd.Flags().BoolVar(&o.strip, "strip", false, "Remove directive attributes from the output")

	return cmd
}

// runCompile loads the template and data, compiles and renders the
// document.
func runCompile(ctx context.Context, cfg *config.Config, loader *source.Loader, logger *slog.Logger, template, dataLoc string) ([]byte, error) {
	markup, err := loader.Read(ctx, template)
	if err != nil {
		return nil, err
	}
	doc, err := vdom.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, errors.New("E020").WithExpr(template).Wrap(err)
	}

	data := map[string]any{}
	if dataLoc != "" {
		raw, err := loader.Read(ctx, dataLoc)
		if err != nil {
			return nil, err
		}
		loc, _ := source.ParseLocation(dataLoc)
		if data, err = source.DecodeData(loc.Name(), raw); err != nil {
			return nil, err
		}
	}

	var el any = doc
	if cfg.Compiler.Selector != "" {
		el = cfg.Compiler.Selector
	}
	vm := viewmodel.New(viewmodel.Options{El: el, Data: data})

	c := compiler.New(
		compiler.WithLogger(logger),
		compiler.WithMissingKey(cfg.MissingKeyPolicy()),
		compiler.WithStripDirectives(cfg.Compiler.StripDirectives),
	)
	res, err := c.Compile(ctx, doc, nil, vm)
	if err != nil {
		return nil, err
	}

	switch res.Status {
	case compiler.StatusNoRoot:
		logger.Warn("mount target not found, template left unchanged", "selector", cfg.Compiler.Selector)
	default:
		logger.Info("compiled",
			"template", template,
			"interpolations", res.Interpolations,
			"directives", res.Directives,
			"skipped", len(res.Skipped),
		)
		for _, s := range res.Skipped {
			logger.Debug("directive skipped", "node", s.Node, "attr", s.Attr, "reason", string(s.Reason))
		}
	}

	var buf bytes.Buffer
	r := render.NewRenderer(render.Config{Pretty: cfg.Render.Pretty, Indent: cfg.Render.Indent})
	if err := r.RenderDocument(&buf, doc); err != nil {
		return nil, errors.New("E021").Wrap(err)
	}
	return buf.Bytes(), nil
}

func writeOutput(cmd *cobra.Command, path string, html []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(html)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, bytes.NewReader(html)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	success(cmd.ErrOrStderr(), "Wrote %s", path)
	return nil
}

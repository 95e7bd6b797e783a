package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vbind/internal/errors"
	"github.com/vango-dev/vbind/internal/source"
	"github.com/vango-dev/vbind/pkg/compiler"
	"github.com/vango-dev/vbind/pkg/middleware"
	"github.com/vango-dev/vbind/pkg/render"
	"github.com/vango-dev/vbind/pkg/vdom"
	"github.com/vango-dev/vbind/pkg/viewmodel"
)

// Options configures the preview server.
type Options struct {
	// Template and Data are source locations (file, "-" or s3://).
	Template string
	Data     string

	// Selector is the mount target. Empty compiles the whole document.
	Selector string

	// Addr is the listen address, e.g. "localhost:4000".
	Addr string

	Loader   *source.Loader
	Compiler *compiler.Compiler
	Render   render.Config

	// Watch enables live reload for file sources.
	Watch        bool
	PollInterval time.Duration

	// Registry, when set, receives the HTTP metrics and is served at
	// /metrics. Compiler metrics registered on it show up there as well.
	Registry *prometheus.Registry

	// MetricsOptions are passed to the HTTP metrics middleware.
	MetricsOptions []middleware.MetricsOption

	// TracerName enables request spans when set.
	TracerName string

	Logger *slog.Logger
}

// Server is the preview server.
type Server struct {
	opts    Options
	logger  *slog.Logger
	hub     *ReloadHub
	watcher *Watcher
	router  chi.Router

	mu         sync.Mutex
	httpServer *http.Server
	running    bool
}

// NewServer creates a preview server.
func NewServer(opts Options) *Server {
	if opts.Loader == nil {
		opts.Loader = source.NewLoader()
	}
	if opts.Compiler == nil {
		opts.Compiler = compiler.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		opts:   opts,
		logger: opts.Logger,
	}
	if opts.Watch {
		s.hub = NewReloadHub()
		s.watcher = NewWatcher(watchable(opts.Template, opts.Data), opts.PollInterval)
		s.watcher.OnChange(s.handleChanges)
	}
	s.router = s.routes()
	return s
}

// watchable returns the locations that are local files.
func watchable(locations ...string) []string {
	var files []string
	for _, l := range locations {
		if l == "" {
			continue
		}
		loc, err := source.ParseLocation(l)
		if err == nil && loc.Scheme == source.SchemeFile {
			files = append(files, loc.Path)
		}
	}
	return files
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)
	if s.opts.Registry != nil {
		mopts := append([]middleware.MetricsOption{middleware.WithRegistry(s.opts.Registry)}, s.opts.MetricsOptions...)
		r.Use(middleware.Prometheus(mopts...))
	}
	if s.opts.TracerName != "" {
		r.Use(middleware.OpenTelemetry(middleware.WithTracerName(s.opts.TracerName)))
	}

	if s.opts.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/", s.handlePage)
	r.Get("/_vbind/data", s.handleData)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if s.hub != nil {
		r.Get(ReloadPath, s.hub.HandleWebSocket)
	}
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the reload hub, or nil when watching is off.
func (s *Server) Hub() *ReloadHub {
	return s.hub
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// page loads and compiles the template.
func (s *Server) page(ctx context.Context) (*vdom.Document, error) {
	markup, err := s.opts.Loader.Read(ctx, s.opts.Template)
	if err != nil {
		return nil, err
	}
	data, err := s.data(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := vdom.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, errors.New("E020").WithExpr(s.opts.Template).Wrap(err)
	}

	var el any = doc
	if s.opts.Selector != "" {
		el = s.opts.Selector
	}
	vm := viewmodel.New(viewmodel.Options{El: el, Data: data})
	res, err := s.opts.Compiler.Compile(ctx, doc, nil, vm)
	if err != nil {
		return nil, err
	}
	if res.Status == compiler.StatusNoRoot {
		s.logger.Warn("mount target not found, serving template as is", "selector", s.opts.Selector)
	}
	return doc, nil
}

func (s *Server) data(ctx context.Context) (map[string]any, error) {
	if s.opts.Data == "" {
		return map[string]any{}, nil
	}
	raw, err := s.opts.Loader.Read(ctx, s.opts.Data)
	if err != nil {
		return nil, err
	}
	loc, _ := source.ParseLocation(s.opts.Data)
	return source.DecodeData(loc.Name(), raw)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	doc, err := s.page(r.Context())
	if err != nil {
		s.logger.Warn("preview failed", "error", err)
		s.writeError(w, err)
		return
	}

	if s.hub != nil {
		if body := doc.Body(); body != nil {
			body.AppendChild(vdom.Raw(ClientScript))
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.NewStreamingRenderer(w, s.opts.Render).Render(doc); err != nil {
		s.logger.Warn("render failed", "error", errors.New("E021").Wrap(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)

	msg := err.Error()
	if e := errors.FromError(err, "E020"); e != nil {
		msg = e.FormatCompact()
	}
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>vbind preview error</title></head><body><pre>%s</pre>", html.EscapeString(msg))
	if s.hub != nil {
		fmt.Fprint(w, ClientScript)
	}
	fmt.Fprint(w, "</body></html>")
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	data, err := s.data(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}

// handleChanges reloads the browsers, or shows the error when the new
// sources do not compile.
func (s *Server) handleChanges(changed []string) {
	s.logger.Info("sources changed", "files", changed)
	if _, err := s.page(context.Background()); err != nil {
		s.hub.NotifyError(err.Error())
		return
	}
	s.hub.ClearError()
	s.hub.NotifyReload(changed[0])
}

// Start listens on opts.Addr and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("preview server already running")
	}
	s.running = true
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Unlock()

	if s.watcher != nil {
		go s.watcher.Start(ctx)
	}

	s.logger.Info("preview server running", "url", "http://"+ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		return err
	}
}

// Stop stops the preview server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false

	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.hub != nil {
		s.hub.Close()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

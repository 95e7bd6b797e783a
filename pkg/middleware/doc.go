// Package middleware provides net/http middleware for the preview server.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//
// Both take the route pattern from chi when available so labels and span
// names stay low-cardinality ("/data/*" rather than every concrete path).
//
// # OpenTelemetry Middleware
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("vbind-preview"),
//	    middleware.WithFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// The tracer uses the global OpenTelemetry tracer provider. Handlers reach
// the request span through trace.SpanFromContext(r.Context()).
//
// # Prometheus Metrics
//
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Metrics collected:
//   - vbind_http_requests_total{route,method,code}
//   - vbind_http_request_duration_seconds{route}
//   - vbind_http_requests_in_flight
package middleware

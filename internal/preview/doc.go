// Package preview serves a compiled template over HTTP.
//
// Every request to / reads the template and data bag again, compiles them
// and streams the result, so edits show up on the next load. When watching
// is enabled a small script is appended to the body; it listens on a
// websocket and reloads the page when the template or data file changes.
//
// Routes:
//
//	GET /                 compiled page
//	GET /_vbind/data      current data bag as JSON
//	GET /_vbind/reload    live reload websocket
//	GET /metrics          Prometheus metrics, when a registry is configured
//	GET /healthz          liveness
package preview

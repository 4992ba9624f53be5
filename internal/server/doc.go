// Package server exposes the plantings document over HTTP.
//
// Endpoints:
//   - GET /render - the rendered document as text/html
//   - GET /health - liveness, including Redis when publishing is enabled
//   - GET /ready  - readiness, proven by a successful render
//
// Example usage:
//
//	srv := server.NewServer(8080, plantings.NewRenderer(logger), nil, logger)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Stop()
package server

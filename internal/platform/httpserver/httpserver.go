// Package httpserver wraps net/http server construction and shutdown.
package httpserver

import (
	"context"
	"net/http"
	"time"
)

// New builds an HTTP server with timeouts suited to this service. Write
// timeout stays generous because visualization generation holds the request
// open while the pipeline runs.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Shutdown drains the server within the given grace period.
func Shutdown(srv *http.Server, grace time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return srv.Shutdown(ctx)
}

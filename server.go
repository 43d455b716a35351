package pdfbook

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// buildServer serves the build directory on a loopback port so headless
// Chrome can load the composed document (and its copied assets) over HTTP
// for the duration of one PDF print.
type buildServer struct {
	listener net.Listener
	server   *http.Server
}

// newBuildServer starts serving dir on an ephemeral 127.0.0.1 port.
func newBuildServer(dir string) (*buildServer, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("%w: starting build server: %v", ErrBuild, err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/*", http.FileServer(http.Dir(dir)))

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		// ErrServerClosed after Shutdown is the normal exit path.
		_ = srv.Serve(listener)
	}()

	return &buildServer{listener: listener, server: srv}, nil
}

// URL returns the server's base URL, without a trailing slash.
func (s *buildServer) URL() string {
	return "http://" + s.listener.Addr().String()
}

// Shutdown stops the server gracefully.
func (s *buildServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(ctx)
}

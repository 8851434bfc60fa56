package callback

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Middleware is a simple HTTP middleware function.
type Middleware func(http.Handler) http.Handler

// Chain applies the given middleware in order around the provided handler.
func Chain(h http.Handler, m ...Middleware) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

// requestLogger logs basic information about each received callback
// request, including method, path, remote address and serve time.
func requestLogger(log *logrus.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(logrus.Fields{
				"method":  r.Method,
				"path":    r.URL.Path,
				"remote":  r.RemoteAddr,
				"elapsed": time.Since(start),
			}).Info("callback request")
		})
	}
}

// Server owns the underlying http.Server instance.
type Server struct {
	http *http.Server
}

// New creates a callback listener bound to the given address. Every
// decoded callback is passed to h.
func New(addr string, log *logrus.Logger, h Handler) *Server {
	mux := http.NewServeMux()
	mux.Handle("/", newCallbackHandler(h))

	root := Chain(
		mux,
		requestLogger(log),
	)

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           root,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start runs the listener and blocks until ListenAndServe returns.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Handler returns the root handler, for serving through a caller-owned
// listener in tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Shutdown gracefully stops the listener, waiting for in-flight
// requests to complete until the given context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

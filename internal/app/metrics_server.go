package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
)

const metricsShutdownTimeout = 2 * time.Second

// serveMetrics exposes the allocator metrics on addr until the returned
// stop function is called. It returns the address actually bound.
func (a *Application) serveMetrics(addr string) (bound string, stop func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, apperrors.NewConfigError("cannot serve metrics on %q: %v", addr, err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", a.Metrics.WritePrometheus)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("metrics server", err)
		}
	}()
	a.Logger.Info("serving metrics", logging.String("addr", ln.Addr().String()))

	return ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
		<-done
	}, nil
}

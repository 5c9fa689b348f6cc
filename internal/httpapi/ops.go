package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Spok95/school-admin/internal/metrics"
)

type OpsServer struct {
	srv *http.Server
}

// StartOps runs the health/metrics listener on its own port, away from the
// public API.
func StartOps(ctx context.Context, addr string, database *sql.DB) *OpsServer {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := database.PingContext(ctx); err != nil {
			http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		metrics.ObserveDBPing(time.Since(t0))
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		_ = srv.ListenAndServe() // closed via Shutdown below
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &OpsServer{srv: srv}
}

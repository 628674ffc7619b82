// Package control exposes the live rate knob and metrics over HTTP.
package control

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"nexmark-gen/pkg/metrics"
	"nexmark-gen/pkg/ratecontrol"
)

const (
	QPSPath     = "/nexmark/qps"
	MetricsPath = "/metrics"
	maxBodySize = 1 << 16
)

func NewHandler(rc *ratecontrol.RateController) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(QPSPath, qpsHandler(rc))
	mux.Handle(MetricsPath, promhttp.Handler())
	return mux
}

func qpsHandler(rc *ratecontrol.RateController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprintf(w, "qps: %d\n", rc.TargetQPS())
		case http.MethodPost:
			body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			qps, err := parseQPS(body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err := rc.SetTargetQPS(qps); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			metrics.SetTargetQPS(uint64(qps))
			log.Info().Int64("qps", qps).Uint64("intervalUs", rc.CurrentIntervalUs()).Msg("target qps updated")
			w.WriteHeader(http.StatusAccepted)
			fmt.Fprintf(w, "qps: %d", qps)
		default:
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func parseQPS(body []byte) (int64, error) {
	jsonParsed, err := gabs.ParseJSON(body)
	if err != nil {
		return 0, err
	}
	v, ok := jsonParsed.Path("qps").Data().(float64)
	if !ok {
		return 0, fmt.Errorf("body must carry a numeric qps field")
	}
	if v != float64(int64(v)) {
		return 0, fmt.Errorf("qps must be an integer, got %v", v)
	}
	return int64(v), nil
}

// Serve runs the control server on addr until ctx is done.
func Serve(ctx context.Context, addr string, rc *ratecontrol.RateController) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(rc),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("control server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/cli/internal/output"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/httputil"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/requestlog"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soapmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run an in-memory clinic backend",
}

var (
	mockAddr     string
	mockPrefix   string
	mockFixtures string
	mockHistory  int
)

var mockServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the clinic SOAP operations from memory",
	Long: `Serve every clinic SOAP operation from an in-memory store, optionally seeded
from YAML fixture files.

Endpoints:
  POST <prefix>/users, <prefix>/appointments   SOAP operations
  GET  /requests                               received requests, newest first
  DELETE /requests                             clear the request history
  GET  /metrics                                Prometheus metrics
  GET  /health                                 liveness`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := soapmock.NewClinicBackend()
		if mockFixtures != "" {
			fixtures, err := soapmock.LoadFixtures(mockFixtures)
			if err != nil {
				return err
			}
			if err := backend.Seed(fixtures); err != nil {
				return err
			}
		}

		handler := newMockHandler(backend, requestlog.NewMemoryStore(mockHistory), prometheus.NewRegistry())

		ln, err := net.Listen("tcp", mockAddr)
		if err != nil {
			return err
		}
		srv := &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Print URL to stdout for programmatic consumption
		fmt.Fprintf(output.Stdout, "http://%s%s\n", ln.Addr(), mockPrefix)
		doctors, patients, appointments := backend.Counts()
		logger.Info("mock backend started",
			"addr", ln.Addr().String(), "prefix", mockPrefix,
			"doctors", doctors, "patients", patients, "appointments", appointments)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		// Wait for shutdown signal
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down mock backend")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// newMockHandler wires the SOAP server with the request history, metrics
// and health endpoints.
func newMockHandler(backend *soapmock.ClinicBackend, store requestlog.Store, reg *prometheus.Registry) http.Handler {
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	prefix := strings.Trim(mockPrefix, "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	server := soapmock.NewServer(
		soapmock.WithPrefix(prefix),
		soapmock.WithRequestLog(store),
		soapmock.WithLogger(logger),
		soapmock.WithMetrics(soapmock.NewMetrics(reg)),
	)
	backend.Register(server)

	mux := http.NewServeMux()
	mux.Handle(prefix+"/", server)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteText(w, http.StatusOK, "ok")
	})
	mux.HandleFunc("GET /requests", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := &requestlog.Filter{
			Group:     q.Get("group"),
			Operation: q.Get("operation"),
		}
		filter.StatusCode, _ = strconv.Atoi(q.Get("status"))
		filter.Limit, _ = strconv.Atoi(q.Get("limit"))
		if v := q.Get("fault"); v != "" {
			hasFault := v == "true"
			filter.HasFault = &hasFault
		}
		httputil.WriteJSON(w, http.StatusOK, store.List(filter))
	})
	mux.HandleFunc("DELETE /requests", func(w http.ResponseWriter, _ *http.Request) {
		store.Clear()
		httputil.WriteNoContent(w)
	})
	return mux
}

func init() {
	rootCmd.AddCommand(mockCmd)
	mockCmd.AddCommand(mockServeCmd)
	mockServeCmd.Flags().StringVar(&mockAddr, "addr", "localhost:8081", "Listen address")
	mockServeCmd.Flags().StringVar(&mockPrefix, "prefix", "/soap", "Path prefix of the endpoint groups")
	mockServeCmd.Flags().StringVar(&mockFixtures, "fixtures", "", "Glob of YAML fixture files, e.g. 'fixtures/**/*.yaml'")
	mockServeCmd.Flags().IntVar(&mockHistory, "history", requestlog.DefaultCapacity, "Number of requests kept in /requests")
}

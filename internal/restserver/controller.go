// Package restserver exposes the estimation engine over HTTP. It is the
// presentation collaborator boundary: it collects inputs, invokes the
// engine synchronously, and renders the immutable result.
package restserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/sunwatt/sunwatt/internal/engine"
	"github.com/sunwatt/sunwatt/internal/livecalc"
	"github.com/sunwatt/sunwatt/internal/sunshine"
	"github.com/sunwatt/sunwatt/pkg/config"
)

// Controller represents the REST server controller
type Controller struct {
	ctx          context.Context
	wg           *sync.WaitGroup
	Server       http.Server
	engine       *engine.Engine
	fetcher      *sunshine.Fetcher
	defaultPrice float64
	logger       *zap.SugaredLogger
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg *config.Data, eng *engine.Engine, fetcher *sunshine.Fetcher, logger *zap.SugaredLogger) *Controller {
	ctrl := &Controller{
		ctx:          ctx,
		wg:           wg,
		engine:       eng,
		fetcher:      fetcher,
		defaultPrice: cfg.Pricing.ElectricityPricePerKwh,
		logger:       logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/health", ctrl.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/estimate", ctrl.handleEstimate).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/regulation", ctrl.handleRegulation).Methods(http.MethodGet)
	router.Handle("/ws/estimate", livecalc.NewHandler(eng, fetcher, logger))

	chain := handlers.RecoveryHandler(handlers.RecoveryLogger(&recoveryLogger{logger}))(router)
	chain = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(chain)
	chain = ctrl.requestLogging(chain)

	ctrl.Server = http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      chain,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return ctrl
}

// recoveryLogger adapts the zap logger to gorilla's recovery handler
type recoveryLogger struct {
	logger *zap.SugaredLogger
}

func (r *recoveryLogger) Println(args ...interface{}) {
	r.logger.Errorw("panic recovered in HTTP handler", "detail", args)
}

// requestLogging tags every request with an ID and logs method, path,
// status and duration through zap.
func (c *Controller) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		c.logger.Infow("http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Start runs the HTTP server until the controller context is cancelled
func (c *Controller) Start() error {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			c.logger.Errorf("error shutting down REST server: %v", err)
		}
	}()

	c.logger.Infof("REST server listening on %s", c.Server.Addr)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	return nil
}

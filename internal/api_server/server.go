package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	api "github.com/kubev2v/training-planner/api/v1alpha1"
	"github.com/kubev2v/training-planner/internal/api/server"
	"github.com/kubev2v/training-planner/internal/config"
	"github.com/kubev2v/training-planner/internal/estimation/calculators"
	"github.com/kubev2v/training-planner/internal/events"
	handlers "github.com/kubev2v/training-planner/internal/handlers/v1alpha1"
	"github.com/kubev2v/training-planner/internal/hardware"
	"github.com/kubev2v/training-planner/internal/service"
	"github.com/kubev2v/training-planner/internal/util"
	"github.com/kubev2v/training-planner/pkg/log"
	"github.com/kubev2v/training-planner/pkg/metrics"
	"github.com/kubev2v/training-planner/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	catalog  *hardware.Catalog
	listener net.Listener
	registry prometheus.Registerer
	producer *events.EventProducer
}

// New returns a new instance of a training-planner server.
func New(
	cfg *config.Config,
	catalog *hardware.Catalog,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		catalog:  catalog,
		listener: listener,
		registry: prometheus.DefaultRegisterer,
	}
}

// WithRegisterer sets where the HTTP metrics are registered.
func (s *Server) WithRegisterer(reg prometheus.Registerer) *Server {
	s.registry = reg
	return s
}

// WithEventProducer publishes estimation events through producer.
func (s *Server) WithEventProducer(producer *events.EventProducer) *Server {
	s.producer = producer
	return s
}

func oapiErrorHandler(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, fmt.Sprintf("API Error: %s", message), statusCode)
}

// Handler builds the router serving the v1alpha1 API.
func (s *Server) Handler() (http.Handler, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load swagger spec: %w", err)
	}
	// Skip server name validation
	swagger.Servers = nil

	oapiOpts := oapimiddleware.Options{
		ErrorHandler: oapiErrorHandler,
	}

	router := chi.NewRouter()

	metricMiddleware, err := metrics.NewMiddleware("api_server")
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics middleware: %w", err)
	}
	if err := metricMiddleware.Register(s.registry); err != nil {
		return nil, fmt.Errorf("failed to register http metrics: %w", err)
	}

	router.Use(
		util.GatewayApiRewrite,
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.RequestID,
		log.Logger(zap.L(), "router"),
		chiMiddleware.Recoverer,
		oapimiddleware.OapiRequestValidatorWithOptions(swagger, &oapiOpts),
	)

	opts := []calculators.Option{calculators.WithGPUMemoryCheck(s.cfg.Estimation.GPUMemoryCheck)}

	h := handlers.NewServiceHandler(
		service.NewEstimationService(s.catalog, opts...).WithEventProducer(s.producer),
		service.NewHardwareService(s.catalog),
	)
	server.HandlerFromMux(server.NewStrictHandler(h, nil), router)

	return router, nil
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router, err := s.Handler()
	if err != nil {
		return err
	}
	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

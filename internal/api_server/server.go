package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kubev2v/fracture-planner/internal/config"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/events"
	handlers "github.com/kubev2v/fracture-planner/internal/handlers/v1alpha1"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/internal/store"
	"github.com/kubev2v/fracture-planner/internal/units"
	"github.com/kubev2v/fracture-planner/pkg/log"
	"github.com/kubev2v/fracture-planner/pkg/metrics"
	"github.com/kubev2v/fracture-planner/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	engine   *estimation.Engine
	listener net.Listener
	events   *events.EventProducer
}

type Option func(*Server)

// WithEvents publishes run events through ep.
func WithEvents(ep *events.EventProducer) Option {
	return func(s *Server) {
		s.events = ep
	}
}

// New returns a new instance of a fracture-planner server. A nil store
// serves computations without run history.
func New(
	cfg *config.Config,
	store store.Store,
	engine *estimation.Engine,
	listener net.Listener,
	opts ...Option,
) *Server {
	s := &Server{
		cfg:      cfg,
		store:    store,
		engine:   engine,
		listener: listener,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP handler tree of the API.
func (s *Server) Router() (http.Handler, error) {
	unitSystem, err := units.ParseSystem(s.cfg.Estimation.UnitSystem)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server", s.cfg.Service.LatencyBuckets...)
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.StripPathPrefix(s.cfg.Service.PathPrefix),
		middleware.RequestID,
		log.ConditionalLogger(s.cfg.Service.LogLevel, zap.L(), "api_server"),
		chiMiddleware.Recoverer,
	)

	var runStore store.Store
	if s.cfg.Estimation.PersistRuns {
		runStore = s.store
	}

	var srvOpts []service.ComputationServiceOption
	if s.events != nil {
		srvOpts = append(srvOpts, service.WithEventProducer(s.events))
	}

	h := handlers.NewServiceHandler(
		service.NewComputationService(runStore, s.engine, srvOpts...),
		service.NewReportService(runStore),
		handlers.WithDefaultUnitSystem(unitSystem),
		handlers.WithPersistByDefault(runStore != nil),
	)
	h.RegisterRoutes(router)

	return router, nil
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router, err := s.Router()
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

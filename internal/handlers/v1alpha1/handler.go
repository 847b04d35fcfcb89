package v1alpha1

import (
	"github.com/go-chi/chi/v5"

	"github.com/kubev2v/fracture-planner/internal/handlers/validator"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/internal/units"
)

type ServiceHandler struct {
	computationSrv *service.ComputationService
	reportSrv      *service.ReportService
	validator      *validator.Validator
	unitSystem     units.System
	persist        bool
}

type HandlerOption func(*ServiceHandler)

// WithDefaultUnitSystem sets the unit system used when a request names none.
func WithDefaultUnitSystem(system units.System) HandlerOption {
	return func(h *ServiceHandler) {
		h.unitSystem = system
	}
}

// WithPersistByDefault decides whether runs are stored when a request does
// not say.
func WithPersistByDefault(persist bool) HandlerOption {
	return func(h *ServiceHandler) {
		h.persist = persist
	}
}

func NewServiceHandler(computationSrv *service.ComputationService, reportSrv *service.ReportService, opts ...HandlerOption) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewComputationValidationRules()...)
	v.Register(validator.NewReportValidationRules()...)

	h := &ServiceHandler{
		computationSrv: computationSrv,
		reportSrv:      reportSrv,
		validator:      v,
		unitSystem:     units.SI,
		persist:        true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the v1 API on r.
func (h *ServiceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/info", h.GetInfo)
		r.Get("/models", h.ListModels)

		r.Post("/computations", h.CreateComputation)
		r.Post("/computations/compare", h.CompareModels)

		r.Get("/runs", h.ListRuns)
		r.Route("/runs/{id}", func(r chi.Router) {
			r.Get("/", h.GetRun)
			r.Delete("/", h.DeleteRun)
			r.Get("/report", h.GetRunReport)
		})
	})
}

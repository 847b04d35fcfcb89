package v1alpha1

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/kubev2v/fracture-planner/api/v1alpha1"
	"github.com/kubev2v/fracture-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/fracture-planner/pkg/log"
)

// (POST /api/v1/computations)
func (h *ServiceHandler) CreateComputation(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("computation_handler").
		WithContext(r.Context()).
		Operation("create_computation").
		Build()

	var req v1alpha1.ComputationRequest
	if err := render.Bind(r, &req); err != nil {
		logger.Error(err).WithString("step", "decode").Log()
		renderErrorWithStatus(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		logger.Error(err).WithString("step", "validation").Log()
		renderError(w, r, err)
		return
	}

	form, err := mappers.ComputeFormFromApi(&req, h.unitSystem, h.persist)
	if err != nil {
		logger.Error(err).WithString("step", "map_form").Log()
		renderError(w, r, err)
		return
	}
	logger.Step("mapped_form").
		WithString("model", string(form.Model)).
		WithString("unit_system", string(form.UnitSystem)).
		WithBool("persist", form.Persist).
		Log()

	run, err := h.computationSrv.Compute(r.Context(), form)
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, err)
		return
	}

	logger.Success().WithUUID("run_id", run.ID).Log()
	status := http.StatusOK
	if form.Persist {
		status = http.StatusCreated
	}
	render.Status(r, status)
	_ = render.Render(w, r, mappers.RunToApi(run, form.Persist))
}

// (POST /api/v1/computations/compare)
func (h *ServiceHandler) CompareModels(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("computation_handler").
		WithContext(r.Context()).
		Operation("compare_models").
		Build()

	var req v1alpha1.CompareRequest
	if err := render.Bind(r, &req); err != nil {
		logger.Error(err).WithString("step", "decode").Log()
		renderErrorWithStatus(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		logger.Error(err).WithString("step", "validation").Log()
		renderError(w, r, err)
		return
	}

	system, err := mappers.UnitSystemFromApi(req.UnitSystem, h.unitSystem)
	if err != nil {
		renderError(w, r, err)
		return
	}

	comparisons, err := h.computationSrv.CompareModels(r.Context(), system, mappers.InputFromApi(req.Input))
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, err)
		return
	}

	logger.Success().WithInt("models", len(comparisons)).Log()
	_ = render.Render(w, r, mappers.ComparisonToApi(system, comparisons))
}

// (GET /api/v1/models)
func (h *ServiceHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, mappers.ModelsToApi(h.computationSrv.Engine()))
}

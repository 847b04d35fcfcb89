package v1alpha1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/pkg/log"
)

const maxListLimit = 500

func runID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderErrorWithStatus(w, r, http.StatusBadRequest, fmt.Sprintf("invalid run id: %v", err))
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return v, nil
}

// (GET /api/v1/runs)
func (h *ServiceHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("run_handler").
		WithContext(r.Context()).
		Operation("list_runs").
		Build()

	filter := service.RunFilter{
		Model:  r.URL.Query().Get("model"),
		Regime: r.URL.Query().Get("regime"),
	}

	if filter.Model != "" {
		if err := h.validator.Var(filter.Model, "model"); err != nil {
			renderError(w, r, err)
			return
		}
		m, _ := estimation.ParseModel(filter.Model)
		filter.Model = string(m)
	}

	var err error
	if filter.Limit, err = intQuery(r, "limit"); err != nil {
		renderErrorWithStatus(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.Offset, err = intQuery(r, "offset"); err != nil {
		renderErrorWithStatus(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	runs, err := h.computationSrv.ListRuns(r.Context(), filter)
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, err)
		return
	}

	logger.Success().WithInt("count", len(runs)).Log()
	_ = render.Render(w, r, mappers.RunListToApi(runs))
}

// (GET /api/v1/runs/{id})
func (h *ServiceHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, ok := runID(w, r)
	if !ok {
		return
	}

	run, err := h.computationSrv.GetRun(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	_ = render.Render(w, r, mappers.RunToApi(run, true))
}

// (DELETE /api/v1/runs/{id})
func (h *ServiceHandler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("run_handler").
		WithContext(r.Context()).
		Operation("delete_run").
		Build()

	id, ok := runID(w, r)
	if !ok {
		return
	}

	if err := h.computationSrv.DeleteRun(r.Context(), id); err != nil {
		logger.Error(err).Log()
		renderError(w, r, err)
		return
	}

	logger.Success().WithUUID("run_id", id).Log()
	render.NoContent(w, r)
}

// (GET /api/v1/runs/{id}/report?format=csv|html|xlsx)
func (h *ServiceHandler) GetRunReport(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("run_handler").
		WithContext(r.Context()).
		Operation("get_run_report").
		Build()

	id, ok := runID(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(service.ReportFormatCSV)
	}
	if err := h.validator.Var(format, "report_format"); err != nil {
		renderError(w, r, err)
		return
	}

	options := service.ReportOptions{
		Format:         service.ReportFormat(format),
		IncludeHistory: r.URL.Query().Get("history") != "false",
		IncludeProfile: r.URL.Query().Get("profile") != "false",
	}

	rep, err := h.reportSrv.GenerateReport(r.Context(), id, options)
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, err)
		return
	}

	logger.Success().WithString("format", format).WithInt("size", len(rep.Content)).Log()
	w.Header().Set("Content-Type", rep.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rep.Content)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/kubev2v/fracture-planner/internal/service/report"
	"github.com/kubev2v/fracture-planner/internal/service/report/csv"
	"github.com/kubev2v/fracture-planner/internal/service/report/html"
	"github.com/kubev2v/fracture-planner/internal/service/report/types"
	"github.com/kubev2v/fracture-planner/internal/service/report/xlsx"
	"github.com/kubev2v/fracture-planner/internal/store"
	"github.com/kubev2v/fracture-planner/internal/store/model"
	"github.com/kubev2v/fracture-planner/pkg/log"
)

type ReportRenderer = types.ReportRenderer
type RunProcessor = types.RunProcessor
type ReportFormat = types.ReportFormat
type ReportOptions = types.ReportOptions
type ReportData = types.ReportData

const (
	ReportFormatCSV  = types.ReportFormatCSV
	ReportFormatHTML = types.ReportFormatHTML
	ReportFormatXLSX = types.ReportFormatXLSX
)

// Report is a rendered run ready to be written to a file or a response.
type Report struct {
	Content     []byte
	ContentType string
	Filename    string
}

type ReportService struct {
	store     store.Store
	processor types.RunProcessor
	renderers map[types.ReportFormat]types.ReportRenderer
	logger    *log.StructuredLogger
}

// NewReportService builds the renderer registry. The store may be nil when
// reports are only rendered from in-memory runs.
func NewReportService(s store.Store) *ReportService {
	service := &ReportService{
		store:     s,
		processor: report.NewStandardRunProcessor(),
		renderers: make(map[types.ReportFormat]types.ReportRenderer),
		logger:    log.NewDebugLogger("report_service"),
	}

	for _, r := range []types.ReportRenderer{csv.NewRenderer(), html.NewRenderer(), xlsx.NewRenderer()} {
		service.renderers[r.SupportedFormat()] = r
	}

	return service
}

func (r *ReportService) SupportedFormats() []ReportFormat {
	formats := make([]ReportFormat, 0, len(r.renderers))
	for f := range r.renderers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// GenerateReport loads a stored run and renders it.
func (r *ReportService) GenerateReport(ctx context.Context, id uuid.UUID, options ReportOptions) (*Report, error) {
	logger := r.logger.WithContext(ctx)
	tracer := logger.Operation("generate_report").
		WithUUID("run_id", id).
		WithString("format", string(options.Format)).
		Build()

	if r.store == nil {
		return nil, NewErrPersistenceDisabled()
	}

	run, err := r.store.Run().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrRunNotFound(id)
		}
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	tracer.Step("run_loaded").WithString("model", run.Model).Log()

	rep, err := r.Render(run, options)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Success().WithInt("size", len(rep.Content)).Log()
	return rep, nil
}

// Render renders a run that does not need to be stored.
func (r *ReportService) Render(run *model.Run, options ReportOptions) (*Report, error) {
	renderer, exists := r.renderers[options.Format]
	if !exists {
		return nil, NewErrUnsupportedReportFormat(string(options.Format))
	}

	data, err := r.processor.ProcessRun(run)
	if err != nil {
		return nil, fmt.Errorf("failed to process run: %w", err)
	}
	data.Options = options

	content, err := renderer.Render(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s report: %w", options.Format, err)
	}

	return &Report{
		Content:     content,
		ContentType: renderer.ContentType(),
		Filename:    fmt.Sprintf("fracture-%s-%s.%s", run.Model, run.ID, options.Format),
	}, nil
}

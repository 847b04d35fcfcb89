package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/events"
	"github.com/kubev2v/fracture-planner/internal/store"
	"github.com/kubev2v/fracture-planner/internal/store/model"
	"github.com/kubev2v/fracture-planner/internal/units"
	"github.com/kubev2v/fracture-planner/pkg/log"
	"github.com/kubev2v/fracture-planner/pkg/metrics"
	"go.uber.org/zap"
)

type ComputationService struct {
	store  store.Store
	engine *estimation.Engine
	events *events.EventProducer
	logger *log.StructuredLogger
}

type ComputationServiceOption func(*ComputationService)

// WithEventProducer publishes an event for every computed and deleted run.
func WithEventProducer(ep *events.EventProducer) ComputationServiceOption {
	return func(cs *ComputationService) {
		cs.events = ep
	}
}

// NewComputationService wires the engine to the run store. A nil store
// turns the service into a pure calculator.
func NewComputationService(s store.Store, engine *estimation.Engine, opts ...ComputationServiceOption) *ComputationService {
	cs := &ComputationService{
		store:  s,
		engine: engine,
		logger: log.NewDebugLogger("computation_service"),
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// ComputeForm is one computation request. Input is expressed in UnitSystem.
type ComputeForm struct {
	Name       string
	Model      estimation.Model
	UnitSystem units.System
	Input      estimation.Input
	Persist    bool
}

// ModelComparison is the outcome of one model in CompareModels. Exactly one
// of Result and Error is set.
type ModelComparison struct {
	Model  estimation.Model
	Result *estimation.Result
	Error  error
}

type RunFilter struct {
	Model  string
	Regime string
	Limit  int
	Offset int
}

func (cs *ComputationService) Models() []estimation.Model {
	return cs.engine.Models()
}

func (cs *ComputationService) Engine() *estimation.Engine {
	return cs.engine
}

// Compute runs the selected model and its sensitivity table and returns the
// run dump. The stored result is always SI.
func (cs *ComputationService) Compute(ctx context.Context, form ComputeForm) (*model.Run, error) {
	logger := cs.logger.WithContext(ctx)
	tracer := logger.Operation("compute").
		WithString("model", string(form.Model)).
		WithString("unit_system", string(form.UnitSystem)).
		WithBool("persist", form.Persist).
		Build()

	if form.Persist && cs.store == nil {
		return nil, NewErrPersistenceDisabled()
	}

	if form.UnitSystem == "" {
		form.UnitSystem = units.SI
	}

	start := time.Now()
	si := form.UnitSystem.InputToSI(form.Input)

	result, err := cs.engine.Compute(form.Model, si)
	if err != nil {
		cs.recordFailure(form.Model, err)
		tracer.Error(err).Log()
		return nil, err
	}
	tracer.Step("result_computed").
		WithFloat("length", result.Length).
		WithString("regime", string(result.Regime)).
		WithInt("warnings", len(result.Warnings)).
		Log()

	rows, err := cs.engine.Sensitivity(si, form.Model, result)
	if err != nil {
		cs.recordFailure(form.Model, err)
		tracer.Error(err).Log()
		return nil, err
	}
	tracer.Step("sensitivity_computed").WithInt("rows", len(rows)).Log()

	metrics.ObserveComputationDuration(string(form.Model), time.Since(start))
	metrics.IncreaseComputationsTotalMetric(string(form.Model), metrics.OutcomeSuccess)
	metrics.IncreaseWarningsTotalMetric(string(form.Model), string(result.Regime), len(result.Warnings))

	run := model.NewRun(form.Name, string(form.UnitSystem), form.Input, result, rows)

	if form.Persist {
		created, err := cs.storeRun(ctx, run)
		if err != nil {
			tracer.Error(err).Log()
			return nil, err
		}
		run = *created
		tracer.Step("run_stored").WithUUID("run_id", run.ID).Log()
	}

	cs.publish(ctx, events.RunComputedKind, events.RunEvent{
		RunID:      run.ID.String(),
		Name:       run.Name,
		Model:      run.Model,
		Regime:     run.Regime,
		UnitSystem: run.UnitSystem,
		Warnings:   run.Warnings,
		Persisted:  form.Persist,
		Timestamp:  run.CreatedAt,
	})

	tracer.Success().WithUUID("run_id", run.ID).Log()
	return &run, nil
}

// storeRun writes run in its own transaction, or in the caller's when ctx
// already carries one.
func (cs *ComputationService) storeRun(ctx context.Context, run model.Run) (*model.Run, error) {
	ctx, err := cs.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = store.Rollback(ctx)
	}()

	created, err := cs.store.Run().Create(ctx, run)
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, fmt.Errorf("failed to store run: %w", err)
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// CompareModels evaluates every registered model on the same input. A model
// that fails does not hide the others.
func (cs *ComputationService) CompareModels(ctx context.Context, system units.System, in estimation.Input) ([]ModelComparison, error) {
	logger := cs.logger.WithContext(ctx)
	tracer := logger.Operation("compare_models").
		WithString("unit_system", string(system)).
		Build()

	si := system.InputToSI(in)

	// invalid input fails every model the same way
	if err := estimation.Validate(si); err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	models := cs.engine.Models()
	comparisons := make([]ModelComparison, 0, len(models))
	for _, m := range models {
		res, err := cs.engine.Compute(m, si)
		if err != nil {
			cs.recordFailure(m, err)
			tracer.Step("model_failed").WithString("model", string(m)).WithString("reason", err.Error()).Log()
			comparisons = append(comparisons, ModelComparison{Model: m, Error: err})
			continue
		}
		metrics.IncreaseComputationsTotalMetric(string(m), metrics.OutcomeSuccess)
		comparisons = append(comparisons, ModelComparison{Model: m, Result: &res})
	}

	tracer.Success().WithInt("models", len(comparisons)).Log()
	return comparisons, nil
}

func (cs *ComputationService) ListRuns(ctx context.Context, filter RunFilter) (model.RunList, error) {
	logger := cs.logger.WithContext(ctx)
	tracer := logger.Operation("list_runs").
		WithString("model", filter.Model).
		WithString("regime", filter.Regime).
		WithInt("limit", filter.Limit).
		WithInt("offset", filter.Offset).
		Build()

	if cs.store == nil {
		return nil, NewErrPersistenceDisabled()
	}

	storeFilter := store.NewRunQueryFilter()
	if filter.Model != "" {
		storeFilter = storeFilter.ByModel(filter.Model)
	}
	if filter.Regime != "" {
		storeFilter = storeFilter.ByRegime(filter.Regime)
	}
	opts := store.NewRunQueryOptions().
		WithSortOrder(store.SortByCreatedTimeDesc).
		WithLimit(filter.Limit).
		WithOffset(filter.Offset)

	runs, err := cs.store.Run().List(ctx, storeFilter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	tracer.Success().WithInt("count", len(runs)).Log()
	return runs, nil
}

func (cs *ComputationService) GetRun(ctx context.Context, id uuid.UUID) (*model.Run, error) {
	logger := cs.logger.WithContext(ctx)
	tracer := logger.Operation("get_run").
		WithUUID("run_id", id).
		Build()

	if cs.store == nil {
		return nil, NewErrPersistenceDisabled()
	}

	run, err := cs.store.Run().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrRunNotFound(id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	tracer.Success().WithString("model", run.Model).Log()
	return run, nil
}

func (cs *ComputationService) DeleteRun(ctx context.Context, id uuid.UUID) error {
	logger := cs.logger.WithContext(ctx)
	tracer := logger.Operation("delete_run").
		WithUUID("run_id", id).
		Build()

	if cs.store == nil {
		return NewErrPersistenceDisabled()
	}

	ctx, err := cs.store.NewTransactionContext(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = store.Rollback(ctx)
	}()

	run, err := cs.store.Run().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrRunNotFound(id)
		}
		return fmt.Errorf("failed to get run: %w", err)
	}

	if err := cs.store.Run().Delete(ctx, id); err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrRunNotFound(id)
		}
		return fmt.Errorf("failed to delete run: %w", err)
	}

	if _, err := store.Commit(ctx); err != nil {
		tracer.Error(err).Log()
		return err
	}

	cs.publish(ctx, events.RunDeletedKind, events.RunEvent{
		RunID:      id.String(),
		Name:       run.Name,
		Model:      run.Model,
		Regime:     run.Regime,
		UnitSystem: run.UnitSystem,
		Warnings:   run.Warnings,
		Persisted:  true,
		Timestamp:  time.Now().UTC(),
	})

	tracer.Success().Log()
	return nil
}

// publish never fails the caller: a lost event is only logged.
func (cs *ComputationService) publish(ctx context.Context, kind string, ev events.RunEvent) {
	if cs.events == nil {
		return
	}
	if err := cs.events.Publish(ctx, kind, ev); err != nil {
		zap.S().Named("computation_service").Warnw("failed to publish event", "kind", kind, "run_id", ev.RunID, "error", err)
	}
}

func (cs *ComputationService) recordFailure(m estimation.Model, err error) {
	outcome := metrics.OutcomeError
	switch {
	case errors.Is(err, estimation.ErrInvalidInput), errors.Is(err, estimation.ErrUnsupportedModel):
		outcome = metrics.OutcomeInvalid
	case errors.Is(err, estimation.ErrDegenerateResult):
		outcome = metrics.OutcomeDegenerate
	}
	metrics.IncreaseComputationsTotalMetric(string(m), outcome)
}

package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kubev2v/fracture-planner/internal/store/model"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type Run interface {
	List(ctx context.Context, filter *RunQueryFilter, opts *RunQueryOptions) (model.RunList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Run, error)
	Create(ctx context.Context, run model.Run) (*model.Run, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter *RunQueryFilter) (int64, error)
}

type RunStore struct {
	db *gorm.DB
}

// Make sure we conform to Run interface
var _ Run = (*RunStore)(nil)

func NewRunStore(db *gorm.DB) Run {
	return &RunStore{db: db}
}

func (r *RunStore) List(ctx context.Context, filter *RunQueryFilter, opts *RunQueryOptions) (model.RunList, error) {
	var runs model.RunList
	tx := r.getDB(ctx).Model(&runs)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if opts != nil && len(opts.QueryFn) > 0 {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	} else {
		tx = tx.Order("created_at DESC")
	}

	if err := tx.Find(&runs).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list runs")
	}
	return runs, nil
}

func (r *RunStore) Get(ctx context.Context, id uuid.UUID) (*model.Run, error) {
	var run model.Run
	result := r.getDB(ctx).First(&run, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, pkgerrors.Wrapf(result.Error, "failed to get run %s", id)
	}
	return &run, nil
}

func (r *RunStore) Create(ctx context.Context, run model.Run) (*model.Run, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	result := r.getDB(ctx).Create(&run)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, pkgerrors.Wrap(result.Error, "failed to create run")
	}
	return &run, nil
}

func (r *RunStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.getDB(ctx).Delete(&model.Run{}, "id = ?", id.String())
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "failed to delete run %s", id)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *RunStore) Count(ctx context.Context, filter *RunQueryFilter) (int64, error) {
	var count int64
	tx := r.getDB(ctx).Model(&model.Run{})
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if err := tx.Count(&count).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "failed to count runs")
	}
	return count, nil
}

func (r *RunStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

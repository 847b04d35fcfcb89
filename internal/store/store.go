package store

import (
	"context"

	"github.com/kubev2v/fracture-planner/internal/store/model"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Run() Run
	InitialMigration(ctx context.Context) error
	Statistics(ctx context.Context) (model.RunStats, error)
	Close() error
}

type DataStore struct {
	db  *gorm.DB
	run Run
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		run: NewRunStore(db),
		db:  db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Run() Run {
	return s.run
}

// InitialMigration creates or updates the schema of every persisted model.
func (s *DataStore) InitialMigration(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&model.Run{}); err != nil {
		return pkgerrors.Wrap(err, "failed to migrate runs")
	}
	return nil
}

func (s *DataStore) Statistics(ctx context.Context) (model.RunStats, error) {
	var runs []model.Run
	// only the denormalized columns are needed
	err := s.db.WithContext(ctx).
		Model(&model.Run{}).
		Select("model", "regime", "warnings").
		Find(&runs).Error
	if err != nil {
		return model.RunStats{}, pkgerrors.Wrap(err, "failed to collect run statistics")
	}
	return model.NewRunStats(runs), nil
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

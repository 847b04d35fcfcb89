package store

import (
	"time"

	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByCreatedTime
	SortByCreatedTimeDesc
	SortByModel
)

type RunQueryFilter BaseQuerier

func NewRunQueryFilter() *RunQueryFilter {
	return &RunQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *RunQueryFilter) ByModel(model string) *RunQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("model = ?", model)
	})
	return qf
}

func (qf *RunQueryFilter) ByRegime(regime string) *RunQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("regime = ?", regime)
	})
	return qf
}

func (qf *RunQueryFilter) ByName(name string) *RunQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("name = ?", name)
	})
	return qf
}

func (qf *RunQueryFilter) CreatedAfter(t time.Time) *RunQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_at > ?", t)
	})
	return qf
}

func (qf *RunQueryFilter) WithWarnings() *RunQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("warnings > 0")
	})
	return qf
}

type RunQueryOptions BaseQuerier

func NewRunQueryOptions() *RunQueryOptions {
	return &RunQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *RunQueryOptions) WithSortOrder(sort SortOrder) *RunQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByCreatedTime:
			return tx.Order("created_at")
		case SortByCreatedTimeDesc:
			return tx.Order("created_at DESC")
		case SortByModel:
			return tx.Order("model").Order("created_at DESC")
		default:
			return tx
		}
	})
	return o
}

func (o *RunQueryOptions) WithLimit(limit int) *RunQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return tx
		}
		return tx.Limit(limit)
	})
	return o
}

func (o *RunQueryOptions) WithOffset(offset int) *RunQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		if offset <= 0 {
			return tx
		}
		return tx.Offset(offset)
	})
	return o
}

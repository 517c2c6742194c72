package store

import (
	"time"

	"gorm.io/gorm"
)

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByCreatedTime
	SortByCreatedTimeDesc
	SortByEstimatedCostDesc
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

func (b *BaseQuerier) apply(tx *gorm.DB) *gorm.DB {
	if b == nil {
		return tx
	}
	for _, fn := range b.QueryFn {
		tx = fn(tx)
	}
	return tx
}

type CalculationQueryFilter BaseQuerier

func NewCalculationQueryFilter() *CalculationQueryFilter {
	return &CalculationQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *CalculationQueryFilter) ByPackage(pkg string) *CalculationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("package = ?", pkg)
	})
	return f
}

func (f *CalculationQueryFilter) ByBuildingType(bt string) *CalculationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("building_type = ?", bt)
	})
	return f
}

func (f *CalculationQueryFilter) ByEmail(email string) *CalculationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("email = ?", email)
	})
	return f
}

// CreatedAfter keeps calculations created at or after t.
func (f *CalculationQueryFilter) CreatedAfter(t time.Time) *CalculationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_at >= ?", t.UTC())
	})
	return f
}

// CreatedBefore keeps calculations created strictly before t.
func (f *CalculationQueryFilter) CreatedBefore(t time.Time) *CalculationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_at < ?", t.UTC())
	})
	return f
}

type ListOptions BaseQuerier

func NewListOptions() *ListOptions {
	return &ListOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *ListOptions) WithLimit(limit int) *ListOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return o
}

func (o *ListOptions) WithOffset(offset int) *ListOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(offset)
	})
	return o
}

func (o *ListOptions) WithSortOrder(sort SortOrder) *ListOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByCreatedTime:
			return tx.Order("created_at")
		case SortByCreatedTimeDesc:
			return tx.Order("created_at DESC")
		case SortByEstimatedCostDesc:
			return tx.Order("estimated_cost DESC")
		default:
			return tx
		}
	})
	return o
}

package store

import (
	"context"
	"errors"

	"github.com/chasta/skyguard/internal/store/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Calculation interface {
	Create(ctx context.Context, calculation model.Calculation) (*model.Calculation, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Calculation, error)
	List(ctx context.Context, filter *CalculationQueryFilter, opts *ListOptions) (model.CalculationList, error)
	Count(ctx context.Context, filter *CalculationQueryFilter) (int64, error)
	Stats(ctx context.Context) (model.LeadStats, error)
}

type CalculationStore struct {
	db *gorm.DB
}

func NewCalculationStore(db *gorm.DB) Calculation {
	return &CalculationStore{db: db}
}

// Create inserts one calculation. The id is generated when empty.
func (c *CalculationStore) Create(ctx context.Context, calculation model.Calculation) (*model.Calculation, error) {
	if err := c.getDB(ctx).WithContext(ctx).Create(&calculation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return &calculation, nil
}

// Get returns a calculation based on its id.
func (c *CalculationStore) Get(ctx context.Context, id uuid.UUID) (*model.Calculation, error) {
	calculation := &model.Calculation{}

	if err := c.getDB(ctx).WithContext(ctx).Where("id = ?", id).First(calculation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return calculation, nil
}

// List lists the calculations matching filter.
func (c *CalculationStore) List(ctx context.Context, filter *CalculationQueryFilter, opts *ListOptions) (model.CalculationList, error) {
	var calculations model.CalculationList

	tx := c.getDB(ctx).WithContext(ctx)
	tx = (*BaseQuerier)(filter).apply(tx)
	tx = (*BaseQuerier)(opts).apply(tx)

	if err := tx.Model(&calculations).Find(&calculations).Error; err != nil {
		return nil, err
	}

	return calculations, nil
}

func (c *CalculationStore) Count(ctx context.Context, filter *CalculationQueryFilter) (int64, error) {
	var count int64

	tx := c.getDB(ctx).WithContext(ctx).Model(&model.Calculation{})
	tx = (*BaseQuerier)(filter).apply(tx)

	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// Stats counts the calculations per package and sums their estimated cost.
func (c *CalculationStore) Stats(ctx context.Context) (model.LeadStats, error) {
	var rows []struct {
		Package string
		Total   int64
		Value   int64
	}

	err := c.getDB(ctx).WithContext(ctx).
		Model(&model.Calculation{}).
		Select("package, COUNT(*) AS total, COALESCE(SUM(estimated_cost), 0) AS value").
		Group("package").
		Scan(&rows).Error
	if err != nil {
		return model.LeadStats{}, err
	}

	stats := model.LeadStats{ByPackage: make(map[string]int64, len(rows))}
	for _, r := range rows {
		stats.Total += r.Total
		stats.TotalEstimatedValue += r.Value
		stats.ByPackage[r.Package] = r.Total
	}

	return stats, nil
}

func (c *CalculationStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return c.db
}

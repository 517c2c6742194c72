package store

import (
	"context"
	"errors"

	"github.com/chasta/skyguard/internal/store/model"
	"gorm.io/gorm"
)

type Service interface {
	List(ctx context.Context, opts *ListOptions) (model.ServiceList, error)
	Create(ctx context.Context, service model.Service) (*model.Service, error)
	Count(ctx context.Context) (int64, error)
}

type Project interface {
	List(ctx context.Context, opts *ListOptions) (model.ProjectList, error)
	Create(ctx context.Context, project model.Project) (*model.Project, error)
	Count(ctx context.Context) (int64, error)
}

type Testimonial interface {
	List(ctx context.Context, opts *ListOptions) (model.TestimonialList, error)
	Create(ctx context.Context, testimonial model.Testimonial) (*model.Testimonial, error)
	Count(ctx context.Context) (int64, error)
}

// contentStore implements the read-mostly landing page tables.
type contentStore[T any, L ~[]T] struct {
	db *gorm.DB
	// order is applied before the caller options.
	order string
}

func (c *contentStore[T, L]) List(ctx context.Context, opts *ListOptions) (L, error) {
	var items L

	tx := c.getDB(ctx).WithContext(ctx).Order(c.order)
	tx = (*BaseQuerier)(opts).apply(tx)

	if err := tx.Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (c *contentStore[T, L]) Create(ctx context.Context, item T) (*T, error) {
	if err := c.getDB(ctx).WithContext(ctx).Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return &item, nil
}

func (c *contentStore[T, L]) Count(ctx context.Context) (int64, error) {
	var count int64
	var zero T
	if err := c.getDB(ctx).WithContext(ctx).Model(&zero).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (c *contentStore[T, L]) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return c.db
}

// NewServiceStore lists services in creation order.
func NewServiceStore(db *gorm.DB) Service {
	return &contentStore[model.Service, model.ServiceList]{db: db, order: "created_at ASC"}
}

// NewProjectStore lists the most recently completed projects first.
func NewProjectStore(db *gorm.DB) Project {
	return &contentStore[model.Project, model.ProjectList]{db: db, order: "completion_date DESC"}
}

// NewTestimonialStore lists the newest testimonials first.
func NewTestimonialStore(db *gorm.DB) Testimonial {
	return &contentStore[model.Testimonial, model.TestimonialList]{db: db, order: "created_at DESC"}
}

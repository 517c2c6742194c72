package store

import (
	"context"

	"github.com/chasta/skyguard/internal/store/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Calculation() Calculation
	Service() Service
	Project() Project
	Testimonial() Testimonial
	InitialMigration(ctx context.Context) error
	Seed(ctx context.Context) error
	Statistics(ctx context.Context) (model.LeadStats, error)
	Ping(ctx context.Context) error
	Close() error
}

type DataStore struct {
	db          *gorm.DB
	calculation Calculation
	service     Service
	project     Project
	testimonial Testimonial
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		calculation: NewCalculationStore(db),
		service:     NewServiceStore(db),
		project:     NewProjectStore(db),
		testimonial: NewTestimonialStore(db),
		db:          db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Calculation() Calculation {
	return s.calculation
}

func (s *DataStore) Service() Service {
	return s.service
}

func (s *DataStore) Project() Project {
	return s.project
}

func (s *DataStore) Testimonial() Testimonial {
	return s.testimonial
}

// InitialMigration creates the tables from the models. Production databases are migrated with goose.
func (s *DataStore) InitialMigration(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&model.Calculation{},
		&model.Service{},
		&model.Project{},
		&model.Testimonial{},
	)
}

func (s *DataStore) Statistics(ctx context.Context) (model.LeadStats, error) {
	return s.Calculation().Stats(ctx)
}

// Seed inserts the default landing page content in one transaction. Services and projects
// are keyed by title, testimonials are only inserted into an empty table.
func (s *DataStore) Seed(ctx context.Context) error {
	ctx, err := s.NewTransactionContext(ctx)
	if err != nil {
		return err
	}

	services, err := seedMissing[model.Service, model.ServiceList](ctx, s.Service(), DefaultServices(), func(m model.Service) string { return m.Title })
	if err != nil {
		_, _ = Rollback(ctx)
		return err
	}

	projects, err := seedMissing[model.Project, model.ProjectList](ctx, s.Project(), DefaultProjects(), func(m model.Project) string { return m.Title })
	if err != nil {
		_, _ = Rollback(ctx)
		return err
	}

	count, err := s.Testimonial().Count(ctx)
	if err != nil {
		_, _ = Rollback(ctx)
		return err
	}
	testimonials := 0
	if count == 0 {
		for _, t := range DefaultTestimonials() {
			if _, err := s.Testimonial().Create(ctx, t); err != nil {
				_, _ = Rollback(ctx)
				return err
			}
			testimonials++
		}
	}

	if _, err := Commit(ctx); err != nil {
		return err
	}

	zap.S().Named("store").Infow("content seeded", "services", services, "projects", projects, "testimonials", testimonials)

	return nil
}

type seedable[T any, L ~[]T] interface {
	List(ctx context.Context, opts *ListOptions) (L, error)
	Create(ctx context.Context, item T) (*T, error)
}

// seedMissing creates the defaults whose key is not stored yet and returns how many were created.
func seedMissing[T any, L ~[]T](ctx context.Context, st seedable[T, L], defaults L, key func(T) string) (int, error) {
	existing, err := st.List(ctx, nil)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		seen[key(item)] = struct{}{}
	}

	created := 0
	for _, item := range defaults {
		if _, found := seen[key(item)]; found {
			continue
		}
		if _, err := st.Create(ctx, item); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *DataStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

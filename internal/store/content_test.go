package store_test

import (
	"context"
	"time"

	"github.com/chasta/skyguard/internal/config"
	"github.com/chasta/skyguard/internal/store"
	"github.com/chasta/skyguard/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("content store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		cfg, err := config.NewDefault()
		Expect(err).To(BeNil())

		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db

		Expect(s.InitialMigration(context.TODO())).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM services;")
		gormdb.Exec("DELETE FROM projects;")
		gormdb.Exec("DELETE FROM testimonials;")
	})

	Context("seed", func() {
		It("inserts the default content", func() {
			Expect(s.Seed(context.TODO())).To(BeNil())

			services, err := s.Service().List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(services).To(HaveLen(len(store.DefaultServices())))
			Expect(services[0].Title).To(Equal(store.DefaultServices()[0].Title))

			projects, err := s.Project().List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(projects).To(HaveLen(len(store.DefaultProjects())))

			testimonials, err := s.Testimonial().List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(testimonials).To(HaveLen(len(store.DefaultTestimonials())))
		})

		It("is idempotent", func() {
			Expect(s.Seed(context.TODO())).To(BeNil())
			Expect(s.Seed(context.TODO())).To(BeNil())

			count, err := s.Service().Count(context.TODO())
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(len(store.DefaultServices()))))

			count, err = s.Project().Count(context.TODO())
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(len(store.DefaultProjects()))))

			count, err = s.Testimonial().Count(context.TODO())
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(len(store.DefaultTestimonials()))))
		})

		It("restores a deleted default service without duplicating the others", func() {
			Expect(s.Seed(context.TODO())).To(BeNil())
			first := store.DefaultServices()[0]
			Expect(gormdb.Exec("DELETE FROM services WHERE title = ?", first.Title).Error).To(BeNil())

			Expect(s.Seed(context.TODO())).To(BeNil())

			services, err := s.Service().List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(services).To(HaveLen(len(store.DefaultServices())))
			titles := make(map[string]int)
			for _, svc := range services {
				titles[svc.Title]++
			}
			Expect(titles).To(HaveKeyWithValue(first.Title, 1))
		})
	})

	Context("ordering", func() {
		It("lists services oldest first", func() {
			t0 := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
			_, err := s.Service().Create(context.TODO(), model.Service{Title: "second", Description: "d", Icon: "Zap", CreatedAt: t0.Add(time.Hour)})
			Expect(err).To(BeNil())
			_, err = s.Service().Create(context.TODO(), model.Service{Title: "first", Description: "d", Icon: "Home", CreatedAt: t0})
			Expect(err).To(BeNil())

			services, err := s.Service().List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(services).To(HaveLen(2))
			Expect(services[0].Title).To(Equal("first"))
		})

		It("rejects a duplicated service title", func() {
			_, err := s.Service().Create(context.TODO(), model.Service{Title: "dup", Description: "d", Icon: "Zap"})
			Expect(err).To(BeNil())
			_, err = s.Service().Create(context.TODO(), model.Service{Title: "dup", Description: "d", Icon: "Zap"})
			Expect(err).To(Equal(store.ErrDuplicateKey))
		})

		It("lists projects by completion date, most recent first", func() {
			_, err := s.Project().Create(context.TODO(), model.Project{Title: "old", Description: "d", Location: "Bogor", CompletionDate: time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)})
			Expect(err).To(BeNil())
			_, err = s.Project().Create(context.TODO(), model.Project{Title: "new", Description: "d", Location: "Depok", CompletionDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)})
			Expect(err).To(BeNil())

			projects, err := s.Project().List(context.TODO(), store.NewListOptions().WithLimit(1))
			Expect(err).To(BeNil())
			Expect(projects).To(HaveLen(1))
			Expect(projects[0].Title).To(Equal("new"))
			Expect(projects[0].ImageURL).To(BeNil())
		})

		It("lists testimonials newest first", func() {
			t0 := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
			_, err := s.Testimonial().Create(context.TODO(), model.Testimonial{ClientName: "old", Message: "m", Rating: 4, CreatedAt: t0})
			Expect(err).To(BeNil())
			_, err = s.Testimonial().Create(context.TODO(), model.Testimonial{ClientName: "new", Message: "m", Rating: 5, CreatedAt: t0.Add(time.Hour)})
			Expect(err).To(BeNil())

			testimonials, err := s.Testimonial().List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(testimonials[0].ClientName).To(Equal("new"))
		})
	})
})

package store_test

import (
	"context"
	"time"

	"github.com/chasta/skyguard/internal/config"
	"github.com/chasta/skyguard/internal/store"
	"github.com/chasta/skyguard/internal/store/model"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func newCalculation(email string, cost int64, pkg string, createdAt time.Time) model.Calculation {
	return model.Calculation{
		CreatedAt:       createdAt,
		Name:            "Budi",
		Email:           email,
		Phone:           "081234567890",
		BuildingType:    "Rumah",
		Height:          8,
		Area:            100,
		LightningPoints: 2,
		SystemType:      "Konvensional",
		EstimatedCost:   cost,
		Package:         pkg,
	}
}

var _ = Describe("calculation store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		t0     = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
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
		gormdb.Exec("DELETE FROM calculations;")
	})

	Context("create", func() {
		It("successfully creates a calculation", func() {
			c, err := s.Calculation().Create(context.TODO(), newCalculation("budi@example.com", 5_625_000, "Paket Gedung", t0))
			Expect(err).To(BeNil())
			Expect(c.ID).NotTo(Equal(uuid.Nil))

			var count int64
			tx := gormdb.Raw("SELECT COUNT(*) FROM calculations;").Scan(&count)
			Expect(tx.Error).To(BeNil())
			Expect(count).To(Equal(int64(1)))
		})

		It("fails on duplicated id", func() {
			calc := newCalculation("budi@example.com", 1, "Paket Rumah", t0)
			calc.ID = uuid.New()

			_, err := s.Calculation().Create(context.TODO(), calc)
			Expect(err).To(BeNil())

			_, err = s.Calculation().Create(context.TODO(), calc)
			Expect(err).To(Equal(store.ErrDuplicateKey))
		})

		It("does not persist a rolled back calculation", func() {
			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			_, err = s.Calculation().Create(ctx, newCalculation("budi@example.com", 1, "Paket Rumah", t0))
			Expect(err).To(BeNil())

			_, err = store.Rollback(ctx)
			Expect(err).To(BeNil())

			var count int64
			tx := gormdb.Raw("SELECT COUNT(*) FROM calculations;").Scan(&count)
			Expect(tx.Error).To(BeNil())
			Expect(count).To(BeZero())
		})
	})

	Context("get", func() {
		It("successfully gets a calculation", func() {
			created, err := s.Calculation().Create(context.TODO(), newCalculation("siti@example.com", 4_062_500, "Paket Rumah", t0))
			Expect(err).To(BeNil())

			c, err := s.Calculation().Get(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			Expect(c.Email).To(Equal("siti@example.com"))
			Expect(c.EstimatedCost).To(Equal(int64(4_062_500)))
			Expect(c.Package).To(Equal("Paket Rumah"))
		})

		It("returns ErrRecordNotFound for an unknown id", func() {
			_, err := s.Calculation().Get(context.TODO(), uuid.New())
			Expect(err).To(Equal(store.ErrRecordNotFound))
		})
	})

	Context("list", func() {
		BeforeEach(func() {
			for i, c := range []model.Calculation{
				newCalculation("a@example.com", 4_000_000, "Paket Rumah", t0),
				newCalculation("b@example.com", 10_000_000, "Paket Gedung", t0.Add(time.Hour)),
				newCalculation("c@example.com", 105_000_000, "Paket Industri", t0.Add(2*time.Hour)),
				newCalculation("a@example.com", 6_000_000, "Paket Gedung", t0.Add(3*time.Hour)),
			} {
				_, err := s.Calculation().Create(context.TODO(), c)
				Expect(err).To(BeNil(), "calculation %d", i)
			}
		})

		It("lists everything newest first", func() {
			list, err := s.Calculation().List(context.TODO(), store.NewCalculationQueryFilter(), store.NewListOptions().WithSortOrder(store.SortByCreatedTimeDesc))
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(4))
			Expect(list[0].EstimatedCost).To(Equal(int64(6_000_000)))
			Expect(list[3].EstimatedCost).To(Equal(int64(4_000_000)))
		})

		It("filters by package", func() {
			list, err := s.Calculation().List(context.TODO(), store.NewCalculationQueryFilter().ByPackage("Paket Gedung"), nil)
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(2))
		})

		It("filters by email", func() {
			count, err := s.Calculation().Count(context.TODO(), store.NewCalculationQueryFilter().ByEmail("a@example.com"))
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(2)))
		})

		It("filters by creation window", func() {
			filter := store.NewCalculationQueryFilter().
				CreatedAfter(t0.Add(time.Hour)).
				CreatedBefore(t0.Add(3 * time.Hour))
			list, err := s.Calculation().List(context.TODO(), filter, nil)
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(2))
		})

		Context("when the server runs outside UTC", func() {
			var local *time.Location

			BeforeEach(func() {
				local = time.Local
				time.Local = time.FixedZone("WIB", 7*60*60)
			})

			AfterEach(func() {
				time.Local = local
			})

			It("matches a calculation stamped at creation", func() {
				created, err := s.Calculation().Create(context.TODO(), newCalculation("wib@example.com", 1, "Paket Rumah", time.Time{}))
				Expect(err).To(BeNil())
				Expect(created.CreatedAt.Location()).To(Equal(time.UTC))

				now := time.Now().UTC()
				filter := store.NewCalculationQueryFilter().
					ByEmail("wib@example.com").
					CreatedAfter(now.Add(-time.Hour)).
					CreatedBefore(now.Add(time.Hour))
				count, err := s.Calculation().Count(context.TODO(), filter)
				Expect(err).To(BeNil())
				Expect(count).To(Equal(int64(1)))
			})

			It("compares local bounds and local timestamps in UTC", func() {
				wib := time.FixedZone("WIB", 7*60*60)
				at := time.Date(2025, time.March, 5, 6, 30, 0, 0, wib) // 23:30Z the day before
				_, err := s.Calculation().Create(context.TODO(), newCalculation("wib@example.com", 1, "Paket Rumah", at))
				Expect(err).To(BeNil())

				filter := store.NewCalculationQueryFilter().
					ByEmail("wib@example.com").
					CreatedAfter(time.Date(2025, time.March, 4, 23, 0, 0, 0, time.UTC)).
					CreatedBefore(time.Date(2025, time.March, 5, 7, 0, 0, 0, wib))
				count, err := s.Calculation().Count(context.TODO(), filter)
				Expect(err).To(BeNil())
				Expect(count).To(Equal(int64(1)))
			})
		})

		It("paginates", func() {
			opts := store.NewListOptions().WithSortOrder(store.SortByEstimatedCostDesc).WithLimit(2).WithOffset(1)
			list, err := s.Calculation().List(context.TODO(), nil, opts)
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(2))
			Expect(list[0].EstimatedCost).To(Equal(int64(10_000_000)))
			Expect(list[1].EstimatedCost).To(Equal(int64(6_000_000)))
		})

		It("computes statistics", func() {
			stats, err := s.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.Total).To(Equal(int64(4)))
			Expect(stats.TotalEstimatedValue).To(Equal(int64(125_000_000)))
			Expect(stats.ByPackage).To(HaveKeyWithValue("Paket Gedung", int64(2)))
			Expect(stats.ByPackage).To(HaveKeyWithValue("Paket Industri", int64(1)))
		})
	})
})

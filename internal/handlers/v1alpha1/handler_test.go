package v1alpha1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/chasta/skyguard/api/v1alpha1"
	"github.com/chasta/skyguard/internal/auth"
	"github.com/chasta/skyguard/internal/config"
	handlers "github.com/chasta/skyguard/internal/handlers/v1alpha1"
	"github.com/chasta/skyguard/internal/service"
	"github.com/chasta/skyguard/internal/store"
	"github.com/chasta/skyguard/internal/store/model"
	"github.com/chasta/skyguard/pkg/middleware"
	"github.com/chasta/skyguard/pkg/requestid"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const secret = "handler-test-secret"

var _ = Describe("service handler", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		router http.Handler
		token  string
	)

	do := func(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != nil {
			switch b := body.(type) {
			case string:
				reader = strings.NewReader(b)
			default:
				data, err := json.Marshal(b)
				Expect(err).To(BeNil())
				reader = bytes.NewReader(data)
			}
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		for i := 0; i+1 < len(headers); i += 2 {
			req.Header.Set(headers[i], headers[i+1])
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	asAdmin := func(method, path string) *httptest.ResponseRecorder {
		return do(method, path, nil, "Authorization", "Bearer "+token)
	}

	decodeError := func(rr *httptest.ResponseRecorder) v1alpha1.Error {
		var apiErr v1alpha1.Error
		Expect(json.Unmarshal(rr.Body.Bytes(), &apiErr)).To(Succeed())
		return apiErr
	}

	validCalculation := func() v1alpha1.CalculationCreate {
		return v1alpha1.CalculationCreate{
			Name:            "Budi Santoso",
			Email:           "budi@example.com",
			Phone:           "0812-2155-6554",
			BuildingType:    "rumah",
			Height:          8,
			Area:            100,
			LightningPoints: 2,
			SystemType:      "konvensional",
		}
	}

	BeforeAll(func() {
		cfg, err := config.NewDefault()
		Expect(err).To(BeNil())
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration(context.TODO())).To(BeNil())
		Expect(s.Seed(context.TODO())).To(BeNil())

		authenticator, err := auth.NewLocalAuthenticator([]byte(secret))
		Expect(err).To(BeNil())
		token, err = auth.GenerateAdminToken([]byte(secret), "admin", time.Hour)
		Expect(err).To(BeNil())

		h := handlers.NewServiceHandler(
			service.NewEstimationService(s, nil),
			service.NewLeadService(s),
			service.NewContentService(s, cfg.Service.Contact),
			service.NewHealthService(s),
			cfg.Service.Contact,
		)

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		h.Mount(r, authenticator.Authenticator)
		router = r
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM calculations;")
	})

	Context("info", func() {
		It("reports health", func() {
			rr := do(http.MethodGet, "/health", nil)
			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(rr.Body.String()).To(ContainSubstring(`"status":"ok"`))
		})

		It("reports the version", func() {
			rr := do(http.MethodGet, "/api/v1/info", nil)
			Expect(rr.Code).To(Equal(http.StatusOK))

			var info v1alpha1.Info
			Expect(json.Unmarshal(rr.Body.Bytes(), &info)).To(Succeed())
			Expect(info.VersionName).NotTo(BeEmpty())
		})
	})

	Context("quote", func() {
		It("estimates without storing", func() {
			rr := do(http.MethodPost, "/api/v1/estimates/quote", v1alpha1.QuoteRequest{
				BuildingType:    "Tower",
				Height:          20,
				Area:            500,
				LightningPoints: 5,
				SystemType:      "Elektrostatis",
			})
			Expect(rr.Code).To(Equal(http.StatusOK))

			var estimate v1alpha1.Estimate
			Expect(json.Unmarshal(rr.Body.Bytes(), &estimate)).To(Succeed())
			Expect(estimate.EstimatedCost).To(Equal(int64(105_000_000)))
			Expect(estimate.FormattedCost).To(Equal("Rp 105.000.000"))
			Expect(estimate.Package).To(Equal(v1alpha1.PackageIndustrial))
			Expect(estimate.Breakdown.SystemMultiplier).To(Equal("1.5"))

			var count int64
			Expect(gormdb.Model(&model.Calculation{}).Count(&count).Error).To(BeNil())
			Expect(count).To(BeZero())
		})

		It("rejects a zero height", func() {
			rr := do(http.MethodPost, "/api/v1/estimates/quote", v1alpha1.QuoteRequest{
				BuildingType:    "Rumah",
				Area:            100,
				LightningPoints: 1,
				SystemType:      "Konvensional",
			})
			Expect(rr.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rr).Message).To(ContainSubstring("height"))
		})

		It("rejects a malformed body with the request id", func() {
			rr := do(http.MethodPost, "/api/v1/estimates/quote", "{not json", requestid.Header, "req-42")
			Expect(rr.Code).To(Equal(http.StatusBadRequest))

			apiErr := decodeError(rr)
			Expect(apiErr.RequestId).NotTo(BeNil())
			Expect(*apiErr.RequestId).To(Equal("req-42"))
		})
	})

	Context("calculations", func() {
		It("stores a calculation", func() {
			rr := do(http.MethodPost, "/api/v1/calculations", validCalculation())
			Expect(rr.Code).To(Equal(http.StatusCreated))

			var result v1alpha1.CalculationResult
			Expect(json.Unmarshal(rr.Body.Bytes(), &result)).To(Succeed())
			Expect(result.Calculation.Id).NotTo(Equal(uuid.Nil))
			Expect(result.Calculation.BuildingType).To(Equal("Rumah"))
			Expect(result.Calculation.SystemType).To(Equal("Konvensional"))
			Expect(result.Calculation.EstimatedCost).To(Equal(int64(5_625_000)))
			Expect(result.Calculation.FormattedCost).To(Equal("Rp 5.625.000"))
			Expect(result.Estimate.Package).To(Equal(v1alpha1.PackageBuilding))
			Expect(result.WhatsappUrl).To(HavePrefix("https://wa.me/6281221556554?text="))

			stored, err := s.Calculation().Get(context.TODO(), result.Calculation.Id)
			Expect(err).To(BeNil())
			Expect(stored.Email).To(Equal("budi@example.com"))
		})

		It("rejects an invalid email without storing", func() {
			body := validCalculation()
			body.Email = "not-an-email"

			rr := do(http.MethodPost, "/api/v1/calculations", body)
			Expect(rr.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rr).Message).To(ContainSubstring("email"))

			var count int64
			Expect(gormdb.Model(&model.Calculation{}).Count(&count).Error).To(BeNil())
			Expect(count).To(BeZero())
		})

		It("stores english aliases under the form labels", func() {
			body := validCalculation()
			body.BuildingType = "factory"
			body.SystemType = "electrostatic"

			rr := do(http.MethodPost, "/api/v1/calculations", body)
			Expect(rr.Code).To(Equal(http.StatusCreated))

			var result v1alpha1.CalculationResult
			Expect(json.Unmarshal(rr.Body.Bytes(), &result)).To(Succeed())
			Expect(result.Calculation.BuildingType).To(Equal("Pabrik"))
			Expect(result.Calculation.SystemType).To(Equal("Elektrostatis"))

			stored, err := s.Calculation().Get(context.TODO(), result.Calculation.Id)
			Expect(err).To(BeNil())
			Expect(stored.BuildingType).To(Equal("Pabrik"))
			Expect(stored.SystemType).To(Equal("Elektrostatis"))
		})

		It("rejects an unknown building type", func() {
			body := validCalculation()
			body.BuildingType = "Gudang"

			rr := do(http.MethodPost, "/api/v1/calculations", body)
			Expect(rr.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("admin", func() {
		It("requires a token", func() {
			rr := do(http.MethodGet, "/api/v1/calculations", nil)
			Expect(rr.Code).To(Equal(http.StatusUnauthorized))

			rr = do(http.MethodGet, "/api/v1/calculations", nil, "Authorization", "Bearer garbage")
			Expect(rr.Code).To(Equal(http.StatusUnauthorized))
		})

		It("lists and filters calculations", func() {
			Expect(do(http.MethodPost, "/api/v1/calculations", validCalculation()).Code).To(Equal(http.StatusCreated))
			tower := validCalculation()
			tower.BuildingType = "Tower"
			tower.Height = 20
			Expect(do(http.MethodPost, "/api/v1/calculations", tower).Code).To(Equal(http.StatusCreated))

			rr := asAdmin(http.MethodGet, "/api/v1/calculations")
			Expect(rr.Code).To(Equal(http.StatusOK))
			var list v1alpha1.CalculationList
			Expect(json.Unmarshal(rr.Body.Bytes(), &list)).To(Succeed())
			Expect(list.Total).To(Equal(int64(2)))
			Expect(list.Items).To(HaveLen(2))
			Expect(list.Limit).To(Equal(service.DefaultLeadPageSize))

			rr = asAdmin(http.MethodGet, "/api/v1/calculations?buildingType=tower&limit=10")
			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(json.Unmarshal(rr.Body.Bytes(), &list)).To(Succeed())
			Expect(list.Total).To(Equal(int64(1)))
			Expect(list.Items[0].BuildingType).To(Equal("Tower"))

			rr = asAdmin(http.MethodGet, fmt.Sprintf("/api/v1/calculations?from=%s", "2999-01-01"))
			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(json.Unmarshal(rr.Body.Bytes(), &list)).To(Succeed())
			Expect(list.Total).To(BeZero())
			Expect(list.Items).To(BeEmpty())
		})

		It("includes the whole day of a date used as the window end", func() {
			rr := do(http.MethodPost, "/api/v1/calculations", validCalculation())
			Expect(rr.Code).To(Equal(http.StatusCreated))
			var result v1alpha1.CalculationResult
			Expect(json.Unmarshal(rr.Body.Bytes(), &result)).To(Succeed())

			day := result.Calculation.CreatedAt.UTC()
			var list v1alpha1.CalculationList

			rr = asAdmin(http.MethodGet, "/api/v1/calculations?to="+day.Format(v1alpha1.DateLayout))
			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(json.Unmarshal(rr.Body.Bytes(), &list)).To(Succeed())
			Expect(list.Total).To(Equal(int64(1)))

			rr = asAdmin(http.MethodGet, "/api/v1/calculations?to="+day.AddDate(0, 0, -1).Format(v1alpha1.DateLayout))
			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(json.Unmarshal(rr.Body.Bytes(), &list)).To(Succeed())
			Expect(list.Total).To(BeZero())
		})

		It("sorts by estimated cost", func() {
			Expect(do(http.MethodPost, "/api/v1/calculations", validCalculation()).Code).To(Equal(http.StatusCreated))
			tower := validCalculation()
			tower.BuildingType = "Tower"
			tower.Height = 20
			Expect(do(http.MethodPost, "/api/v1/calculations", tower).Code).To(Equal(http.StatusCreated))

			rr := asAdmin(http.MethodGet, "/api/v1/calculations?sort=cost")
			Expect(rr.Code).To(Equal(http.StatusOK))
			var list v1alpha1.CalculationList
			Expect(json.Unmarshal(rr.Body.Bytes(), &list)).To(Succeed())
			Expect(list.Items).To(HaveLen(2))
			Expect(list.Items[0].BuildingType).To(Equal("Tower"))
		})

		DescribeTable("rejects bad query parameters",
			func(path, query string) {
				rr := asAdmin(http.MethodGet, path+"?"+query)
				Expect(rr.Code).To(Equal(http.StatusBadRequest))
			},
			Entry("unknown package", "/api/v1/calculations", "package=Paket+Emas"),
			Entry("unknown building type", "/api/v1/calculations", "buildingType=castle"),
			Entry("non numeric limit", "/api/v1/calculations", "limit=ten"),
			Entry("negative offset", "/api/v1/calculations", "offset=-1"),
			Entry("malformed date", "/api/v1/calculations", "from=01-02-2025"),
			Entry("inverted window", "/api/v1/calculations", "from=2025-03-02&to=2025-03-01"),
			Entry("unknown sort order", "/api/v1/calculations", "sort=name"),
			Entry("inverted export window", "/api/v1/calculations/export", "from=2025-03-02&to=2025-03-01"),
			Entry("negative export limit", "/api/v1/calculations/export", "limit=-5"),
		)

		It("gets one calculation", func() {
			rr := do(http.MethodPost, "/api/v1/calculations", validCalculation())
			var result v1alpha1.CalculationResult
			Expect(json.Unmarshal(rr.Body.Bytes(), &result)).To(Succeed())

			rr = asAdmin(http.MethodGet, "/api/v1/calculations/"+result.Calculation.Id.String())
			Expect(rr.Code).To(Equal(http.StatusOK))
			var calculation v1alpha1.Calculation
			Expect(json.Unmarshal(rr.Body.Bytes(), &calculation)).To(Succeed())
			Expect(calculation.Name).To(Equal("Budi Santoso"))
		})

		It("returns 404 for a missing calculation and 400 for a bad id", func() {
			rr := asAdmin(http.MethodGet, "/api/v1/calculations/"+uuid.NewString())
			Expect(rr.Code).To(Equal(http.StatusNotFound))
			Expect(decodeError(rr).Message).To(ContainSubstring("not found"))

			rr = asAdmin(http.MethodGet, "/api/v1/calculations/not-a-uuid")
			Expect(rr.Code).To(Equal(http.StatusBadRequest))
		})

		It("exports the calculations as xlsx", func() {
			Expect(do(http.MethodPost, "/api/v1/calculations", validCalculation()).Code).To(Equal(http.StatusCreated))

			rr := asAdmin(http.MethodGet, "/api/v1/calculations/export")
			Expect(rr.Code).To(Equal(http.StatusOK))
			Expect(rr.Header().Get("Content-Type")).To(Equal(v1alpha1.MediaTypeXLSX))
			Expect(rr.Header().Get("Content-Disposition")).To(ContainSubstring("attachment"))

			f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
			Expect(err).To(BeNil())
			defer f.Close()

			rows, err := f.GetRows("Leads")
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(2))
			Expect(rows[1][3]).To(Equal("budi@example.com"))
		})
	})

	Context("content", func() {
		It("serves the landing page", func() {
			rr := do(http.MethodGet, "/api/v1/landing", nil)
			Expect(rr.Code).To(Equal(http.StatusOK))

			var landing v1alpha1.Landing
			Expect(json.Unmarshal(rr.Body.Bytes(), &landing)).To(Succeed())
			Expect(landing.Services).To(HaveLen(6))
			Expect(landing.Projects).To(HaveLen(3))
			Expect(landing.Testimonials).To(HaveLen(3))
			Expect(landing.Navigation).To(HaveLen(7))
			Expect(landing.Hero.Stats).NotTo(BeEmpty())
			Expect(landing.Contact.WhatsappUrl).To(HavePrefix("https://wa.me/"))
		})

		It("serves the sections", func() {
			rr := do(http.MethodGet, "/api/v1/services", nil)
			Expect(rr.Code).To(Equal(http.StatusOK))
			var services []v1alpha1.Service
			Expect(json.Unmarshal(rr.Body.Bytes(), &services)).To(Succeed())
			Expect(services).To(HaveLen(6))
			Expect(services[0].Icon).To(Equal("Home"))

			rr = do(http.MethodGet, "/api/v1/projects", nil)
			Expect(rr.Code).To(Equal(http.StatusOK))
			var projects []v1alpha1.Project
			Expect(json.Unmarshal(rr.Body.Bytes(), &projects)).To(Succeed())
			Expect(projects).To(HaveLen(3))
			Expect(projects[0].CompletionDate >= projects[1].CompletionDate).To(BeTrue())

			rr = do(http.MethodGet, "/api/v1/testimonials", nil)
			Expect(rr.Code).To(Equal(http.StatusOK))
			var testimonials []v1alpha1.Testimonial
			Expect(json.Unmarshal(rr.Body.Bytes(), &testimonials)).To(Succeed())
			Expect(testimonials).To(HaveLen(3))
			for _, t := range testimonials {
				Expect(t.Rating).To(BeNumerically(">=", 1))
				Expect(t.Rating).To(BeNumerically("<=", 5))
			}
		})
	})
})

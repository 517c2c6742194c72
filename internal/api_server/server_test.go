package apiserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	api "github.com/chasta/skyguard/api/v1alpha1"
	apiserver "github.com/chasta/skyguard/internal/api_server"
	"github.com/chasta/skyguard/internal/config"
	"github.com/chasta/skyguard/internal/store"
	"github.com/chasta/skyguard/pkg/requestid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("api server", Ordered, func() {
	var (
		s   store.Store
		cfg *config.Config
	)

	BeforeAll(func() {
		var err error
		cfg, err = config.NewDefault()
		Expect(err).To(BeNil())
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		Expect(s.InitialMigration(context.TODO())).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	It("serves the routes behind the middleware chain", func() {
		handler, err := apiserver.New(cfg, s, nil, nil).Handler()
		Expect(err).To(BeNil())

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		Expect(rr.Code).To(Equal(http.StatusOK))
		Expect(rr.Header().Get(requestid.Header)).NotTo(BeEmpty())
	})

	It("rejects requests that do not match the openapi document", func() {
		handler, err := apiserver.New(cfg, s, nil, nil).Handler()
		Expect(err).To(BeNil())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates/quote", strings.NewReader(`{"buildingType":"Rumah","height":"tall","area":100,"lightningPoints":1,"systemType":"Konvensional"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(requestid.Header, "req-7")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		Expect(rr.Code).To(Equal(http.StatusBadRequest))
		var apiErr api.Error
		Expect(json.Unmarshal(rr.Body.Bytes(), &apiErr)).To(Succeed())
		Expect(apiErr.Message).To(ContainSubstring("height"))
		Expect(apiErr.RequestId).NotTo(BeNil())
		Expect(*apiErr.RequestId).To(Equal("req-7"))

		rr = httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/calculations?sort=name", nil))
		Expect(rr.Code).To(Equal(http.StatusBadRequest))

		rr = httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/sources", nil))
		Expect(rr.Code).To(Equal(http.StatusNotFound))
		Expect(json.Unmarshal(rr.Body.Bytes(), &apiErr)).To(Succeed())
	})

	It("passes valid requests through the validator", func() {
		handler, err := apiserver.New(cfg, s, nil, nil).Handler()
		Expect(err).To(BeNil())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates/quote", strings.NewReader(`{"buildingType":"tower","height":20,"area":500,"lightningPoints":5,"systemType":"electrostatic"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		Expect(rr.Code).To(Equal(http.StatusOK))
		var estimate api.Estimate
		Expect(json.Unmarshal(rr.Body.Bytes(), &estimate)).To(Succeed())
		Expect(estimate.EstimatedCost).To(Equal(int64(105_000_000)))
	})

	It("answers cors preflight requests for allowed origins", func() {
		handler, err := apiserver.New(cfg, s, nil, nil).Handler()
		Expect(err).To(BeNil())

		req := httptest.NewRequest(http.MethodOptions, "/api/v1/calculations", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		Expect(rr.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:5173"))
	})

	It("strips the configured path prefix", func() {
		prefixed := *cfg
		svc := *cfg.Service
		svc.PathPrefix = "/skyguard"
		prefixed.Service = &svc

		handler, err := apiserver.New(&prefixed, s, nil, nil).Handler()
		Expect(err).To(BeNil())

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/skyguard/api/v1/info", nil))
		Expect(rr.Code).To(Equal(http.StatusOK))
	})

	It("refuses to start local authentication without a secret", func() {
		local := *cfg
		svc := *cfg.Service
		svc.Auth.AuthenticationType = "local"
		svc.Auth.Secret = ""
		local.Service = &svc

		_, err := apiserver.New(&local, s, nil, nil).Handler()
		Expect(err).NotTo(BeNil())
	})

	It("shuts down when the context is cancelled", func() {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).To(BeNil())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- apiserver.New(cfg, s, listener, nil).Run(ctx)
		}()

		Eventually(func() error {
			resp, err := http.Get("http://" + listener.Addr().String() + "/health")
			if err != nil {
				return err
			}
			return resp.Body.Close()
		}, 5*time.Second, 50*time.Millisecond).Should(Succeed())

		cancel()
		Eventually(done, 10*time.Second).Should(Receive(BeNil()))
	})

	It("serves prometheus metrics", func() {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).To(BeNil())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			_ = apiserver.NewMetricServer(listener.Addr().String(), listener, s).Run(ctx)
		}()

		var body string
		Eventually(func() error {
			resp, err := http.Get("http://" + listener.Addr().String() + "/metrics")
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			data, err := io.ReadAll(resp.Body)
			body = string(data)
			return err
		}, 5*time.Second, 50*time.Millisecond).Should(Succeed())

		Expect(body).To(ContainSubstring("skyguard_stored_leads_total"))
	})
})

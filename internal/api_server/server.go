package apiserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/chasta/skyguard/api/v1alpha1"
	"github.com/chasta/skyguard/internal/auth"
	"github.com/chasta/skyguard/internal/config"
	"github.com/chasta/skyguard/internal/estimation"
	handlers "github.com/chasta/skyguard/internal/handlers/v1alpha1"
	"github.com/chasta/skyguard/internal/service"
	"github.com/chasta/skyguard/internal/store"
	"github.com/chasta/skyguard/internal/util"
	"github.com/chasta/skyguard/pkg/metrics"
	"github.com/chasta/skyguard/pkg/middleware"
	"github.com/chasta/skyguard/pkg/requestid"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
	events   service.EventWriter
}

// New returns a new instance of the skyguard api server. events may be nil.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	events service.EventWriter,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
		events:   events,
	}
}

// oapiErrorHandler reports a request rejected by the OpenAPI validator with the usual error body.
// The request id is taken from the response header set by the RequestID middleware.
func oapiErrorHandler(w http.ResponseWriter, message string, statusCode int) {
	body := api.Error{Message: message}
	if id := w.Header().Get(requestid.Header); id != "" {
		body.RequestId = &id
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// Handler builds the router with the full middleware chain.
func (s *Server) Handler() (http.Handler, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load swagger spec: %w", err)
	}
	// Skip server name validation
	swagger.Servers = nil

	oapiOpts := oapimiddleware.Options{
		ErrorHandler: oapiErrorHandler,
		Options: openapi3filter.Options{
			// admin routes are guarded by the authenticator
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}

	authenticator, err := auth.NewAuthenticator(s.cfg.Service.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
		util.PrefixRewrite(s.cfg.Service.PathPrefix),
		oapimiddleware.OapiRequestValidatorWithOptions(swagger, &oapiOpts),
	)

	estimationService := service.NewEstimationService(
		s.store,
		s.events,
		estimation.WithStrictBuildingType(s.cfg.Service.StrictBuildingType),
	)

	leadService := service.NewLeadService(s.store)
	if s.events != nil {
		leadService = leadService.WithEventWriter(s.events)
	}

	h := handlers.NewServiceHandler(
		estimationService,
		leadService,
		service.NewContentService(s.store, s.cfg.Service.Contact),
		service.NewHealthService(s.store),
		s.cfg.Service.Contact,
	)
	h.Mount(router, authenticator.Authenticator)

	return router, nil
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := http.Server{
		Addr:              s.cfg.Service.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/chasta/skyguard/api/v1alpha1"
	"github.com/chasta/skyguard/internal/config"
	"github.com/chasta/skyguard/internal/service"
	"github.com/chasta/skyguard/pkg/requestid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ServiceHandler struct {
	estimationSrv *service.EstimationService
	leadSrv       *service.LeadService
	contentSrv    *service.ContentService
	healthSrv     *service.HealthService
	contact       config.Contact
}

func NewServiceHandler(
	estimationService *service.EstimationService,
	leadService *service.LeadService,
	contentService *service.ContentService,
	healthService *service.HealthService,
	contact config.Contact,
) *ServiceHandler {
	return &ServiceHandler{
		estimationSrv: estimationService,
		leadSrv:       leadService,
		contentSrv:    contentService,
		healthSrv:     healthService,
		contact:       contact,
	}
}

// Mount registers the routes on r. Lead reads are wrapped by admin.
func (h *ServiceHandler) Mount(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/info", h.GetInfo)
		r.Get("/landing", h.GetLanding)
		r.Get("/services", h.ListServices)
		r.Get("/projects", h.ListProjects)
		r.Get("/testimonials", h.ListTestimonials)
		r.Post("/estimates/quote", h.CreateQuote)
		r.Post("/calculations", h.CreateCalculation)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Get("/calculations", h.ListCalculations)
			r.Get("/calculations/export", h.ExportCalculations)
			r.Get("/calculations/{id}", h.GetCalculation)
		})
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, v1alpha1.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())})
}

// writeServiceError maps a service error to its status. Unknown errors are reported as internalMessage.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, internalMessage string) {
	var (
		invalid  *service.ErrInvalidInput
		notFound *service.ErrResourceNotFound
	)
	switch {
	case errors.As(err, &invalid):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, internalMessage)
	}
}

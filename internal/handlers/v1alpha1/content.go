package v1alpha1

import (
	"net/http"

	"github.com/chasta/skyguard/internal/handlers/v1alpha1/mappers"
	"github.com/chasta/skyguard/pkg/log"
	"github.com/chasta/skyguard/pkg/metrics"
	"github.com/chasta/skyguard/pkg/middleware"
)

// (GET /api/v1/landing)
func (h *ServiceHandler) GetLanding(w http.ResponseWriter, r *http.Request) {
	metrics.UniqueVisitsPerWeek.IncreaseTotalUniqueVisit(middleware.ClientIP(r))

	landing := h.contentSrv.Landing(r.Context())
	writeJSON(w, r, http.StatusOK, mappers.LandingToApi(landing))
}

// (GET /api/v1/services)
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("content_handler").WithContext(r.Context()).Operation("list_services").Build()

	services, err := h.contentSrv.Services(r.Context())
	if err != nil {
		logger.Error(err).Log()
		writeServiceError(w, r, err, "failed to list services")
		return
	}

	writeJSON(w, r, http.StatusOK, mappers.ServiceListToApi(services))
}

// (GET /api/v1/projects)
func (h *ServiceHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("content_handler").WithContext(r.Context()).Operation("list_projects").Build()

	projects, err := h.contentSrv.Projects(r.Context())
	if err != nil {
		logger.Error(err).Log()
		writeServiceError(w, r, err, "failed to list projects")
		return
	}

	writeJSON(w, r, http.StatusOK, mappers.ProjectListToApi(projects))
}

// (GET /api/v1/testimonials)
func (h *ServiceHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("content_handler").WithContext(r.Context()).Operation("list_testimonials").Build()

	testimonials, err := h.contentSrv.Testimonials(r.Context())
	if err != nil {
		logger.Error(err).Log()
		writeServiceError(w, r, err, "failed to list testimonials")
		return
	}

	writeJSON(w, r, http.StatusOK, mappers.TestimonialListToApi(testimonials))
}

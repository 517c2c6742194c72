package v1alpha1

import (
	"net/http"

	"github.com/chasta/skyguard/api/v1alpha1"
	"github.com/chasta/skyguard/pkg/log"
	"github.com/chasta/skyguard/pkg/version"
)

// (GET /health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.healthSrv.Check(r.Context()); err != nil {
		log.NewDebugLogger("health_handler").WithContext(r.Context()).Operation("health").Build().Error(err).Log()
		writeJSON(w, r, http.StatusServiceUnavailable, v1alpha1.Health{Status: "unavailable"})
		return
	}
	writeJSON(w, r, http.StatusOK, v1alpha1.Health{Status: "ok"})
}

// (GET /api/v1/info)
func (h *ServiceHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	writeJSON(w, r, http.StatusOK, v1alpha1.Info{
		GitCommit:   versionInfo.GitCommit,
		VersionName: versionInfo.GitVersion,
	})
}

package v1alpha1

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chasta/skyguard/api/v1alpha1"
	"github.com/chasta/skyguard/internal/auth"
	"github.com/chasta/skyguard/internal/estimation"
	"github.com/chasta/skyguard/internal/handlers/v1alpha1/mappers"
	"github.com/chasta/skyguard/internal/service"
	"github.com/chasta/skyguard/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

// (GET /api/v1/calculations)
func (h *ServiceHandler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("lead_handler").
		WithContext(r.Context()).
		Operation("list_calculations").
		Build()

	filter, err := leadFilterFromQuery(r.URL.Query())
	if err != nil {
		logger.Error(err).Log()
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.leadSrv.List(r.Context(), filter)
	if err != nil {
		logger.Error(err).Log()
		writeServiceError(w, r, err, "failed to list calculations")
		return
	}

	logger.Success().WithInt("count", len(page.Items)).Log()

	writeJSON(w, r, http.StatusOK, mappers.CalculationListToApi(*page))
}

// (GET /api/v1/calculations/{id})
func (h *ServiceHandler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("lead_handler").
		WithContext(r.Context()).
		Operation("get_calculation").
		WithString("id", chi.URLParam(r, "id")).
		Build()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error(err).Log()
		writeError(w, r, http.StatusBadRequest, "invalid calculation id")
		return
	}

	calculation, err := h.leadSrv.Get(r.Context(), id)
	if err != nil {
		logger.Error(err).Log()
		writeServiceError(w, r, err, "failed to get calculation")
		return
	}

	writeJSON(w, r, http.StatusOK, mappers.CalculationToApi(*calculation))
}

// (GET /api/v1/calculations/export)
func (h *ServiceHandler) ExportCalculations(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("lead_handler").
		WithContext(r.Context()).
		Operation("export_calculations").
		Build()

	if user, found := auth.UserFromContext(r.Context()); found {
		logger.Step("extract_user").WithString("username", user.Username).Log()
	}

	filter, err := leadFilterFromQuery(r.URL.Query())
	if err != nil {
		logger.Error(err).Log()
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// The workbook is built in memory so a failure can still be reported as json.
	buf := new(bytes.Buffer)
	rows, err := h.leadSrv.Export(r.Context(), buf, filter)
	if err != nil {
		logger.Error(err).Log()
		writeServiceError(w, r, err, "failed to export calculations")
		return
	}

	logger.Success().WithInt("rows", rows).Log()

	filename := fmt.Sprintf("leads-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", v1alpha1.MediaTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func leadFilterFromQuery(q url.Values) (service.LeadFilter, error) {
	var filter service.LeadFilter

	if p := q.Get("package"); p != "" {
		pkg := v1alpha1.StringToPackage(p)
		if pkg == "" {
			return filter, fmt.Errorf("unknown package %q", p)
		}
		filter.Package = string(pkg)
	}

	if bt := q.Get("buildingType"); bt != "" {
		canonical, ok := estimation.ParseBuildingType(bt)
		if !ok {
			return filter, fmt.Errorf("unknown building type %q", bt)
		}
		filter.BuildingType = string(canonical)
	}

	filter.Email = q.Get("email")

	if from := q.Get("from"); from != "" {
		t, err := parseTime(from, false)
		if err != nil {
			return filter, fmt.Errorf("invalid from: %w", err)
		}
		filter.From = &t
	}

	if to := q.Get("to"); to != "" {
		t, err := parseTime(to, true)
		if err != nil {
			return filter, fmt.Errorf("invalid to: %w", err)
		}
		filter.To = &t
	}

	filter.Sort = q.Get("sort")

	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &filter.Limit); err != nil {
		return filter, fmt.Errorf("invalid limit: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", q, &filter.Offset); err != nil {
		return filter, fmt.Errorf("invalid offset: %w", err)
	}

	return filter, nil
}

// parseTime accepts RFC3339 timestamps and calendar dates. A date used as the end of a
// window covers the whole day.
func parseTime(s string, endOfWindow bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(v1alpha1.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s or RFC3339, got %q", v1alpha1.DateLayout, s)
	}
	if endOfWindow {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

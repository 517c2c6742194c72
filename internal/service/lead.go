package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/chasta/skyguard/internal/auth"
	"github.com/chasta/skyguard/internal/events"
	"github.com/chasta/skyguard/internal/store"
	"github.com/chasta/skyguard/internal/store/model"
	"github.com/chasta/skyguard/internal/util"
	"github.com/chasta/skyguard/pkg/log"
	"github.com/chasta/skyguard/pkg/metrics"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultLeadPageSize = 50
	MaxLeadPageSize     = 500

	leadSheet = "Leads"
)

var leadColumns = []string{
	"ID", "Tanggal", "Nama", "Email", "Telepon", "Jenis Bangunan", "Tinggi (m)",
	"Luas (m2)", "Titik Petir", "Sistem", "Estimasi Biaya", "Estimasi (Rp)", "Paket",
}

// Lead orderings accepted by LeadFilter.Sort.
const (
	LeadSortNewest = "newest"
	LeadSortOldest = "oldest"
	LeadSortCost   = "cost"
)

// LeadFilter narrows a lead listing. Zero values are ignored.
type LeadFilter struct {
	Package      string
	BuildingType string
	Email        string
	From         *time.Time
	To           *time.Time
	// Sort is one of the LeadSort values. Empty means newest first.
	Sort   string
	Limit  int
	Offset int
}

func (f LeadFilter) validate() error {
	if f.Limit < 0 || f.Offset < 0 {
		return NewErrInvalidInput("limit and offset must not be negative")
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return NewErrInvalidInput("from must be before to")
	}
	if _, ok := leadSortOrders[f.Sort]; !ok {
		return NewErrInvalidInput("unknown sort order %q", f.Sort)
	}
	return nil
}

var leadSortOrders = map[string]store.SortOrder{
	"":             store.SortByCreatedTimeDesc,
	LeadSortNewest: store.SortByCreatedTimeDesc,
	LeadSortOldest: store.SortByCreatedTime,
	LeadSortCost:   store.SortByEstimatedCostDesc,
}

func (f LeadFilter) sortOrder() store.SortOrder {
	return leadSortOrders[f.Sort]
}

func (f LeadFilter) queryFilter() *store.CalculationQueryFilter {
	qf := store.NewCalculationQueryFilter()
	if f.Package != "" {
		qf = qf.ByPackage(f.Package)
	}
	if f.BuildingType != "" {
		qf = qf.ByBuildingType(f.BuildingType)
	}
	if f.Email != "" {
		qf = qf.ByEmail(f.Email)
	}
	if f.From != nil {
		qf = qf.CreatedAfter(*f.From)
	}
	if f.To != nil {
		qf = qf.CreatedBefore(*f.To)
	}
	return qf
}

type LeadPage struct {
	Items  model.CalculationList
	Total  int64
	Limit  int
	Offset int
}

type LeadService struct {
	store  store.Store
	events EventWriter
	logger *log.StructuredLogger
}

func NewLeadService(s store.Store) *LeadService {
	return &LeadService{
		store:  s,
		logger: log.NewDebugLogger("lead_service"),
	}
}

// WithEventWriter makes Export publish an export event.
func (ls *LeadService) WithEventWriter(ew EventWriter) *LeadService {
	ls.events = ew
	return ls
}

// List returns one page of leads, newest first unless filter.Sort says otherwise.
func (ls *LeadService) List(ctx context.Context, filter LeadFilter) (*LeadPage, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultLeadPageSize
	}
	if filter.Limit > MaxLeadPageSize {
		filter.Limit = MaxLeadPageSize
	}
	tracer := ls.logger.WithContext(ctx).Operation("list_leads").
		WithString("package", filter.Package).
		WithInt("limit", filter.Limit).
		WithInt("offset", filter.Offset).
		Build()

	total, err := ls.store.Calculation().Count(ctx, filter.queryFilter())
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	opts := store.NewListOptions().
		WithSortOrder(filter.sortOrder()).
		WithLimit(filter.Limit).
		WithOffset(filter.Offset)

	items, err := ls.store.Calculation().List(ctx, filter.queryFilter(), opts)
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	tracer.Success().WithInt("count", len(items)).WithInt64("total", total).Log()

	return &LeadPage{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (ls *LeadService) Get(ctx context.Context, id uuid.UUID) (*model.Calculation, error) {
	c, err := ls.store.Calculation().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCalculationNotFound(id)
		}
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}
	return c, nil
}

// Export writes every lead matching filter to w as an XLSX workbook and returns the number of rows.
// Limit and Offset are ignored.
func (ls *LeadService) Export(ctx context.Context, w io.Writer, filter LeadFilter) (int, error) {
	if err := filter.validate(); err != nil {
		return 0, err
	}

	tracer := ls.logger.WithContext(ctx).Operation("export_leads").
		WithString("package", filter.Package).
		Build()

	items, err := ls.store.Calculation().List(ctx, filter.queryFilter(), store.NewListOptions().WithSortOrder(filter.sortOrder()))
	if err != nil {
		metrics.IncreaseExportsTotalMetric("failed")
		tracer.Error(err).Log()
		return 0, fmt.Errorf("failed to list leads: %w", err)
	}

	if err := writeLeadWorkbook(w, items); err != nil {
		metrics.IncreaseExportsTotalMetric("failed")
		tracer.Error(err).Log()
		return 0, err
	}

	metrics.IncreaseExportsTotalMetric("successful")
	ls.publishExport(ctx, len(items))
	tracer.Success().WithInt("rows", len(items)).Log()

	return len(items), nil
}

func (ls *LeadService) publishExport(ctx context.Context, rows int) {
	if ls.events == nil {
		return
	}

	event := events.ExportEvent{Rows: rows}
	if user, found := auth.UserFromContext(ctx); found {
		event.Username = user.Username
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := ls.events.Write(ctx, events.ExportMessageKind, bytes.NewReader(data)); err != nil {
		ls.logger.WithContext(ctx).Operation("publish_export").Build().Error(err).Log()
	}
}

func writeLeadWorkbook(w io.Writer, items model.CalculationList) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(leadSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, header := range leadColumns {
		if err := setCell(f, col, 1, header); err != nil {
			return err
		}
	}

	for i, c := range items {
		row := i + 2
		values := []any{
			c.ID.String(),
			c.CreatedAt.UTC().Format(time.RFC3339),
			c.Name,
			c.Email,
			c.Phone,
			c.BuildingType,
			c.Height,
			c.Area,
			c.LightningPoints,
			c.SystemType,
			c.EstimatedCost,
			util.FormatIDR(c.EstimatedCost),
			c.Package,
		}
		for col, v := range values {
			if err := setCell(f, col, row, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	ref, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(leadSheet, ref, value)
}

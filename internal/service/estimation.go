package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chasta/skyguard/internal/estimation"
	"github.com/chasta/skyguard/internal/events"
	"github.com/chasta/skyguard/internal/handlers/validator"
	"github.com/chasta/skyguard/internal/store"
	"github.com/chasta/skyguard/internal/store/model"
	"github.com/chasta/skyguard/pkg/log"
	"github.com/chasta/skyguard/pkg/metrics"
)

// EventWriter queues an event of the given kind. Implemented by events.EventProducer.
type EventWriter interface {
	Write(ctx context.Context, kind string, body io.Reader) error
}

// CalculationForm is what a visitor submits on the calculator page.
type CalculationForm struct {
	Name            string  `json:"name" validate:"required,notblank,min=2,max=100"`
	Email           string  `json:"email" validate:"required,email,max=254"`
	Phone           string  `json:"phone" validate:"required,phone"`
	BuildingType    string  `json:"buildingType" validate:"required,building_type"`
	Height          float64 `json:"height" validate:"gte=1"`
	Area            float64 `json:"area" validate:"gte=1"`
	LightningPoints int     `json:"lightningPoints" validate:"gte=1"`
	SystemType      string  `json:"systemType" validate:"required,system_type"`
}

func (f CalculationForm) request() estimation.Request {
	return estimation.Request{
		BuildingType:     estimation.BuildingType(f.BuildingType),
		HeightMeters:     f.Height,
		AreaSquareMeters: f.Area,
		LightningPoints:  f.LightningPoints,
		SystemType:       estimation.SystemType(f.SystemType),
	}
}

// Lead is a stored calculation together with the estimate explaining it.
type Lead struct {
	Calculation model.Calculation
	Estimate    estimation.Result
}

// EstimationService runs the cost estimator and stores the result as a lead.
type EstimationService struct {
	store     store.Store
	estimator *estimation.Estimator
	validator *validator.Validator
	events    EventWriter
	logger    *log.StructuredLogger
}

func NewEstimationService(s store.Store, ew EventWriter, opts ...estimation.EstimatorOption) *EstimationService {
	v := validator.NewValidator()
	v.Register(validator.NewCalculationValidationRules()...)

	return &EstimationService{
		store:     s,
		estimator: estimation.NewEstimator(opts...),
		validator: v,
		events:    ew,
		logger:    log.NewDebugLogger("estimation_service"),
	}
}

// Preview estimates req without storing anything.
func (es *EstimationService) Preview(ctx context.Context, req estimation.Request) (estimation.Result, error) {
	tracer := es.logger.WithContext(ctx).Operation("preview_estimation").
		WithString("building_type", string(req.BuildingType)).
		WithString("system_type", string(req.SystemType)).
		Build()

	result, err := es.estimator.Estimate(req)
	if err != nil {
		tracer.Error(err).Log()
		return estimation.Result{}, toServiceError(err)
	}

	metrics.IncreaseEstimatesTotalMetric(string(result.Package))
	tracer.Success().WithInt64("estimated_cost", result.EstimatedCost).WithString("package", string(result.Package)).Log()

	return result, nil
}

// Calculate validates form, estimates it and stores one calculation.
func (es *EstimationService) Calculate(ctx context.Context, form CalculationForm) (*Lead, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)

	tracer := es.logger.WithContext(ctx).Operation("calculate").
		WithString("building_type", form.BuildingType).
		WithString("system_type", form.SystemType).
		Build()

	if err := es.validator.Struct(form); err != nil {
		metrics.IncreaseLeadsTotalMetric(metrics.LeadRejected)
		tracer.Error(err).Log()
		return nil, NewErrInvalidInput("%s", validator.Message(err))
	}

	result, err := es.estimator.Estimate(form.request())
	if err != nil {
		metrics.IncreaseLeadsTotalMetric(metrics.LeadRejected)
		tracer.Error(err).Log()
		return nil, toServiceError(err)
	}
	metrics.IncreaseEstimatesTotalMetric(string(result.Package))

	tracer.Step("estimated").
		WithInt64("estimated_cost", result.EstimatedCost).
		WithString("package", string(result.Package)).
		Log()

	calculation, err := es.store.Calculation().Create(ctx, model.Calculation{
		Name:            form.Name,
		Email:           form.Email,
		Phone:           form.Phone,
		BuildingType:    form.BuildingType,
		Height:          form.Height,
		Area:            form.Area,
		LightningPoints: form.LightningPoints,
		SystemType:      form.SystemType,
		EstimatedCost:   result.EstimatedCost,
		Package:         string(result.Package),
	})
	if err != nil {
		metrics.IncreaseLeadsTotalMetric(metrics.LeadFailed)
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to store calculation: %w", err)
	}
	metrics.IncreaseLeadsTotalMetric(metrics.LeadStored)

	es.publish(ctx, calculation)

	tracer.Success().WithUUID("calculation_id", calculation.ID).Log()

	return &Lead{Calculation: *calculation, Estimate: result}, nil
}

func (es *EstimationService) publish(ctx context.Context, c *model.Calculation) {
	if es.events == nil {
		return
	}

	data, err := json.Marshal(events.LeadEvent{
		CalculationID:   c.ID.String(),
		CreatedAt:       c.CreatedAt,
		BuildingType:    c.BuildingType,
		SystemType:      c.SystemType,
		LightningPoints: c.LightningPoints,
		EstimatedCost:   c.EstimatedCost,
		Package:         c.Package,
	})
	if err != nil {
		return
	}

	if err := es.events.Write(ctx, events.LeadMessageKind, bytes.NewReader(data)); err != nil {
		es.logger.WithContext(ctx).Operation("publish_lead").Build().Error(err).WithUUID("calculation_id", c.ID).Log()
	}
}

func toServiceError(err error) error {
	if errors.Is(err, estimation.ErrInvalidInput) {
		return &ErrInvalidInput{err}
	}
	return err
}

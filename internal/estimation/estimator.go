package estimation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Default prefix = hardcoded price list of the calculator page
const (
	DefaultHouseBaseCost     = 2_500_000
	DefaultShophouseBaseCost = 4_000_000
	DefaultBuildingBaseCost  = 8_000_000
	DefaultFactoryBaseCost   = 15_000_000
	DefaultTowerBaseCost     = 25_000_000

	DefaultPointCost = 1_500_000

	// DefaultHeightThresholdMeters is the height up to which no surcharge applies.
	DefaultHeightThresholdMeters = 10.0
	// DefaultHeightSurchargePerMeter is the multiplier increment per meter above the threshold.
	DefaultHeightSurchargePerMeter = 0.1
	// DefaultAreaUnit and DefaultAreaSurchargePerUnit give +50% per 1000 m2.
	DefaultAreaUnit             = 1000.0
	DefaultAreaSurchargePerUnit = 0.5

	DefaultElectrostaticMultiplier = 1.5

	DefaultHousePackageLimit    = 5_000_000
	DefaultBuildingPackageLimit = 15_000_000
)

var (
	one      = decimal.NewFromInt(1)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

type tier struct {
	limit decimal.Decimal // exclusive upper bound
	pkg   Package
}

// Estimator computes installation costs from a fixed price list.
type Estimator struct {
	baseCosts               map[BuildingType]decimal.Decimal
	fallbackType            BuildingType
	pointCost               decimal.Decimal
	heightThreshold         decimal.Decimal
	heightSurcharge         decimal.Decimal
	areaUnit                decimal.Decimal
	areaSurcharge           decimal.Decimal
	electrostaticMultiplier decimal.Decimal
	tiers                   []tier
	topPackage              Package
	strictBuildingType      bool
}

// EstimatorOption configuration option for the estimator
type EstimatorOption func(*Estimator)

// WithBaseCost overrides the base cost of one building type.
func WithBaseCost(bt BuildingType, cost int64) EstimatorOption {
	return func(e *Estimator) {
		e.baseCosts[bt] = decimal.NewFromInt(cost)
	}
}

// WithPointCost sets the price of a single lightning point.
func WithPointCost(cost int64) EstimatorOption {
	return func(e *Estimator) {
		e.pointCost = decimal.NewFromInt(cost)
	}
}

// WithElectrostaticMultiplier sets the multiplier applied to electrostatic systems.
func WithElectrostaticMultiplier(m float64) EstimatorOption {
	return func(e *Estimator) {
		e.electrostaticMultiplier = decimal.NewFromFloat(m)
	}
}

// WithPackageThresholds sets the exclusive upper bounds of the house and building packages.
func WithPackageThresholds(houseLimit, buildingLimit int64) EstimatorOption {
	return func(e *Estimator) {
		e.tiers = []tier{
			{limit: decimal.NewFromInt(houseLimit), pkg: PackageHouse},
			{limit: decimal.NewFromInt(buildingLimit), pkg: PackageBuilding},
		}
	}
}

// WithStrictBuildingType makes Estimate reject unknown building types instead of
// falling back to the house base cost.
func WithStrictBuildingType(strict bool) EstimatorOption {
	return func(e *Estimator) {
		e.strictBuildingType = strict
	}
}

// NewEstimator creates an Estimator with the default price list that can be overridden by options.
func NewEstimator(opts ...EstimatorOption) *Estimator {
	e := &Estimator{
		baseCosts: map[BuildingType]decimal.Decimal{
			BuildingTypeHouse:     decimal.NewFromInt(DefaultHouseBaseCost),
			BuildingTypeShophouse: decimal.NewFromInt(DefaultShophouseBaseCost),
			BuildingTypeBuilding:  decimal.NewFromInt(DefaultBuildingBaseCost),
			BuildingTypeFactory:   decimal.NewFromInt(DefaultFactoryBaseCost),
			BuildingTypeTower:     decimal.NewFromInt(DefaultTowerBaseCost),
		},
		fallbackType:            BuildingTypeHouse,
		pointCost:               decimal.NewFromInt(DefaultPointCost),
		heightThreshold:         decimal.NewFromFloat(DefaultHeightThresholdMeters),
		heightSurcharge:         decimal.NewFromFloat(DefaultHeightSurchargePerMeter),
		areaUnit:                decimal.NewFromFloat(DefaultAreaUnit),
		areaSurcharge:           decimal.NewFromFloat(DefaultAreaSurchargePerUnit),
		electrostaticMultiplier: decimal.NewFromFloat(DefaultElectrostaticMultiplier),
		tiers: []tier{
			{limit: decimal.NewFromInt(DefaultHousePackageLimit), pkg: PackageHouse},
			{limit: decimal.NewFromInt(DefaultBuildingPackageLimit), pkg: PackageBuilding},
		},
		topPackage: PackageIndustrial,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

var defaultEstimator = NewEstimator()

// Estimate runs the default estimator.
func Estimate(req Request) (Result, error) {
	return defaultEstimator.Estimate(req)
}

// Estimate computes the cost of req:
//
//	round((base * heightMultiplier * areaMultiplier + points * pointCost) * systemMultiplier)
//
// The points cost is added before the system multiplier, so electrostatic systems also
// inflate it.
func (e *Estimator) Estimate(req Request) (Result, error) {
	if err := e.validate(req); err != nil {
		return Result{}, err
	}

	base, fellBack, err := e.baseCost(req.BuildingType)
	if err != nil {
		return Result{}, err
	}

	heightMult := e.HeightMultiplier(req.HeightMeters)
	areaMult := e.AreaMultiplier(req.AreaSquareMeters)
	pointsCost := e.pointCost.Mul(decimal.NewFromInt(int64(req.LightningPoints)))
	subtotal := base.Mul(heightMult).Mul(areaMult).Add(pointsCost)
	systemMult := e.SystemMultiplier(req.SystemType)

	// Round half away from zero, all operands are positive.
	total := subtotal.Mul(systemMult).Round(0)
	if total.GreaterThan(maxInt64) {
		return Result{}, invalidInputf("estimated cost %s is out of range", total.String())
	}
	cost := total.IntPart()

	bd := Breakdown{
		BaseCost:         base,
		HeightMultiplier: heightMult,
		AreaMultiplier:   areaMult,
		PointsCost:       pointsCost,
		Subtotal:         subtotal,
		SystemMultiplier: systemMult,
		FellBack:         fellBack,
	}
	bd.Reason = e.reason(req, bd)

	return Result{
		EstimatedCost: cost,
		Package:       e.PackageFor(cost),
		Breakdown:     bd,
	}, nil
}

// HeightMultiplier is 1 up to the threshold, then grows linearly per meter above it.
func (e *Estimator) HeightMultiplier(heightMeters float64) decimal.Decimal {
	h := decimal.NewFromFloat(heightMeters)
	if !h.GreaterThan(e.heightThreshold) {
		return one
	}
	return one.Add(h.Sub(e.heightThreshold).Mul(e.heightSurcharge))
}

// AreaMultiplier grows linearly with the floor area.
func (e *Estimator) AreaMultiplier(areaSquareMeters float64) decimal.Decimal {
	a := decimal.NewFromFloat(areaSquareMeters)
	return one.Add(a.Div(e.areaUnit).Mul(e.areaSurcharge))
}

// SystemMultiplier returns the electrostatic multiplier for electrostatic systems and 1 otherwise.
func (e *Estimator) SystemMultiplier(st SystemType) decimal.Decimal {
	if st == SystemTypeElectrostatic {
		return e.electrostaticMultiplier
	}
	return one
}

// PackageFor maps an estimated cost to its package. A cost equal to a limit maps to the higher tier.
func (e *Estimator) PackageFor(cost int64) Package {
	c := decimal.NewFromInt(cost)
	for _, t := range e.tiers {
		if c.LessThan(t.limit) {
			return t.pkg
		}
	}
	return e.topPackage
}

func (e *Estimator) baseCost(bt BuildingType) (decimal.Decimal, bool, error) {
	if cost, ok := e.baseCosts[bt]; ok {
		return cost, false, nil
	}
	if e.strictBuildingType {
		return decimal.Zero, false, invalidInputf("unknown building type %q", bt)
	}
	return e.baseCosts[e.fallbackType], true, nil
}

func (e *Estimator) validate(req Request) error {
	if !isPositive(req.HeightMeters) {
		return invalidInputf("height must be a positive number, got %v", req.HeightMeters)
	}
	if !isPositive(req.AreaSquareMeters) {
		return invalidInputf("area must be a positive number, got %v", req.AreaSquareMeters)
	}
	if req.LightningPoints <= 0 {
		return invalidInputf("lightning points must be positive, got %d", req.LightningPoints)
	}
	if !req.SystemType.Valid() {
		return invalidInputf("unknown system type %q", req.SystemType)
	}
	return nil
}

func (e *Estimator) reason(req Request, bd Breakdown) string {
	bt := string(req.BuildingType)
	if bd.FellBack {
		bt = fmt.Sprintf("%q (unknown, priced as %s)", req.BuildingType, e.fallbackType)
	}
	return fmt.Sprintf("%s base %s x height %s x area %s + %d points %s, x system %s",
		bt,
		bd.BaseCost.String(),
		bd.HeightMultiplier.String(),
		bd.AreaMultiplier.String(),
		req.LightningPoints,
		bd.PointsCost.String(),
		bd.SystemMultiplier.String(),
	)
}

func isPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

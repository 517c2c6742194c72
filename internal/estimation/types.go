package estimation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BuildingType is the category of the protected building. Values are the labels used by the site form.
type BuildingType string

const (
	BuildingTypeHouse     BuildingType = "Rumah"
	BuildingTypeShophouse BuildingType = "Ruko"
	BuildingTypeBuilding  BuildingType = "Gedung"
	BuildingTypeFactory   BuildingType = "Pabrik"
	BuildingTypeTower     BuildingType = "Tower"
)

// SystemType is the lightning protection technology.
type SystemType string

const (
	SystemTypeConventional  SystemType = "Konvensional"
	SystemTypeElectrostatic SystemType = "Elektrostatis"
)

// Package is the pricing tier recommended for an estimated cost.
type Package string

const (
	PackageHouse      Package = "Paket Rumah"
	PackageBuilding   Package = "Paket Gedung"
	PackageIndustrial Package = "Paket Industri"
)

var buildingTypeAliases = map[string]BuildingType{
	"rumah":     BuildingTypeHouse,
	"house":     BuildingTypeHouse,
	"ruko":      BuildingTypeShophouse,
	"shophouse": BuildingTypeShophouse,
	"gedung":    BuildingTypeBuilding,
	"building":  BuildingTypeBuilding,
	"pabrik":    BuildingTypeFactory,
	"factory":   BuildingTypeFactory,
	"tower":     BuildingTypeTower,
}

var systemTypeAliases = map[string]SystemType{
	"konvensional":  SystemTypeConventional,
	"conventional":  SystemTypeConventional,
	"elektrostatis": SystemTypeElectrostatic,
	"electrostatic": SystemTypeElectrostatic,
}

// BuildingTypes returns the known building types ordered from the cheapest base cost.
func BuildingTypes() []BuildingType {
	return []BuildingType{
		BuildingTypeHouse,
		BuildingTypeShophouse,
		BuildingTypeBuilding,
		BuildingTypeFactory,
		BuildingTypeTower,
	}
}

// SystemTypes returns the known system types.
func SystemTypes() []SystemType {
	return []SystemType{SystemTypeConventional, SystemTypeElectrostatic}
}

// ParseBuildingType maps a form label or its english alias (case insensitive) to a BuildingType.
func ParseBuildingType(s string) (BuildingType, bool) {
	bt, ok := buildingTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return bt, ok
}

// ParseSystemType maps a form label or its english alias (case insensitive) to a SystemType.
func ParseSystemType(s string) (SystemType, bool) {
	st, ok := systemTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

func (b BuildingType) Valid() bool {
	switch b {
	case BuildingTypeHouse, BuildingTypeShophouse, BuildingTypeBuilding, BuildingTypeFactory, BuildingTypeTower:
		return true
	default:
		return false
	}
}

func (s SystemType) Valid() bool {
	return s == SystemTypeConventional || s == SystemTypeElectrostatic
}

// Request holds the building attributes an estimate is computed from.
type Request struct {
	BuildingType     BuildingType
	HeightMeters     float64
	AreaSquareMeters float64
	LightningPoints  int
	SystemType       SystemType
}

// Breakdown exposes every intermediate value of the formula.
type Breakdown struct {
	BaseCost         decimal.Decimal
	HeightMultiplier decimal.Decimal
	AreaMultiplier   decimal.Decimal
	PointsCost       decimal.Decimal
	Subtotal         decimal.Decimal
	SystemMultiplier decimal.Decimal
	// FellBack is set when the building type was not recognized and the house base cost was used.
	FellBack bool
	Reason   string
}

// Result is the outcome of an estimation. EstimatedCost is expressed in whole rupiah.
type Result struct {
	EstimatedCost int64
	Package       Package
	Breakdown     Breakdown
}

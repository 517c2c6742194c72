package mappers

import (
	"strings"

	"github.com/chasta/skyguard/api/v1alpha1"
	"github.com/chasta/skyguard/internal/estimation"
	"github.com/chasta/skyguard/internal/service"
)

// buildingType returns the canonical value of s, or s untouched when it is unknown
// so the validator reports what the caller sent.
func buildingType(s string) string {
	if bt, ok := estimation.ParseBuildingType(s); ok {
		return string(bt)
	}
	return strings.TrimSpace(s)
}

func systemType(s string) string {
	if st, ok := estimation.ParseSystemType(s); ok {
		return string(st)
	}
	return strings.TrimSpace(s)
}

func CalculationFormFromApi(body v1alpha1.CalculationCreate) service.CalculationForm {
	return service.CalculationForm{
		Name:            body.Name,
		Email:           body.Email,
		Phone:           body.Phone,
		BuildingType:    buildingType(body.BuildingType),
		Height:          body.Height,
		Area:            body.Area,
		LightningPoints: body.LightningPoints,
		SystemType:      systemType(body.SystemType),
	}
}

func EstimationRequestFromApi(body v1alpha1.QuoteRequest) estimation.Request {
	return estimation.Request{
		BuildingType:     estimation.BuildingType(buildingType(body.BuildingType)),
		HeightMeters:     body.Height,
		AreaSquareMeters: body.Area,
		LightningPoints:  body.LightningPoints,
		SystemType:       estimation.SystemType(systemType(body.SystemType)),
	}
}

package events

import "time"

// LeadEvent is published every time a visitor stores a calculation.
type LeadEvent struct {
	CalculationID   string    `json:"calculation_id"`
	CreatedAt       time.Time `json:"created_at"`
	BuildingType    string    `json:"building_type"`
	SystemType      string    `json:"system_type"`
	LightningPoints int       `json:"lightning_points"`
	EstimatedCost   int64     `json:"estimated_cost"`
	Package         string    `json:"package"`
}

// ExportEvent is published when an admin exports the leads.
type ExportEvent struct {
	Username string `json:"username"`
	Rows     int    `json:"rows"`
}

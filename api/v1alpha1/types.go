package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

type Package string

const (
	PackageHouse      Package = "Paket Rumah"
	PackageBuilding   Package = "Paket Gedung"
	PackageIndustrial Package = "Paket Industri"
)

// Error is the body of every non 2xx json response.
type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}

type Info struct {
	GitCommit   string `json:"gitCommit"`
	VersionName string `json:"versionName"`
}

type Health struct {
	Status string `json:"status"`
}

// QuoteRequest asks for an estimate without leaving contact details.
type QuoteRequest struct {
	BuildingType    string  `json:"buildingType"`
	Height          float64 `json:"height"`
	Area            float64 `json:"area"`
	LightningPoints int     `json:"lightningPoints"`
	SystemType      string  `json:"systemType"`
}

// CalculationCreate is the calculator form.
type CalculationCreate struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	BuildingType    string  `json:"buildingType"`
	Height          float64 `json:"height"`
	Area            float64 `json:"area"`
	LightningPoints int     `json:"lightningPoints"`
	SystemType      string  `json:"systemType"`
}

type Breakdown struct {
	BaseCost         string `json:"baseCost"`
	HeightMultiplier string `json:"heightMultiplier"`
	AreaMultiplier   string `json:"areaMultiplier"`
	PointsCost       string `json:"pointsCost"`
	Subtotal         string `json:"subtotal"`
	SystemMultiplier string `json:"systemMultiplier"`
	FellBack         bool   `json:"fellBack"`
	Reason           string `json:"reason"`
}

type Estimate struct {
	EstimatedCost int64     `json:"estimatedCost"`
	FormattedCost string    `json:"formattedCost"`
	Package       Package   `json:"package"`
	Breakdown     Breakdown `json:"breakdown"`
}

type Calculation struct {
	Id              uuid.UUID `json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	BuildingType    string    `json:"buildingType"`
	Height          float64   `json:"height"`
	Area            float64   `json:"area"`
	LightningPoints int       `json:"lightningPoints"`
	SystemType      string    `json:"systemType"`
	EstimatedCost   int64     `json:"estimatedCost"`
	FormattedCost   string    `json:"formattedCost"`
	Package         Package   `json:"package"`
}

// CalculationResult is returned once a calculation is stored.
type CalculationResult struct {
	Calculation Calculation `json:"calculation"`
	Estimate    Estimate    `json:"estimate"`
	// WhatsappUrl opens a chat with the sales team.
	WhatsappUrl string `json:"whatsappUrl"`
}

type CalculationList struct {
	Items  []Calculation `json:"items"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type Service struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

type Project struct {
	Id             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ImageUrl       *string   `json:"imageUrl,omitempty"`
	Location       string    `json:"location"`
	CompletionDate string    `json:"completionDate"`
}

type Testimonial struct {
	Id         uuid.UUID `json:"id"`
	ClientName string    `json:"clientName"`
	Company    *string   `json:"company,omitempty"`
	Message    string    `json:"message"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Hero struct {
	Title        string    `json:"title"`
	Headline     []string  `json:"headline"`
	Tagline      string    `json:"tagline"`
	Badge        string    `json:"badge"`
	Stats        []Stat    `json:"stats"`
	Features     []Feature `json:"features"`
	CallToAction string    `json:"callToAction"`
}

type About struct {
	Title        string   `json:"title"`
	Paragraphs   []string `json:"paragraphs"`
	Achievements []Stat   `json:"achievements"`
	Features     []string `json:"features"`
}

type Contact struct {
	CompanyName     string `json:"companyName"`
	Phone           string `json:"phone"`
	WhatsappUrl     string `json:"whatsappUrl"`
	EstimateChatUrl string `json:"estimateChatUrl"`
}

type NavItem struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

type Landing struct {
	Hero         Hero          `json:"hero"`
	About        About         `json:"about"`
	Services     []Service     `json:"services"`
	Projects     []Project     `json:"projects"`
	Testimonials []Testimonial `json:"testimonials"`
	Contact      Contact       `json:"contact"`
	Navigation   []NavItem     `json:"navigation"`
}

package types

import (
	"time"

	"guardrail-quote/calc"
)

// CalcRequest is one part line as sent by the quoting screen. Pointers let
// us tell a missing field from an explicit zero.
type CalcRequest struct {
	PartType    string   `json:"partType" binding:"required"`
	ThicknessMm *float64 `json:"thicknessMm" binding:"required"`
	LengthMm    *float64 `json:"lengthMm"`
	CoatingGsm  *float64 `json:"coatingGsm" binding:"required"`
	Quantity    int      `json:"quantity" binding:"gte=0"`
}

// WeightRequest is the body of the per-part weight endpoint.
type WeightRequest struct {
	ThicknessMm *float64 `json:"thicknessMm" binding:"required"`
	LengthMm    *float64 `json:"lengthMm"`
	CoatingGsm  *float64 `json:"coatingGsm" binding:"required"`
}

// CalcResponse pairs the weights with their price.
type CalcResponse struct {
	Part    calc.PartConstants  `json:"part"`
	Weights calc.WeightResult   `json:"weights"`
	Legacy  map[string]float64  `json:"legacy"`
	Price   calc.PriceBreakdown `json:"price"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// CoatingGrade is an accepted zinc coating weight.
type CoatingGrade struct {
	Gsm   float64 `json:"gsm" binding:"required,gt=0"`
	Label string  `json:"label"`
}

// Settings holds global rates and the coating grades on offer.
type Settings struct {
	Rates         calc.Rates     `json:"rates"`
	CoatingGrades []CoatingGrade `json:"coatingGrades"`
}

// RatesRequest updates the global rates.
type RatesRequest struct {
	SteelPerKg *float64 `json:"steelRatePerKg" binding:"required,gte=0"`
	ZincPerKg  *float64 `json:"zincRatePerKg" binding:"required,gte=0"`
	TaxPercent *float64 `json:"taxPercent" binding:"required,gte=0"`
}

// QuoteSubmission saves a new quote, or a new version of QuoteNumber when set.
type QuoteSubmission struct {
	QuoteNumber  int           `json:"quoteNumber"`
	CustomerName string        `json:"customerName"`
	ProjectName  string        `json:"projectName" binding:"required"`
	Items        []CalcRequest `json:"items" binding:"required,min=1,dive"`
}

type Quote struct {
	ID            int64       `json:"id"`
	QuoteNumber   int         `json:"quoteNumber"`
	Version       int         `json:"version"`
	CustomerName  string      `json:"customerName"`
	ProjectName   string      `json:"projectName"`
	TotalWeightKg float64     `json:"totalWeightKg"`
	TotalCost     float64     `json:"totalCost"`
	CreatedBy     string      `json:"createdBy"`
	CreatedAt     time.Time   `json:"createdAt"`
	Items         []QuoteItem `json:"items,omitempty"`
}

type QuoteItem struct {
	ID            int64   `json:"id"`
	PartType      string  `json:"partType"`
	ThicknessMm   float64 `json:"thicknessMm"`
	LengthMm      float64 `json:"lengthMm"`
	CoatingGsm    float64 `json:"coatingGsm"`
	Quantity      int     `json:"quantity"`
	BlackWeightKg float64 `json:"blackMaterialWeightKg"`
	ZincWeightKg  float64 `json:"zincWeightKg"`
	TotalWeightKg float64 `json:"totalWeightKg"`
	UnitPrice     float64 `json:"unitPrice"`
	LineTotal     float64 `json:"lineTotal"`
}

// QuoteGroup is every version of one quote number, newest first.
type QuoteGroup struct {
	Latest  Quote   `json:"latest"`
	History []Quote `json:"history"`
}

type Activity struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}

// Package models defines the shared value objects that flow through the
// extraction-and-scoring pipeline.
package models

import (
	"time"
)

// DataSource identifies which extraction path produced a CanonicalFinancials.
type DataSource string

const (
	SourceCSV       DataSource = "csv"
	SourceText      DataSource = "text"
	SourceTextTable DataSource = "text-table"
)

// RawRecord is one row of tabular input. Keys are unnormalized column
// headers exactly as they appeared in the document.
type RawRecord map[string]string

// CanonicalFinancials is the normalized field set every extraction path
// converges to. All monetary values are in millions of currency;
// RevenueGrowth is a percentage. A nil field means "unknown", never zero:
// extraction reports absence as nil so downstream guards can tell the
// difference.
type CanonicalFinancials struct {
	Revenue            *float64 `json:"revenue"`
	EBITDA             *float64 `json:"ebitda"`
	NetIncome          *float64 `json:"net_income"`
	TotalAssets        *float64 `json:"total_assets"`
	TotalLiabilities   *float64 `json:"total_liabilities"`
	CurrentAssets      *float64 `json:"current_assets"`
	CurrentLiabilities *float64 `json:"current_liabilities"`
	CashFlow           *float64 `json:"cash_flow"`
	RevenueGrowth      *float64 `json:"revenueGrowth"`

	DataSource DataSource `json:"dataSource"`
	RowCount   int        `json:"rowCount,omitempty"` // tabular origin only
}

// DerivedMetrics is the MetricEngine output. Each ratio is nil when its
// required inputs were missing or its divisor was zero; callers render nil
// as "N/A". Revenue, EBITDA and RevenueGrowth are passed through for display.
type DerivedMetrics struct {
	ProfitMargin  *float64 `json:"profitMargin"`  // %, 1 decimal
	DebtRatio     *float64 `json:"debtRatio"`     // ratio, 2 decimals
	CurrentRatio  *float64 `json:"currentRatio"`  // ratio, 2 decimals
	EVToEBITDA    *float64 `json:"evToEbitda"`    // proxy multiple, 1 decimal
	DebtToEBITDA  *float64 `json:"debtToEbitda"`  // multiple, 1 decimal
	CashFlow      *float64 `json:"cashFlow"`      // $M, 1 decimal
	Revenue       *float64 `json:"revenue"`
	EBITDA        *float64 `json:"ebitda"`
	RevenueGrowth *float64 `json:"revenueGrowth"`
}

// SectorBenchmark is the reference multiple pair for one industry sector.
type SectorBenchmark struct {
	EVToEBITDA   float64 `json:"evToEbitda" yaml:"evToEbitda"`
	DebtToEBITDA float64 `json:"debtToEbitda" yaml:"debtToEbitda"`
}

// Valuation status values.
const (
	ValuationUndervalued = "Undervalued"
	ValuationFair        = "Fair Value"
	ValuationOvervalued  = "Overvalued"
)

// Deal signal values.
const (
	SignalAttractive = "Attractive"
	SignalNeutral    = "Neutral"
	SignalCautious   = "Cautious"
)

// Health status bands.
const (
	HealthStrong   = "Strong"
	HealthModerate = "Moderate"
	HealthWeak     = "Weak"
)

// DealSummary is the BenchmarkScorer output: the health score, the
// categorical classifications and the display strings a report needs.
type DealSummary struct {
	HealthScore     int    `json:"healthScore"` // 0-100
	HealthStatus    string `json:"healthStatus"`
	ValuationStatus string `json:"valuationStatus"`
	DealSignal      string `json:"dealSignal"`
	EVToEBITDA      string `json:"evToEbitda"`  // "6.3" or "N/A"
	SectorAvgEV     string `json:"sectorAvgEV"` // "8.5"
	ImpliedEV       string `json:"impliedEV"`   // "$125M" or "N/A"
	Insight         string `json:"insight"`
}

// DealAnalysis is the narrative layer output. When the LLM collaborator is
// unavailable the analyzer fills it from templates, so every field is always
// populated.
type DealAnalysis struct {
	Summary       string   `json:"summary"`
	Risks         []string `json:"risks"`
	Opportunities []string `json:"opportunities"`
}

// Deal is one complete pipeline run: the extracted financials plus everything
// derived from them.
type Deal struct {
	ID           string               `json:"id"`
	CompanyName  string               `json:"companyName"`
	FileName     string               `json:"fileName"`
	Sector       string               `json:"industry"`
	DateUploaded time.Time            `json:"dateUploaded"`
	Financials   *CanonicalFinancials `json:"financials"`
	Metrics      *DerivedMetrics      `json:"metrics"`
	Summary      *DealSummary         `json:"dealSummary"`
	Analysis     *DealAnalysis        `json:"analysis"`
}

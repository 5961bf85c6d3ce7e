package extract

import (
	"math"
	"regexp"
	"strings"

	"dealscope/pkg/core/parse"
	"dealscope/pkg/models"
)

// =============================================================================
// TABULAR EXTRACTION - CSV/spreadsheet rows to canonical financials
// =============================================================================

// fieldAliases maps each canonical field to its ordered list of acceptable
// normalized column headers. First non-empty match per row wins, so the
// precedence is auditable: add new aliases here, not in control flow.
var fieldAliases = []struct {
	Field   string
	Aliases []string
}{
	{"revenue", []string{"revenue", "sales", "total_revenue", "total_sales", "revenues", "net_sales"}},
	{"ebitda", []string{"ebitda", "earnings", "operating_income", "operating_profit", "op_income", "ebit"}},
	{"net_income", []string{"net_income", "net_profit", "profit", "net_earnings", "income", "earnings"}},
	{"total_assets", []string{"total_assets", "assets", "total_asset"}},
	{"total_liabilities", []string{"total_liabilities", "liabilities", "debt", "total_debt", "total_liability", "long_term_debt"}},
	{"current_assets", []string{"current_assets", "current_asset"}},
	{"current_liabilities", []string{"current_liabilities", "current_liability"}},
	{"cash_flow", []string{"cash_flow", "operating_cash_flow", "cashflow", "ocf", "cash"}},
}

var revenueAliases = fieldAliases[0].Aliases

var (
	headerUnitWords   = regexp.MustCompile(`(?i)\b(in\s+)?(millions?|thousands?|m|k|usd|dollars?)\b`)
	headerSpecialChar = regexp.MustCompile(`[^a-z0-9\s]`)
	headerWhitespace  = regexp.MustCompile(`\s+`)
)

// NormalizeHeader canonicalizes a raw column header: lowercase, strip
// currency/percent/bracket characters and unit-descriptor words, collapse
// the rest to underscore-separated tokens.
func NormalizeHeader(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.NewReplacer("$", "", "%", "", "(", "", ")", "", "[", "", "]", "", "{", "", "}", "").Replace(k)
	k = headerUnitWords.ReplaceAllString(k, "")
	k = headerSpecialChar.ReplaceAllString(k, "")
	k = headerWhitespace.ReplaceAllString(strings.TrimSpace(k), "_")
	return strings.Trim(k, "_")
}

// normalizeRow rewrites every key of a record with NormalizeHeader.
func normalizeRow(row models.RawRecord) models.RawRecord {
	normalized := make(models.RawRecord, len(row))
	for key, value := range row {
		normalized[NormalizeHeader(key)] = value
	}
	return normalized
}

// rowValue resolves a field against a normalized row using the ordered alias
// list and parses the first non-empty match.
func rowValue(row models.RawRecord, aliases []string) *float64 {
	for _, alias := range aliases {
		if raw, ok := row[alias]; ok && strings.TrimSpace(raw) != "" {
			if v := parse.ParseFinancialNumber(raw); v != nil {
				return v
			}
		}
	}
	return nil
}

// FromCSV aggregates financial totals across all rows of a tabular document.
// Rows model segments or periods rolling up into deal totals, so each field
// is summed, not looked up once. Returns nil for empty input.
func FromCSV(rows []models.RawRecord) *models.CanonicalFinancials {
	if len(rows) == 0 {
		return nil
	}

	normalized := make([]models.RawRecord, len(rows))
	for i, row := range rows {
		normalized[i] = normalizeRow(row)
	}

	totals := make(map[string]float64, len(fieldAliases))
	for _, row := range normalized {
		for _, fa := range fieldAliases {
			if v := rowValue(row, fa.Aliases); v != nil {
				totals[fa.Field] += *v
			}
		}
	}

	// Missing-value estimation: only when the summed total is exactly zero
	// and a driver field is available. The ratios are fixed domain heuristics.
	if totals["net_income"] == 0 && totals["ebitda"] > 0 {
		totals["net_income"] = totals["ebitda"] * 0.6
	}
	if totals["cash_flow"] == 0 && totals["ebitda"] > 0 {
		totals["cash_flow"] = totals["ebitda"] * 0.65
	}
	if totals["current_assets"] == 0 && totals["total_assets"] > 0 {
		totals["current_assets"] = totals["total_assets"] * 0.35
	}
	if totals["current_liabilities"] == 0 && totals["total_liabilities"] > 0 {
		totals["current_liabilities"] = totals["total_liabilities"] * 0.4
	}

	growth := revenueGrowthEstimate(normalized)

	return &models.CanonicalFinancials{
		Revenue:            nonZero(totals["revenue"]),
		EBITDA:             nonZero(totals["ebitda"]),
		NetIncome:          nonZero(totals["net_income"]),
		TotalAssets:        nonZero(totals["total_assets"]),
		TotalLiabilities:   nonZero(totals["total_liabilities"]),
		CurrentAssets:      nonZero(totals["current_assets"]),
		CurrentLiabilities: nonZero(totals["current_liabilities"]),
		CashFlow:           nonZero(totals["cash_flow"]),
		RevenueGrowth:      nonZero(growth),
		DataSource:         models.SourceCSV,
		RowCount:           len(rows),
	}
}

// revenueGrowthEstimate compares first-row vs last-row revenue. With fewer
// than 2 rows, or a non-positive first-row revenue, it falls back to 10.0.
func revenueGrowthEstimate(normalized []models.RawRecord) float64 {
	const defaultGrowth = 10.0
	if len(normalized) < 2 {
		return defaultGrowth
	}

	first := rowValue(normalized[0], revenueAliases)
	last := rowValue(normalized[len(normalized)-1], revenueAliases)
	if first == nil || last == nil || *first <= 0 || *last <= 0 {
		return defaultGrowth
	}

	growth := (*last - *first) / *first * 100
	return math.Round(growth*10) / 10
}

// nonZero maps an exact-zero aggregate to nil so downstream code can tell
// "unknown" apart from a value. Known zeros cannot occur here: a field only
// accumulates when a row actually carried it.
func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

// Package metrics derives standardized valuation, leverage and liquidity
// ratios from canonical financials. Every ratio guards its own inputs, so a
// missing divisor disables that one metric and nothing else.
package metrics

import (
	"math"

	"dealscope/pkg/models"
)

// Calculate converts raw extracted fields into the derived metric set.
// A ratio is nil when a required input is missing/non-finite or its divisor
// is zero; a legitimate zero numerator still produces a value.
func Calculate(fin *models.CanonicalFinancials) *models.DerivedMetrics {
	if fin == nil {
		return &models.DerivedMetrics{}
	}

	m := &models.DerivedMetrics{
		Revenue:       passthrough(fin.Revenue),
		EBITDA:        passthrough(fin.EBITDA),
		RevenueGrowth: passthrough(fin.RevenueGrowth),
	}

	// Profit Margin (%) - net_income / revenue * 100
	if v := guardedDiv(fin.NetIncome, fin.Revenue); v != nil {
		m.ProfitMargin = roundTo(*v*100, 1)
	}

	// Debt Ratio - total_liabilities / total_assets
	if v := guardedDiv(fin.TotalLiabilities, fin.TotalAssets); v != nil {
		m.DebtRatio = roundTo(*v, 2)
	}

	// Current Ratio - current_assets / current_liabilities
	if v := guardedDiv(fin.CurrentAssets, fin.CurrentLiabilities); v != nil {
		m.CurrentRatio = roundTo(*v, 2)
	}

	// EV/EBITDA proxy - ((total_assets + total_liabilities) / 2) / ebitda
	if ev := EnterpriseValueProxy(fin); ev != nil {
		if v := guardedDiv(ev, fin.EBITDA); v != nil {
			m.EVToEBITDA = roundTo(*v, 1)
		}
	}

	// Debt-to-EBITDA - total_liabilities / ebitda
	if v := guardedDiv(fin.TotalLiabilities, fin.EBITDA); v != nil {
		m.DebtToEBITDA = roundTo(*v, 1)
	}

	if fin.CashFlow != nil && isFinite(*fin.CashFlow) {
		m.CashFlow = roundTo(*fin.CashFlow, 1)
	}

	return m
}

// EnterpriseValueProxy is the balance-sheet EV stand-in used across the
// scorer: the average of total assets and total liabilities. Returns nil
// when either side is unknown.
func EnterpriseValueProxy(fin *models.CanonicalFinancials) *float64 {
	if fin == nil || fin.TotalAssets == nil || fin.TotalLiabilities == nil {
		return nil
	}
	if !isFinite(*fin.TotalAssets) || !isFinite(*fin.TotalLiabilities) {
		return nil
	}
	ev := (*fin.TotalAssets + *fin.TotalLiabilities) / 2
	return &ev
}

// guardedDiv divides numerator by divisor with the full guard set: both
// present and finite, divisor non-zero. The guard is on the divisor, not
// truthiness, so a zero numerator still divides.
func guardedDiv(numerator, divisor *float64) *float64 {
	if numerator == nil || divisor == nil {
		return nil
	}
	if !isFinite(*numerator) || !isFinite(*divisor) || *divisor == 0 {
		return nil
	}
	v := *numerator / *divisor
	return &v
}

func roundTo(v float64, decimals int) *float64 {
	shift := math.Pow(10, float64(decimals))
	r := math.Round(v*shift) / shift
	return &r
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func passthrough(v *float64) *float64 {
	if v == nil || !isFinite(*v) {
		return nil
	}
	return v
}

// Package analyzer is the narrative layer around the scoring pipeline: it
// asks an LLM collaborator for a written read on the deal and falls back to
// deterministic templates built purely from the derived metrics and deal
// summary. The pipeline's outputs are sufficient on their own, so the
// fallback never needs outside data.
package analyzer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"dealscope/pkg/core/llm"
	"dealscope/pkg/core/utils"
	"dealscope/pkg/models"
)

// Analyzer produces the DealAnalysis for a scored deal.
type Analyzer struct {
	provider llm.Provider
}

// New creates an analyzer. A nil provider is valid and means every call
// takes the templated fallback path.
func New(provider llm.Provider) *Analyzer {
	return &Analyzer{provider: provider}
}

// responsePayload is the JSON shape requested from the model.
type responsePayload struct {
	Summary       string   `json:"summary"`
	Risks         []string `json:"risks"`
	Opportunities []string `json:"opportunities"`
}

// Analyze returns the narrative for a deal. Provider errors, malformed
// responses and missing fields all degrade to the deterministic fallback;
// this function does not fail.
func (a *Analyzer) Analyze(ctx context.Context, m *models.DerivedMetrics, sum *models.DealSummary, fileName, sector string) *models.DealAnalysis {
	if a.provider == nil {
		return a.Fallback(m, sum, fileName, sector)
	}

	raw, err := a.provider.GenerateResponse(ctx, a.buildPrompt(m, sum, fileName, sector), systemPrompt, map[string]interface{}{
		"response_format": "json",
	})
	if err != nil {
		return a.Fallback(m, sum, fileName, sector)
	}

	var payload responsePayload
	if err := utils.SmartParse(utils.CleanMarkdown(raw), &payload); err != nil {
		return a.Fallback(m, sum, fileName, sector)
	}
	if payload.Summary == "" || len(payload.Risks) == 0 || len(payload.Opportunities) == 0 {
		return a.Fallback(m, sum, fileName, sector)
	}

	return &models.DealAnalysis{
		Summary:       payload.Summary,
		Risks:         payload.Risks,
		Opportunities: payload.Opportunities,
	}
}

const systemPrompt = "You are a private equity analyst. Respond with strict JSON only."

func (a *Analyzer) buildPrompt(m *models.DerivedMetrics, sum *models.DealSummary, fileName, sector string) string {
	return fmt.Sprintf(`Analyze this deal and return JSON with keys "summary" (2-3 sentences), "risks" (3 strings), "opportunities" (3 strings).

Deal Metrics:
- Company document: %s
- Sector: %s
- Revenue: $%sM (growth %s%%)
- EBITDA: $%sM
- Profit Margin: %s%%
- Debt-to-EBITDA: %sx
- EV/EBITDA: %sx (Sector Avg: %sx)
- Health Score: %d/100
- Valuation Status: %s
- Deal Signal: %s

End the summary with the phrase: "Hence, it is a %s deal."`,
		fileName, sector,
		displayValue(m.Revenue), displayValue(m.RevenueGrowth),
		displayValue(m.EBITDA), displayValue(m.ProfitMargin),
		displayValue(m.DebtToEBITDA), sum.EVToEBITDA, sum.SectorAvgEV,
		sum.HealthScore, sum.ValuationStatus, sum.DealSignal, sum.DealSignal)
}

// Fallback builds the deterministic narrative from the computed outputs
// alone. String interpolation over fixed templates, no generation.
func (a *Analyzer) Fallback(m *models.DerivedMetrics, sum *models.DealSummary, fileName, sector string) *models.DealAnalysis {
	company := CompanyNameFromFile(fileName)

	summary := fmt.Sprintf(
		"%s demonstrates %s financial performance with $%sM in revenue and %s%% YoY growth. "+
			"The company maintains a %s%% profit margin with EBITDA of $%sM. "+
			"Current leverage profile shows %sx Debt-to-EBITDA. %s",
		company, strings.ToLower(sum.HealthStatus),
		displayValue(m.Revenue), displayValue(m.RevenueGrowth),
		displayValue(m.ProfitMargin), displayValue(m.EBITDA),
		displayValue(m.DebtToEBITDA), sum.Insight)

	risks := []string{
		fmt.Sprintf("Leverage ratio of %sx may limit financial flexibility during market downturns", displayValue(m.DebtToEBITDA)),
		"Market competition and pricing pressure in key segments could impact margins",
		fmt.Sprintf("Dependency on economic conditions and %s-specific headwinds", strings.ToLower(sector)),
	}

	opportunities := []string{
		fmt.Sprintf("Growth trajectory of %s%% YoY indicates market positioning and execution", displayValue(m.RevenueGrowth)),
		"Operational efficiency improvements could enhance EBITDA margins",
		fmt.Sprintf("%s status presents potential for value creation through strategic initiatives", sum.ValuationStatus),
	}

	return &models.DealAnalysis{
		Summary:       summary,
		Risks:         risks,
		Opportunities: opportunities,
	}
}

// CompanyNameFromFile derives a display name from the uploaded file name:
// extension dropped, separators spaced out.
func CompanyNameFromFile(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Unnamed Corp."
	}
	return base + " Corp."
}

// displayValue renders a nullable metric for interpolation: "N/A" when
// absent, a trimmed decimal otherwise.
func displayValue(v *float64) string {
	if v == nil {
		return "N/A"
	}
	s := fmt.Sprintf("%.1f", *v)
	s = strings.TrimSuffix(s, ".0")
	return s
}

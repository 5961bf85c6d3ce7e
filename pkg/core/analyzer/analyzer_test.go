package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dealscope/pkg/models"
)

// stubProvider returns a canned response or error.
type stubProvider struct {
	response string
	err      error
	prompts  []string
}

func (s *stubProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func f(v float64) *float64 { return &v }

func sampleInputs() (*models.DerivedMetrics, *models.DealSummary) {
	m := &models.DerivedMetrics{
		Revenue:       f(100),
		EBITDA:        f(20),
		RevenueGrowth: f(12.5),
		ProfitMargin:  f(12.0),
		DebtToEBITDA:  f(2.5),
	}
	sum := &models.DealSummary{
		HealthScore:     90,
		HealthStatus:    models.HealthStrong,
		ValuationStatus: models.ValuationUndervalued,
		DealSignal:      models.SignalCautious,
		EVToEBITDA:      "6.3",
		SectorAvgEV:     "8.5",
		ImpliedEV:       "$125M",
		Insight:         "Trading below sector average multiples, but leverage is elevated.",
	}
	return m, sum
}

func TestAnalyzeUsesProviderResponse(t *testing.T) {
	provider := &stubProvider{
		response: `{"summary": "Solid mid-market asset.", "risks": ["r1", "r2", "r3"], "opportunities": ["o1", "o2", "o3"]}`,
	}
	m, sum := sampleInputs()

	got := New(provider).Analyze(context.Background(), m, sum, "acme_financials.csv", "Technology")

	if got.Summary != "Solid mid-market asset." {
		t.Errorf("summary = %q", got.Summary)
	}
	if len(got.Risks) != 3 || got.Risks[0] != "r1" {
		t.Errorf("risks = %v", got.Risks)
	}
	if len(got.Opportunities) != 3 {
		t.Errorf("opportunities = %v", got.Opportunities)
	}

	if len(provider.prompts) != 1 {
		t.Fatalf("provider called %d times", len(provider.prompts))
	}
	prompt := provider.prompts[0]
	for _, want := range []string{"Technology", "acme_financials.csv", "6.3", "8.5", "90/100", "Cautious"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAnalyzeRepairsFencedResponse(t *testing.T) {
	provider := &stubProvider{
		response: "```json\n{\"summary\": \"ok\", \"risks\": [\"a\"], \"opportunities\": [\"b\"],}\n```",
	}
	m, sum := sampleInputs()

	got := New(provider).Analyze(context.Background(), m, sum, "deal.csv", "Healthcare")
	if got.Summary != "ok" {
		t.Errorf("fenced response not repaired: summary = %q", got.Summary)
	}
}

func TestAnalyzeFallsBackOnProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("quota exhausted")}
	m, sum := sampleInputs()

	got := New(provider).Analyze(context.Background(), m, sum, "acme-deal.pdf", "Technology")

	if got.Summary == "" || len(got.Risks) != 3 || len(got.Opportunities) != 3 {
		t.Fatalf("fallback incomplete: %+v", got)
	}
	if !strings.Contains(got.Summary, "acme deal Corp.") {
		t.Errorf("summary missing derived company name: %q", got.Summary)
	}
}

func TestAnalyzeFallsBackOnEmptyPayload(t *testing.T) {
	provider := &stubProvider{response: `{"summary": "", "risks": [], "opportunities": []}`}
	m, sum := sampleInputs()

	got := New(provider).Analyze(context.Background(), m, sum, "deal.csv", "Industrial")
	if !strings.Contains(got.Summary, "deal Corp.") {
		t.Errorf("expected templated summary, got %q", got.Summary)
	}
}

func TestFallbackInterpolatesMetrics(t *testing.T) {
	m, sum := sampleInputs()

	got := New(nil).Fallback(m, sum, "northwind_q3.csv", "Technology")

	for _, want := range []string{
		"northwind q3 Corp.",
		"strong financial performance",
		"$100M in revenue",
		"12.5% YoY growth",
		"12% profit margin",
		"EBITDA of $20M",
		"2.5x Debt-to-EBITDA",
		sum.Insight,
	} {
		if !strings.Contains(got.Summary, want) {
			t.Errorf("summary missing %q:\n%s", want, got.Summary)
		}
	}
	if !strings.Contains(got.Risks[0], "2.5x") {
		t.Errorf("risk missing leverage: %q", got.Risks[0])
	}
	if !strings.Contains(got.Risks[2], "technology") {
		t.Errorf("risk missing sector: %q", got.Risks[2])
	}
	if !strings.Contains(got.Opportunities[0], "12.5%") {
		t.Errorf("opportunity missing growth: %q", got.Opportunities[0])
	}
	if !strings.Contains(got.Opportunities[2], "Undervalued") {
		t.Errorf("opportunity missing valuation status: %q", got.Opportunities[2])
	}
}

func TestFallbackRendersMissingMetricsAsNA(t *testing.T) {
	m := &models.DerivedMetrics{Revenue: f(50)}
	sum := &models.DealSummary{
		HealthStatus:    models.HealthModerate,
		ValuationStatus: models.ValuationFair,
		DealSignal:      models.SignalNeutral,
		EVToEBITDA:      "N/A",
		SectorAvgEV:     "6.5",
		ImpliedEV:       "N/A",
		Insight:         "Valuation aligned with sector norms.",
	}

	got := New(nil).Fallback(m, sum, "sparse.txt", "Consumer")
	if !strings.Contains(got.Summary, "N/A% YoY growth") {
		t.Errorf("missing growth should render N/A: %q", got.Summary)
	}
	if !strings.Contains(got.Summary, "EBITDA of $N/AM") {
		t.Errorf("missing ebitda should render N/A: %q", got.Summary)
	}
}

func TestCompanyNameFromFile(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"acme_financials.csv", "acme financials Corp."},
		{"north-wind.q3.pdf", "north wind q3 Corp."},
		{"report.html", "report Corp."},
		{"plain", "plain Corp."},
		{"", "Unnamed Corp."},
		{".csv", "Unnamed Corp."},
	}
	for _, tc := range cases {
		if got := CompanyNameFromFile(tc.in); got != tc.want {
			t.Errorf("CompanyNameFromFile(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

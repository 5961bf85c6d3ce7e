package utils

import (
	"testing"
)

type analysisPayload struct {
	Summary string   `json:"summary"`
	Risks   []string `json:"risks"`
}

func TestSmartParseStrictJSON(t *testing.T) {
	var out analysisPayload
	err := SmartParse(`{"summary": "solid deal", "risks": ["leverage"]}`, &out)
	if err != nil {
		t.Fatalf("SmartParse: %v", err)
	}
	if out.Summary != "solid deal" || len(out.Risks) != 1 {
		t.Errorf("unexpected payload: %+v", out)
	}
}

func TestSmartParseRepairsFencedOutput(t *testing.T) {
	raw := "```json\n{\"summary\": \"solid deal\", \"risks\": [\"leverage\",]}\n```"
	var out analysisPayload
	if err := SmartParse(raw, &out); err != nil {
		t.Fatalf("SmartParse: %v", err)
	}
	if out.Summary != "solid deal" {
		t.Errorf("Summary = %q", out.Summary)
	}
}

func TestSmartParseProseYieldsNothing(t *testing.T) {
	// Prose must never come back as a populated payload, whether the parse
	// chain errors or degrades to an empty object.
	var out analysisPayload
	if err := SmartParse("I could not find any figures, sorry!", &out); err == nil {
		if out.Summary != "" || len(out.Risks) != 0 {
			t.Errorf("prose produced fields: %+v", out)
		}
	}
}

func TestCleanMarkdown(t *testing.T) {
	cases := map[string]string{
		"```markdown\n# Report\n```": "# Report",
		"```\nplain\n```":            "plain",
		"no fences":                  "no fences",
	}
	for in, want := range cases {
		if got := CleanMarkdown(in); got != want {
			t.Errorf("CleanMarkdown(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateMarkdown(t *testing.T) {
	if !ValidateMarkdown("# Deal Report\n\n- risk one\n- risk two") {
		t.Error("well-formed markdown rejected")
	}
	if !ValidateMarkdown("") {
		t.Error("empty input should still parse")
	}
}

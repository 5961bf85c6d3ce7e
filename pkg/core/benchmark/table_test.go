package benchmark

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLookupFallback(t *testing.T) {
	table := DefaultTable()
	if got := table.Lookup("Technology"); got.EVToEBITDA != 8.5 {
		t.Errorf("Technology EVToEBITDA = %v, want 8.5", got.EVToEBITDA)
	}
	if got := table.Lookup("No Such Sector"); got.EVToEBITDA != 6.5 || got.DebtToEBITDA != 2.5 {
		t.Errorf("fallback = %+v, want the Multi-Sector entry", got)
	}
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmarks.yaml")
	content := `Mining:
  evToEbitda: 5.5
  debtToEbitda: 2.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if got := table.Lookup("Mining"); got.EVToEBITDA != 5.5 || got.DebtToEBITDA != 2.0 {
		t.Errorf("Mining = %+v, want {5.5 2.0}", got)
	}
	// Fallback entry injected when the file omits it.
	if got := table.Lookup("Unknown"); got.EVToEBITDA != 6.5 {
		t.Errorf("fallback = %+v, want the default Multi-Sector entry", got)
	}
}

func TestLoadTableErrors(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTable(path); err == nil {
		t.Error("expected error for empty table")
	}
}

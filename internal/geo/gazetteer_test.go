package geo

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestGazetteerLoadAndLookup(t *testing.T) {
	path := writeTempFile(t, "us.csv",
		"\uFEFF"+"postal_code;city;state;lat;lon\n"+
			"02134;Boston;MA;42.3601;-71.0589\n"+
			"2135;Brighton;MA;42.3464;-71.1627\n"+ // leading zero stripped by the export
			"bogus;Nowhere;XX;;\n")

	g := NewGazetteer()
	if err := g.LoadCountry("US", path, ';'); err != nil {
		t.Fatalf("failed to load gazetteer: %v", err)
	}

	if g.Size("US") != 2 {
		t.Errorf("expected 2 usable rows, got %d", g.Size("US"))
	}

	e, ok := g.Lookup("US", "02134")
	if !ok {
		t.Fatal("expected hit for 02134")
	}
	if e.City != "Boston" || e.State != "MA" {
		t.Errorf("unexpected entry: %+v", e)
	}

	// The stripped-zero row should be findable under its padded form
	if _, ok := g.Lookup("US", "02135"); !ok {
		t.Error("expected padded lookup for 02135 to hit")
	}

	if _, ok := g.Lookup("US", "99999"); ok {
		t.Error("expected miss for unknown zip")
	}
	if _, ok := g.Lookup("CA", "02134"); ok {
		t.Error("expected miss for unloaded country")
	}
}

func TestGazetteerCanadaFSA(t *testing.T) {
	path := writeTempFile(t, "ca.csv",
		"postal_code,city,state,lat,lon\n"+
			"K1A 0B1,Ottawa,ON,45.4215,-75.6972\n")

	g := NewGazetteer()
	if err := g.LoadCountry("CA", path, ','); err != nil {
		t.Fatalf("failed to load gazetteer: %v", err)
	}

	// Full codes collapse to the forward sortation area
	if _, ok := g.Lookup("CA", "K1A"); !ok {
		t.Error("expected FSA lookup to hit")
	}
}

func TestGazetteerMissingColumn(t *testing.T) {
	path := writeTempFile(t, "bad.csv", "zip;place\n02134;Boston\n")

	g := NewGazetteer()
	if err := g.LoadCountry("US", path, ';'); err == nil {
		t.Error("expected error for missing columns")
	}
}

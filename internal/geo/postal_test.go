package geo

import "testing"

func TestClassifyOrigin(t *testing.T) {
	tests := []struct {
		name    string
		zip     string
		country string
		wantZip string
		wantCo  string
	}{
		{"us five digit", "02134", "US", "02134", "US"},
		{"us four digit padded", "2134", "US", "02134", "US"},
		{"us zip plus four", "02134-1234", "US", "02134", "US"},
		{"us embedded", "Boston 02134", "us", "02134", "US"},
		{"us unrecognizable", "ABC", "US", "", "US"},
		{"ca full with space", "K1A 0B1", "CA", "K1A", "CA"},
		{"ca six chars no space", "K1A0B1", "CA", "K1A", "CA"},
		{"ca bare fsa", "k1a", "ca", "K1A", "CA"},
		{"ca unrecognizable", "12345", "CA", "", "CA"},
		{"international", "75001", "FR", ZipIntl, "FR"},
		{"international no zip", "", "GB", ZipIntl, "GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := ClassifyOrigin(tt.zip, tt.country)
			if o.Zip != tt.wantZip {
				t.Errorf("zip: expected %q, got %q", tt.wantZip, o.Zip)
			}
			if o.CountryCode != tt.wantCo {
				t.Errorf("country: expected %q, got %q", tt.wantCo, o.CountryCode)
			}
		})
	}
}

func TestOriginPredicates(t *testing.T) {
	us := ClassifyOrigin("02134", "US")
	if us.IsInternational() {
		t.Error("US origin should not be international")
	}
	if !us.HasZip() {
		t.Error("US origin should have a zip")
	}

	intl := ClassifyOrigin("", "DE")
	if !intl.IsInternational() {
		t.Error("DE origin should be international")
	}
	if intl.HasZip() {
		t.Error("international sentinel is not a usable zip")
	}

	missing := ClassifyOrigin("junk", "US")
	if missing.HasZip() {
		t.Error("unrecognizable US zip should not count as usable")
	}
}

func TestQueryZipCanadaPlaceholder(t *testing.T) {
	ca := ClassifyOrigin("K1A 0B1", "CA")
	if got := ca.QueryZip(); got != "K1A 1X1" {
		t.Errorf("expected padded FSA 'K1A 1X1', got %q", got)
	}

	us := ClassifyOrigin("02134", "US")
	if got := us.QueryZip(); got != "02134" {
		t.Errorf("US query zip should be unchanged, got %q", got)
	}
}

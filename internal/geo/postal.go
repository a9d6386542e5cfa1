package geo

import (
	"regexp"
	"strings"
)

// ZipIntl is the sentinel postal code for origins outside US/Canada.
// International trips are assumed to route through a facility's
// international airport, so no point-level resolution is attempted.
const ZipIntl = "INTL"

// Origin is a classified, normalized guest origin.
type Origin struct {
	CountryCode   string
	Zip           string // US: 5-digit zero-padded; CA: 3-char FSA; intl: "INTL"
	StateProvince string
	City          string
	Lat           float64
	Lon           float64
	Located       bool // coordinates resolved
}

var (
	usZipRe = regexp.MustCompile(`\d{4,5}`)
	caZipRe = regexp.MustCompile(`(?i)[A-Z]\d[A-Z]\s?\d[A-Z]\d`)
	caFSARe = regexp.MustCompile(`(?i)^[A-Z]\d[A-Z]$`)
)

// ClassifyOrigin normalizes a raw (zip, country) pair into an Origin.
// US codes are zero-padded to 5 digits (exports strip leading zeros);
// Canadian codes are reduced to the forward sortation area, accepting
// 6-character codes missing the internal space. Any country outside
// US/CA is international and gets the ZipIntl sentinel. An empty Zip
// means the postal code could not be recognized.
func ClassifyOrigin(zip, country string) Origin {
	co := strings.ToUpper(strings.TrimSpace(country))
	origin := Origin{CountryCode: co}

	switch co {
	case "US":
		if m := usZipRe.FindString(zip); m != "" {
			if len(m) != 5 {
				m = "0" + m
			}
			origin.Zip = m
		}
	case "CA":
		m := caZipRe.FindString(zip)
		if m == "" {
			m = caFSARe.FindString(strings.TrimSpace(zip))
		}
		if m != "" {
			origin.Zip = strings.ToUpper(m[0:3])
		}
	default:
		origin.Zip = ZipIntl
	}

	return origin
}

// IsInternational reports whether the origin is outside US/Canada.
func (o Origin) IsInternational() bool {
	return o.CountryCode != "US" && o.CountryCode != "CA"
}

// HasZip reports whether a usable postal code was extracted.
func (o Origin) HasZip() bool {
	return o.Zip != "" && o.Zip != ZipIntl
}

// CanadaPlaceholderSuffix pads a Canadian FSA into a full-format postal
// code for services that refuse bare FSAs. The local unit is a
// placeholder; only the FSA carries location information.
const CanadaPlaceholderSuffix = " 1X1"

// QueryZip returns the postal code to hand to external lookups.
func (o Origin) QueryZip() string {
	if o.CountryCode == "CA" && o.HasZip() {
		return o.Zip + CanadaPlaceholderSuffix
	}
	return o.Zip
}

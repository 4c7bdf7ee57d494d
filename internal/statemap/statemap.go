// Package statemap provides the static lookup from state names and USPS
// abbreviations to the FIPS region identifier used to join registration
// totals with external map geometry. A state without a mapping simply does
// not render on the choropleth; absence is never an error.
package statemap

import "strings"

// fipsByCode maps USPS state codes to zero-padded FIPS identifiers
var fipsByCode = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06",
	"CO": "08", "CT": "09", "DE": "10", "DC": "11", "FL": "12",
	"GA": "13", "HI": "15", "ID": "16", "IL": "17", "IN": "18",
	"IA": "19", "KS": "20", "KY": "21", "LA": "22", "ME": "23",
	"MD": "24", "MA": "25", "MI": "26", "MN": "27", "MS": "28",
	"MO": "29", "MT": "30", "NE": "31", "NV": "32", "NH": "33",
	"NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38",
	"OH": "39", "OK": "40", "OR": "41", "PA": "42", "RI": "44",
	"SC": "45", "SD": "46", "TN": "47", "TX": "48", "UT": "49",
	"VT": "50", "VA": "51", "WA": "53", "WV": "54", "WI": "55",
	"WY": "56",
}

// codeByName maps lower-cased full state names to USPS codes
var codeByName = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT",
	"delaware": "DE", "district of columbia": "DC", "florida": "FL",
	"georgia": "GA", "hawaii": "HI", "idaho": "ID", "illinois": "IL",
	"indiana": "IN", "iowa": "IA", "kansas": "KS", "kentucky": "KY",
	"louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT",
	"nebraska": "NE", "nevada": "NV", "new hampshire": "NH",
	"new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA",
	"rhode island": "RI", "south carolina": "SC", "south dakota": "SD",
	"tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

// RegionID returns the FIPS identifier for a state given either its USPS
// code or its full name, case-insensitively. ok is false for unknown states.
func RegionID(state string) (string, bool) {
	trimmed := strings.TrimSpace(state)
	if trimmed == "" {
		return "", false
	}

	code := strings.ToUpper(trimmed)
	if id, ok := fipsByCode[code]; ok {
		return id, true
	}
	if mapped, ok := codeByName[strings.ToLower(trimmed)]; ok {
		return fipsByCode[mapped], true
	}
	return "", false
}

// Code normalizes a state name or abbreviation to its USPS code
func Code(state string) (string, bool) {
	trimmed := strings.TrimSpace(state)
	code := strings.ToUpper(trimmed)
	if _, ok := fipsByCode[code]; ok {
		return code, true
	}
	if mapped, ok := codeByName[strings.ToLower(trimmed)]; ok {
		return mapped, true
	}
	return "", false
}

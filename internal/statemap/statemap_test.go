package statemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"USPS code", "MA", "25", true},
		{"lower-case code", "ma", "25", true},
		{"full name", "Massachusetts", "25", true},
		{"full name mixed case", "nEw JeRsEy", "34", true},
		{"district", "DC", "11", true},
		{"unknown", "ZZ", "", false},
		{"empty", "", "", false},
		{"whitespace", "  MN ", "27", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := RegionID(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestCode(t *testing.T) {
	code, ok := Code("new york")
	assert.True(t, ok)
	assert.Equal(t, "NY", code)

	code, ok = Code("tx")
	assert.True(t, ok)
	assert.Equal(t, "TX", code)

	_, ok = Code("atlantis")
	assert.False(t, ok)
}

func TestEveryCodeHasARegion(t *testing.T) {
	for name, code := range codeByName {
		_, ok := fipsByCode[code]
		assert.True(t, ok, "state %s maps to unmapped code %s", name, code)
	}
}

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rinkmetrics/domain/registration"
)

func testTable() *registration.Table {
	return registration.NewTable([]registration.Record{
		{State: "MA", Year: 2020, Total: 1000},
		{State: "MA", Year: 2022, Total: 1800},
		{State: "MA", Year: 2024, Total: 2500},
		{State: "MN", Year: 2020, Total: 55000},
		{State: "MN", Year: 2024, Total: 60000},
		{State: "NJ", Year: 2024, Total: 34000}, // no 2020 record
		{State: "OH", Year: 2020, Total: 0},     // zero base
		{State: "OH", Year: 2024, Total: 400},
	})
}

func TestFilterRestrictsStatesAndYears(t *testing.T) {
	e := NewEngine()
	filtered := e.Filter(testTable(), registration.Selection{
		FromYear: 2020, ToYear: 2022, States: []string{"MA", "MN"},
	})

	require.Len(t, filtered, 3)
	for _, rec := range filtered {
		assert.Contains(t, []string{"MA", "MN"}, rec.State)
		assert.GreaterOrEqual(t, rec.Year, 2020)
		assert.LessOrEqual(t, rec.Year, 2022)
	}
}

func TestFilterEmptySelectionIsValid(t *testing.T) {
	e := NewEngine()
	filtered := e.Filter(testTable(), registration.Selection{FromYear: 2020, ToYear: 2024})
	assert.Empty(t, filtered)

	metrics := e.Growth(testTable(), registration.Selection{FromYear: 2020, ToYear: 2024})
	assert.Empty(t, metrics)
}

func TestGrowthScenarioMA(t *testing.T) {
	// Source has MA,2020,1000 and MA,2024,2500: two filtered rows, 2.50x.
	e := NewEngine()
	sel := registration.Selection{FromYear: 2020, ToYear: 2024, States: []string{"MA"}}

	filtered := e.Filter(testTable(), sel)
	assert.Len(t, filtered, 3)

	growth := e.Growth(testTable(), sel)
	require.Len(t, growth, 1)
	assert.True(t, growth[0].Valid)
	assert.InDelta(t, 2.5, growth[0].Ratio, 1e-9)
	assert.Equal(t, "2.50x", growth[0].FormatRatio())
	assert.Equal(t, 1000, growth[0].BaseTotal)
	assert.Equal(t, 2500, growth[0].LatestTotal)
}

func TestGrowthMissingBaseIsNotApplicable(t *testing.T) {
	// NJ has a 2024 record but none for 2020.
	e := NewEngine()
	growth := e.Growth(testTable(), registration.Selection{
		FromYear: 2020, ToYear: 2024, States: []string{"NJ"},
	})

	require.Len(t, growth, 1)
	assert.False(t, growth[0].Valid)
	assert.Equal(t, "n/a", growth[0].FormatRatio())
}

func TestGrowthMissingLatestIsNotApplicable(t *testing.T) {
	e := NewEngine()
	growth := e.Growth(testTable(), registration.Selection{
		FromYear: 2020, ToYear: 2021, States: []string{"MA"},
	})

	require.Len(t, growth, 1)
	assert.False(t, growth[0].Valid, "missing latest must be guarded the same as missing base")
}

func TestGrowthZeroBaseIsNotApplicable(t *testing.T) {
	e := NewEngine()
	growth := e.Growth(testTable(), registration.Selection{
		FromYear: 2020, ToYear: 2024, States: []string{"OH"},
	})

	require.Len(t, growth, 1)
	assert.False(t, growth[0].Valid, "zero base must never be divided")
}

func TestGrowthUnknownStateDoesNotCrash(t *testing.T) {
	e := NewEngine()
	sel := registration.Selection{FromYear: 2020, ToYear: 2024, States: []string{"ZZ"}}

	assert.Empty(t, e.Filter(testTable(), sel))

	growth := e.Growth(testTable(), sel)
	require.Len(t, growth, 1)
	assert.Equal(t, "ZZ", growth[0].State)
	assert.False(t, growth[0].Valid)
}

func TestGrowthSingleYearWindow(t *testing.T) {
	e := NewEngine()
	sel := registration.Selection{FromYear: 2020, ToYear: 2020, States: []string{"MA", "MN"}}

	filtered := e.Filter(testTable(), sel)
	for _, rec := range filtered {
		assert.Equal(t, 2020, rec.Year)
	}

	for _, g := range e.Growth(testTable(), sel) {
		require.True(t, g.Valid)
		assert.Equal(t, "1.00x", g.FormatRatio(), "from==to falls out of the general rule")
	}
}

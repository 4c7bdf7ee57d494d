package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rinkmetrics/domain/registration"
)

func TestTrendsLinearGrowth(t *testing.T) {
	table := registration.NewTable([]registration.Record{
		{State: "MA", Year: 2020, Total: 1000},
		{State: "MA", Year: 2021, Total: 1100},
		{State: "MA", Year: 2022, Total: 1200},
		{State: "MA", Year: 2023, Total: 1300},
	})

	e := NewEngine()
	trends := e.Trends(table, registration.Selection{
		FromYear: 2020, ToYear: 2023, States: []string{"MA"},
	})

	require.Len(t, trends, 1)
	tr := trends[0]
	assert.Equal(t, "MA", tr.State)
	assert.InDelta(t, 1150, tr.Mean, 1e-9)
	assert.InDelta(t, 1150, tr.Median, 1e-9)
	assert.InDelta(t, 1000, tr.Min, 1e-9)
	assert.InDelta(t, 1300, tr.Max, 1e-9)
	assert.Equal(t, 2023, tr.PeakYear)
	require.True(t, tr.HasSlope)
	assert.InDelta(t, 100, tr.Slope, 1e-6, "exactly linear data recovers the yearly step")
}

func TestTrendsSingleObservationHasNoSlope(t *testing.T) {
	table := registration.NewTable([]registration.Record{
		{State: "NJ", Year: 2024, Total: 34000},
	})

	trends := NewEngine().Trends(table, registration.Selection{
		FromYear: 2020, ToYear: 2024, States: []string{"NJ"},
	})

	require.Len(t, trends, 1)
	assert.False(t, trends[0].HasSlope)
	assert.InDelta(t, 34000, trends[0].Mean, 1e-9)
	assert.Equal(t, 2024, trends[0].PeakYear)
}

func TestTrendsSkipsStatesWithNoRecords(t *testing.T) {
	table := registration.NewTable([]registration.Record{
		{State: "MA", Year: 2020, Total: 1000},
		{State: "MA", Year: 2021, Total: 1200},
	})

	trends := NewEngine().Trends(table, registration.Selection{
		FromYear: 2020, ToYear: 2021, States: []string{"MA", "ZZ"},
	})

	require.Len(t, trends, 1)
	assert.Equal(t, "MA", trends[0].State)
}

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolateInteriorGap(t *testing.T) {
	nan := math.NaN()
	out, filled := Interpolate([]float64{1, nan, nan, 4})

	assert.Equal(t, []float64{1, 2, 3, 4}, out)
	assert.Equal(t, 2, filled)
}

func TestInterpolateEdges(t *testing.T) {
	nan := math.NaN()
	in := []float64{nan, 2, nan, 6, nan}
	out, filled := Interpolate(in)

	assert.Equal(t, []float64{2, 2, 4, 6, 6}, out)
	assert.Equal(t, 3, filled)
	assert.True(t, math.IsNaN(in[2]), "input must not be modified")
}

func TestInterpolateAllMissing(t *testing.T) {
	nan := math.NaN()
	out, filled := Interpolate([]float64{nan, nan})

	assert.Equal(t, 0, filled)
	assert.True(t, math.IsNaN(out[1]))
}

func TestGroupedMedian(t *testing.T) {
	label, ok := GroupedMedian([]Bin{
		{Label: "Under $10,000", Count: 2},
		{Label: "$10,000 to $19,999", Count: 3},
		{Label: "$20,000 to $29,999", Count: 5},
	})
	// 10 members, middle index 4 is the last member of the second bracket
	assert.True(t, ok)
	assert.Equal(t, "$10,000 to $19,999", label)

	_, ok = GroupedMedian(nil)
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	values := []float64{4, 1, 3, 2}

	got := Describe(values)
	assert.Equal(t, 4, got.Count)
	assert.Equal(t, 1.0, got.Min)
	assert.Equal(t, 4.0, got.Max)
	assert.Equal(t, 2.5, got.Mean)
	assert.Equal(t, 2.5, got.Median)
	assert.InDelta(t, 3.7, got.P90, 1e-9)
	assert.Equal(t, []float64{4, 1, 3, 2}, values)

	assert.Equal(t, Summary{}, Describe(nil))
	assert.Equal(t, Summary{Count: 1, Min: 7, Max: 7, Mean: 7, Median: 7, P90: 7}, Describe([]float64{7}))
}

package inference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeMean(t *testing.T) {
	s := SummarizeMean([]float64{3, 4, 5, 4, 3, 2, 3, 4, 5, 4}, 0.95)

	assert.Equal(t, 10, s.N)
	assert.InDelta(t, 3.7, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(0.9), s.StdDev, 1e-12)
	assert.True(t, s.HasInterval)
	assert.InDelta(t, 0.678647, s.Margin(), 1e-5)
}

func TestSummarizeMean_SmallSamples(t *testing.T) {
	one := SummarizeMean([]float64{4}, 0.95)
	assert.Equal(t, 1, one.N)
	assert.Equal(t, 4.0, one.Mean)
	assert.False(t, one.HasInterval)
	assert.Equal(t, 0.0, one.Margin())

	empty := SummarizeMean(nil, 0.95)
	assert.Equal(t, 0, empty.N)
	assert.True(t, math.IsNaN(empty.Mean))
}

func TestPearson(t *testing.T) {
	assert.InDelta(t, 1.0, Pearson([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-12)
	assert.InDelta(t, -1.0, Pearson([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
}

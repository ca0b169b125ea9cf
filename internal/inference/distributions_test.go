package inference

import (
	"errors"
	"math"
	"testing"

	"evalreport/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCritical(t *testing.T) {
	d := NewDistributions()

	assert.InDelta(t, 2.262157, d.TCritical(0.95, 9), 1e-5)
	assert.InDelta(t, 3.182446, d.TCritical(0.95, 3), 1e-5)
	assert.InDelta(t, 2.570582, d.TCritical(0.95, 5), 1e-5)
	assert.True(t, math.IsNaN(d.TCritical(0.95, 0)))
}

func TestConfidenceIntervalMean(t *testing.T) {
	d := NewDistributions()

	lower, upper := d.ConfidenceIntervalMean(3.7, 0.948683, 10, 0.95)
	assert.InDelta(t, 3.7-0.678647, lower, 1e-5)
	assert.InDelta(t, 3.7+0.678647, upper, 1e-5)

	lower, upper = d.ConfidenceIntervalMean(2, 0, 1, 0.95)
	assert.Equal(t, 2.0, lower)
	assert.Equal(t, 2.0, upper)
}

func TestCorrelationPValue(t *testing.T) {
	d := NewDistributions()

	assert.InDelta(t, 1.0, d.CorrelationPValue(0, 10), 1e-12)
	assert.Equal(t, 1.0, d.CorrelationPValue(0.9, 2))
	assert.Equal(t, 0.0, d.CorrelationPValue(1, 10))
	// r=0.632 with n=10 sits right at the 0.05 boundary
	assert.InDelta(t, 0.05, d.CorrelationPValue(0.6319, 10), 1e-3)
}

func TestCorrelationMargin(t *testing.T) {
	d := NewDistributions()

	m, err := d.CorrelationMargin(0.5, 28, 0.95)
	require.NoError(t, err)
	want := math.Tanh(math.Atanh(0.5)+1.959964*0.2) - 0.5
	assert.InDelta(t, want, m, 1e-6)

	_, err = d.CorrelationMargin(0.5, 3, 0.95)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}

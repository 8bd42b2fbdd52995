package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		expect float64
	}{
		{"empty", nil, 0},
		{"single", []float64{2}, 2},
		{"knowledge scale", []float64{0, 1, 2, 2}, 1.25},
		{"behavior scale", []float64{-1, 0, 1, 2}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, Mean(tt.input), epsilon)
		})
	}
}

func TestStdDev(t *testing.T) {
	assert.InDelta(t, 0, StdDev(nil), epsilon)
	assert.InDelta(t, 0, StdDev([]float64{1, 1, 1}), epsilon)
	assert.InDelta(t, 0.5, StdDev([]float64{1, 2}), epsilon)
}

func TestConfidenceInterval95(t *testing.T) {
	low, high := ConfidenceInterval95([]float64{1})
	assert.Equal(t, 1.0, low)
	assert.Equal(t, 1.0, high)

	// sample sd of {0, 2} is sqrt(2); margin = 1.96*sqrt(2)/sqrt(2)
	low, high = ConfidenceInterval95([]float64{0, 2})
	assert.InDelta(t, 1-1.96, low, epsilon)
	assert.InDelta(t, 1+1.96, high, epsilon)
}

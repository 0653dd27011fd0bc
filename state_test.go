package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyReading(t *testing.T) {
	assert.Equal(t, StateDown, ClassifyReading(-100, -50, 50))
	assert.Equal(t, StateMiddle, ClassifyReading(0, -50, 50))
	assert.Equal(t, StateUp, ClassifyReading(50, -50, 50))
}

func TestClassifyReading_Boundaries(t *testing.T) {
	// Lower boundary is inclusive for middle, upper is inclusive for up.
	assert.Equal(t, StateMiddle, ClassifyReading(-50, -50, 50))
	assert.Equal(t, StateDown, ClassifyReading(-50.0001, -50, 50))
	assert.Equal(t, StateMiddle, ClassifyReading(49.9999, -50, 50))
	assert.Equal(t, StateUp, ClassifyReading(50, -50, 50))
}

func TestClassifyReading_Monotonic(t *testing.T) {
	values := []float64{-1e9, -51, -50, -0.1, 0, 49, 50, 51, 1e9}
	prev := StateDown
	for _, v := range values {
		state := ClassifyReading(v, -50, 50)
		assert.GreaterOrEqual(t, state, prev, "value %v", v)
		prev = state
	}
}

func TestClassifyReading_MisorderedThresholds(t *testing.T) {
	// down >= up makes middle unreachable; nothing corrects the pair.
	assert.Equal(t, StateDown, ClassifyReading(0, 50, -50))
	assert.Equal(t, StateUp, ClassifyReading(60, 50, -50))
	assert.Equal(t, StateUp, ClassifyReading(50, 50, -50))

	// Equal thresholds split the axis in two.
	assert.Equal(t, StateDown, ClassifyReading(9.99, 10, 10))
	assert.Equal(t, StateUp, ClassifyReading(10, 10, 10))
}

func TestWidgetStateString(t *testing.T) {
	assert.Equal(t, "down", StateDown.String())
	assert.Equal(t, "middle", StateMiddle.String())
	assert.Equal(t, "up", StateUp.String())

	assert.Panics(t, func() { _ = WidgetState(3).String() })
	assert.Panics(t, func() { mustValidState(WidgetState(-1)) })
}

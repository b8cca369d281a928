package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 8.5, Ratio(510, 60))
	assert.Equal(t, 0.02, Ratio(1, 60))
	assert.Equal(t, 0.0, Ratio(10, 0))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(5, 5))
	assert.Equal(t, 0.0, Percentage(0, 0))
}

func TestSum2(t *testing.T) {
	assert.Equal(t, 0.3, Sum2([]float64{0.1, 0.2}))
	assert.Equal(t, 17.33, Sum2([]float64{8.5, 8.83}))
	assert.Equal(t, 0.0, Sum2(nil))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Same point
	assert.InDelta(t, 0, HaversineDistance(-6.2088, 106.8456, -6.2088, 106.8456), 0.001)

	// Jakarta (Monas) to Bandung (Gedung Sate), roughly 117 km.
	d := HaversineDistance(-6.1754, 106.8272, -6.9025, 107.6186)
	assert.InDelta(t, 117000, d, 5000)

	// Symmetry
	assert.InDelta(t,
		HaversineDistance(-6.1754, 106.8272, -6.9025, 107.6186),
		HaversineDistance(-6.9025, 107.6186, -6.1754, 106.8272),
		0.001,
	)
}

func TestIsValidCoordinate(t *testing.T) {
	assert.True(t, IsValidCoordinate(-6.2088, 106.8456))
	assert.True(t, IsValidCoordinate(90, 180))
	assert.True(t, IsValidCoordinate(-90, -180))
	assert.True(t, IsValidCoordinate(0, 0))

	assert.False(t, IsValidCoordinate(90.01, 0))
	assert.False(t, IsValidCoordinate(-90.01, 0))
	assert.False(t, IsValidCoordinate(0, 180.01))
	assert.False(t, IsValidCoordinate(0, -180.01))
}

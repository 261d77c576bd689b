package dictionary

import (
	"testing"

	"github.com/kotoba-nlp/kotoba/kerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionCostMatrixCost(t *testing.T) {
	// right-major: costs[right*leftSize+left]
	costs := []int16{0, 1, 2, 10, 11, 12}
	m, err := NewConnectionCostMatrix(2, 3, costs)
	require.NoError(t, err)

	assert.Equal(t, int16(0), m.Cost(0, 0))
	assert.Equal(t, int16(2), m.Cost(0, 2))
	assert.Equal(t, int16(11), m.Cost(1, 1))

	// out of range ids are a defensive zero-cost connection, not a panic
	assert.Equal(t, int16(0), m.Cost(99, 0))
	assert.Equal(t, int16(0), m.Cost(0, 99))
}

func TestNewConnectionCostMatrixLengthMismatch(t *testing.T) {
	_, err := NewConnectionCostMatrix(2, 3, []int16{0, 1, 2})
	require.Error(t, err)
	assert.True(t, kerr.Is(err, kerr.Content))
}

func TestConnectionCostMatrixRoundTrip(t *testing.T) {
	costs := []int16{-5, 0, 5, 10, -10, 100}
	m, err := NewConnectionCostMatrix(2, 3, costs)
	require.NoError(t, err)

	loaded, err := LoadConnectionCostMatrix(m.Encode())
	require.NoError(t, err)

	assert.Equal(t, m.RightSize(), loaded.RightSize())
	assert.Equal(t, m.LeftSize(), loaded.LeftSize())
	for right := 0; right < 2; right++ {
		for left := 0; left < 3; left++ {
			assert.Equal(t, m.Cost(uint32(right), uint32(left)), loaded.Cost(uint32(right), uint32(left)))
		}
	}
}

func TestLoadConnectionCostMatrixTruncated(t *testing.T) {
	_, err := LoadConnectionCostMatrix([]byte{1, 2, 3})
	require.Error(t, err)
	assert.True(t, kerr.Is(err, kerr.Deserialize))
}

package dictionary

import (
	"testing"

	"github.com/kotoba-nlp/kotoba/kerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleArrayExactAndCommonPrefix(t *testing.T) {
	keys := [][]byte{[]byte("も"), []byte("もも"), []byte("うち")}
	values := []uint32{10, 20, 30}

	da, err := BuildDoubleArray(keys, values)
	require.NoError(t, err)

	v, ok := da.ExactMatch([]byte("もも"))
	require.True(t, ok)
	assert.Equal(t, uint32(20), v)

	_, ok = da.ExactMatch([]byte("ももも")) // not a registered key
	assert.False(t, ok)

	hits := da.CommonPrefixSearch([]byte("もももの"))
	require.Len(t, hits, 2)
	assert.Equal(t, PrefixMatch{Length: 3, Value: 10}, hits[0])
	assert.Equal(t, PrefixMatch{Length: 6, Value: 20}, hits[1])
}

func TestDoubleArrayRoundTrip(t *testing.T) {
	keys := [][]byte{[]byte("a"), []byte("ab"), []byte("abc"), []byte("b")}
	values := []uint32{1, 2, 3, 4}

	da, err := BuildDoubleArray(keys, values)
	require.NoError(t, err)

	encoded := da.Bytes()
	loaded, err := LoadDoubleArray(encoded)
	require.NoError(t, err)

	for i, k := range keys {
		v, ok := loaded.ExactMatch(k)
		require.True(t, ok, "key %q", k)
		assert.Equal(t, values[i], v)
	}
}

func TestDoubleArrayDuplicateKeyRejected(t *testing.T) {
	_, err := BuildDoubleArray([][]byte{[]byte("dup"), []byte("dup")}, []uint32{1, 2})
	require.Error(t, err)
	assert.True(t, kerr.Is(err, kerr.Content))
}

func TestDoubleArrayMismatchedLengths(t *testing.T) {
	_, err := BuildDoubleArray([][]byte{[]byte("a")}, []uint32{1, 2})
	require.Error(t, err)
	assert.True(t, kerr.Is(err, kerr.Content))
}

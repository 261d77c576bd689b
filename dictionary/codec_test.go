package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeBlobRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, repeated for compressibility, "+
		"the quick brown fox jumps over the lazy dog")

	for _, algo := range []CompressAlgorithm{CompressIdentity, CompressDeflate, CompressZstandard} {
		blob, err := EncodeBlob(algo, payload)
		require.NoError(t, err, "algo %d", algo)
		assert.Equal(t, byte(algo), blob[0])

		out, err := DecodeBlob(blob)
		require.NoError(t, err, "algo %d", algo)
		assert.Equal(t, payload, out)
	}
}

func TestDecodeBlobTooShort(t *testing.T) {
	out, err := DecodeBlob(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeBlobUnknownTag(t *testing.T) {
	raw := []byte{0xFF, 1, 2, 3}
	out, err := DecodeBlob(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

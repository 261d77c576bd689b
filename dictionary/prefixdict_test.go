package dictionary

import (
	"encoding/binary"
	"testing"

	"github.com/kotoba-nlp/kotoba/kerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackPrefixValueRoundTrip(t *testing.T) {
	v, err := PackPrefixValue(12345, 7)
	require.NoError(t, err)

	offset, length := UnpackPrefixValue(v)
	assert.Equal(t, uint32(12345), offset)
	assert.Equal(t, 7, length)
}

func TestPackPrefixValueRejectsThirtySecondHomograph(t *testing.T) {
	_, err := PackPrefixValue(0, 32)
	require.Error(t, err)
	assert.True(t, kerr.Is(err, kerr.Content))

	// 31 is the boundary-legal maximum
	_, err = PackPrefixValue(0, 31)
	require.NoError(t, err)

	_, err = PackPrefixValue(0, 0)
	require.Error(t, err)
	assert.True(t, kerr.Is(err, kerr.Content))
}

func buildOneWordPrefixDictionary(t *testing.T, surface string, cost int16, details []string) *PrefixDictionary {
	t.Helper()

	entry := WordEntry{WordID: WordID{ID: 0, IsSystem: true}, WordCost: cost, LeftID: 1, RightID: 2}
	vals := entry.Serialize()

	var words []byte
	joined := make([]byte, 0)
	for i, d := range details {
		if i > 0 {
			joined = append(joined, 0)
		}
		joined = append(joined, d...)
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(joined)))
	words = append(words, lenBuf[:]...)
	words = append(words, joined...)

	wordsIdx := []uint32{0}

	packed, err := PackPrefixValue(0, 1)
	require.NoError(t, err)

	da, err := BuildDoubleArray([][]byte{[]byte(surface)}, []uint32{packed})
	require.NoError(t, err)

	return NewPrefixDictionary(da, vals, wordsIdx, words, true)
}

func TestPrefixDictionaryExactMatchAndDetails(t *testing.T) {
	pd := buildOneWordPrefixDictionary(t, "もも", 900, []string{"名詞", "一般", "モモ"})

	entries, ok, err := pd.ExactMatch([]byte("もも"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, int16(900), entries[0].WordCost)

	details, err := pd.Details(entries[0].WordID.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"名詞", "一般", "モモ"}, details)
}

func TestPrefixDictionaryEncodeLoadRoundTrip(t *testing.T) {
	pd := buildOneWordPrefixDictionary(t, "もも", 900, []string{"名詞", "一般"})

	loaded, err := LoadPrefixDictionary(pd.EncodeDA(), pd.EncodeVals(), pd.EncodeWordsIdx(), pd.EncodeWords(), true)
	require.NoError(t, err)

	entries, ok, err := loaded.ExactMatch([]byte("もも"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int16(900), entries[0].WordCost)

	details, err := loaded.Details(entries[0].WordID.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"名詞", "一般"}, details)
}

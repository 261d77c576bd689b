package dictionary

import (
	"testing"

	"github.com/kotoba-nlp/kotoba/kerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordEntrySerializeRoundTrip(t *testing.T) {
	w := WordEntry{
		WordID:   WordID{ID: 42, IsSystem: true},
		WordCost: -1234,
		LeftID:   7,
		RightID:  9,
	}
	buf := w.Serialize()
	require.Len(t, buf, SerializedWordEntryLen)

	got, err := DeserializeWordEntry(buf, true)
	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestDeserializeWordEntryShortBuffer(t *testing.T) {
	_, err := DeserializeWordEntry([]byte{1, 2, 3}, true)
	require.Error(t, err)
	assert.True(t, kerr.Is(err, kerr.Deserialize))
}

func TestUnknownWordIDSentinel(t *testing.T) {
	id := UnknownWordIDFor(true)
	assert.True(t, id.IsUnknown())
	assert.Equal(t, uint32(UnknownWordID), id.ID)

	real := WordID{ID: 5, IsSystem: true}
	assert.False(t, real.IsUnknown())
}

package dictionary

import (
	"testing"

	"github.com/kotoba-nlp/kotoba/kerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataEncodeDecodeRoundTrip(t *testing.T) {
	m := DefaultMetadata()
	m.Name = "mydict"
	m.BuildID = "abc-123"
	m.Schema = NewSchema([]string{"surface", "cost"})

	data, err := EncodeMetadata(m)
	require.NoError(t, err)

	got, err := DecodeMetadata(data)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestDecodeMetadataInvalidJSON(t *testing.T) {
	_, err := DecodeMetadata([]byte("{not json"))
	require.Error(t, err)
	assert.True(t, kerr.Is(err, kerr.Deserialize))
}

func TestSchemaJSONRoundTrip(t *testing.T) {
	s := NewSchema([]string{"a", "b", "c"})
	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"fields":["a","b","c"]}`, string(data))

	var got Schema
	require.NoError(t, got.UnmarshalJSON(data))
	assert.Equal(t, s, got)
}

package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaFieldIndex(t *testing.T) {
	s := NewSchema([]string{"surface", "cost", "reading"})

	idx, ok := s.FieldIndex("cost")
	require := assert.New(t)
	require.True(ok)
	require.Equal(1, idx)

	_, ok = s.FieldIndex("missing")
	require.False(ok)
}

func TestDefaultIPADICSchemaShape(t *testing.T) {
	assert.Len(t, DefaultIPADICSchema.Fields, 13)

	for i, name := range []string{"surface", "left_context_id", "right_context_id", "cost"} {
		idx, ok := DefaultIPADICSchema.FieldIndex(name)
		assert.True(t, ok, "field %q", name)
		assert.Equal(t, i, idx, "field %q", name)
	}

	idx, ok := DefaultIPADICSchema.FieldIndex("pronunciation")
	assert.True(t, ok)
	assert.Equal(t, 12, idx)
}

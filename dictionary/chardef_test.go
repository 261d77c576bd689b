package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTableEval(t *testing.T) {
	// [0,10) -> {A}, [10,20) -> {B}, [20, inf) -> {A,B}
	boundaries := []uint32{0, 10, 20}
	table := NewLookupTableFromFunc(boundaries, func(cp uint32) []CategoryID {
		switch {
		case cp < 10:
			return []CategoryID{0}
		case cp < 20:
			return []CategoryID{1}
		default:
			return []CategoryID{0, 1}
		}
	})

	assert.Equal(t, []CategoryID{0}, table.Eval(0))
	assert.Equal(t, []CategoryID{0}, table.Eval(9))
	assert.Equal(t, []CategoryID{1}, table.Eval(10))
	assert.Equal(t, []CategoryID{1}, table.Eval(19))
	assert.Equal(t, []CategoryID{0, 1}, table.Eval(20))
	assert.Equal(t, []CategoryID{0, 1}, table.Eval(1_000_000))
}

func TestCharacterDefinitionRoundTrip(t *testing.T) {
	names := []string{"DEFAULT", "KANJI"}
	defs := []CategoryData{
		{Invoke: true, Group: false, Length: 0},
		{Invoke: false, Group: true, Length: 2},
	}
	mapping := NewLookupTableFromFunc([]uint32{0, 0x4E00, 0x9FB0}, func(cp uint32) []CategoryID {
		if cp >= 0x4E00 && cp < 0x9FB0 {
			return []CategoryID{1}
		}
		return []CategoryID{0}
	})
	cd := &CharacterDefinition{CategoryDefinitions: defs, CategoryNames: names, Mapping: mapping}

	loaded, err := LoadCharacterDefinition(cd.Encode())
	require.NoError(t, err)

	assert.Equal(t, cd.CategoryDefinitions, loaded.CategoryDefinitions)
	assert.Equal(t, cd.CategoryNames, loaded.CategoryNames)
	assert.Equal(t, cd.LookupCategories(0x4E2D), loaded.LookupCategories(0x4E2D))
	assert.Equal(t, cd.LookupCategories('a'), loaded.LookupCategories('a'))
}

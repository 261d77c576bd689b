package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotoba-nlp/kotoba/internal/testdict"
	"github.com/kotoba-nlp/kotoba/lattice"
)

func normalMode() lattice.Mode { return lattice.Mode{} }

func TestSetTextBOSEOSInvariants(t *testing.T) {
	dict := testdict.Small(t)
	lat := lattice.SetText(dict, nil, "も", normalMode())

	require.Len(t, lat.EndsAt[0], 1)
	assert.Equal(t, lat.BOSIndex(), lat.EndsAt[0][0])

	last := len(lat.Text)
	require.Len(t, lat.StartsAt[last], 1)
	assert.Equal(t, lat.EOSIndex(), lat.StartsAt[last][0])

	assert.Equal(t, lattice.Known, lat.Edges[lat.BOSIndex()].Type)
	assert.True(t, lat.Edges[lat.BOSIndex()].WordEntry.WordID.IsUnknown())
}

func TestSetTextKnownAmbiguity(t *testing.T) {
	dict := testdict.Small(t)
	text := "もも" // 2 * 3 = 6 bytes
	lat := lattice.SetText(dict, nil, text, normalMode())

	// one edge starting at byte 0 for "も" (stop=3) and one for "もも" (stop=6)
	var sawShort, sawLong bool
	for _, idx := range lat.StartsAt[0] {
		e := lat.Edges[idx]
		if e.Type != lattice.Known {
			continue
		}
		switch e.StopIndex {
		case 3:
			sawShort = true
			assert.Equal(t, int16(50), e.WordEntry.WordCost)
		case 6:
			sawLong = true
			assert.Equal(t, int16(900), e.WordEntry.WordCost)
		}
	}
	assert.True(t, sawShort, "expected a one-character match starting at byte 0")
	assert.True(t, sawLong, "expected a two-character match starting at byte 0")

	// a second one-character match must start at byte 3 for the ambiguity
	// to resolve into two valid segmentations
	var sawSecondShort bool
	for _, idx := range lat.StartsAt[3] {
		e := lat.Edges[idx]
		if e.Type == lattice.Known && e.StopIndex == 6 {
			sawSecondShort = true
			assert.Equal(t, int16(50), e.WordEntry.WordCost)
		}
	}
	assert.True(t, sawSecondShort, "expected a one-character match starting at byte 3")
}

func TestSetTextUnknownWordForUncoveredSpace(t *testing.T) {
	dict := testdict.Small(t)
	lat := lattice.SetText(dict, nil, " ", normalMode())

	var unknownEdges []lattice.Edge
	for _, idx := range lat.StartsAt[0] {
		e := lat.Edges[idx]
		if e.Type == lattice.Unknown {
			unknownEdges = append(unknownEdges, e)
		}
	}
	require.Len(t, unknownEdges, 1, "a single unmatched SYMBOL character should invoke exactly one unknown word")
	assert.Equal(t, uint32(0), unknownEdges[0].StartIndex)
	assert.Equal(t, uint32(1), unknownEdges[0].StopIndex)
	assert.Equal(t, int16(500), unknownEdges[0].WordEntry.WordCost)
}

func TestPenaltyCostNormalModeAlwaysZero(t *testing.T) {
	mode := lattice.Mode{Decompose: false, Penalty: lattice.DefaultPenalty()}
	edge := lattice.Edge{StartIndex: 0, StopIndex: 9, KanjiOnly: true}
	assert.Equal(t, int32(0), mode.PenaltyCost(edge))
}

func TestPenaltyCostKanjiRunAtThresholdIsFree(t *testing.T) {
	mode := lattice.Mode{Decompose: true, Penalty: lattice.DefaultPenalty()}
	// byte span 6 / 3 == 2 chars, at the kanji threshold exactly
	edge := lattice.Edge{StartIndex: 0, StopIndex: 6, KanjiOnly: true}
	assert.Equal(t, int32(0), mode.PenaltyCost(edge))
}

func TestPenaltyCostKanjiRunOverThreshold(t *testing.T) {
	mode := lattice.Mode{Decompose: true, Penalty: lattice.DefaultPenalty()}
	// byte span 9 / 3 == 3 chars, one over the kanji threshold of 2
	edge := lattice.Edge{StartIndex: 0, StopIndex: 9, KanjiOnly: true}
	assert.Equal(t, int32(1*3000), mode.PenaltyCost(edge))
}

func TestPenaltyCostNonKanjiRunOverThreshold(t *testing.T) {
	mode := lattice.Mode{Decompose: true, Penalty: lattice.DefaultPenalty()}
	// byte span 24 / 3 == 8 chars, one over the non-kanji threshold of 7
	edge := lattice.Edge{StartIndex: 0, StopIndex: 24, KanjiOnly: false}
	assert.Equal(t, int32(1*1700), mode.PenaltyCost(edge))
}

func TestPenaltyCostNonKanjiRunAtOrUnderThreshold(t *testing.T) {
	mode := lattice.Mode{Decompose: true, Penalty: lattice.DefaultPenalty()}
	// byte span 21 / 3 == 7 chars, at the non-kanji threshold exactly
	edge := lattice.Edge{StartIndex: 0, StopIndex: 21, KanjiOnly: false}
	assert.Equal(t, int32(0), mode.PenaltyCost(edge))
}

func TestSetTextNoSpuriousUnknownWhenKnownMatchCovers(t *testing.T) {
	dict := testdict.Small(t)
	lat := lattice.SetText(dict, nil, "も", normalMode())

	for _, idx := range lat.StartsAt[0] {
		assert.NotEqual(t, lattice.Unknown, lat.Edges[idx].Type,
			"HIRAGANA has invoke=false, so a known match should suppress unknown-word invocation")
	}
}

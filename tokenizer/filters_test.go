package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tok(surface string, byteStart uint32) Token {
	return Token{Surface: surface, ByteStart: byteStart, ByteEnd: byteStart + uint32(len(surface))}
}

func TestLengthFilter(t *testing.T) {
	tokens := []Token{tok("a", 0), tok("ab", 1), tok("abc", 3), tok("abcd", 6)}

	out := LengthFilter{MinLength: 2, MaxLength: 3}.Apply(tokens)
	require := assert.New(t)
	require.Len(out, 2)
	require.Equal("ab", out[0].Surface)
	require.Equal("abc", out[1].Surface)
}

func TestLengthFilterNoUpperBound(t *testing.T) {
	tokens := []Token{tok("a", 0), tok("abcdefgh", 1)}
	out := LengthFilter{MinLength: 1, MaxLength: 0}.Apply(tokens)
	assert.Len(t, out, 2)
}

func TestKatakanaStemFilterStripsTrailingLongSoundMark(t *testing.T) {
	tokens := []Token{tok("コーヒー", 0)}
	out := KatakanaStemFilter{MinLength: 3}.Apply(tokens)
	assert.Equal(t, "コーヒ", out[0].Surface)
	assert.Equal(t, uint32(0), out[0].ByteStart)
	assert.Equal(t, uint32(len("コーヒ")), out[0].ByteEnd)
}

func TestKatakanaStemFilterSkipsNonKatakana(t *testing.T) {
	tokens := []Token{tok("ラーメン", 0), tok("もも", 0)}
	out := KatakanaStemFilter{MinLength: 3}.Apply(tokens)
	assert.Equal(t, "ラーメン", out[0].Surface) // no trailing long-sound mark
	assert.Equal(t, "もも", out[1].Surface)    // not katakana at all
}

func TestKatakanaStemFilterRespectsMinLength(t *testing.T) {
	tokens := []Token{tok("ナー", 0)} // 2 runes
	out := KatakanaStemFilter{MinLength: 3}.Apply(tokens)
	assert.Equal(t, "ナー", out[0].Surface)
}

func TestKatakanaStemFilterLeavesExactMinLengthUnstemmed(t *testing.T) {
	tokens := []Token{tok("アイー", 0)} // exactly 3 runes, ends with the long sound mark
	out := KatakanaStemFilter{MinLength: 3}.Apply(tokens)
	assert.Equal(t, "アイー", out[0].Surface, "MinLength is a strict lower bound (count > min), not inclusive")
}

func TestMappingCharacterFilter(t *testing.T) {
	f := MappingCharacterFilter{Mapping: map[rune]string{'①': "1", '②': "2"}}
	assert.Equal(t, "1と2", f.Apply("①と②"))
	assert.Equal(t, "plain text", f.Apply("plain text"))
}

func TestMappingCharacterFilterEmptyMapping(t *testing.T) {
	f := MappingCharacterFilter{}
	assert.Equal(t, "unchanged", f.Apply("unchanged"))
}

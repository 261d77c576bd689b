package tokenizer

import "unicode/utf8"

// TokenFilter is a post-tokenization map/retain pass over a Token
// sequence (spec.md §1's "simple map/retain passes over tokens";
// SPEC_FULL.md §9 supplements two reference filters).
type TokenFilter interface {
	Apply(tokens []Token) []Token
}

// CharacterFilter is a pre-tokenization rewrite pass over raw input text,
// applied before Tokenizer.Tokenize ever sees it.
type CharacterFilter interface {
	Apply(text string) string
}

// LengthFilter drops tokens whose surface rune count falls outside
// [MinLength, MaxLength]. A zero MaxLength means no upper bound
// (lindera-filter's length.rs).
type LengthFilter struct {
	MinLength int
	MaxLength int
}

func (f LengthFilter) Apply(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		n := utf8.RuneCountInString(tok.Surface)
		if n < f.MinLength {
			continue
		}
		if f.MaxLength > 0 && n > f.MaxLength {
			continue
		}
		out = append(out, tok)
	}
	return out
}

const katakanaLongSoundMark = 'ー'

func isKatakanaRune(r rune) bool {
	return r >= 0x30A0 && r <= 0x30FF
}

func isKatakanaOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isKatakanaRune(r) {
			return false
		}
	}
	return true
}

// KatakanaStemFilter strips a trailing long-sound mark (ー) from katakana
// tokens with more than MinLength runes, matching lindera-filter's
// japanese_katakana_stem.rs (`count() > min`, strictly greater). Tokens
// that are not purely katakana, or MinLength runes or shorter, pass
// through unchanged.
type KatakanaStemFilter struct {
	MinLength int
}

func (f KatakanaStemFilter) Apply(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		out[i] = tok
		if !isKatakanaOnly(tok.Surface) {
			continue
		}
		runes := []rune(tok.Surface)
		if len(runes) <= f.MinLength {
			continue
		}
		if runes[len(runes)-1] != katakanaLongSoundMark {
			continue
		}
		trimmed := string(runes[:len(runes)-1])
		out[i].Surface = trimmed
		out[i].ByteEnd = tok.ByteStart + uint32(len(trimmed))
	}
	return out
}

// MappingCharacterFilter rewrites input text before tokenization by
// substituting each rune present in Mapping with its replacement string,
// a 1:1 or 1:N rewrite (lindera-filter's mapping.rs). Runes absent from
// Mapping pass through unchanged.
type MappingCharacterFilter struct {
	Mapping map[rune]string
}

func (f MappingCharacterFilter) Apply(text string) string {
	if len(f.Mapping) == 0 {
		return text
	}
	var b []byte
	for _, r := range text {
		if repl, ok := f.Mapping[r]; ok {
			b = append(b, repl...)
			continue
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		b = append(b, buf[:n]...)
	}
	return string(b)
}

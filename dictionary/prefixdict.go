package dictionary

import (
	"encoding/binary"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// PrefixDictionary is the known-word lexicon: a DoubleArray over surface
// forms whose leaf values pack a (word_id_offset, run_length) pair, so one
// surface can carry several WordEntry records (distinct POS/cost readings
// of the same spelling), plus the flat word-entry table and detail-feature
// table those ids index into (spec.md §3, §4.1, §6).
//
// The four components correspond 1:1 to the on-disk files spec.md §6 names:
// DA -> dict.da, Vals -> dict.vals, WordsIdx/Words -> dict.wordsidx/dict.words.
type PrefixDictionary struct {
	da       *DoubleArray
	vals     []byte   // word_id * SerializedWordEntryLen offset
	wordsIdx []uint32 // word_id -> byte offset of its length-prefixed record in words
	words    []byte   // per-entry: u32 LE length, then NUL-separated detail columns
	isSystem bool
}

// runLengthBits is the number of low bits of a packed double-array leaf
// value reserved for the run length, matching the reference's
// `offset_len & 31` / `offset_len >> 5` packing (max 31 homographs per
// surface, spec.md §8 boundary case).
const runLengthBits = 5
const maxRunLength = (1 << runLengthBits) - 1

// PackPrefixValue encodes (offset, length) into one double-array leaf value.
// length must be in [1,31] — the reference rejects a 32nd homograph of the
// same surface outright.
func PackPrefixValue(offset uint32, length int) (uint32, error) {
	if length <= 0 || length > maxRunLength {
		return 0, kerr.Newf(kerr.Content, "surface has %d homographs, max %d supported", length, maxRunLength)
	}
	return (offset << runLengthBits) | uint32(length), nil
}

// UnpackPrefixValue is the inverse of PackPrefixValue.
func UnpackPrefixValue(v uint32) (offset uint32, length int) {
	return v >> runLengthBits, int(v & maxRunLength)
}

// NewPrefixDictionary assembles a PrefixDictionary from builder output.
func NewPrefixDictionary(da *DoubleArray, vals []byte, wordsIdx []uint32, words []byte, isSystem bool) *PrefixDictionary {
	return &PrefixDictionary{da: da, vals: vals, wordsIdx: wordsIdx, words: words, isSystem: isSystem}
}

// IsSystem reports whether this dictionary is the compiled system
// dictionary (vs. a runtime-loaded user dictionary); mirrors into every
// WordID this dictionary hands back.
func (p *PrefixDictionary) IsSystem() bool { return p.isSystem }

// PrefixHit is one surface-form match: the byte length consumed and every
// WordEntry registered for that exact surface.
type PrefixHit struct {
	Length  int
	Entries []WordEntry
}

func (p *PrefixDictionary) entriesFor(value uint32) ([]WordEntry, error) {
	offset, length := UnpackPrefixValue(value)
	out := make([]WordEntry, length)
	for i := 0; i < length; i++ {
		wordID := offset + uint32(i)
		rec, err := p.wordEntryRecord(wordID)
		if err != nil {
			return nil, err
		}
		e, err := DeserializeWordEntry(rec, p.isSystem)
		if err != nil {
			return nil, err
		}
		e.WordID.ID = wordID
		out[i] = e
	}
	return out, nil
}

func (p *PrefixDictionary) wordEntryRecord(wordID uint32) ([]byte, error) {
	start := int(wordID) * SerializedWordEntryLen
	end := start + SerializedWordEntryLen
	if end > len(p.vals) {
		return nil, kerr.Newf(kerr.Content, "prefix dictionary: word id %d out of range", wordID)
	}
	return p.vals[start:end], nil
}

// ExactMatch returns every WordEntry registered for surface, if surface is
// itself a complete dictionary key.
func (p *PrefixDictionary) ExactMatch(surface []byte) ([]WordEntry, bool, error) {
	value, ok := p.da.ExactMatch(surface)
	if !ok {
		return nil, false, nil
	}
	entries, err := p.entriesFor(value)
	if err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// CommonPrefixSearch returns every prefix of surface that is itself a
// dictionary key, shortest first, each with its full entry list.
func (p *PrefixDictionary) CommonPrefixSearch(surface []byte) ([]PrefixHit, error) {
	matches := p.da.CommonPrefixSearch(surface)
	hits := make([]PrefixHit, 0, len(matches))
	for _, m := range matches {
		entries, err := p.entriesFor(m.Value)
		if err != nil {
			return nil, err
		}
		hits = append(hits, PrefixHit{Length: m.Length, Entries: entries})
	}
	return hits, nil
}

// Details returns the NUL-separated feature columns recorded for wordID, by
// following dict.wordsidx into the length-prefixed dict.words record
// (spec.md §6).
func (p *PrefixDictionary) Details(wordID uint32) ([]string, error) {
	if int(wordID) >= len(p.wordsIdx) {
		return nil, kerr.Newf(kerr.Content, "prefix dictionary: word id %d out of range", wordID)
	}
	off := p.wordsIdx[wordID]
	if int(off)+4 > len(p.words) {
		return nil, kerr.Newf(kerr.Content, "prefix dictionary: word id %d points past end of words table", wordID)
	}
	recLen := binary.LittleEndian.Uint32(p.words[off : off+4])
	start := int(off) + 4
	end := start + int(recLen)
	if end > len(p.words) {
		return nil, kerr.Newf(kerr.Content, "prefix dictionary: word id %d record length out of range", wordID)
	}
	return splitDetails(p.words[start:end]), nil
}

// EncodeDA returns the dict.da payload (pre-compression-envelope).
func (p *PrefixDictionary) EncodeDA() []byte { return p.da.Bytes() }

// EncodeVals returns the dict.vals payload: the flat concatenation of every
// WordEntry's 10-byte serialization, in word_id order.
func (p *PrefixDictionary) EncodeVals() []byte { return p.vals }

// EncodeWordsIdx returns the dict.wordsidx payload: 4*N little-endian u32
// offsets into EncodeWords(), one per word id.
func (p *PrefixDictionary) EncodeWordsIdx() []byte {
	buf := make([]byte, 4*len(p.wordsIdx))
	for i, off := range p.wordsIdx {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], off)
	}
	return buf
}

// EncodeWords returns the dict.words payload: for each word id in order, a
// u32 LE length followed by that many bytes of NUL-separated detail
// columns.
func (p *PrefixDictionary) EncodeWords() []byte { return p.words }

// LoadPrefixDictionary assembles a PrefixDictionary from the four decoded
// blobs read from dict.da, dict.vals, dict.wordsidx and dict.words.
// isSystem tags the result per the loader's origin (system dictionary
// directory vs. a user dictionary file).
func LoadPrefixDictionary(daBytes, valsBytes, wordsIdxBytes, wordsBytes []byte, isSystem bool) (*PrefixDictionary, error) {
	da, err := LoadDoubleArray(daBytes)
	if err != nil {
		return nil, err
	}
	if len(wordsIdxBytes)%4 != 0 {
		return nil, kerr.Newf(kerr.Deserialize, "dict.wordsidx length %d not a multiple of 4", len(wordsIdxBytes))
	}
	idx := make([]uint32, len(wordsIdxBytes)/4)
	for i := range idx {
		idx[i] = binary.LittleEndian.Uint32(wordsIdxBytes[i*4 : i*4+4])
	}
	return &PrefixDictionary{
		da:       da,
		vals:     append([]byte(nil), valsBytes...),
		wordsIdx: idx,
		words:    append([]byte(nil), wordsBytes...),
		isSystem: isSystem,
	}, nil
}

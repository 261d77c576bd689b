package dictionary

import (
	"encoding/binary"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// UnknownDictionary holds the pseudo word entries synthesized for text that
// misses every prefix-dictionary lookup, indexed by character category
// (spec.md §3, §4.2). Each category maps to zero or more WordEntry records
// describing candidate POS/cost assignments, plus a parallel detail record
// for the feature columns the caller reconstructs at Token-build time.
type UnknownDictionary struct {
	entries            []WordEntry
	categoryReferences map[CategoryID][]int // index into entries
	wordsIdx           []uint32             // word id -> offset into words
	words              []byte               // NUL-joined detail rows
}

// CategoryReferences returns the entry indices registered for category id,
// in the order process_unknown_word should try them (spec.md §4.2 step 5).
func (u *UnknownDictionary) CategoryReferences(id CategoryID) []int {
	return u.categoryReferences[id]
}

// Entry returns the pseudo WordEntry at index i, as produced by
// CategoryReferences.
func (u *UnknownDictionary) Entry(i int) WordEntry {
	return u.entries[i]
}

// WordCount reports the number of pseudo entries in the dictionary — entry
// indices double as word ids into UnknownDictionary's own word-detail table.
func (u *UnknownDictionary) WordCount() int {
	return len(u.entries)
}

// Details returns the NUL-separated feature columns for unknown word id.
func (u *UnknownDictionary) Details(wordID uint32) ([]string, error) {
	if int(wordID) >= len(u.wordsIdx) {
		return nil, kerr.Newf(kerr.Content, "unknown dictionary: word id %d out of range", wordID)
	}
	start := u.wordsIdx[wordID]
	var end uint32
	if int(wordID)+1 < len(u.wordsIdx) {
		end = u.wordsIdx[wordID+1]
	} else {
		end = uint32(len(u.words))
	}
	return splitDetails(u.words[start:end]), nil
}

func splitDetails(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	start := 0
	for i, c := range b {
		if c == 0 {
			out = append(out, string(b[start:i]))
			start = i + 1
		}
	}
	out = append(out, string(b[start:]))
	return out
}

// NewUnknownDictionary assembles an UnknownDictionary from builder output:
// parallel entries/categoryReferences slices plus the NUL-joined detail
// table and its per-word offset index.
func NewUnknownDictionary(entries []WordEntry, categoryReferences map[CategoryID][]int, wordsIdx []uint32, words []byte) *UnknownDictionary {
	return &UnknownDictionary{
		entries:            entries,
		categoryReferences: categoryReferences,
		wordsIdx:           wordsIdx,
		words:              words,
	}
}

// Encode serializes the dictionary as:
//
//	u32 LE entry_count
//	entry_count * 10-byte WordEntry record
//	u32 LE category_count
//	category_count * (u32 LE category_id, u32 LE ref_count, ref_count * u32 LE entry_index)
//	u32 LE words_idx_count
//	words_idx_count * u32 LE offset
//	u32 LE words_len
//	words_len bytes
func (u *UnknownDictionary) Encode() []byte {
	var buf []byte
	putU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf = append(buf, b[:]...)
	}

	putU32(uint32(len(u.entries)))
	for _, e := range u.entries {
		buf = append(buf, e.Serialize()...)
	}

	putU32(uint32(len(u.categoryReferences)))
	cats := make([]CategoryID, 0, len(u.categoryReferences))
	for c := range u.categoryReferences {
		cats = append(cats, c)
	}
	sortCategoryIDs(cats)
	for _, c := range cats {
		refs := u.categoryReferences[c]
		putU32(uint32(c))
		putU32(uint32(len(refs)))
		for _, r := range refs {
			putU32(uint32(r))
		}
	}

	putU32(uint32(len(u.wordsIdx)))
	for _, off := range u.wordsIdx {
		putU32(off)
	}
	putU32(uint32(len(u.words)))
	buf = append(buf, u.words...)
	return buf
}

func sortCategoryIDs(c []CategoryID) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j-1] > c[j]; j-- {
			c[j-1], c[j] = c[j], c[j-1]
		}
	}
}

// LoadUnknownDictionary decodes the bytes written by Encode.
func LoadUnknownDictionary(data []byte) (*UnknownDictionary, error) {
	r := &byteReader{data: data}
	entryCount, err := r.u32()
	if err != nil {
		return nil, kerr.New(kerr.Deserialize, err).WithContext("reading unknown entry count")
	}
	entries := make([]WordEntry, entryCount)
	for i := range entries {
		rec, err := r.bytes(SerializedWordEntryLen)
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading unknown word entry")
		}
		e, err := DeserializeWordEntry(rec, false)
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}

	catCount, err := r.u32()
	if err != nil {
		return nil, kerr.New(kerr.Deserialize, err).WithContext("reading unknown category count")
	}
	refs := make(map[CategoryID][]int, catCount)
	for i := uint32(0); i < catCount; i++ {
		cid, err := r.u32()
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading unknown category id")
		}
		refCount, err := r.u32()
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading unknown ref count")
		}
		list := make([]int, refCount)
		for j := range list {
			v, err := r.u32()
			if err != nil {
				return nil, kerr.New(kerr.Deserialize, err).WithContext("reading unknown ref index")
			}
			list[j] = int(v)
		}
		refs[CategoryID(cid)] = list
	}

	idxCount, err := r.u32()
	if err != nil {
		return nil, kerr.New(kerr.Deserialize, err).WithContext("reading unknown words idx count")
	}
	idx := make([]uint32, idxCount)
	for i := range idx {
		idx[i], err = r.u32()
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading unknown words idx")
		}
	}
	wordsLen, err := r.u32()
	if err != nil {
		return nil, kerr.New(kerr.Deserialize, err).WithContext("reading unknown words length")
	}
	words, err := r.bytes(int(wordsLen))
	if err != nil {
		return nil, kerr.New(kerr.Deserialize, err).WithContext("reading unknown words")
	}

	return &UnknownDictionary{
		entries:            entries,
		categoryReferences: refs,
		wordsIdx:           idx,
		words:              append([]byte(nil), words...),
	}, nil
}

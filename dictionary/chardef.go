package dictionary

import (
	"encoding/binary"
	"sort"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// DefaultCategoryName is the fallback category every code point maps to
// when no char.def range names one explicitly (spec.md §3, §8).
const DefaultCategoryName = "DEFAULT"

// CategoryID indexes CharacterDefinition.category_definitions/category_names.
type CategoryID int

// CategoryData is the per-category behavior flags parsed from a
// `CATEGORY_NAME invoke group length` line in char.def (spec.md §3, §4.2).
type CategoryData struct {
	// Invoke: attempt unknown-word generation here even when a known
	// dictionary match begins at this position.
	Invoke bool
	// Group: consecutive characters of the same category coalesce into one
	// unknown word.
	Group bool
	// Length: reserved for length-bounded additional unknown-word emission
	// (spec.md §9 open question — stored and surfaced, not yet consumed by
	// lattice.SetText).
	Length uint32
}

// LookupTable maps a code point to an ordered list of values via a sorted
// array of segment boundaries, exactly mirroring the reference's
// boundaries+values-per-segment encoding (spec.md §3).
type LookupTable struct {
	boundaries []uint32
	values     [][]CategoryID
}

// NewLookupTableFromFunc builds a LookupTable the way the builder does:
// boundaries is the full set of distinct range edges, funct computes the
// category list effective at and after each boundary.
func NewLookupTableFromFunc(boundaries []uint32, funct func(cp uint32) []CategoryID) *LookupTable {
	set := make(map[uint32]struct{}, len(boundaries)+1)
	for _, b := range boundaries {
		set[b] = struct{}{}
	}
	set[0] = struct{}{}
	sorted := make([]uint32, 0, len(set))
	for b := range set {
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	values := make([][]CategoryID, len(sorted))
	for i, b := range sorted {
		values[i] = funct(b)
	}
	return &LookupTable{boundaries: sorted, values: values}
}

// Eval returns the category list effective at code point target — the
// segment whose boundary is the greatest boundary <= target.
func (t *LookupTable) Eval(target uint32) []CategoryID {
	idx := sort.Search(len(t.boundaries), func(i int) bool { return t.boundaries[i] > target }) - 1
	if idx < 0 {
		idx = 0
	}
	return t.values[idx]
}

// CharacterDefinition is the immutable, loaded form of char.def: per-category
// behavior flags, names, and the code-point-to-category mapping.
type CharacterDefinition struct {
	CategoryDefinitions []CategoryData
	CategoryNames       []string
	Mapping             *LookupTable
}

// Categories returns the declared category names in id order.
func (c *CharacterDefinition) Categories() []string { return c.CategoryNames }

// LookupDefinition returns the behavior flags for a category id.
func (c *CharacterDefinition) LookupDefinition(id CategoryID) CategoryData {
	return c.CategoryDefinitions[id]
}

// CategoryName returns the declared name of a category id.
func (c *CharacterDefinition) CategoryName(id CategoryID) string {
	return c.CategoryNames[id]
}

// LookupCategories returns the ordered category ids for rune r, primary
// category first, falling back to DEFAULT if no range names r.
func (c *CharacterDefinition) LookupCategories(r rune) []CategoryID {
	return c.Mapping.Eval(uint32(r))
}

// --- binary encoding ---
//
// char_def.bin layout (before the compression envelope):
//
//	u32 LE category_count
//	category_count * (u8 invoke, u8 group, u32 LE length)
//	category_count * (u32 LE name_len, name_len bytes)
//	u32 LE boundary_count
//	boundary_count * u32 LE boundary
//	boundary_count * (u32 LE value_count, value_count * u32 LE category_id)

func (c *CharacterDefinition) Encode() []byte {
	var buf []byte
	putU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf = append(buf, b[:]...)
	}

	putU32(uint32(len(c.CategoryDefinitions)))
	for _, d := range c.CategoryDefinitions {
		var inv, grp byte
		if d.Invoke {
			inv = 1
		}
		if d.Group {
			grp = 1
		}
		buf = append(buf, inv, grp)
		putU32(d.Length)
	}
	for _, name := range c.CategoryNames {
		putU32(uint32(len(name)))
		buf = append(buf, name...)
	}
	putU32(uint32(len(c.Mapping.boundaries)))
	for _, b := range c.Mapping.boundaries {
		putU32(b)
	}
	for _, vs := range c.Mapping.values {
		putU32(uint32(len(vs)))
		for _, v := range vs {
			putU32(uint32(v))
		}
	}
	return buf
}

// LoadCharacterDefinition decodes the bytes written by Encode.
func LoadCharacterDefinition(data []byte) (*CharacterDefinition, error) {
	r := &byteReader{data: data}
	catCount, err := r.u32()
	if err != nil {
		return nil, kerr.New(kerr.Deserialize, err).WithContext("reading category count")
	}
	defs := make([]CategoryData, catCount)
	for i := range defs {
		inv, err := r.u8()
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading category invoke flag")
		}
		grp, err := r.u8()
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading category group flag")
		}
		length, err := r.u32()
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading category length")
		}
		defs[i] = CategoryData{Invoke: inv != 0, Group: grp != 0, Length: length}
	}
	names := make([]string, catCount)
	for i := range names {
		n, err := r.u32()
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading category name length")
		}
		s, err := r.bytes(int(n))
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading category name")
		}
		names[i] = string(s)
	}
	boundaryCount, err := r.u32()
	if err != nil {
		return nil, kerr.New(kerr.Deserialize, err).WithContext("reading boundary count")
	}
	boundaries := make([]uint32, boundaryCount)
	for i := range boundaries {
		boundaries[i], err = r.u32()
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading boundary")
		}
	}
	values := make([][]CategoryID, boundaryCount)
	for i := range values {
		vc, err := r.u32()
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading value count")
		}
		vs := make([]CategoryID, vc)
		for j := range vs {
			v, err := r.u32()
			if err != nil {
				return nil, kerr.New(kerr.Deserialize, err).WithContext("reading category id")
			}
			vs[j] = CategoryID(v)
		}
		values[i] = vs
	}
	return &CharacterDefinition{
		CategoryDefinitions: defs,
		CategoryNames:       names,
		Mapping:             &LookupTable{boundaries: boundaries, values: values},
	}, nil
}

// byteReader is a tiny cursor over a []byte, shared by the substrate's
// fixed-field binary decoders (CharacterDefinition, UnknownDictionary).
type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) u8() (byte, error) {
	if r.pos+1 > len(r.data) {
		return 0, errShortRead
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *byteReader) u32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, errShortRead
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *byteReader) bytes(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, errShortRead
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

var errShortRead = shortReadError{}

type shortReadError struct{}

func (shortReadError) Error() string { return "unexpected end of data" }

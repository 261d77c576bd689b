package dictionary

import (
	"encoding/binary"
	"sort"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// DoubleArray is a compact BASE/CHECK trie over byte-string keys, giving
// O(|key|) exact-match and common-prefix search (spec.md §3, §8). It is the
// Go-native substitute for the original implementation's `yada` crate: no
// example in the retrieved corpus ships a byte-indexed BASE/CHECK trie with
// this contract, so this file is hand-built in the teacher's flat-array
// idiom (the teacher's FlatNode/FlatEdge pair in analyzer.go is the same
// "pointers become indices into parallel slices" trick, generalized here to
// the classical two-array encoding). See DESIGN.md for the stdlib
// justification.
//
// Values are packed by the caller (PrefixDictionary packs
// (word_start_index<<5)|run_length, per spec.md §3/§4.1); DoubleArray itself
// only stores and returns opaque uint32 values.
//
// Layout on the wire (dict.da, before the compression envelope):
//
//	u32 LE node_count
//	node_count * (i32 LE base, i32 LE check)
//
// A key's final byte is followed by a synthetic 0x00 transition into a leaf
// node whose BASE field holds the packed value directly (surface forms
// never contain NUL, so 0x00 is free to use as a terminal marker).
type DoubleArray struct {
	base  []int32
	check []int32
}

const daRoot = int32(1)

// LoadDoubleArray decodes the wire format written by DoubleArray.Bytes.
func LoadDoubleArray(data []byte) (*DoubleArray, error) {
	if len(data) < 4 {
		return nil, kerr.Newf(kerr.Deserialize, "double array data too short: %d bytes", len(data))
	}
	n := int(binary.LittleEndian.Uint32(data[0:4]))
	want := 4 + n*8
	if len(data) < want {
		return nil, kerr.Newf(kerr.Deserialize, "double array data truncated: want %d bytes, got %d", want, len(data))
	}
	base := make([]int32, n)
	check := make([]int32, n)
	off := 4
	for i := 0; i < n; i++ {
		base[i] = int32(binary.LittleEndian.Uint32(data[off : off+4]))
		check[i] = int32(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		off += 8
	}
	return &DoubleArray{base: base, check: check}, nil
}

// Bytes serializes the trie to the wire format LoadDoubleArray reads.
func (d *DoubleArray) Bytes() []byte {
	n := len(d.base)
	buf := make([]byte, 4+n*8)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(n))
	off := 4
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(d.base[i]))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], uint32(d.check[i]))
		off += 8
	}
	return buf
}

func (d *DoubleArray) transition(node int32, b byte) (int32, bool) {
	if node <= 0 || int(node) >= len(d.base) {
		return 0, false
	}
	idx := d.base[node] + int32(b)
	if idx < 0 || int(idx) >= len(d.check) || d.check[idx] != node {
		return 0, false
	}
	return idx, true
}

// ExactMatch returns the packed value stored for key, if key is a complete
// entry in the trie.
func (d *DoubleArray) ExactMatch(key []byte) (uint32, bool) {
	node := daRoot
	for _, b := range key {
		next, ok := d.transition(node, b)
		if !ok {
			return 0, false
		}
		node = next
	}
	leaf, ok := d.transition(node, 0)
	if !ok {
		return 0, false
	}
	return uint32(d.base[leaf]), true
}

// PrefixMatch is one hit from CommonPrefixSearch: Length is the number of
// key bytes consumed (1-indexed, matching spec.md's prefix_byte_length),
// Value is the packed value at that prefix.
type PrefixMatch struct {
	Length int
	Value  uint32
}

// CommonPrefixSearch returns every prefix of key that is itself a complete
// entry in the trie, shortest first.
func (d *DoubleArray) CommonPrefixSearch(key []byte) []PrefixMatch {
	var out []PrefixMatch
	node := daRoot
	for i, b := range key {
		next, ok := d.transition(node, b)
		if !ok {
			break
		}
		node = next
		if leaf, ok := d.transition(node, 0); ok {
			out = append(out, PrefixMatch{Length: i + 1, Value: uint32(d.base[leaf])})
		}
	}
	return out
}

// --- construction ---

type trieEntry struct {
	key   []byte
	value uint32
}

type trieNode struct {
	children map[byte]*trieNode
	hasValue bool
	value    uint32
	arrayIdx int32
}

// BuildDoubleArray constructs a DoubleArray over keys, sorted by byte order
// as spec.md §4.2 step 6 requires. keys must already be paired 1:1 with
// values; duplicate keys are a builder error (callers are expected to have
// merged same-surface rows into one packed value beforehand, per §4.1's
// run-length packing).
func BuildDoubleArray(keys [][]byte, values []uint32) (*DoubleArray, error) {
	if len(keys) != len(values) {
		return nil, kerr.Newf(kerr.Content, "BuildDoubleArray: %d keys but %d values", len(keys), len(values))
	}
	entries := make([]trieEntry, len(keys))
	for i := range keys {
		entries[i] = trieEntry{key: keys[i], value: values[i]}
	}
	sort.Slice(entries, func(i, j int) bool {
		return string(entries[i].key) < string(entries[j].key)
	})

	root := &trieNode{children: map[byte]*trieNode{}}
	for i, e := range entries {
		if i > 0 && string(entries[i-1].key) == string(e.key) {
			return nil, kerr.Newf(kerr.Content, "BuildDoubleArray: duplicate key %q", e.key)
		}
		node := root
		for _, b := range e.key {
			child, ok := node.children[b]
			if !ok {
				child = &trieNode{children: map[byte]*trieNode{}}
				node.children[b] = child
			}
			node = child
		}
		node.hasValue = true
		node.value = e.value
	}

	da := &DoubleArray{base: make([]int32, 2), check: make([]int32, 2)}
	root.arrayIdx = daRoot
	da.ensure(int(daRoot))

	queue := []*trieNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		var children []daChild
		for b, c := range node.children {
			children = append(children, daChild{b: b, n: c})
		}
		sort.Slice(children, func(i, j int) bool { return children[i].b < children[j].b })
		if node.hasValue {
			children = append([]daChild{{b: 0, n: nil}}, children...)
		}
		if len(children) == 0 {
			continue
		}

		base := da.findBase(children)
		da.base[node.arrayIdx] = base
		for _, c := range children {
			idx := int(base) + int(c.b)
			da.ensure(idx)
			da.check[idx] = node.arrayIdx
			if c.b == 0 {
				da.base[idx] = int32(node.value)
				continue
			}
			c.n.arrayIdx = int32(idx)
			queue = append(queue, c.n)
		}
	}

	return da, nil
}

// daChild is a (byte, subtree) pair considered together when placing a
// node's base: byte 0 represents the synthetic terminal-value transition.
type daChild struct {
	b byte
	n *trieNode
}

func (d *DoubleArray) ensure(idx int) {
	if idx < len(d.base) {
		return
	}
	grown := make([]int32, idx+1)
	copy(grown, d.base)
	d.base = grown
	grown2 := make([]int32, idx+1)
	copy(grown2, d.check)
	d.check = grown2
}

// findBase locates the smallest base such that every child byte offset
// base+b lands on an unoccupied (check==0) slot other than the root's,
// the classical Aoe-incremental double-array placement search.
func (d *DoubleArray) findBase(children []daChild) int32 {
	base := int32(1)
	for {
		fits := true
		for _, c := range children {
			idx := int(base) + int(c.b)
			if idx <= int(daRoot) || (idx < len(d.check) && d.check[idx] != 0) {
				fits = false
				break
			}
		}
		if fits {
			return base
		}
		base++
	}
}

package dictionary

import (
	"encoding/binary"
	"math"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// UnknownWordID is the sentinel WordID.ID meaning "no dictionary entry" —
// spec.md §3, §9: id == 2^32-1.
const UnknownWordID = math.MaxUint32

// WordID names a single lexical entry: an index into either the system
// dictionary's word table or a loaded user dictionary's, disambiguated by
// IsSystem.
type WordID struct {
	ID       uint32
	IsSystem bool
}

// IsUnknown reports whether this id is the unknown-word sentinel. spec.md
// §9 notes EdgeType == Unknown is the authoritative signal when the two
// disagree; IsUnknown here only inspects the id itself.
func (w WordID) IsUnknown() bool {
	return w.ID == UnknownWordID
}

// UnknownWordIDFor builds the sentinel WordID for the given dictionary
// origin (system dictionaries use it for the EOS/BOS placeholder entries;
// unknown-word pseudo entries carry their own real ids into the unknown
// dictionary's word table, so this constructor is only used for BOS/EOS).
func UnknownWordIDFor(isSystem bool) WordID {
	return WordID{ID: UnknownWordID, IsSystem: isSystem}
}

// SerializedWordEntryLen is the fixed on-disk size of a WordEntry record —
// spec.md §3: word_id(4) + word_cost(2) + left_id(2) + right_id(2).
const SerializedWordEntryLen = 10

// WordEntry is the fixed-size record the prefix dictionary's double array
// points into: the node's path cost contribution and its two connection
// context ids.
type WordEntry struct {
	WordID    WordID
	WordCost  int16
	LeftID    uint16
	RightID   uint16
}

// Serialize writes the 10-byte little-endian record described in spec.md
// §3. IsSystem is not part of the wire format — it is supplied by the
// dictionary the bytes were read from (see Deserialize).
func (w WordEntry) Serialize() []byte {
	buf := make([]byte, SerializedWordEntryLen)
	binary.LittleEndian.PutUint32(buf[0:4], w.WordID.ID)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(w.WordCost))
	binary.LittleEndian.PutUint16(buf[6:8], w.LeftID)
	binary.LittleEndian.PutUint16(buf[8:10], w.RightID)
	return buf
}

// DeserializeWordEntry decodes a 10-byte record produced by Serialize.
// isSystem comes from the owning PrefixDictionary, not from the bytes.
func DeserializeWordEntry(data []byte, isSystem bool) (WordEntry, error) {
	if len(data) < SerializedWordEntryLen {
		return WordEntry{}, kerr.Newf(kerr.Deserialize, "word entry record too short: %d bytes", len(data))
	}
	return WordEntry{
		WordID: WordID{
			ID:       binary.LittleEndian.Uint32(data[0:4]),
			IsSystem: isSystem,
		},
		WordCost: int16(binary.LittleEndian.Uint16(data[4:6])),
		LeftID:   binary.LittleEndian.Uint16(data[6:8]),
		RightID:  binary.LittleEndian.Uint16(data[8:10]),
	}, nil
}

func (w WordEntry) leftID() uint32  { return uint32(w.LeftID) }
func (w WordEntry) rightID() uint32 { return uint32(w.RightID) }

// LeftID and RightID as uint32, for indexing ConnectionCostMatrix.
func (w WordEntry) LeftIDu32() uint32  { return w.leftID() }
func (w WordEntry) RightIDu32() uint32 { return w.rightID() }

package dictionary

import (
	"encoding/binary"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// ConnectionCostMatrix is the dense (right_id x left_id) transition-cost
// table compiled from matrix.def (spec.md §3, §4.2). Costs are additive into
// the Viterbi path cost at every edge boundary.
type ConnectionCostMatrix struct {
	rightSize int
	leftSize  int
	costs     []int16
}

// NewConnectionCostMatrix builds a matrix from a dense costs slice laid out
// right-major: costs[right*leftSize+left].
func NewConnectionCostMatrix(rightSize, leftSize int, costs []int16) (*ConnectionCostMatrix, error) {
	if len(costs) != rightSize*leftSize {
		return nil, kerr.Newf(kerr.Content, "connection matrix: want %d costs for %dx%d, got %d",
			rightSize*leftSize, rightSize, leftSize, len(costs))
	}
	return &ConnectionCostMatrix{rightSize: rightSize, leftSize: leftSize, costs: costs}, nil
}

// Cost returns the transition cost from a left-context id to a right-context
// id. Out-of-range ids (which should never occur for a consistent
// dictionary) are treated as a zero-cost connection rather than panicking,
// matching the reference's defensive bounds handling.
func (m *ConnectionCostMatrix) Cost(rightID, leftID uint32) int16 {
	if int(rightID) >= m.rightSize || int(leftID) >= m.leftSize {
		return 0
	}
	return m.costs[int(rightID)*m.leftSize+int(leftID)]
}

// RightSize and LeftSize report the matrix dimensions; the builder records
// them in its build log. No WordEntry ids are checked against them.
func (m *ConnectionCostMatrix) RightSize() int { return m.rightSize }
func (m *ConnectionCostMatrix) LeftSize() int  { return m.leftSize }

// Encode serializes the matrix as:
//
//	u16 LE right_size
//	u16 LE left_size
//	right_size*left_size * i16 LE cost
//
// matching the matrix.mtx wire format spec.md §3 and §6 name — the same
// two-u16 header a MeCab/lindera-built matrix.mtx carries.
func (m *ConnectionCostMatrix) Encode() []byte {
	buf := make([]byte, 4+len(m.costs)*2)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(m.rightSize))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(m.leftSize))
	off := 4
	for _, c := range m.costs {
		binary.LittleEndian.PutUint16(buf[off:off+2], uint16(c))
		off += 2
	}
	return buf
}

// LoadConnectionCostMatrix decodes the bytes written by Encode.
func LoadConnectionCostMatrix(data []byte) (*ConnectionCostMatrix, error) {
	if len(data) < 4 {
		return nil, kerr.Newf(kerr.Deserialize, "connection matrix data too short: %d bytes", len(data))
	}
	rightSize := int(binary.LittleEndian.Uint16(data[0:2]))
	leftSize := int(binary.LittleEndian.Uint16(data[2:4]))
	want := 4 + rightSize*leftSize*2
	if len(data) < want {
		return nil, kerr.Newf(kerr.Deserialize, "connection matrix data truncated: want %d bytes, got %d", want, len(data))
	}
	costs := make([]int16, rightSize*leftSize)
	off := 4
	for i := range costs {
		costs[i] = int16(binary.LittleEndian.Uint16(data[off : off+2]))
		off += 2
	}
	return &ConnectionCostMatrix{rightSize: rightSize, leftSize: leftSize, costs: costs}, nil
}

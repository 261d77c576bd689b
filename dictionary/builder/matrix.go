package builder

import (
	"strconv"
	"strings"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/kotoba-nlp/kotoba/kerr"
)

// buildConnectionMatrix parses matrix.def into a ConnectionCostMatrix
// (spec.md §4.2, §6): a header line of two integers (forward, backward —
// dictionary.ConnectionCostMatrix's rightSize/leftSize, matching the
// header field order the binary format writes), followed by
// `left right cost` triples.
func buildConnectionMatrix(path string) (*dictionary.ConnectionCostMatrix, error) {
	lines, err := readTextLines(path, "")
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, kerr.Newf(kerr.Content, "matrix.def is empty")
	}

	header := strings.Fields(lines[0])
	if len(header) != 2 {
		return nil, kerr.Newf(kerr.Content, "matrix.def header %q: want 2 fields", lines[0])
	}
	// matrix.mtx's header is two u16 fields (spec.md §3, §6); reject
	// dimensions that wouldn't round-trip through the on-disk format.
	forward, err1 := strconv.ParseUint(header[0], 10, 16)
	backward, err2 := strconv.ParseUint(header[1], 10, 16)
	if err1 != nil || err2 != nil {
		return nil, kerr.Newf(kerr.Content, "matrix.def header %q has non-numeric or oversized (>65535) sizes", lines[0])
	}
	rightSize := int(forward)
	leftSize := int(backward)

	costs := make([]int16, rightSize*leftSize)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, kerr.Newf(kerr.Content, "matrix.def triple %q: want 3 fields", line)
		}
		left, errL := strconv.ParseUint(fields[0], 10, 32)
		right, errR := strconv.ParseUint(fields[1], 10, 32)
		cost, errC := strconv.ParseInt(fields[2], 10, 16)
		if errL != nil || errR != nil || errC != nil {
			return nil, kerr.Newf(kerr.Content, "matrix.def triple %q has non-numeric fields", line)
		}
		if int(left) >= leftSize || int(right) >= rightSize {
			return nil, kerr.Newf(kerr.Content, "matrix.def triple %q out of declared bounds (%dx%d)", line, rightSize, leftSize)
		}
		costs[int(right)*leftSize+int(left)] = int16(cost)
	}

	return dictionary.NewConnectionCostMatrix(rightSize, leftSize, costs)
}

// Package viterbi implements the forward dynamic-programming pass over a
// lattice.Lattice and the backward trace that reads off the best path
// (spec.md §4.4), grounded on the reference's calculate_path_costs/
// tokens_offset.
package viterbi

import (
	"math"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/kotoba-nlp/kotoba/kerr"
	"github.com/kotoba-nlp/kotoba/lattice"
)

const noPath = int32(math.MaxInt32 / 2) // mirrors lattice's maxPathCost sentinel

// CalculatePathCosts runs the forward DP described in spec.md §4.4 over
// every edge of lat, in increasing byte-offset order, and leaves each
// Edge's PathCost/LeftEdge set to its optimal predecessor.
func CalculatePathCosts(lat *lattice.Lattice, conn *dictionary.ConnectionCostMatrix, mode lattice.Mode) {
	l := len(lat.StartsAt) - 1
	for i := 0; i <= l; i++ {
		for _, rightIdx := range lat.StartsAt[i] {
			right := &lat.Edges[rightIdx]
			if rightIdx == lat.BOSIndex() {
				continue
			}

			best := noPath
			bestLeft := -1
			for _, leftIdx := range lat.EndsAt[i] {
				left := lat.Edges[leftIdx]
				if left.PathCost >= noPath {
					continue
				}
				connCost := conn.Cost(left.WordEntry.RightIDu32(), right.WordEntry.LeftIDu32())
				candidate := left.PathCost + int32(connCost) + mode.PenaltyCost(left)
				right.Predecessors = append(right.Predecessors, lattice.Predecessor{LeftEdge: leftIdx, Cost: candidate})
				if candidate < best {
					best = candidate
					bestLeft = leftIdx
				}
			}

			if bestLeft == -1 {
				continue
			}
			right.PathCost = best + int32(right.WordEntry.WordCost)
			right.LeftEdge = bestLeft
		}
	}
}

// TokenPosition is one entry of the 1-best trace: the byte offset where a
// word starts and its WordID.
type TokenPosition struct {
	StartIndex uint32
	StopIndex  uint32
	WordID     dictionary.WordID
	EdgeType   lattice.EdgeType
}

// TokensOffset performs spec.md §4.4's backward trace: starting from EOS,
// follow LeftEdge until BOS, then reverse and drop the BOS entry — EOS
// itself is never emitted since the walk begins at EOS's predecessor.
func TokensOffset(lat *lattice.Lattice) ([]TokenPosition, error) {
	eos := lat.Edges[lat.EOSIndex()]
	idx := eos.LeftEdge
	if idx == -1 {
		return nil, kerr.Newf(kerr.Content, "viterbi: EOS has no path (no reachable segmentation)")
	}

	var rev []TokenPosition
	reachedBOS := false
	for idx != -1 {
		e := lat.Edges[idx]
		rev = append(rev, TokenPosition{
			StartIndex: e.StartIndex,
			StopIndex:  e.StopIndex,
			WordID:     e.WordEntry.WordID,
			EdgeType:   e.Type,
		})
		if idx == lat.BOSIndex() {
			reachedBOS = true
			break
		}
		idx = e.LeftEdge
	}
	if !reachedBOS {
		return nil, kerr.Newf(kerr.Content, "viterbi: best path did not terminate at BOS (no reachable segmentation)")
	}

	// rev is [last_word, ..., first_word, BOS]; reverse and drop BOS.
	out := make([]TokenPosition, len(rev)-1)
	for i := 0; i < len(rev)-1; i++ {
		out[i] = rev[len(rev)-1-i-1]
	}
	return out, nil
}

package viterbi

import (
	"container/heap"

	"github.com/kotoba-nlp/kotoba/lattice"
)

// queueElement is the A* search node spec.md §4.5 names: byte_pos/edge
// identify where we are in the backward walk, gx is the accumulated real
// cost from EOS, fx = gx + the forward-DP path cost of that edge (an
// admissible heuristic lower-bounding the remaining distance to BOS).
type queueElement struct {
	bytePos   uint32
	edgeIndex int
	fx, gx    int32
	prev      *queueElement
}

type elementHeap []*queueElement

func (h elementHeap) Len() int            { return len(h) }
func (h elementHeap) Less(i, j int) bool  { return h[i].fx < h[j].fx }
func (h elementHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *elementHeap) Push(x interface{}) { *h = append(*h, x.(*queueElement)) }
func (h *elementHeap) Pop() interface{} {
	old := *h
	n := len(old)
	el := old[n-1]
	*h = old[:n-1]
	return el
}

// NBestGenerator enumerates successive best paths through a lattice whose
// forward pass has already run, in monotonically non-decreasing total
// cost, via backward A* search (spec.md §4.5).
type NBestGenerator struct {
	lat  *lattice.Lattice
	heap elementHeap
}

// NewNBestGenerator seeds the search at EOS, per spec.md §4.5.
func NewNBestGenerator(lat *lattice.Lattice) *NBestGenerator {
	eos := lat.Edges[lat.EOSIndex()]
	g := &NBestGenerator{lat: lat}
	seed := &queueElement{
		bytePos:   eos.StopIndex,
		edgeIndex: lat.EOSIndex(),
		gx:        0,
		fx:        eos.PathCost,
	}
	g.heap = append(g.heap, seed)
	heap.Init(&g.heap)
	return g
}

// Next pops the lowest-f element, expanding through non-BOS edges until it
// reaches one anchored at BOS, at which point it reconstructs the full
// path. Returns (nil, 0, false) once the search is exhausted.
func (g *NBestGenerator) Next() ([]TokenPosition, int32, bool) {
	for g.heap.Len() > 0 {
		current := heap.Pop(&g.heap).(*queueElement)
		edge := g.lat.Edges[current.edgeIndex]

		if current.edgeIndex == g.lat.BOSIndex() {
			return g.reconstructPath(current), current.fx, true
		}

		for _, pred := range edge.Predecessors {
			left := g.lat.Edges[pred.LeftEdge]
			connAndPenalty := pred.Cost - left.PathCost
			newGx := current.gx + connAndPenalty + int32(edge.WordEntry.WordCost)
			newFx := left.PathCost + newGx
			heap.Push(&g.heap, &queueElement{
				bytePos:   left.StartIndex,
				edgeIndex: pred.LeftEdge,
				gx:        newGx,
				fx:        newFx,
				prev:      current,
			})
		}
	}
	return nil, 0, false
}

// reconstructPath walks prev links from the BOS element back to the EOS
// seed, collecting every intermediate (non-BOS, non-EOS) edge. Because each
// prev pointer was recorded while expanding the edge immediately to its
// right, this walk naturally yields tokens in left-to-right order — no
// reversal needed, unlike the 1-best trace in TokensOffset.
func (g *NBestGenerator) reconstructPath(bosElement *queueElement) []TokenPosition {
	var out []TokenPosition
	for el := bosElement.prev; el != nil && el.edgeIndex != g.lat.EOSIndex(); el = el.prev {
		e := g.lat.Edges[el.edgeIndex]
		out = append(out, TokenPosition{
			StartIndex: e.StartIndex,
			StopIndex:  e.StopIndex,
			WordID:     e.WordEntry.WordID,
			EdgeType:   e.Type,
		})
	}
	return out
}

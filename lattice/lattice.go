// Package lattice builds the byte-offset DAG a Viterbi search walks: every
// plausible segmentation of the input text into known, user and unknown
// words, anchored at BOS/EOS pseudo-edges (spec.md §3, §4.3). The Inserted
// edge type is declared but SetText never produces it.
// Grounded on the reference's Lattice::set_text, generalized from Rust's
// Option<EdgeId>/Vec<Edge> arena into parallel Go slices indexed by int.
package lattice

import (
	"math"

	"github.com/kotoba-nlp/kotoba/dictionary"
)

// EdgeType tags how an Edge was produced.
type EdgeType int

const (
	Known EdgeType = iota
	Unknown
	User
	Inserted
)

// maxPathCost stands in for "no path computed yet" (spec.md §4.4's
// INT_MAX), matching the reference's use of the widest signed value a path
// cost field can hold without overflowing on addition during the forward
// DP.
const maxPathCost = math.MaxInt32 / 2

// Predecessor is one candidate transition into an Edge considered during
// the forward DP: the predecessor edge's index and the combined cost
// (predecessor.PathCost + connection cost + mode penalty) of using it,
// before this edge's own WordCost is added. The N-best A* search
// (spec.md §4.5) needs every candidate, not just the winner the forward
// pass picked.
type Predecessor struct {
	LeftEdge int
	Cost     int32
}

// Edge is one candidate word spanning [StartIndex, StopIndex) bytes of the
// lattice's text (spec.md §3).
type Edge struct {
	Type      EdgeType
	WordEntry dictionary.WordEntry
	PathCost  int32
	// LeftEdge indexes the predecessor Edge chosen by the forward DP pass,
	// or -1 before the pass runs or for BOS.
	LeftEdge     int
	Predecessors []Predecessor
	StartIndex   uint32
	StopIndex    uint32
	KanjiOnly    bool
}

// IsUnknown prefers the EdgeType tag over the WordID sentinel when the two
// disagree, per spec.md §9 redesign flag 9.
func (e Edge) IsUnknown() bool {
	return e.Type == Unknown
}

// approxNumChars is the reference's byte-span/3 "character count"
// heuristic (spec.md §4.4), kept verbatim for compatibility with the
// worked examples; it assumes every character is 3 UTF-8 bytes, which
// is exact for kana and kanji, undercounts 1- and 2-byte characters
// (ASCII, Latin, Cyrillic) and overcounts 4-byte characters. This is the
// sole call site — a corrected utf8.RuneCountInString
// variant can replace it here without touching callers.
func (e Edge) approxNumChars() int {
	return int(e.StopIndex-e.StartIndex) / 3
}

// isKanji reports whether r falls in the CJK Unified Ideographs block
// spec.md §3 names: U+4E00..=U+9FAF.
func isKanji(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FAF
}

func isKanjiOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isKanji(r) {
			return false
		}
	}
	return true
}

// bosEosEntry returns the pseudo WordEntry record BOS and EOS edges carry;
// it never resolves to real dictionary details (WordID.IsUnknown()==true).
func bosEosEntry() dictionary.WordEntry {
	return dictionary.WordEntry{WordID: dictionary.UnknownWordIDFor(true)}
}

// Lattice is the byte-offset DAG for one tokenize() call, owned exclusively
// by the invocation that built it (spec.md §5's single-threaded solver
// state).
type Lattice struct {
	Text string

	Edges []Edge
	// StartsAt[i]/EndsAt[i] list edge indices starting/ending at byte
	// offset i, in the deterministic enumeration order spec.md §4.3
	// requires for stable tie-breaking.
	StartsAt [][]int
	EndsAt   [][]int

	bosIndex int
	eosIndex int
}

// BOSIndex/EOSIndex expose the pseudo-edge positions the Viterbi solver
// seeds from and traces back to.
func (l *Lattice) BOSIndex() int { return l.bosIndex }
func (l *Lattice) EOSIndex() int { return l.eosIndex }

// Mode is the tagged Normal|Decompose(Penalty) variant spec.md §3 names.
type Mode struct {
	Decompose bool
	Penalty   Penalty
}

// Penalty configures Decompose mode's length-based cost additions
// (spec.md §4.4).
type Penalty struct {
	KanjiPenaltyLengthThreshold int
	KanjiPenaltyLengthPenalty   int32
	OtherPenaltyLengthThreshold int
	OtherPenaltyLengthPenalty   int32
}

// DefaultPenalty returns spec.md §3's documented Decompose-mode defaults:
// a kanji run longer than 2 characters costs 3000 per character over the
// threshold, any other run longer than 7 characters costs 1700 per
// character over its threshold.
func DefaultPenalty() Penalty {
	return Penalty{
		KanjiPenaltyLengthThreshold: 2,
		KanjiPenaltyLengthPenalty:   3000,
		OtherPenaltyLengthThreshold: 7,
		OtherPenaltyLengthPenalty:   1700,
	}
}

// IsSearch reports whether this mode should force unknown-word invocation
// regardless of known matches, per spec.md §4.3 step 5 and §3's Mode
// definition: Decompose implies greedy unknown-word invocation.
func (m Mode) IsSearch() bool { return m.Decompose }

// PenaltyCost implements spec.md §4.4's length-penalty formula. Called
// unconditionally by the Viterbi solver even in Normal mode, which always
// returns 0 — spec.md §9 redesign flag 8 preserves that call site.
func (m Mode) PenaltyCost(e Edge) int32 {
	if !m.Decompose {
		return 0
	}
	n := e.approxNumChars()
	p := m.Penalty
	switch {
	case n <= p.KanjiPenaltyLengthThreshold:
		return 0
	case e.KanjiOnly:
		return int32(n-p.KanjiPenaltyLengthThreshold) * p.KanjiPenaltyLengthPenalty
	case n > p.OtherPenaltyLengthThreshold:
		return int32(n-p.OtherPenaltyLengthThreshold) * p.OtherPenaltyLengthPenalty
	default:
		return 0
	}
}

// SetText populates a fresh Lattice over text: BOS/EOS pseudo-edges, every
// user-dictionary/system-dictionary common-prefix match at each reachable
// byte offset, and unknown-word invocation per spec.md §4.3's algorithm.
func SetText(dict *dictionary.Dictionary, userDict *dictionary.PrefixDictionary, text string, mode Mode) *Lattice {
	l := int32(len(text))
	lat := &Lattice{
		Text:     text,
		StartsAt: make([][]int, l+1),
		EndsAt:   make([][]int, l+1),
	}

	bos := Edge{Type: Known, WordEntry: bosEosEntry(), PathCost: 0, LeftEdge: -1, StartIndex: 0, StopIndex: 0}
	lat.bosIndex = lat.addEdge(bos)
	lat.EndsAt[0] = append(lat.EndsAt[0], lat.bosIndex)

	eos := Edge{Type: Known, WordEntry: bosEosEntry(), PathCost: maxPathCost, LeftEdge: -1, StartIndex: uint32(l), StopIndex: uint32(l)}
	lat.eosIndex = lat.addEdge(eos)
	lat.StartsAt[l] = append(lat.StartsAt[l], lat.eosIndex)

	var unknownWordEnd *uint32

	for start := int32(0); start < l; start++ {
		if len(lat.EndsAt[start]) == 0 {
			continue
		}
		suffix := text[start:]
		found := false

		if userDict != nil {
			hits, err := userDict.CommonPrefixSearch([]byte(suffix))
			if err == nil {
				for _, hit := range hits {
					stop := start + int32(hit.Length)
					kanjiOnly := isKanjiOnly(suffix[:hit.Length])
					for _, entry := range hit.Entries {
						lat.appendEdge(User, entry, start, stop, kanjiOnly)
					}
					found = true
				}
			}
		}

		hits, err := dict.Prefix.CommonPrefixSearch([]byte(suffix))
		if err == nil {
			for _, hit := range hits {
				stop := start + int32(hit.Length)
				kanjiOnly := isKanjiOnly(suffix[:hit.Length])
				for _, entry := range hit.Entries {
					lat.appendEdge(Known, entry, start, stop, kanjiOnly)
				}
				found = true
			}
		}

		if mode.IsSearch() || unknownWordEnd == nil || *unknownWordEnd <= uint32(start) {
			first, _ := decodeFirstRune(suffix)
			categories := dict.CharDef.LookupCategories(first)
			for _, cat := range categories {
				next := processUnknownWord(lat, dict, cat, first, unknownWordEnd, start, suffix, found)
				unknownWordEnd = next
			}
		}
	}

	return lat
}

func decodeFirstRune(s string) (rune, int) {
	for _, r := range s {
		return r, 1
	}
	return 0, 0
}

// processUnknownWord implements spec.md §4.3's process_unknown_word: the
// `ord` (category index) distinguishes which entry of a character's
// ordered category list this call is evaluating, but Go's range over a
// rune-category slice makes that distinction implicit in the loop that
// calls this function category by category.
func processUnknownWord(lat *Lattice, dict *dictionary.Dictionary, cat dictionary.CategoryID, first rune, unknownWordEnd *uint32, start int32, suffix string, found bool) *uint32 {
	catData := dict.CharDef.LookupDefinition(cat)

	numChars := 0
	if catData.Invoke || !found {
		numChars = 1
		if catData.Group {
			numChars += countGroupRun(dict, cat, suffix)
		}
	}

	if numChars == 0 {
		return unknownWordEnd
	}

	byteLen := byteLengthOfRunes(suffix, numChars)
	stop := start + int32(byteLen)
	kanjiOnly := isKanjiOnly(suffix[:byteLen])

	for _, entryIdx := range dict.Unknown.CategoryReferences(cat) {
		entry := dict.Unknown.Entry(entryIdx)
		entry.WordID = dictionary.WordID{ID: uint32(entryIdx), IsSystem: false}
		lat.appendEdge(Unknown, entry, start, stop, kanjiOnly)
	}

	next := uint32(stop)
	return &next
}

// countGroupRun consumes successive characters from suffix[1:] sharing
// cat's category, per spec.md §4.3 step 5's group-extension rule.
func countGroupRun(dict *dictionary.Dictionary, cat dictionary.CategoryID, suffix string) int {
	count := 0
	runes := []rune(suffix)
	for i := 1; i < len(runes); i++ {
		cats := dict.CharDef.LookupCategories(runes[i])
		matches := false
		for _, c := range cats {
			if c == cat {
				matches = true
				break
			}
		}
		if !matches {
			break
		}
		count++
	}
	return count
}

func byteLengthOfRunes(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

func (l *Lattice) addEdge(e Edge) int {
	l.Edges = append(l.Edges, e)
	return len(l.Edges) - 1
}

func (l *Lattice) appendEdge(t EdgeType, entry dictionary.WordEntry, start, stop int32, kanjiOnly bool) {
	idx := l.addEdge(Edge{
		Type:       t,
		WordEntry:  entry,
		PathCost:   maxPathCost,
		LeftEdge:   -1,
		StartIndex: uint32(start),
		StopIndex:  uint32(stop),
		KanjiOnly:  kanjiOnly,
	})
	l.StartsAt[start] = append(l.StartsAt[start], idx)
	l.EndsAt[stop] = append(l.EndsAt[stop], idx)
}

// Package tokenizer is the public façade: it slices input text into
// sentences, drives lattice.SetText and the viterbi solver per sentence,
// and assembles the resulting byte spans into Token values with lazily
// resolved detail columns (spec.md §4.6, §3's Token record).
package tokenizer

import (
	"runtime"
	"sort"
	"sync"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/kotoba-nlp/kotoba/kerr"
	"github.com/kotoba-nlp/kotoba/lattice"
	"github.com/kotoba-nlp/kotoba/viterbi"
)

// Config configures a Tokenizer.
type Config struct {
	Mode lattice.Mode
	// SentenceDelimiters splits input before lattice construction so a
	// single long document doesn't force one huge lattice; defaults to
	// ['。', '、'] when left empty (spec.md §9 redesign flag 5). The
	// lattice builder itself never looks at delimiters.
	SentenceDelimiters []rune
	// DetailsCacheSize bounds the LRU cache of decoded detail-column
	// slices keyed by WordID and edge type; 0 disables caching.
	DetailsCacheSize int
}

// DefaultConfig returns Normal-mode tokenization with the reference
// sentence delimiters and no details cache.
func DefaultConfig() Config {
	return Config{
		Mode:               lattice.Mode{},
		SentenceDelimiters: []rune{'。', '、'},
	}
}

// Token is one segmented unit of the tokenized output (spec.md §3).
type Token struct {
	Surface        string
	ByteStart      uint32
	ByteEnd        uint32
	Position       int
	PositionLength int
	WordID         dictionary.WordID
	EdgeType       lattice.EdgeType

	resolver detailsResolver
}

type detailsResolver interface {
	Details(id dictionary.WordID, edgeType lattice.EdgeType) ([]string, error)
}

// Details resolves this token's feature columns on demand, reading the
// owning dictionary's words/words_idx blob on every call unless the
// Tokenizer has a details cache, which then serves repeat lookups of the
// same entry. EdgeType travels alongside WordID so
// the resolver can tell a known system entry, a user-dictionary entry and
// an unknown-word pseudo entry apart even when their raw ids collide.
func (t Token) Details() ([]string, error) {
	if t.resolver == nil {
		return nil, nil
	}
	return t.resolver.Details(t.WordID, t.EdgeType)
}

// Tokenizer wires a loaded dictionary.Dictionary and an optional user
// dictionary into the lattice/viterbi core (spec.md §4.6's public
// contract). A Tokenizer's Dictionary may be shared read-only across
// goroutines; Tokenize itself is safe for concurrent use because each
// call builds its own lattice.Lattice.
type Tokenizer struct {
	dict     *dictionary.Dictionary
	userDict *dictionary.PrefixDictionary
	cfg      Config
	cache    *lru.Cache[detailsKey, []string]
}

// detailsKey distinguishes a known system entry from a user-dictionary or
// unknown-word entry sharing the same raw WordID.ID — WordID.IsSystem
// alone can't tell a user entry from an unknown one, since both carry
// IsSystem == false.
type detailsKey struct {
	id       dictionary.WordID
	edgeType lattice.EdgeType
}

// New builds a Tokenizer over dict, optionally consulting userDict (nil
// disables user-dictionary lookups) ahead of the system dictionary at
// every lattice offset.
func New(dict *dictionary.Dictionary, userDict *dictionary.PrefixDictionary, cfg Config) (*Tokenizer, error) {
	if len(cfg.SentenceDelimiters) == 0 {
		cfg.SentenceDelimiters = DefaultConfig().SentenceDelimiters
	}
	t := &Tokenizer{dict: dict, userDict: userDict, cfg: cfg}
	if cfg.DetailsCacheSize > 0 {
		c, err := lru.New[detailsKey, []string](cfg.DetailsCacheSize)
		if err != nil {
			return nil, kerr.New(kerr.Args, err).WithContext("constructing tokenizer details cache")
		}
		t.cache = c
	}
	return t, nil
}

// Details implements detailsResolver, consulting the cache before
// dispatching on edgeType to the table the id actually names: the
// unknown dictionary for synthesized words, the user dictionary for
// entries loaded from it, and the system prefix table otherwise.
func (t *Tokenizer) Details(id dictionary.WordID, edgeType lattice.EdgeType) ([]string, error) {
	if id.IsUnknown() {
		return nil, nil
	}

	key := detailsKey{id: id, edgeType: edgeType}
	if t.cache != nil {
		if v, ok := t.cache.Get(key); ok {
			return v, nil
		}
	}

	var details []string
	var err error
	switch {
	case edgeType == lattice.Unknown:
		details, err = t.dict.Unknown.Details(id.ID)
	case edgeType == lattice.User:
		if t.userDict == nil {
			return nil, kerr.Newf(kerr.Content, "token references user dictionary word id %d but no user dictionary is loaded", id.ID)
		}
		details, err = t.userDict.Details(id.ID)
	default:
		details, err = t.dict.Prefix.Details(id.ID)
	}
	if err != nil {
		return nil, err
	}
	if t.cache != nil {
		t.cache.Add(key, details)
	}
	return details, nil
}

// Tokenize implements spec.md §4.6's tokenize(text) -> Vec<Token>: split
// into sentences, run the forward DP and backward trace over each, and
// reassemble byte offsets relative to the original text.
func (t *Tokenizer) Tokenize(text string) ([]Token, error) {
	var tokens []Token
	offset := uint32(0)

	for _, sentence := range splitSentences(text, t.cfg.SentenceDelimiters) {
		if sentence == "" {
			continue
		}

		lat := lattice.SetText(t.dict, t.userDict, sentence, t.cfg.Mode)
		viterbi.CalculatePathCosts(lat, t.dict.Connection, t.cfg.Mode)
		positions, err := viterbi.TokensOffset(lat)
		if err != nil {
			return nil, err
		}

		for _, p := range positions {
			tokens = append(tokens, Token{
				Surface:        sentence[p.StartIndex:p.StopIndex],
				ByteStart:      offset + p.StartIndex,
				ByteEnd:        offset + p.StopIndex,
				Position:       len(tokens),
				PositionLength: 1,
				WordID:         p.WordID,
				EdgeType:       p.EdgeType,
				resolver:       t,
			})
		}

		offset += uint32(len(sentence))
	}

	return tokens, nil
}

// splitSentences slices text at every delimiter rune, keeping the
// delimiter attached to the sentence it terminates. An empty delimiter
// set treats the whole input as one sentence.
func splitSentences(text string, delimiters []rune) []string {
	if len(delimiters) == 0 {
		return []string{text}
	}
	delimSet := make(map[rune]bool, len(delimiters))
	for _, r := range delimiters {
		delimSet[r] = true
	}

	var sentences []string
	start := 0
	for i, r := range text {
		if delimSet[r] {
			end := i + utf8.RuneLen(r)
			sentences = append(sentences, text[start:end])
			start = end
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// DocumentTokens pairs one TokenizeList input document's original index
// with its result, so ordering survives concurrent dispatch.
type DocumentTokens struct {
	Index  int
	Tokens []Token
	Err    error
}

// TokenizeList tokenizes many independent documents concurrently,
// mirroring the teacher's ParseList/InflectList chunked worker-pool
// dispatch (analyzer.go's ParseList over runtime.NumCPU() goroutines).
// Each worker calls Tokenize directly, so each document gets its own
// lattice.Lattice — a Lattice is not safe for concurrent SetText calls
// (spec.md §5). Unlike the teacher's word-sorted result, the final pass
// here sorts by original document index rather than by content, since
// batch order must round-trip back to the caller's document order.
func (t *Tokenizer) TokenizeList(documents []string) []DocumentTokens {
	const chunkSize = 1000
	numWorkers := runtime.NumCPU()

	type docChunk struct {
		start int
		docs  []string
	}

	chunksCh := make(chan docChunk, numWorkers)
	resultCh := make(chan []DocumentTokens, numWorkers)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for c := range chunksCh {
				out := make([]DocumentTokens, 0, len(c.docs))
				for j, doc := range c.docs {
					toks, err := t.Tokenize(doc)
					out = append(out, DocumentTokens{Index: c.start + j, Tokens: toks, Err: err})
				}
				resultCh <- out
			}
		}()
	}

	go func() {
		for i := 0; i < len(documents); i += chunkSize {
			end := i + chunkSize
			if end > len(documents) {
				end = len(documents)
			}
			chunksCh <- docChunk{start: i, docs: documents[i:end]}
		}
		close(chunksCh)
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	all := make([]DocumentTokens, 0, len(documents))
	for result := range resultCh {
		all = append(all, result...)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })
	return all
}

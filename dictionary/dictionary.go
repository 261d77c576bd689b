package dictionary

// Dictionary bundles the five substrate pieces a lattice builder needs
// (spec.md §3's "Public contract"): prefix search, character categories,
// connection costs, unknown-word entries, and detail retrieval, all backed
// by the same Data lifetime.
type Dictionary struct {
	Metadata   Metadata
	Prefix     *PrefixDictionary
	CharDef    *CharacterDefinition
	Connection *ConnectionCostMatrix
	Unknown    *UnknownDictionary

	backing []Data // kept alive for the lifetime of the Dictionary
}

// Details resolves the feature columns for a WordID against this
// dictionary's own system prefix table. It has no notion of unknown-word
// pseudo entries or user-dictionary entries — those live in d.Unknown and
// in a caller-supplied user PrefixDictionary respectively, neither of
// which this Dictionary owns. Callers that need to resolve a WordID
// produced by lattice construction must dispatch on the edge's origin
// first (tokenizer.Tokenizer.Details does this); calling Details directly
// is only correct for ids known to name a system dictionary entry.
func (d *Dictionary) Details(id WordID) ([]string, error) {
	if id.IsUnknown() {
		return nil, nil
	}
	return d.Prefix.Details(id.ID)
}

// Close releases any memory-mapped backings. Safe to call on a Dictionary
// built entirely from owned/static data (a no-op in that case).
func (d *Dictionary) Close() error {
	var firstErr error
	for _, b := range d.backing {
		if c, ok := b.(Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

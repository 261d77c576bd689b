package builder

import (
	"strings"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/kotoba-nlp/kotoba/kerr"
)

// buildUnknownDictionary parses unk.def into an UnknownDictionary (spec.md
// §4.2's "Unknown-dictionary parsing"): one CSV-shaped row per category
// entry (category_name,left_id,right_id,cost,feature...), grouped by
// category name into charDef's id space.
func buildUnknownDictionary(path string, charDef *dictionary.CharacterDefinition, o *Options) (*dictionary.UnknownDictionary, error) {
	rows, err := readCSVRows(path, o.Encoding, o.FlexibleCSV)
	if err != nil {
		return nil, err
	}

	nameToID := map[string]dictionary.CategoryID{}
	for i, name := range charDef.CategoryNames {
		nameToID[name] = dictionary.CategoryID(i)
	}

	var entries []dictionary.WordEntry
	refs := map[dictionary.CategoryID][]int{}
	var wordsIdx []uint32
	var words []byte

	for _, rec := range rows {
		if len(rec) < 4 {
			if o.SkipInvalidCostOrID {
				o.log().Warn("skipping unk.def row with too few columns", "columns", len(rec))
				continue
			}
			return nil, kerr.Newf(kerr.Content, "unk.def row has %d columns, want at least 4", len(rec))
		}
		catID, ok := nameToID[rec[0]]
		if !ok {
			return nil, kerr.Newf(kerr.Content, "unk.def references undeclared category %q", rec[0])
		}
		leftID, rightID, cost, errParse := parseU16U16I16(rec[1], rec[2], rec[3])
		if errParse != nil {
			if o.SkipInvalidCostOrID {
				o.log().Warn("skipping unk.def row with malformed cost/id columns", "category", rec[0])
				continue
			}
			return nil, kerr.Newf(kerr.Content, "unk.def row for category %q has malformed left_id/right_id/cost", rec[0])
		}

		idx := len(entries)
		entries = append(entries, dictionary.WordEntry{
			WordID:   dictionary.WordID{ID: uint32(idx), IsSystem: false},
			WordCost: cost,
			LeftID:   leftID,
			RightID:  rightID,
		})
		refs[catID] = append(refs[catID], idx)

		wordsIdx = append(wordsIdx, uint32(len(words)))
		words = append(words, []byte(strings.Join(rec[4:], "\x00"))...)
	}

	return dictionary.NewUnknownDictionary(entries, refs, wordsIdx, words), nil
}

package builder

import (
	"encoding/binary"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/kotoba-nlp/kotoba/kerr"
)

// lexiconResult is the built prefix-dictionary substrate plus counters for
// build logging.
type lexiconResult struct {
	da           *dictionary.DoubleArray
	vals         []byte
	wordsIdx     []uint32
	words        []byte
	surfaceCount int
	wordCount    int
}

type lexiconRow struct {
	surface string
	leftID  uint16
	rightID uint16
	cost    int16
	details []string
}

// normalize applies the reference's fixed character substitutions
// (spec.md §4.2 step 4): full-width horizontal bar and wave dash variants
// collapse onto their canonical Unicode forms.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "―", "—")
	s = strings.ReplaceAll(s, "～", "〜")
	return s
}

// buildLexicon implements spec.md §4.2's lexicon-processing algorithm: read
// every *.csv in inputDir, validate/parse the fixed columns, sort by
// surface, assign sequential word ids, and build the double array plus the
// vals/words/wordsidx tables.
func buildLexicon(inputDir string, o *Options) (*lexiconResult, error) {
	paths, err := filepath.Glob(filepath.Join(inputDir, "*.csv"))
	if err != nil {
		return nil, kerr.New(kerr.IO, err).WithContext("globbing lexicon CSV files")
	}
	sort.Strings(paths)

	var rows []lexiconRow
	for _, path := range paths {
		records, err := readCSVRows(path, o.Encoding, o.FlexibleCSV)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if len(rec) < 4 {
				if o.SkipInvalidCostOrID {
					o.log().Warn("skipping lexicon row with too few columns", "file", path, "columns", len(rec))
					continue
				}
				return nil, kerr.Newf(kerr.Content, "lexicon row in %s has %d columns, want at least 4", path, len(rec))
			}
			leftID, rightID, cost, errParse := parseU16U16I16(rec[1], rec[2], rec[3])
			if errParse != nil {
				if o.SkipInvalidCostOrID {
					o.log().Warn("skipping lexicon row with malformed cost/id columns", "file", path, "surface", rec[0])
					continue
				}
				return nil, kerr.Newf(kerr.Content, "lexicon row for surface %q in %s has malformed left_id/right_id/cost", rec[0], path)
			}
			surface := rec[0]
			if o.NormalizeDetails {
				surface = normalize(surface)
			}
			details := append([]string(nil), rec[4:]...)
			rows = append(rows, lexiconRow{
				surface: surface,
				leftID:  leftID,
				rightID: rightID,
				cost:    cost,
				details: details,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].surface < rows[j].surface })

	vals := make([]byte, 0, len(rows)*dictionary.SerializedWordEntryLen)
	wordsIdx := make([]uint32, len(rows))
	var words []byte

	for i, r := range rows {
		entry := dictionary.WordEntry{
			WordID:   dictionary.WordID{ID: uint32(i), IsSystem: true},
			WordCost: r.cost,
			LeftID:   r.leftID,
			RightID:  r.rightID,
		}
		vals = append(vals, entry.Serialize()...)

		detail := []byte(strings.Join(r.details, "\x00"))
		wordsIdx[i] = uint32(len(words))
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(detail)))
		words = append(words, lenBuf[:]...)
		words = append(words, detail...)
	}

	var keys [][]byte
	var values []uint32
	surfaceCount := 0
	for i := 0; i < len(rows); {
		j := i
		for j < len(rows) && rows[j].surface == rows[i].surface {
			j++
		}
		value, err := dictionary.PackPrefixValue(uint32(i), j-i)
		if err != nil {
			return nil, kerr.New(kerr.Content, err).WithContext("surface " + rows[i].surface)
		}
		keys = append(keys, []byte(rows[i].surface))
		values = append(values, value)
		surfaceCount++
		i = j
	}

	da, err := dictionary.BuildDoubleArray(keys, values)
	if err != nil {
		return nil, err
	}

	return &lexiconResult{
		da:           da,
		vals:         vals,
		wordsIdx:     wordsIdx,
		words:        words,
		surfaceCount: surfaceCount,
		wordCount:    len(rows),
	}, nil
}

package builder

import (
	"encoding/binary"
	"os"
	"sort"
	"strings"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/kotoba-nlp/kotoba/kerr"
)

// AdapterKind selects how a user-dictionary CSV row maps onto a WordEntry
// plus detail columns (spec.md §9 supplement, replacing the reference's
// `Option<Box<dyn Fn(&[String]) -> LinderaResult<Vec<String>>>>` row
// adapter with a closed, two-member strategy — Go has no idiomatic
// equivalent of stashing an arbitrary closure in a builder options struct
// that must also be cheap to default and debug-print).
type AdapterKind int

const (
	// AdapterSimple reads 3-column rows: surface,part_of_speech,reading.
	// WordCost/LeftID/RightID come from Options.SimpleWordCost/SimpleContextID.
	AdapterSimple AdapterKind = iota
	// AdapterDetailed reads full rows shaped like the system lexicon:
	// surface,left_id,right_id,cost,detail...
	AdapterDetailed
)

// UserDictionaryOptions configures BuildUserDictionary.
type UserDictionaryOptions struct {
	Adapter  AdapterKind
	Encoding string
	Flexible bool
	// SimpleWordCost/SimpleContextID are used by AdapterSimple.
	SimpleWordCost  int16
	SimpleContextID uint16
	// Schema positions "pos", "reading" and "base_form" columns in the
	// synthesized detail row AdapterSimple produces; fields not named in
	// Schema are left as "*".
	Schema dictionary.Schema
}

// BuildUserDictionary compiles a single user-dictionary CSV into a
// PrefixDictionary with IsSystem=false, matching spec.md §4.2's "Given a
// user-dictionary CSV, produce a single serialized UserDictionary file".
func BuildUserDictionary(csvPath string, o UserDictionaryOptions) (*dictionary.PrefixDictionary, error) {
	rows, err := readCSVRows(csvPath, o.Encoding, o.Flexible)
	if err != nil {
		return nil, err
	}

	type row struct {
		surface string
		leftID  uint16
		rightID uint16
		cost    int16
		details []string
	}
	var parsed []row

	switch o.Adapter {
	case AdapterSimple:
		for _, rec := range rows {
			if len(rec) < 3 {
				return nil, kerr.Newf(kerr.Content, "simple user dictionary row %v: want at least 3 columns", rec)
			}
			parsed = append(parsed, row{
				surface: rec[0],
				leftID:  o.SimpleContextID,
				rightID: o.SimpleContextID,
				cost:    o.SimpleWordCost,
				details: o.expandSimpleDetails(rec[0], rec[1], rec[2]),
			})
		}

	case AdapterDetailed:
		for _, rec := range rows {
			if len(rec) < 4 {
				return nil, kerr.Newf(kerr.Content, "detailed user dictionary row %v: want at least 4 columns", rec)
			}
			leftID, rightID, cost, err := parseU16U16I16(rec[1], rec[2], rec[3])
			if err != nil {
				return nil, kerr.New(kerr.Content, err).WithContext("parsing user dictionary row for " + rec[0])
			}
			parsed = append(parsed, row{
				surface: rec[0],
				leftID:  leftID,
				rightID: rightID,
				cost:    cost,
				details: append([]string(nil), rec[4:]...),
			})
		}

	default:
		return nil, kerr.Newf(kerr.Args, "unknown user dictionary adapter kind %d", o.Adapter)
	}

	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].surface < parsed[j].surface })

	vals := make([]byte, 0, len(parsed)*dictionary.SerializedWordEntryLen)
	wordsIdx := make([]uint32, len(parsed))
	var words []byte
	for i, r := range parsed {
		entry := dictionary.WordEntry{
			WordID:   dictionary.WordID{ID: uint32(i), IsSystem: false},
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
	for i := 0; i < len(parsed); {
		j := i
		for j < len(parsed) && parsed[j].surface == parsed[i].surface {
			j++
		}
		value, err := dictionary.PackPrefixValue(uint32(i), j-i)
		if err != nil {
			return nil, kerr.New(kerr.Content, err).WithContext("surface " + parsed[i].surface)
		}
		keys = append(keys, []byte(parsed[i].surface))
		values = append(values, value)
		i = j
	}

	da, err := dictionary.BuildDoubleArray(keys, values)
	if err != nil {
		return nil, err
	}

	return dictionary.NewPrefixDictionary(da, vals, wordsIdx, words, false), nil
}

// WriteUserDictionaryFile compiles csvPath via BuildUserDictionary and writes
// the resulting single-file user dictionary to outPath, wrapped in the same
// compression envelope the system dictionary's blobs use.
func WriteUserDictionaryFile(csvPath, outPath string, o UserDictionaryOptions, algo dictionary.CompressAlgorithm) error {
	pd, err := BuildUserDictionary(csvPath, o)
	if err != nil {
		return err
	}
	blob, err := dictionary.EncodeBlob(algo, dictionary.EncodeUserDictionaryBlob(pd))
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, blob, 0o644); err != nil {
		return kerr.New(kerr.IO, err).WithContext("writing user dictionary file")
	}
	return nil
}

// expandSimpleDetails synthesizes a full detail row from the 3-column
// simple form, placing part_of_speech/reading/base_form into the positions
// o.Schema names and "*" everywhere else — the simple adapter's contract
// with the system dictionary's schema (spec.md §9 supplement).
func (o UserDictionaryOptions) expandSimpleDetails(surface, pos, reading string) []string {
	n := len(o.Schema.Fields) - 4 // schema includes the 4 mandatory columns
	if n <= 0 {
		n = 6
	}
	out := make([]string, n)
	for i := range out {
		out[i] = "*"
	}
	set := func(name, value string) {
		idx, ok := o.Schema.FieldIndex(name)
		if !ok {
			return
		}
		idx -= 4
		if idx >= 0 && idx < len(out) {
			out[idx] = value
		}
	}
	set("pos", pos)
	set("reading", reading)
	set("pronunciation", reading)
	set("base_form", surface)
	return out
}

package builder

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/kotoba-nlp/kotoba/kerr"
)

type charRange struct {
	start, end uint32 // inclusive
	categories []dictionary.CategoryID
}

// buildCharacterDefinition parses char.def into a CharacterDefinition
// (spec.md §4.2's "Character-definition parsing"), grounded on the
// reference's CharacterDefinitionsBuilder: two line shapes, a category
// declaration (`NAME invoke group length`) and a range assignment
// (`0xHEX[..0xHEX] CAT...`).
func buildCharacterDefinition(path string) (*dictionary.CharacterDefinition, error) {
	lines, err := readTextLines(path, "")
	if err != nil {
		return nil, err
	}

	names := []string{}
	defs := []dictionary.CategoryData{}
	nameToID := map[string]dictionary.CategoryID{}

	categoryID := func(name string) dictionary.CategoryID {
		if id, ok := nameToID[name]; ok {
			return id
		}
		id := dictionary.CategoryID(len(names))
		names = append(names, name)
		defs = append(defs, dictionary.CategoryData{})
		nameToID[name] = id
		return id
	}

	var ranges []charRange

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if strings.HasPrefix(fields[0], "0x") || strings.HasPrefix(fields[0], "0X") {
			start, end, err := parseCharRangeField(fields[0])
			if err != nil {
				return nil, kerr.New(kerr.Parse, err).WithContext("parsing char.def range in " + path)
			}
			if len(fields) < 2 {
				return nil, kerr.Newf(kerr.Content, "char.def range line %q names no category", line)
			}
			cats := make([]dictionary.CategoryID, 0, len(fields)-1)
			for _, name := range fields[1:] {
				cats = append(cats, categoryID(name))
			}
			ranges = append(ranges, charRange{start: start, end: end, categories: cats})
			continue
		}

		if len(fields) != 4 {
			return nil, kerr.Newf(kerr.Content, "char.def category line %q: want 4 fields, got %d", line, len(fields))
		}
		id := categoryID(fields[0])
		invoke, err1 := strconv.ParseInt(fields[1], 10, 64)
		group, err2 := strconv.ParseInt(fields[2], 10, 64)
		length, err3 := strconv.ParseUint(fields[3], 10, 32)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, kerr.Newf(kerr.Content, "char.def category line %q has non-numeric invoke/group/length", line)
		}
		defs[id] = dictionary.CategoryData{
			Invoke: invoke != 0,
			Group:  group != 0,
			Length: uint32(length),
		}
	}

	defaultID := categoryID(dictionary.DefaultCategoryName)

	boundarySet := map[uint32]struct{}{0: {}}
	for _, r := range ranges {
		boundarySet[r.start] = struct{}{}
		if r.end+1 != 0 {
			boundarySet[r.end+1] = struct{}{}
		}
	}
	boundaries := make([]uint32, 0, len(boundarySet))
	for b := range boundarySet {
		boundaries = append(boundaries, b)
	}

	mapping := dictionary.NewLookupTableFromFunc(boundaries, func(cp uint32) []dictionary.CategoryID {
		var out []dictionary.CategoryID
		seen := map[dictionary.CategoryID]bool{}
		for _, r := range ranges {
			if cp < r.start || cp > r.end {
				continue
			}
			for _, c := range r.categories {
				if !seen[c] {
					seen[c] = true
					out = append(out, c)
				}
			}
		}
		if len(out) == 0 {
			out = []dictionary.CategoryID{defaultID}
		}
		return out
	})

	return &dictionary.CharacterDefinition{
		CategoryDefinitions: defs,
		CategoryNames:       names,
		Mapping:             mapping,
	}, nil
}

// parseCharRangeField parses "0xHEX" or "0xHEX..0xHEX" into an inclusive
// [start,end] code-point range, treating each hex value as a UCS-2 code
// unit round-tripped through UTF-16LE the way the reference does (spec.md
// §4.2): for any value outside the surrogate range this is the identity
// mapping onto the Unicode scalar.
func parseCharRangeField(field string) (start, end uint32, err error) {
	parts := strings.SplitN(field, "..", 2)
	start, err = parseHexCodepoint(parts[0])
	if err != nil {
		return 0, 0, err
	}
	if len(parts) == 1 {
		return start, start, nil
	}
	end, err = parseHexCodepoint(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseHexCodepoint(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	units := []uint16{uint16(v)}
	runes := utf16.Decode(units)
	if len(runes) != 1 {
		return 0, kerr.Newf(kerr.Parse, "char.def code point 0x%s did not round-trip through UTF-16", s)
	}
	return uint32(runes[0]), nil
}

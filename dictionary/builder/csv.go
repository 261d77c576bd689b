package builder

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// decodeSource converts a MeCab source file's raw bytes to UTF-8 according
// to the declared encoding (spec.md §4.2 step 1): UTF-8 is the default,
// UTF-16 (with BOM) and EUC-JP are detected/declared explicitly.
func decodeSource(raw []byte, encodingName string) ([]byte, error) {
	switch encodingName {
	case "", "UTF-8", "UTF8":
		return raw, nil

	case "UTF-16", "UTF16":
		enc := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
		if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
			enc = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
		}
		out, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err != nil {
			return nil, kerr.New(kerr.Decode, err).WithContext("decoding UTF-16 source file")
		}
		return out, nil

	case "EUC-JP", "EUCJP":
		out, _, err := transform.Bytes(japanese.EUCJP.NewDecoder(), raw)
		if err != nil {
			return nil, kerr.New(kerr.Decode, err).WithContext("decoding EUC-JP source file")
		}
		return out, nil

	case "Shift_JIS", "SHIFT-JIS", "SJIS":
		out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
		if err != nil {
			return nil, kerr.New(kerr.Decode, err).WithContext("decoding Shift_JIS source file")
		}
		return out, nil

	default:
		return nil, kerr.Newf(kerr.Content, "unsupported source encoding %q", encodingName)
	}
}

// readCSVRows reads and decodes a lexicon CSV, permitting ragged rows when
// flexible is set (spec.md §4.2 step 2).
func readCSVRows(path, encodingName string, flexible bool) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, kerr.New(kerr.IO, err).WithContext("reading " + path)
	}
	decoded, err := decodeSource(raw, encodingName)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(bytes.NewReader(decoded))
	r.ReuseRecord = false
	if flexible {
		r.FieldsPerRecord = -1
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, kerr.New(kerr.Parse, err).WithContext("parsing CSV rows in " + path)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// readTextLines reads and decodes a def-format file (char.def, unk.def,
// matrix.def: whitespace-separated fields, '#' comments, blank lines
// skipped) into trimmed, non-empty, non-comment lines.
func readTextLines(path, encodingName string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, kerr.New(kerr.IO, err).WithContext("reading " + path)
	}
	decoded, err := decodeSource(raw, encodingName)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range bytes.Split(decoded, []byte("\n")) {
		s := string(bytes.TrimRight(line, "\r\n \t"))
		s = trimLeftSpace(s)
		if s == "" || s[0] == '#' {
			continue
		}
		lines = append(lines, s)
	}
	return lines, nil
}

func trimLeftSpace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

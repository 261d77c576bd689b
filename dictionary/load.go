package dictionary

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// File names written by dictionary/builder and read back here (spec.md §6
// table).
const (
	FileMetadata   = "metadata.json"
	FileDA         = "dict.da"
	FileVals       = "dict.vals"
	FileWordsIdx   = "dict.wordsidx"
	FileWords      = "dict.words"
	FileCharDef    = "char_def.bin"
	FileMatrix     = "matrix.mtx"
	FileUnknown    = "unk.bin"
)

// LoadDirectory reads a compiled dictionary directory built by
// dictionary/builder, memory-mapping the large blobs (dict.da/dict.vals/
// dict.words, the bulk of a real dictionary) and reading the small ones
// (char_def.bin, matrix.mtx, unk.bin, metadata.json) directly into owned
// memory. Every file other than metadata.json opens with the one-byte
// compression tag DecodeBlob expects.
func LoadDirectory(dir string) (*Dictionary, error) {
	metaBytes, err := os.ReadFile(filepath.Join(dir, FileMetadata))
	if err != nil {
		return nil, kerr.New(kerr.IO, err).WithContext("reading metadata.json")
	}
	meta, err := DecodeMetadata(metaBytes)
	if err != nil {
		return nil, err
	}

	var backing []Data

	daData, daRaw, err := mapAndDecode(filepath.Join(dir, FileDA))
	if err != nil {
		return nil, err
	}
	backing = append(backing, daData)

	valsData, valsRaw, err := mapAndDecode(filepath.Join(dir, FileVals))
	if err != nil {
		return nil, err
	}
	backing = append(backing, valsData)

	wordsIdxRaw, err := readBlobFile(filepath.Join(dir, FileWordsIdx))
	if err != nil {
		return nil, err
	}

	wordsData, wordsRaw, err := mapAndDecode(filepath.Join(dir, FileWords))
	if err != nil {
		return nil, err
	}
	backing = append(backing, wordsData)

	prefix, err := LoadPrefixDictionary(daRaw, valsRaw, wordsIdxRaw, wordsRaw, true)
	if err != nil {
		return nil, err
	}

	charDefRaw, err := readBlobFile(filepath.Join(dir, FileCharDef))
	if err != nil {
		return nil, err
	}
	charDef, err := LoadCharacterDefinition(charDefRaw)
	if err != nil {
		return nil, err
	}

	matrixRaw, err := readBlobFile(filepath.Join(dir, FileMatrix))
	if err != nil {
		return nil, err
	}
	matrix, err := LoadConnectionCostMatrix(matrixRaw)
	if err != nil {
		return nil, err
	}

	unkRaw, err := readBlobFile(filepath.Join(dir, FileUnknown))
	if err != nil {
		return nil, err
	}
	unk, err := LoadUnknownDictionary(unkRaw)
	if err != nil {
		return nil, err
	}

	return &Dictionary{
		Metadata:   meta,
		Prefix:     prefix,
		CharDef:    charDef,
		Connection: matrix,
		Unknown:    unk,
		backing:    backing,
	}, nil
}

func mapAndDecode(path string) (Data, []byte, error) {
	data, err := MapFile(path)
	if err != nil {
		return nil, nil, err
	}
	raw, err := DecodeBlob(data.Bytes())
	if err != nil {
		return nil, nil, err
	}
	return data, raw, nil
}

func readBlobFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, kerr.New(kerr.IO, err).WithContext("reading " + filepath.Base(path))
	}
	return DecodeBlob(raw)
}

// LoadUserDictionary loads a single-file user dictionary built by
// builder.BuildUserDictionary: one self-describing blob containing a
// PrefixDictionary's four components concatenated, tagged IsSystem=false
// (spec.md §4.2, §6).
func LoadUserDictionary(path string) (*PrefixDictionary, error) {
	raw, err := readBlobFile(path)
	if err != nil {
		return nil, err
	}
	daRaw, valsRaw, wordsIdxRaw, wordsRaw, err := splitUserDictionaryBlob(raw)
	if err != nil {
		return nil, err
	}
	return LoadPrefixDictionary(daRaw, valsRaw, wordsIdxRaw, wordsRaw, false)
}

// splitUserDictionaryBlob decodes the length-prefixed concatenation written
// by EncodeUserDictionaryBlob.
func splitUserDictionaryBlob(data []byte) (da, vals, wordsIdx, words []byte, err error) {
	r := &byteReader{data: data}
	read := func() ([]byte, error) {
		n, err := r.u32()
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading user dictionary section length")
		}
		section, err := r.bytes(int(n))
		if err != nil {
			return nil, kerr.New(kerr.Deserialize, err).WithContext("reading user dictionary section")
		}
		return section, nil
	}
	if da, err = read(); err != nil {
		return nil, nil, nil, nil, err
	}
	if vals, err = read(); err != nil {
		return nil, nil, nil, nil, err
	}
	if wordsIdx, err = read(); err != nil {
		return nil, nil, nil, nil, err
	}
	if words, err = read(); err != nil {
		return nil, nil, nil, nil, err
	}
	return da, vals, wordsIdx, words, nil
}

// EncodeUserDictionaryBlob concatenates a PrefixDictionary's four
// components into the single self-describing blob a user dictionary file
// holds (spec.md §4.2's "single serialized UserDictionary file").
func EncodeUserDictionaryBlob(p *PrefixDictionary) []byte {
	var buf []byte
	put := func(section []byte) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(len(section)))
		buf = append(buf, b[:]...)
		buf = append(buf, section...)
	}
	put(p.EncodeDA())
	put(p.EncodeVals())
	put(p.EncodeWordsIdx())
	put(p.EncodeWords())
	return buf
}

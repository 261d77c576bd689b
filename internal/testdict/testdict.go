// Package testdict builds small synthetic dictionaries for package tests
// across lattice, viterbi and tokenizer, since no real IPADIC binary data
// ships with this repo (spec.md §8).
package testdict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/kotoba-nlp/kotoba/dictionary/builder"
)

const charDef = `DEFAULT 1 0 0
HIRAGANA 0 1 0
SYMBOL 1 0 0

0x3082..0x3082 HIRAGANA
0x0020..0x0020 SYMBOL
`

const lexiconCSV = `もも,0,0,900,名詞,一般,*,*,*,*,もも,モモ,モモ
も,0,0,50,助詞,係助詞,*,*,*,*,も,モ,モ
`

const unkDef = `DEFAULT,0,0,3000,記号,一般,*,*,*,*,*,*,*
HIRAGANA,0,0,800,名詞,一般,*,*,*,*,*,*,*
SYMBOL,0,0,500,記号,一般,*,*,*,*,*,*,*
`

const matrixDef = `1 1
0 0 0
`

// Small builds the HIRAGANA/SYMBOL toy vocabulary used throughout the core
// packages' tests: the two words "も" (cost 50) and "もも" (cost 900) share
// a connection cost of 0 everywhere, so a two-character "もも" run is
// genuinely ambiguous between one two-character match and two
// one-character matches — useful for exercising both 1-best and N-best
// search over a real, if tiny, lattice.
func Small(t testing.TB) *dictionary.Dictionary {
	t.Helper()

	inputDir := t.TempDir()
	outputDir := t.TempDir()

	writeFile(t, filepath.Join(inputDir, "char.def"), charDef)
	writeFile(t, filepath.Join(inputDir, "lex.csv"), lexiconCSV)
	writeFile(t, filepath.Join(inputDir, "unk.def"), unkDef)
	writeFile(t, filepath.Join(inputDir, "matrix.def"), matrixDef)

	opts := builder.DefaultOptions()
	opts.Name = "testdict"
	opts.CompressAlgorithm = dictionary.CompressIdentity
	if err := opts.Build(inputDir, outputDir); err != nil {
		t.Fatalf("building test dictionary: %v", err)
	}

	dict, err := dictionary.LoadDirectory(outputDir)
	if err != nil {
		t.Fatalf("loading test dictionary: %v", err)
	}
	t.Cleanup(func() { _ = dict.Close() })
	return dict
}

func writeFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// Command kotoba is a thin demonstration CLI over dictionary/builder and
// tokenizer: build a dictionary directory from MeCab-format sources, then
// tokenize text against it. It is deliberately minimal (spec.md §6's
// non-goal on config-file loading frameworks) — no subcommand does more
// than call straight into the library packages.
package main

import (
	"fmt"
	"os"

	"github.com/kotoba-nlp/kotoba/cmd/kotoba/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/kotoba-nlp/kotoba/dictionary/builder"
)

func newBuildCmd() *cobra.Command {
	var (
		name             string
		encoding         string
		compress         string
		flexibleCSV      bool
		skipInvalid      bool
		normalizeDetails bool
	)

	cmd := &cobra.Command{
		Use:   "build <input-dir> <output-dir>",
		Short: "compile a MeCab-format source tree (*.csv, char.def, unk.def, matrix.def) into a binary dictionary directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := builder.DefaultOptions()
			if name != "" {
				opts.Name = name
			}
			if encoding != "" {
				opts.Encoding = encoding
			}
			algo, err := parseCompressAlgorithm(compress)
			if err != nil {
				return err
			}
			opts.CompressAlgorithm = algo
			opts.FlexibleCSV = flexibleCSV
			opts.SkipInvalidCostOrID = skipInvalid
			opts.NormalizeDetails = normalizeDetails

			outputDir := args[1]
			// KOTOBA_CACHE relocates relative output directories under a shared
			// cache root; dictionary/builder itself never reads the environment.
			if cacheDir := os.Getenv("KOTOBA_CACHE"); cacheDir != "" && !filepath.IsAbs(outputDir) {
				outputDir = filepath.Join(cacheDir, outputDir)
			}

			return opts.Build(args[0], outputDir)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "dictionary family name recorded in metadata.json")
	cmd.Flags().StringVar(&encoding, "encoding", "", "source file encoding: UTF-8, UTF-16, EUC-JP, or Shift_JIS")
	cmd.Flags().StringVar(&compress, "compress", "zstandard", "blob compression: identity, deflate, or zstandard")
	cmd.Flags().BoolVar(&flexibleCSV, "flexible-csv", false, "permit ragged lexicon rows")
	cmd.Flags().BoolVar(&skipInvalid, "skip-invalid-cost-or-id", false, "warn and drop rows with malformed cost/context-id columns instead of failing the build")
	cmd.Flags().BoolVar(&normalizeDetails, "normalize-details", false, "apply fixed surface-form character substitutions before indexing")

	return cmd
}

func parseCompressAlgorithm(s string) (dictionary.CompressAlgorithm, error) {
	switch s {
	case "identity":
		return dictionary.CompressIdentity, nil
	case "deflate":
		return dictionary.CompressDeflate, nil
	case "zstandard", "":
		return dictionary.CompressZstandard, nil
	default:
		return 0, fmt.Errorf("unknown --compress value %q: want identity, deflate, or zstandard", s)
	}
}

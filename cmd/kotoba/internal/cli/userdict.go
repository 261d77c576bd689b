package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/kotoba-nlp/kotoba/dictionary/builder"
)

func newBuildUserDictCmd() *cobra.Command {
	var (
		adapter         string
		encoding        string
		compress        string
		flexible        bool
		simpleWordCost  int16
		simpleContextID uint16
	)

	cmd := &cobra.Command{
		Use:   "build-user-dict <input.csv> <output-file>",
		Short: "compile a user-dictionary CSV into a single-file user dictionary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseAdapterKind(adapter)
			if err != nil {
				return err
			}
			algo, err := parseCompressAlgorithm(compress)
			if err != nil {
				return err
			}

			opts := builder.UserDictionaryOptions{
				Adapter:         kind,
				Encoding:        encoding,
				Flexible:        flexible,
				SimpleWordCost:  simpleWordCost,
				SimpleContextID: simpleContextID,
				Schema:          dictionary.DefaultIPADICSchema,
			}

			outPath := args[1]
			if cacheDir := os.Getenv("KOTOBA_CACHE"); cacheDir != "" && !filepath.IsAbs(outPath) {
				outPath = filepath.Join(cacheDir, outPath)
			}

			return builder.WriteUserDictionaryFile(args[0], outPath, opts, algo)
		},
	}

	cmd.Flags().StringVar(&adapter, "adapter", "simple", "row adapter: simple (surface,pos,reading) or detailed (surface,left_id,right_id,cost,detail...)")
	cmd.Flags().StringVar(&encoding, "encoding", "", "source file encoding: UTF-8, UTF-16, EUC-JP, or Shift_JIS")
	cmd.Flags().StringVar(&compress, "compress", "zstandard", "blob compression: identity, deflate, or zstandard")
	cmd.Flags().BoolVar(&flexible, "flexible-csv", false, "permit ragged rows")
	cmd.Flags().Int16Var(&simpleWordCost, "simple-word-cost", -10000, "fixed word cost applied by the simple adapter")
	cmd.Flags().Uint16Var(&simpleContextID, "simple-context-id", 0, "fixed left/right context id applied by the simple adapter")

	return cmd
}

func parseAdapterKind(s string) (builder.AdapterKind, error) {
	switch s {
	case "simple", "":
		return builder.AdapterSimple, nil
	case "detailed":
		return builder.AdapterDetailed, nil
	default:
		return 0, fmt.Errorf("unknown --adapter value %q: want simple or detailed", s)
	}
}

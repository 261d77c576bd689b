package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kotoba-nlp/kotoba/dictionary"
	"github.com/kotoba-nlp/kotoba/lattice"
	"github.com/kotoba-nlp/kotoba/tokenizer"
)

func newTokenizeCmd() *cobra.Command {
	var (
		dictDir      string
		userDictPath string
		format       string
		decompose    bool
	)

	cmd := &cobra.Command{
		Use:   "tokenize [file]",
		Short: "tokenize text (or stdin) against a compiled dictionary directory, one line per input line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dictDir == "" {
				return fmt.Errorf("--dict is required")
			}
			dict, err := dictionary.LoadDirectory(dictDir)
			if err != nil {
				return err
			}
			defer dict.Close()

			var userDict *dictionary.PrefixDictionary
			if userDictPath != "" {
				userDict, err = dictionary.LoadUserDictionary(userDictPath)
				if err != nil {
					return err
				}
			}

			cfg := tokenizer.DefaultConfig()
			if decompose {
				cfg.Mode.Decompose = true
				cfg.Mode.Penalty = lattice.DefaultPenalty()
			}
			tok, err := tokenizer.New(dict, userDict, cfg)
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			scanner := bufio.NewScanner(r)
			for scanner.Scan() {
				tokens, err := tok.Tokenize(scanner.Text())
				if err != nil {
					return err
				}
				if err := writeTokens(w, tokens, format); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&dictDir, "dict", "", "compiled dictionary directory (required)")
	cmd.Flags().StringVar(&userDictPath, "user-dict", "", "optional compiled user dictionary file")
	cmd.Flags().StringVar(&format, "format", "mecab", "output format: mecab, wakati, or json")
	cmd.Flags().BoolVar(&decompose, "decompose", false, "use Decompose mode: greedy unknown-word invocation plus length penalties")

	return cmd
}

func writeTokens(w io.Writer, tokens []tokenizer.Token, format string) error {
	switch format {
	case "wakati":
		surfaces := make([]string, len(tokens))
		for i, t := range tokens {
			surfaces[i] = t.Surface
		}
		_, err := fmt.Fprintln(w, strings.Join(surfaces, " "))
		return err

	case "json":
		type jsonToken struct {
			Surface string   `json:"surface"`
			Start   uint32   `json:"byte_start"`
			End     uint32   `json:"byte_end"`
			Details []string `json:"details,omitempty"`
		}
		out := make([]jsonToken, len(tokens))
		for i, t := range tokens {
			details, err := t.Details()
			if err != nil {
				return err
			}
			out[i] = jsonToken{Surface: t.Surface, Start: t.ByteStart, End: t.ByteEnd, Details: details}
		}
		return json.NewEncoder(w).Encode(out)

	case "mecab", "":
		for _, t := range tokens {
			details, err := t.Details()
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\n", t.Surface, strings.Join(details, ",")); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, "EOS")
		return err

	default:
		return fmt.Errorf("unknown output format %q: want mecab, wakati, or json", format)
	}
}

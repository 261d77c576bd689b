// Package cli assembles the kotoba command's cobra command tree.
package cli

import "github.com/spf13/cobra"

// Execute runs the kotoba command tree against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kotoba",
		Short:         "CJK morphological analyzer core: build dictionaries and tokenize text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCmd(), newBuildUserDictCmd(), newTokenizeCmd())
	return root
}

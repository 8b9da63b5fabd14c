package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd represents the base command when called without any subcommands
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prdgen",
		Short: "generate product requirement documents from a startup idea",
		Example: `prdgen generate --idea "A marketplace for renting tools from neighbors"
prdgen generate --idea "..." --format json --offline
prdgen idea`,
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd(), newIdeaCmd())
	root.CompletionOptions.HiddenDefaultCmd = true
	return root
}

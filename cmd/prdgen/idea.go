package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prdforge/prdforge/backend/go-services/internal/ideas"
)

func newIdeaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "idea",
		Short: "Print a random startup idea",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), ideas.Random())
		},
	}
}

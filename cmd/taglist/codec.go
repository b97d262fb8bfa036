package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taglist/internal/tags"
)

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <tag>...",
		Short: "Join tags into one tag list",
		Long:  `Join encodes every tag and prints them separated by ", ". Parsing the output gives the tags back.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), tags.Join(args))
			return err
		},
	}
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <tag>",
		Short: "Quote a single tag if it needs quoting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), tags.Encode(args[0]))
			return err
		},
	}
}

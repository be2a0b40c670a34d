package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <partial input>",
	Short: "Print completions for a partial input line",
	Long: `Print the completions for the last token of a partial input line, one
per line. Commands the local sender may not run are hidden.

  argtree suggest "tp "
  argtree suggest "give diamond --"`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.OutOrStdout())
		if err != nil {
			printError("startup failed", err)
			return err
		}
		defer a.close()

		for _, s := range a.manager.Suggest(context.Background(), a.sender, strings.Join(args, " ")) {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

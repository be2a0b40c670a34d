package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "argtree",
	Short: "argtree - typed command trees",
	Long: `argtree loads a command tree from a YAML or TOML definition file and
dispatches input lines through it.

Commands:
  run      - execute one or more input lines
  suggest  - print completions for a partial line
  shell    - interactive prompt with history and completion
  tree     - dump the command tree
  audit    - inspect stored outcomes`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $ARGTREE_CONFIG or ./configs/argtree.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	treeFormat string
	treeSyntax bool
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Dump the command tree",
	Long: `Dump the command tree in the host representation used by command
adapters, as YAML or JSON. With --syntax one usage line per executable
command is printed instead.`,
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringVarP(&treeFormat, "format", "f", "yaml", "output format (yaml, json)")
	treeCmd.Flags().BoolVar(&treeSyntax, "syntax", false, "print usage lines")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	a, err := newApp(out)
	if err != nil {
		printError("startup failed", err)
		return err
	}
	defer a.close()

	if treeSyntax {
		for _, n := range a.manager.Tree().Executables() {
			line := "/" + n.Syntax()
			for _, node := range n.Nodes() {
				if p := node.Permission(); p != "" {
					line += fmt.Sprintf("  (%s)", p)
				}
			}
			fmt.Fprintln(out, line)
		}
		return nil
	}

	host := a.manager.HostTree()
	switch treeFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(host)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(host)
	default:
		return fmt.Errorf("unknown format %q", treeFormat)
	}
}

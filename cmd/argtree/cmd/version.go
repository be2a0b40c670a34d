package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/argtree/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "argtree v%s\n", version.Application)
		fmt.Fprintf(out, "  Definitions: v%s\n", version.ComponentVersion("definitions"))
		fmt.Fprintf(out, "  Audit:       v%s\n", version.ComponentVersion("audit"))
		fmt.Fprintf(out, "  Git Commit:  %s\n", version.Commit)
		fmt.Fprintf(out, "  Build Date:  %s\n", version.BuildDate)
		fmt.Fprintf(out, "  Go Version:  %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/argtree/internal/render"
)

var runAll bool

var runCmd = &cobra.Command{
	Use:   "run <input...>",
	Short: "Execute an input line",
	Long: `Execute an input line through the command tree.

The arguments are joined into one line. With --all every argument is a
separate line and the lines run concurrently, bounded by commands.workers.

  argtree run tp 1 2 3
  argtree run --all "volume 10" "list 2"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runAll, "all", false, "treat every argument as a separate input line")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.OutOrStdout())
	if err != nil {
		printError("startup failed", err)
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inputs := []string{strings.Join(args, " ")}
	if runAll {
		inputs = args
	}

	outcomes, err := a.manager.Pipeline().ExecuteAll(ctx, a.sender, inputs)
	if err != nil {
		return err
	}

	r := render.New(cmd.ErrOrStderr(), render.Options{Prefix: "/"})
	failed := 0
	for _, o := range outcomes {
		if o == nil || o.Success() {
			continue
		}
		failed++
		fmt.Fprintln(cmd.ErrOrStderr(), r.Outcome(o))
		if verbose {
			fmt.Fprintln(cmd.ErrOrStderr(), "  "+o.Failure.AsError().Error())
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d commands failed", failed, len(outcomes))
	}
	return nil
}

package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/msto63/argtree/internal/render"
	"github.com/msto63/argtree/internal/shell"
)

var noWatch bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive prompt",
	Long: `Start an interactive prompt with line editing, history and tab
completion. With shell.watch enabled the definitions file is reloaded
whenever it changes.

Builtins: help, reload, ? <partial>, exit`,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the definitions file on change")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	a, err := newApp(out)
	if err != nil {
		printError("startup failed", err)
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sh := shell.New(shell.Options{
		Manager:  a.manager,
		Sender:   a.sender,
		Prompt:   a.cfg.Shell.Prompt,
		Out:      out,
		Renderer: render.New(out, render.Options{Prefix: "/"}),
		Logger:   a.logger,
		Reload:   a.loadTree,
	})
	defer sh.Close()

	if a.cfg.Shell.Watch && !noWatch {
		w, err := shell.NewWatcher(a.cfg.Commands.Definitions, 0, func() {
			_ = sh.Reload()
		}, a.logger)
		if err != nil {
			a.logger.WarnWithErr("Watching definitions failed", err)
		} else {
			go w.Run(ctx)
			defer w.Close()
		}
	}

	term := shell.OpenTerminal(a.cfg.Shell.HistoryFile, sh.Complete)
	defer term.Close()

	return sh.Run(ctx, term)
}

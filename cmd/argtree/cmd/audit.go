package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/argtree/foundation/cmdtree/executor"
	mdwerror "github.com/msto63/argtree/foundation/core/error"
	"github.com/msto63/argtree/internal/audit"
)

var (
	auditKind   string
	auditSender string
	auditSince  time.Duration
	auditLimit  int
	auditAge    time.Duration
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect stored outcomes",
	Long:  `Inspect and prune the outcomes recorded in the audit store (audit.enabled).`,
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent outcomes",
	RunE: withStore(func(cmd *cobra.Command, store audit.Store) error {
		if auditKind != "" {
			if _, ok := executor.ParseKind(auditKind); !ok && auditKind != "success" {
				return fmt.Errorf("unknown kind %q", auditKind)
			}
		}
		filter := audit.Filter{Kind: auditKind, Sender: auditSender, Limit: auditLimit}
		if auditSince > 0 {
			filter.Since = time.Now().Add(-auditSince)
		}

		records, err := store.Query(cmd.Context(), filter)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tSENDER\tKIND\tDURATION\tINPUT")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.1fms\t%s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"), r.Sender, r.Kind, r.DurationMS, r.Input)
		}
		return w.Flush()
	}),
}

var auditStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count outcomes per kind",
	RunE: withStore(func(cmd *cobra.Command, store audit.Store) error {
		stats, err := store.Stats(cmd.Context())
		if err != nil {
			return err
		}
		kinds := make([]string, 0, len(stats))
		for k := range stats {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d\n", k, stats[k])
		}
		return nil
	}),
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete outcomes older than --older-than (default: audit.retention)",
	RunE: withStore(func(cmd *cobra.Command, store audit.Store) error {
		n, err := store.Prune(cmd.Context(), auditAge)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d records deleted\n", n)
		return nil
	}),
}

func init() {
	auditListCmd.Flags().StringVar(&auditKind, "kind", "", "only this kind (success, lookup, syntax, ...)")
	auditListCmd.Flags().StringVar(&auditSender, "sender", "", "only this sender")
	auditListCmd.Flags().DurationVar(&auditSince, "since", 0, "only records newer than this")
	auditListCmd.Flags().IntVarP(&auditLimit, "limit", "n", 50, "maximum number of records")
	auditPruneCmd.Flags().DurationVar(&auditAge, "older-than", 0, "age threshold")

	auditCmd.AddCommand(auditListCmd, auditStatsCmd, auditPruneCmd)
	rootCmd.AddCommand(auditCmd)
}

// withStore opens the audit store for the duration of fn
func withStore(fn func(cmd *cobra.Command, store audit.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			printError("loading config failed", err)
			return err
		}
		if !cfg.Audit.Enabled {
			return mdwerror.New("audit store is disabled, set audit.enabled").WithCode(mdwerror.CodeConfigError)
		}
		if auditAge <= 0 {
			auditAge = cfg.Audit.Retention.Duration
		}

		store, err := audit.NewSQLiteStore(audit.SQLiteConfig{Path: cfg.Audit.Path})
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(cmd, store)
	}
}

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/msto63/argtree/foundation/cmdtree"
	"github.com/msto63/argtree/foundation/cmdtree/executor"
	"github.com/msto63/argtree/foundation/cmdtree/tree"
	mdwlog "github.com/msto63/argtree/foundation/core/log"
	"github.com/msto63/argtree/internal/actions"
	"github.com/msto63/argtree/internal/audit"
	"github.com/msto63/argtree/internal/treefile"
	"github.com/msto63/argtree/pkg/core/config"
	"github.com/msto63/argtree/pkg/core/logging"
)

// LocalSender is the sender of every command typed on this machine
type LocalSender struct {
	Name string
}

func (s *LocalSender) String() string { return s.Name }

// app bundles everything a subcommand needs
type app struct {
	cfg     *config.Config
	logger  *mdwlog.Logger
	manager *cmdtree.Manager
	loader  *treefile.Loader
	store   audit.Store
	sender  *LocalSender
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}

// newApp loads the configuration, opens the audit store if enabled and
// builds the command tree from the definitions file. Handler output goes
// to out.
func newApp(out io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	logger := logging.FromConfig(cfg)

	a := &app{
		cfg:    cfg,
		logger: logger,
		sender: &LocalSender{Name: currentUser()},
	}

	var auditor executor.Auditor
	if cfg.Audit.Enabled {
		store, err := audit.NewSQLiteStore(audit.SQLiteConfig{Path: cfg.Audit.Path})
		if err != nil {
			return nil, err
		}
		a.store = store
		auditor = store
	}

	a.manager = cmdtree.NewManager(cmdtree.Options{
		Logger: logger,
		Permissions: executor.PermissionFunc(func(_ context.Context, _ any, permission string) bool {
			return cfg.HasPermission(permission)
		}),
		Auditor:        auditor,
		StripSlash:     cfg.Commands.StripSlash,
		Timeout:        cfg.Commands.Timeout.Duration,
		Workers:        cfg.Commands.Workers,
		EnableAuditLog: cfg.Commands.AuditLog,
	})

	a.loader = treefile.NewLoader(a.manager.Registry(), logger)
	a.loader.RegisterSender("local", tree.SenderOf[*LocalSender]())
	actions.Register(a.loader, out)

	t, err := a.loadTree()
	if err != nil {
		a.close()
		return nil, err
	}
	a.manager.ReplaceTree(t)
	return a, nil
}

func (a *app) loadTree() (*tree.Tree, error) {
	return a.loader.LoadFile(a.cfg.Commands.Definitions)
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.WarnWithErr("Closing audit store failed", err)
		}
	}
}

func currentUser() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(key); u != "" {
			return u
		}
	}
	return "local"
}

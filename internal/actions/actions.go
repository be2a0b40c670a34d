// Package actions holds the handlers that definition files can bind
// commands to by name.
package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/msto63/argtree/foundation/cmdtree/tree"
	"github.com/msto63/argtree/internal/audit"
	"github.com/msto63/argtree/internal/treefile"
)

// Registrar is implemented by *treefile.Loader
type Registrar interface {
	RegisterAction(name string, h tree.Handler)
}

var _ Registrar = (*treefile.Loader)(nil)

// Register binds the builtin actions. Output goes to out.
func Register(r Registrar, out io.Writer) {
	r.RegisterAction("echo", Echo(out))
	r.RegisterAction("noop", Noop)
	r.RegisterAction("fail", Fail)
	r.RegisterAction("sleep", Sleep)
	r.RegisterAction("whoami", WhoAmI(out))
}

// Echo prints the matched literals followed by every parsed value and flag
func Echo(out io.Writer) tree.Handler {
	return func(_ context.Context, cc *tree.Context) error {
		var parts []string
		for _, n := range cc.Nodes() {
			if n.Kind() == tree.KindLiteral {
				parts = append(parts, n.Name())
			}
		}
		for _, name := range cc.Names() {
			v, _ := cc.Get(name)
			parts = append(parts, fmt.Sprintf("%s=%v", name, v))
		}
		flags := cc.Flags()
		for _, name := range flags.Names() {
			v, _ := flags.Get(name)
			parts = append(parts, fmt.Sprintf("--%s=%v", name, v))
		}
		_, err := fmt.Fprintln(out, strings.Join(parts, " "))
		return err
	}
}

// Noop does nothing
func Noop(context.Context, *tree.Context) error { return nil }

// Fail returns an error built from the "message" value
func Fail(_ context.Context, cc *tree.Context) error {
	return errors.New(tree.GetOr(cc, "message", "command failed"))
}

// Sleep waits for "seconds" (float64 or int, default 1) or until ctx ends
func Sleep(ctx context.Context, cc *tree.Context) error {
	d := time.Second
	if s, ok := tree.Get[float64](cc, "seconds"); ok {
		d = time.Duration(s * float64(time.Second))
	} else if s, ok := tree.Get[int](cc, "seconds"); ok {
		d = time.Duration(s) * time.Second
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WhoAmI prints the sender name
func WhoAmI(out io.Writer) tree.Handler {
	return func(_ context.Context, cc *tree.Context) error {
		_, err := fmt.Fprintln(out, audit.SenderName(cc.Sender()))
		return err
	}
}

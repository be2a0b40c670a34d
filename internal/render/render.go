// Package render turns invocation outcomes into messages for the person who
// typed the command.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/argtree/foundation/cmdtree/executor"
)

// Fixed user-facing texts
const (
	MessageInternalError  = "An internal error occurred while attempting to perform this command."
	MessageNoPermission   = "I'm sorry, but you do not have permission to perform this command. Please contact the server administrators if you believe that this is in error."
	MessageUnknownCommand = "Unknown command. Type \"/help\" for help."
	MessageCancelled      = "The command was cancelled before it could finish."
)

var (
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorMuted   = lipgloss.Color("#94A3B8") // Slate 400
	ColorAccent  = lipgloss.Color("#F59E0B") // Amber
)

// Renderer formats outcomes. The zero value is not usable, call New.
type Renderer struct {
	prefix  string
	errorS  lipgloss.Style
	detailS lipgloss.Style
	okS     lipgloss.Style
	warnS   lipgloss.Style
}

// Options configures a Renderer
type Options struct {
	// Plain disables all styling
	Plain bool
	// Prefix is prepended to syntax hints
	Prefix string
}

// New creates a renderer whose color support is detected from out.
func New(out io.Writer, opts ...Options) *Renderer {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	r := &Renderer{prefix: o.Prefix}
	if o.Plain {
		r.errorS = lipgloss.NewStyle()
		r.detailS = lipgloss.NewStyle()
		r.okS = lipgloss.NewStyle()
		r.warnS = lipgloss.NewStyle()
		return r
	}

	lr := lipgloss.NewRenderer(out)
	r.errorS = lr.NewStyle().Foreground(ColorError)
	r.detailS = lr.NewStyle().Foreground(ColorMuted)
	r.okS = lr.NewStyle().Foreground(ColorSuccess)
	r.warnS = lr.NewStyle().Foreground(ColorAccent).Bold(true)
	return r
}

// Outcome renders the message for o. Successful outcomes render as the
// empty string since handlers print their own output.
func (r *Renderer) Outcome(o *executor.Outcome) string {
	if o == nil || o.Failure == nil {
		return ""
	}
	return r.Failure(o.Failure)
}

// Failure renders a single failure
func (r *Renderer) Failure(f *executor.Failure) string {
	switch f.Kind {
	case executor.KindSyntax:
		return r.errorS.Render("Invalid Command Syntax. Correct command syntax is: ") +
			r.detailS.Render(r.prefix+f.CorrectSyntax)
	case executor.KindArgumentParse:
		msg := f.Message
		if f.Cause != nil {
			msg = f.Cause.Error()
		}
		return r.errorS.Render("Invalid Command Argument: ") + r.detailS.Render(msg)
	case executor.KindLookup:
		return r.errorS.Render(MessageUnknownCommand)
	case executor.KindPermission:
		return r.errorS.Render(MessageNoPermission)
	case executor.KindSenderType:
		return r.errorS.Render(f.Message)
	case executor.KindCancelled:
		return r.warnS.Render(MessageCancelled)
	default:
		return r.errorS.Render(MessageInternalError)
	}
}

// Suggestions renders completion candidates, one per line
func (r *Renderer) Suggestions(values []string) string {
	if len(values) == 0 {
		return r.detailS.Render("(no suggestions)")
	}
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = "  " + r.okS.Render(v)
	}
	return strings.Join(lines, "\n")
}

// Summary renders a one-line status for an outcome, used by the shell
// after each command.
func (r *Renderer) Summary(o *executor.Outcome) string {
	if o.Success() {
		return r.okS.Render("ok") + r.detailS.Render(fmt.Sprintf(" (%s)", o.Duration().Round(time.Millisecond)))
	}
	return r.errorS.Render(o.Kind())
}

package pstree

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gopstree/coloransi"
	"gopstree/process"
)

// Connector glyphs
const (
	connectorBranch = "├─ "
	connectorLast   = "└─ "
	continueBranch  = "│  "
	continueLast    = "   "
)

// RenderOptions controls how records are laid out
type RenderOptions struct {
	// Width truncates each line to this many runes; 0 disables truncation.
	Width int
	// Color enables ANSI colors for connectors and state codes.
	Color bool
}

type renderer struct {
	f     *Forest
	opts  RenderOptions
	paint coloransi.Painter
	lines []string
}

// RenderTree renders the subtree rooted at root, depth first, children in
// the order the builder linked them. It returns nil if root is unknown.
func RenderTree(f *Forest, root process.ProcessID, opts RenderOptions) []string {
	if _, ok := f.Find(root); !ok {
		return nil
	}
	r := &renderer{f: f, opts: opts, paint: coloransi.Painter{Enabled: opts.Color}}
	r.walk(root, "", "")
	return r.lines
}

// RenderForest renders every root of f one after another
func RenderForest(f *Forest, opts RenderOptions) []string {
	var lines []string
	for _, root := range f.roots {
		lines = append(lines, RenderTree(f, root, opts)...)
	}
	return lines
}

// walk emits pid's line after lead, then its children. cont is the
// indentation this node's children inherit; it is built per call, so no
// shared depth table exists and depth is unbounded.
func (r *renderer) walk(pid process.ProcessID, lead, cont string) {
	rec, ok := r.f.Find(pid)
	if !ok {
		return
	}
	r.lines = append(r.lines, r.line(rec, lead))

	for i, child := range rec.Children {
		if i == len(rec.Children)-1 {
			r.walk(child, cont+connectorLast, cont+continueLast)
		} else {
			r.walk(child, cont+connectorBranch, cont+continueBranch)
		}
	}
}

func (r *renderer) line(rec *process.ProcessRecord, lead string) string {
	cols := fmt.Sprintf("%-6d %-6d ", rec.PID, rec.PPID)
	state := rec.State.String()
	pad := strings.Repeat(" ", 5-utf8.RuneCountInString(state)+1)
	name := Sanitize(rec.Name)

	if r.opts.Width > 0 {
		fixed := utf8.RuneCountInString(lead + cols + state + pad)
		avail := r.opts.Width - fixed
		if avail < 0 {
			return truncateRunes(lead+cols+state+pad+name, r.opts.Width)
		}
		name = truncateRunes(name, avail)
	}

	if color, ok := stateColor(rec.State); ok {
		state = r.paint.Foreground(color, state)
	}
	return r.paint.Style(lead, coloransi.Dim) + cols + state + pad + name
}

func stateColor(s process.ProcessState) (coloransi.ColorCode, bool) {
	switch s {
	case process.ProcessRunning:
		return coloransi.Green, true
	case process.ProcessWaiting:
		return coloransi.ColorOrange, true
	case process.ProcessZombie, process.ProcessDead, process.ProcessDeadOld:
		return coloransi.BrightRed, true
	case process.ProcessStopped, process.ProcessTracingStp:
		return coloransi.Yellow, true
	case process.ProcessIdle:
		return coloransi.BrightBlack, true
	default:
		return 0, false
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

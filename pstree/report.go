package pstree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopstree/process"
)

// ErrRootNotFound is returned when a requested subtree root is not in the snapshot
var ErrRootNotFound = errors.New("root process not found")

// Header is the column header printed above the tree
var Header = fmt.Sprintf("%-6s %-6s %-5s %s", "PID", "PPID", "STATE", "CMD")

const separatorWidth = 34

// ReportOptions selects what WriteReport prints
type ReportOptions struct {
	RenderOptions
	// Root limits the report to the subtree at this pid; 0 prints every root.
	Root process.ProcessID
}

// WriteReport renders f completely, then writes the process count, the
// column header and the tree to w. Nothing is written if rendering fails.
func WriteReport(w io.Writer, f *Forest, opts ReportOptions) error {
	var lines []string
	if opts.Root != 0 {
		if _, ok := f.Find(opts.Root); !ok {
			return fmt.Errorf("%w: %d", ErrRootNotFound, opts.Root)
		}
		lines = RenderTree(f, opts.Root, opts.RenderOptions)
	} else {
		lines = RenderForest(f, opts.RenderOptions)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Found %d processes\n\n", f.Len())
	fmt.Fprintln(bw, Header)
	fmt.Fprintln(bw, strings.Repeat("-", separatorWidth))
	for _, line := range lines {
		fmt.Fprintln(bw, line)
	}
	return bw.Flush()
}

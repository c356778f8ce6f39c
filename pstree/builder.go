package pstree

import (
	"slices"

	"gopstree/process"
)

// RootKind says why a record is a root of the forest
type RootKind int

const (
	// SystemRoot declares no parent, or itself as parent
	SystemRoot RootKind = iota
	// OrphanRoot declares a parent that is not in the registry
	OrphanRoot
	// CycleRoot was detached to break a parent chain that loops
	CycleRoot
)

func (k RootKind) String() string {
	switch k {
	case SystemRoot:
		return "system"
	case OrphanRoot:
		return "orphan"
	case CycleRoot:
		return "cycle"
	default:
		return "unknown"
	}
}

// Forest is a Registry whose records have been linked to their parents
type Forest struct {
	reg   *Registry
	roots []process.ProcessID
	kinds map[process.ProcessID]RootKind
}

// Build links every record in reg to its parent and returns the resulting
// forest. It is the only pass that mutates record links; calling it again
// relinks from scratch.
//
// Roots come out as system roots, then orphans, then records detached to
// break parent cycles, each group in registry order.
func Build(reg *Registry) *Forest {
	for rec := range reg.All() {
		rec.Parent = 0
		rec.Children = nil
	}

	var system, orphans []process.ProcessID
	for rec := range reg.All() {
		if rec.IsSystemRoot() {
			system = append(system, rec.PID)
			continue
		}

		parent, ok := reg.Find(rec.PPID)
		if !ok {
			// parent exited or lives outside our view
			orphans = append(orphans, rec.PID)
			continue
		}

		parent.Children = append(parent.Children, rec.PID)
		rec.Parent = parent.PID
	}

	f := &Forest{
		reg:   reg,
		kinds: make(map[process.ProcessID]RootKind, len(system)+len(orphans)),
	}
	for _, pid := range system {
		f.addRoot(pid, SystemRoot)
	}
	for _, pid := range orphans {
		f.addRoot(pid, OrphanRoot)
	}

	f.breakCycles()

	return f
}

func (f *Forest) addRoot(pid process.ProcessID, kind RootKind) {
	f.roots = append(f.roots, pid)
	f.kinds[pid] = kind
}

// breakCycles finds records not reachable from any root. Such a record's
// parent chain ends in a loop, since every chain that ends reaches a root.
// The earliest registered member of each loop is detached and made a root.
func (f *Forest) breakCycles() {
	reached := make(map[process.ProcessID]bool, f.reg.Len())
	for _, root := range f.roots {
		f.mark(root, reached)
	}
	if len(reached) == f.reg.Len() {
		return
	}

	for rec := range f.reg.All() {
		if reached[rec.PID] {
			continue
		}

		// climb until a pid repeats; that pid is on the loop
		seen := make(map[process.ProcessID]bool)
		cur := rec.PID
		for !seen[cur] {
			seen[cur] = true
			p, _ := f.reg.Find(cur)
			cur = p.Parent
		}

		head := cur
		for pid := f.parentOf(cur); pid != cur; pid = f.parentOf(pid) {
			if f.reg.position(pid) < f.reg.position(head) {
				head = pid
			}
		}

		f.detach(head)
		f.addRoot(head, CycleRoot)
		f.mark(head, reached)
	}
}

func (f *Forest) parentOf(pid process.ProcessID) process.ProcessID {
	rec, _ := f.reg.Find(pid)
	return rec.Parent
}

func (f *Forest) detach(pid process.ProcessID) {
	rec, _ := f.reg.Find(pid)
	if parent, ok := f.reg.Find(rec.Parent); ok {
		parent.Children = slices.DeleteFunc(parent.Children, func(c process.ProcessID) bool {
			return c == pid
		})
	}
	rec.Parent = 0
}

// mark records every pid in the subtree of root
func (f *Forest) mark(root process.ProcessID, reached map[process.ProcessID]bool) {
	stack := []process.ProcessID{root}
	for len(stack) > 0 {
		pid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[pid] {
			continue
		}
		reached[pid] = true

		rec, _ := f.reg.Find(pid)
		stack = append(stack, rec.Children...)
	}
}

// Roots returns the forest roots in render order
func (f *Forest) Roots() []process.ProcessID {
	return slices.Clone(f.roots)
}

// RootKind reports whether pid is a root and of which kind
func (f *Forest) RootKind(pid process.ProcessID) (RootKind, bool) {
	kind, ok := f.kinds[pid]
	return kind, ok
}

// Find returns the linked record for pid
func (f *Forest) Find(pid process.ProcessID) (*process.ProcessRecord, bool) {
	return f.reg.Find(pid)
}

// Len returns the number of records in the forest
func (f *Forest) Len() int {
	return f.reg.Len()
}

// Registry returns the registry backing the forest
func (f *Forest) Registry() *Registry {
	return f.reg
}

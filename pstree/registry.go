package pstree

import (
	"fmt"
	"iter"

	"gopstree/process"
)

// Registry owns every ProcessRecord of one snapshot. Records live in a
// single slice and reference each other only by pid, so the whole snapshot
// is released together when the registry is dropped.
type Registry struct {
	records []process.ProcessRecord
	index   map[process.ProcessID]int
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[process.ProcessID]int),
	}
}

// Insert stores a copy of rec. A second record with the same pid is
// rejected with process.ErrDuplicateID and the first one is kept. Any
// links already set on rec are discarded.
func (r *Registry) Insert(rec process.ProcessRecord) error {
	if _, exists := r.index[rec.PID]; exists {
		return fmt.Errorf("%w: %d", process.ErrDuplicateID, rec.PID)
	}

	rec.Parent = 0
	rec.Children = nil

	r.index[rec.PID] = len(r.records)
	r.records = append(r.records, rec)
	return nil
}

// Find returns the record for pid
func (r *Registry) Find(pid process.ProcessID) (*process.ProcessRecord, bool) {
	i, ok := r.index[pid]
	if !ok {
		return nil, false
	}
	return &r.records[i], true
}

// Len returns the number of records
func (r *Registry) Len() int {
	return len(r.records)
}

// All yields records in insertion order
func (r *Registry) All() iter.Seq[*process.ProcessRecord] {
	return func(yield func(*process.ProcessRecord) bool) {
		for i := range r.records {
			if !yield(&r.records[i]) {
				return
			}
		}
	}
}

// position returns the insertion index of pid, or -1
func (r *Registry) position(pid process.ProcessID) int {
	if i, ok := r.index[pid]; ok {
		return i
	}
	return -1
}

package process_fixture

import (
	"context"
	"fmt"

	"gopstree/process"
)

// Source replays a Fixture as a process.Source.
//
// A pid listed more than once yields its entries in order on successive
// reads. Every List call rewinds, so repeated scans see identical data.
type Source struct {
	fx     *Fixture
	byPID  map[process.ProcessID][]int
	cursor map[process.ProcessID]int
}

// NewSource creates a Source replaying fx
func NewSource(fx *Fixture) *Source {
	s := &Source{
		fx:     fx,
		byPID:  make(map[process.ProcessID][]int),
		cursor: make(map[process.ProcessID]int),
	}
	for i, e := range fx.Entries {
		s.byPID[e.PID] = append(s.byPID[e.PID], i)
	}
	return s
}

// List returns the recorded pids in recorded order
func (s *Source) List(ctx context.Context) ([]process.ProcessID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clear(s.cursor)

	pids := make([]process.ProcessID, len(s.fx.Entries))
	for i, e := range s.fx.Entries {
		pids[i] = e.PID
	}
	return pids, nil
}

// Read returns the next recorded result for pid
func (s *Source) Read(ctx context.Context, pid process.ProcessID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	idx := s.byPID[pid]
	n := s.cursor[pid]
	if n >= len(idx) {
		return "", fmt.Errorf("%w: pid %d not in fixture", process.ErrEntryVanished, pid)
	}
	s.cursor[pid] = n + 1

	e := s.fx.Entries[idx[n]]
	switch {
	case e.Denied:
		return "", fmt.Errorf("%w: pid %d", process.ErrEntryDenied, pid)
	case e.Vanished:
		return "", fmt.Errorf("%w: pid %d", process.ErrEntryVanished, pid)
	}
	return e.Stat, nil
}

// Package process_portable implements process.Source with gopsutil so the
// tree can be built on systems without a procfs mount.
package process_portable

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopstree/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	gops "github.com/shirou/gopsutil/v4/process"
)

// PortableSource implements process.Source using gopsutil.
// Read synthesizes a stat line so callers parse every source the same way.
type PortableSource struct {
	log *logger.Logger
}

// New creates a new PortableSource
func New() *PortableSource {
	return &PortableSource{
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "gopsutil")),
	}
}

// List returns all visible pids in ascending order
func (s *PortableSource) List(ctx context.Context) ([]process.ProcessID, error) {
	raw, err := gops.PidsWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pids: %w", err)
	}

	pids := make([]process.ProcessID, 0, len(raw))
	for _, pid := range raw {
		if pid <= 0 {
			continue
		}
		pids = append(pids, process.ProcessID(pid))
	}
	slices.Sort(pids)

	s.log.Debugln("Listed", len(pids), "pids")

	return pids, nil
}

// Read returns "<pid> (<name>) <state> <ppid>" for pid
func (s *PortableSource) Read(ctx context.Context, pid process.ProcessID) (string, error) {
	p, err := gops.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return "", classifyError(pid, err)
	}

	ppid, err := p.PpidWithContext(ctx)
	if err != nil {
		return "", classifyError(pid, err)
	}

	// Name and status are best-effort; a kernel thread may have neither
	name, err := p.NameWithContext(ctx)
	if err != nil && !isBestEffort(err) {
		return "", classifyError(pid, err)
	}

	state := process.ProcessSleeping
	if status, err := p.StatusWithContext(ctx); err == nil && len(status) > 0 {
		state = StateFromStatus(status[0])
	} else if err != nil && !isBestEffort(err) {
		return "", classifyError(pid, err)
	}

	return process.FormatStat(pid, name, state, process.ProcessID(ppid)), nil
}

// StateFromStatus maps a gopsutil status string onto a kernel state code.
// Statuses without a direct equivalent map to sleeping.
func StateFromStatus(status string) process.ProcessState {
	switch status {
	case gops.Running:
		return process.ProcessRunning
	case gops.Blocked, gops.Lock:
		return process.ProcessWaiting
	case gops.Idle:
		return process.ProcessIdle
	case gops.Stop:
		return process.ProcessStopped
	case gops.Wait:
		return process.ProcessPaging
	case gops.Zombie:
		return process.ProcessZombie
	default:
		return process.ProcessSleeping
	}
}

func isBestEffort(err error) bool {
	return !errors.Is(err, gops.ErrorProcessNotRunning) && !errors.Is(err, os.ErrNotExist)
}

func classifyError(pid process.ProcessID, err error) error {
	switch {
	case errors.Is(err, gops.ErrorProcessNotRunning), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: pid %d: %v", process.ErrEntryVanished, pid, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: pid %d: %v", process.ErrEntryDenied, pid, err)
	default:
		return fmt.Errorf("failed to read pid %d: %w", pid, err)
	}
}

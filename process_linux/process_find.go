//go:build linux

package process_linux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopstree/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/unix"
)

// DefaultRoot is where procfs is normally mounted
const DefaultRoot = "/proc"

// ProcfsSource implements process.Source on top of a procfs mount
type ProcfsSource struct {
	root string
	log  *logger.Logger
}

// NewProcfsSource creates a source reading <root>/<pid>/stat. An empty root
// means DefaultRoot.
func NewProcfsSource(root string) *ProcfsSource {
	if root == "" {
		root = DefaultRoot
	}
	return &ProcfsSource{
		root: root,
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "procfs")),
	}
}

// Root returns the procfs mount point this source reads
func (s *ProcfsSource) Root() string {
	return s.root
}

// List returns every numeric directory under the root in ascending order
func (s *ProcfsSource) List(ctx context.Context) ([]process.ProcessID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.root, err)
	}

	var pids []process.ProcessID
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			// Not a PID directory
			continue
		}

		pids = append(pids, process.ProcessID(pid))
	}

	// os.ReadDir sorts by name, "10" before "2"
	slices.Sort(pids)

	s.log.Debugln("Listed", len(pids), "pids under", s.root)

	return pids, nil
}

// Read returns the content of <root>/<pid>/stat
func (s *ProcfsSource) Read(ctx context.Context, pid process.ProcessID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.root, strconv.Itoa(int(pid)), "stat")
	data, err := readStatFile(path)
	if err != nil {
		return "", classifyReadError(pid, err)
	}

	return string(data), nil
}

// readStatFile reads a whole procfs file with raw syscalls so the errno of a
// process that exits between open and read (ESRCH) reaches the caller.
func readStatFile(path string) ([]byte, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	defer unix.Close(fd)

	out := make([]byte, 0, 512)
	buf := make([]byte, 512)
	for {
		n, err := unix.Read(fd, buf)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return out, nil
		}
		out = append(out, buf[:n]...)
	}
}

func classifyReadError(pid process.ProcessID, err error) error {
	switch {
	case errors.Is(err, unix.ENOENT), errors.Is(err, unix.ESRCH):
		return fmt.Errorf("%w: pid %d: %v", process.ErrEntryVanished, pid, err)
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("%w: pid %d: %v", process.ErrEntryDenied, pid, err)
	default:
		return fmt.Errorf("failed to read stat for pid %d: %w", pid, err)
	}
}

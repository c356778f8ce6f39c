//go:build linux

package process_linux

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopstree/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStat(t *testing.T, root, pid, content string) {
	t.Helper()
	dir := filepath.Join(root, pid)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(content), 0o644))
}

func fakeProcRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeStat(t, root, "1", "1 (systemd) S 0 1 1 0 -1\n")
	writeStat(t, root, "2", "2 (kthreadd) S 0 0 0 0 -1\n")
	writeStat(t, root, "10", "10 (weird (name)) R 1 10 10 0 -1\n")
	writeStat(t, root, "300", "300 (bash) S 1 300 300 0 -1\n")

	// noise that procfs also carries
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sys"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "0"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "uptime"), []byte("1.0 2.0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "77"), []byte("not a dir"), 0o644))

	return root
}

func TestProcfsSource_ListSortsNumerically(t *testing.T) {
	src := NewProcfsSource(fakeProcRoot(t))

	pids, err := src.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []process.ProcessID{1, 2, 10, 300}, pids)
}

func TestProcfsSource_ListMissingRoot(t *testing.T) {
	src := NewProcfsSource(filepath.Join(t.TempDir(), "nope"))

	_, err := src.List(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProcfsSource_Read(t *testing.T) {
	src := NewProcfsSource(fakeProcRoot(t))

	raw, err := src.Read(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, "10 (weird (name)) R 1 10 10 0 -1\n", raw)
}

func TestProcfsSource_ReadVanished(t *testing.T) {
	src := NewProcfsSource(fakeProcRoot(t))

	_, err := src.Read(context.Background(), 4242)

	assert.ErrorIs(t, err, process.ErrEntryVanished)
	assert.True(t, process.Skippable(err))
}

func TestProcfsSource_ReadDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}
	root := fakeProcRoot(t)
	require.NoError(t, os.Chmod(filepath.Join(root, "300", "stat"), 0))

	_, err := NewProcfsSource(root).Read(context.Background(), 300)

	assert.ErrorIs(t, err, process.ErrEntryDenied)
}

func TestProcfsSource_ReadLargeFile(t *testing.T) {
	root := t.TempDir()
	long := "5 (x) S 1" + strings.Repeat(" 0", 400)
	writeStat(t, root, "5", long)

	raw, err := NewProcfsSource(root).Read(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, long, raw)
}

func TestProcfsSource_CanceledContext(t *testing.T) {
	src := NewProcfsSource(fakeProcRoot(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = src.Read(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcfsSource_DefaultRoot(t *testing.T) {
	assert.Equal(t, DefaultRoot, NewProcfsSource("").Root())
}

func TestProcfsSource_LiveSelf(t *testing.T) {
	if _, err := os.Stat("/proc/self/stat"); err != nil {
		t.Skip("procfs not mounted")
	}
	src := NewProcfsSource("")

	raw, err := src.Read(context.Background(), process.ProcessID(os.Getpid()))
	require.NoError(t, err)

	rec, err := process.ParseStat(process.ProcessID(os.Getpid()), raw)
	require.NoError(t, err)
	assert.Equal(t, process.ProcessID(os.Getppid()), rec.PPID)
}

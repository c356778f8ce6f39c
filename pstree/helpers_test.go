package pstree

import (
	"testing"

	"gopstree/process"

	"github.com/stretchr/testify/require"
)

func rec(pid, ppid process.ProcessID, name string, state process.ProcessState) process.ProcessRecord {
	return process.ProcessRecord{PID: pid, PPID: ppid, Name: name, State: state}
}

func newRegistry(t *testing.T, recs ...process.ProcessRecord) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, r := range recs {
		require.NoError(t, reg.Insert(r))
	}
	return reg
}

// sampleRecords is init with a, b below it and c below a
func sampleRecords() []process.ProcessRecord {
	return []process.ProcessRecord{
		rec(1, 0, "init", process.ProcessSleeping),
		rec(2, 1, "a", process.ProcessSleeping),
		rec(3, 1, "b", process.ProcessSleeping),
		rec(4, 2, "c", process.ProcessSleeping),
	}
}

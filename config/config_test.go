package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes keys for the duration of the test
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "PSTREE_PROC_ROOT", "PSTREE_SOURCE", "PSTREE_TIMEOUT", "PSTREE_COLOR", "NO_COLOR")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/proc", cfg.ProcRoot)
	assert.Equal(t, SourceAuto, cfg.Source)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Empty(t, cfg.NoColor)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PSTREE_PROC_ROOT", "/host/proc")
	t.Setenv("PSTREE_SOURCE", "gopsutil")
	t.Setenv("PSTREE_TIMEOUT", "1500ms")
	t.Setenv("PSTREE_COLOR", "never")
	t.Setenv("NO_COLOR", "yes")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/host/proc", cfg.ProcRoot)
	assert.Equal(t, SourceGopsutil, cfg.Source)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, "yes", cfg.NoColor)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad source", "PSTREE_SOURCE", "kvm"},
		{"bad color", "PSTREE_COLOR", "sometimes"},
		{"bad timeout", "PSTREE_TIMEOUT", "soon"},
		{"negative timeout", "PSTREE_TIMEOUT", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestUseColor(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		terminal bool
		want     bool
	}{
		{"auto on terminal", Config{Color: ColorAuto}, true, true},
		{"auto on pipe", Config{Color: ColorAuto}, false, false},
		{"auto with NO_COLOR", Config{Color: ColorAuto, NoColor: "1"}, true, false},
		{"always on pipe", Config{Color: ColorAlways, NoColor: "1"}, false, true},
		{"never on terminal", Config{Color: ColorNever}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.UseColor(tt.terminal))
		})
	}
}

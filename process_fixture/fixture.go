// Package process_fixture records process snapshots to YAML and replays them
// as a process.Source, giving the tree builder a frozen input.
package process_fixture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopstree/process"

	"gopkg.in/yaml.v3"
)

// Entry is one listed pid and what reading it produced
type Entry struct {
	PID      process.ProcessID `yaml:"pid"`
	Stat     string            `yaml:"stat,omitempty"`
	Vanished bool              `yaml:"vanished,omitempty"`
	Denied   bool              `yaml:"denied,omitempty"`
}

// Fixture is a recorded snapshot. Entries keep enumeration order.
type Fixture struct {
	Comment string  `yaml:"comment,omitempty"`
	Entries []Entry `yaml:"entries"`
}

// Load reads a fixture from a YAML file
func Load(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a fixture from r
func Decode(r io.Reader) (*Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		if errors.Is(err, io.EOF) {
			return &fx, nil
		}
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}

	for i, e := range fx.Entries {
		if e.PID <= 0 {
			return nil, fmt.Errorf("fixture entry %d: invalid pid %d", i, e.PID)
		}
	}

	return &fx, nil
}

// Save writes the fixture as YAML to w
func (fx *Fixture) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fx); err != nil {
		return fmt.Errorf("failed to encode fixture: %w", err)
	}
	return enc.Close()
}

// SaveFile writes the fixture to path, replacing any existing file
func (fx *Fixture) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create fixture: %w", err)
	}

	if err := fx.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Capture lists src once and records the raw read result of every pid.
// Per-pid failures are recorded rather than returned.
func Capture(ctx context.Context, src process.Source) (*Fixture, error) {
	pids, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", process.ErrSourceUnavailable, err)
	}

	fx := &Fixture{Entries: make([]Entry, 0, len(pids))}
	for _, pid := range pids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := src.Read(ctx, pid)
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err == nil:
			fx.Entries = append(fx.Entries, Entry{PID: pid, Stat: raw})
		case errors.Is(err, process.ErrEntryDenied):
			fx.Entries = append(fx.Entries, Entry{PID: pid, Denied: true})
		default:
			fx.Entries = append(fx.Entries, Entry{PID: pid, Vanished: true})
		}
	}

	return fx, nil
}

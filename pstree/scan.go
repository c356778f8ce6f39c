package pstree

import (
	"context"
	"errors"
	"fmt"

	"gopstree/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// ScanStats counts what happened to each listed pid during a scan
type ScanStats struct {
	Listed    int // pids returned by the source
	Parsed    int // records stored in the registry
	Vanished  int // exited between listing and reading
	Denied    int // status not readable
	Malformed int // status text did not parse
	Duplicate int // pid already in the registry
	Failed    int // any other read error
}

// Skipped returns how many listed pids did not make it into the registry
func (s ScanStats) Skipped() int {
	return s.Vanished + s.Denied + s.Malformed + s.Duplicate + s.Failed
}

// Scanner reads one snapshot from a process.Source into a Registry
type Scanner struct {
	src process.Source
	log *logger.Logger
}

// NewScanner creates a Scanner reading from src
func NewScanner(src process.Source) *Scanner {
	return &Scanner{
		src: src,
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "scan")),
	}
}

// Scan lists the source once and parses every listed pid.
//
// The live table changes while it is being read, so per-pid failures
// (vanished, denied, malformed, duplicate) are counted and skipped. Only a
// source that cannot be listed, or ctx ending, fails the scan.
func (s *Scanner) Scan(ctx context.Context) (*Registry, ScanStats, error) {
	var stats ScanStats

	pids, err := s.src.List(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, stats, ctxErr
		}
		s.log.Warn("Failed to list processes: ", err)
		return nil, stats, fmt.Errorf("%w: %w", process.ErrSourceUnavailable, err)
	}
	stats.Listed = len(pids)

	s.log.Debugln("Scanning", len(pids), "pids")

	reg := NewRegistry()
	for _, pid := range pids {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("scan interrupted after %d of %d pids: %w", stats.Parsed+stats.Skipped(), len(pids), err)
		}

		raw, err := s.src.Read(ctx, pid)
		if err != nil {
			switch {
			case ctx.Err() != nil:
				return nil, stats, fmt.Errorf("scan interrupted at pid %d: %w", pid, ctx.Err())
			case errors.Is(err, process.ErrEntryVanished):
				stats.Vanished++
			case errors.Is(err, process.ErrEntryDenied):
				stats.Denied++
			default:
				stats.Failed++
			}
			s.log.Debugln("Skipping pid", pid, err)
			continue
		}

		rec, err := process.ParseStat(pid, raw)
		if err != nil {
			stats.Malformed++
			s.log.Debugln("Skipping pid", pid, err)
			continue
		}

		if err := reg.Insert(*rec); err != nil {
			stats.Duplicate++
			s.log.Debugln("Skipping pid", pid, err)
			continue
		}
		stats.Parsed++
	}

	s.log.Debugln("Scan complete,", stats.Parsed, "records,", stats.Skipped(), "skipped")

	return reg, stats, nil
}

// Snapshot scans src and links the result into a Forest
func Snapshot(ctx context.Context, src process.Source) (*Forest, ScanStats, error) {
	reg, stats, err := NewScanner(src).Scan(ctx)
	if err != nil {
		return nil, stats, err
	}
	return Build(reg), stats, nil
}

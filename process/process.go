// Package process provides the types, errors and parsing shared by every
// process snapshot source.
package process

import "errors"

var (
	// ErrSourceUnavailable is returned when the process enumeration boundary
	// cannot be opened at all. It is the only fatal scan error.
	ErrSourceUnavailable = errors.New("process source unavailable")

	// ErrEntryVanished is returned when a listed process exits before its
	// status could be read.
	ErrEntryVanished = errors.New("process vanished")

	// ErrEntryDenied is returned when a process's status is not readable by
	// the current user.
	ErrEntryDenied = errors.New("process status access denied")

	// ErrEntryMalformed is returned when status text does not have the
	// "<pid> (<name>) <state> <ppid>" structure.
	ErrEntryMalformed = errors.New("malformed process status")

	// ErrDuplicateID is returned when a second record with an already known
	// PID is inserted into a registry.
	ErrDuplicateID = errors.New("duplicate process id")
)

// Skippable reports whether err describes a per-process failure that a scan
// absorbs instead of aborting.
func Skippable(err error) bool {
	return errors.Is(err, ErrEntryVanished) ||
		errors.Is(err, ErrEntryDenied) ||
		errors.Is(err, ErrEntryMalformed) ||
		errors.Is(err, ErrDuplicateID)
}

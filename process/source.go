package process

import "context"

// Source is a point-in-time view of the process table
type Source interface {
	// List returns the identifiers currently visible. Every call re-reads
	// the live table. An error here means the source itself is unusable.
	List(ctx context.Context) ([]ProcessID, error)

	// Read returns the raw status line for pid. A process that exited since
	// List yields ErrEntryVanished, an unreadable one ErrEntryDenied.
	Read(ctx context.Context, pid ProcessID) (string, error)
}

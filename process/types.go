package process

// ProcessID represents a unique identifier for a process
type ProcessID int

// ProcessRecord is one process as observed in a single snapshot.
//
// Parent and Children are links resolved through the registry that owns the
// record; they hold identifiers, never pointers, so a record graph can be
// dropped as a unit without dangling references.
type ProcessRecord struct {
	PID   ProcessID    // Process ID
	PPID  ProcessID    // Parent Process ID as reported, 0 for none
	Name  string       // Display name from the parenthesized stat field
	State ProcessState // Process state (R, S, D, Z, etc.)

	Parent   ProcessID   // Linked parent, 0 when the record is a root
	Children []ProcessID // Linked children in registry order
}

// IsSystemRoot reports whether the record declares no parent or itself as parent
func (r *ProcessRecord) IsSystemRoot() bool {
	return r.PPID == 0 || r.PPID == r.PID
}

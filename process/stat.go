package process

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseStat converts one /proc/<pid>/stat style line into a ProcessRecord.
//
// The name field is delimited by the first '(' and the last ')' of the line
// because the kernel copies the command name verbatim, parentheses and
// whitespace included. State and parent are read positionally from what
// follows the closing parenthesis; any further fields are ignored.
//
// When pid is non-zero the leading identifier must match it.
func ParseStat(pid ProcessID, raw string) (*ProcessRecord, error) {
	line := strings.TrimRight(raw, "\r\n")

	var head, name, rest string
	open := strings.IndexByte(line, '(')
	closing := strings.LastIndexByte(line, ')')
	switch {
	case open < 0 && closing < 0:
		// no name field at all
		head, rest, _ = strings.Cut(strings.TrimLeft(line, " \t"), " ")
	case open >= 0 && closing > open:
		head = line[:open]
		name = line[open+1 : closing]
		rest = line[closing+1:]
	default:
		return nil, malformed(pid, "unbalanced name delimiters")
	}

	id, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || id <= 0 {
		return nil, malformed(pid, "invalid pid field %q", strings.TrimSpace(head))
	}
	if pid != 0 && ProcessID(id) != pid {
		return nil, malformed(pid, "pid field %d does not match", id)
	}

	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return nil, malformed(pid, "expected state and ppid after name, got %d fields", len(fields))
	}

	if len(fields[0]) != 1 || !ProcessState(fields[0][0]).Valid() {
		return nil, malformed(pid, "unknown state %q", fields[0])
	}

	ppid, err := strconv.Atoi(fields[1])
	if err != nil || ppid < 0 {
		return nil, malformed(pid, "invalid ppid field %q", fields[1])
	}

	return &ProcessRecord{
		PID:   ProcessID(id),
		PPID:  ProcessID(ppid),
		Name:  name,
		State: ProcessState(fields[0][0]),
	}, nil
}

// FormatStat renders the leading stat fields in the layout ParseStat reads.
// Sources that do not have a native stat line use it to feed the parser.
func FormatStat(pid ProcessID, name string, state ProcessState, ppid ProcessID) string {
	return fmt.Sprintf("%d (%s) %s %d", pid, name, state, ppid)
}

func malformed(pid ProcessID, format string, args ...any) error {
	return fmt.Errorf("%w: pid %d: %s", ErrEntryMalformed, pid, fmt.Sprintf(format, args...))
}

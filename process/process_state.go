package process

// ProcessState is the single-character scheduler state reported by the kernel
type ProcessState byte

const (
	ProcessRunning    ProcessState = 'R' // Running
	ProcessSleeping   ProcessState = 'S' // Sleeping in an interruptible wait
	ProcessWaiting    ProcessState = 'D' // Waiting in uninterruptible disk sleep
	ProcessZombie     ProcessState = 'Z' // Zombie
	ProcessStopped    ProcessState = 'T' // Stopped (on a signal)
	ProcessTracingStp ProcessState = 't' // Tracing stop
	ProcessPaging     ProcessState = 'W' // Paging (pre 2.6) or waking
	ProcessDead       ProcessState = 'X' // Dead
	ProcessDeadOld    ProcessState = 'x' // Dead (2.6.33 to 3.13)
	ProcessWakekill   ProcessState = 'K' // Wakekill
	ProcessParked     ProcessState = 'P' // Parked
	ProcessIdle       ProcessState = 'I' // Idle kernel thread
)

var stateNames = map[ProcessState]string{
	ProcessRunning:    "running",
	ProcessSleeping:   "sleeping",
	ProcessWaiting:    "waiting",
	ProcessZombie:     "zombie",
	ProcessStopped:    "stopped",
	ProcessTracingStp: "tracing-stop",
	ProcessPaging:     "paging",
	ProcessDead:       "dead",
	ProcessDeadOld:    "dead",
	ProcessWakekill:   "wakekill",
	ProcessParked:     "parked",
	ProcessIdle:       "idle",
}

// Valid reports whether s is one of the known state codes
func (s ProcessState) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// Name returns a lowercase description of the state, or "unknown"
func (s ProcessState) Name() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s ProcessState) String() string {
	return string(rune(s))
}

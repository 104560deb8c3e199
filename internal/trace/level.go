package trace

import "fmt"

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff   Level = iota // no tracing
	LevelScan               // scan boundaries only
	LevelPhase              // scan phases (walk, load, check)
	LevelFile               // per-file events
	LevelDebug              // everything including individual findings
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelScan:
		return "scan"
	case LevelPhase:
		return "phase"
	case LevelFile:
		return "file"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF":
		return LevelOff, nil
	case "scan", "SCAN":
		return LevelScan, nil
	case "phase", "PHASE":
		return LevelPhase, nil
	case "file", "FILE":
		return LevelFile, nil
	case "debug", "DEBUG":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|scan|phase|file|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelScan:
		return scope <= ScopeScan
	case LevelPhase:
		return scope <= ScopePhase
	case LevelFile:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	}
	return false
}

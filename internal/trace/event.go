package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1 // span start
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd // span end
	KindPoint   // instant event
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent higher-level/coarser events.
type Scope uint8

const (
	// ScopeScan represents the highest level of scan operations.
	ScopeScan Scope = iota + 1 // top-level scan (highest level)
	// ScopePhase represents scan phases (walk, load, check).
	ScopePhase // scan phases (walk, load, check)
	// ScopeFile represents per-file processing (more detailed).
	ScopeFile // per-file processing (more detailed)
	ScopeRule // individual rule findings (most detailed)
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeScan:
		return "scan"
	case ScopePhase:
		return "phase"
	case ScopeFile:
		return "file"
	case ScopeRule:
		return "rule"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	GID      uint64            // goroutine ID (for concurrent scans)
	Name     string            // e.g., "scan", "walk", "file:src/app.php"
	Detail   string            // optional detail message
	Extra    map[string]string // extensible key-value pairs
}

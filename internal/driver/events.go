package driver

// Stage names a pipeline phase for progress reporting.
type Stage uint8

const (
	StageLex Stage = iota
	StageParse
	StageCheck
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	case StageCheck:
		return "check"
	default:
		return "unknown"
	}
}

// Status is the lifecycle state of one file inside a batch run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusCached
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusDone:
		return "done"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a progress notification emitted while checking a batch of files.
type Event struct {
	Path   string
	Stage  Stage
	Status Status
	// Errors carries the error-diagnostic count once the file is done.
	Errors int
}

// EventSink receives progress events. Sinks must be safe for concurrent
// use; CheckMany calls them from worker goroutines.
type EventSink func(Event)

func (fn EventSink) emit(ev Event) {
	if fn != nil {
		fn(ev)
	}
}

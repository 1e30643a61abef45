package model

// TaskState represents the lifecycle state of a download task
type TaskState string

const (
	// TaskStatePending means the task is created but not started
	TaskStatePending TaskState = "Pending"

	// TaskStateResolving means the source URL is being resolved to an audio stream
	TaskStateResolving TaskState = "Resolving"

	// TaskStateDownloading means audio bytes are being pulled from the source
	TaskStateDownloading TaskState = "Downloading"

	// TaskStateEncoding means the encoder is consuming downloaded bytes
	TaskStateEncoding TaskState = "Encoding"

	// TaskStateWriting means encoded bytes are being persisted to disk
	TaskStateWriting TaskState = "Writing"

	// TaskStateCompleted means the file was fully written and renamed into place
	TaskStateCompleted TaskState = "Completed"

	// TaskStateCancelled means the task was stopped by the user
	TaskStateCancelled TaskState = "Cancelled"

	// TaskStateFailed means the task failed with an error
	TaskStateFailed TaskState = "Failed"
)

// pipelineOrder fixes the forward direction of the happy path. Cancelled and
// Failed sit outside the pipeline and are reachable from any non-terminal
// state.
var pipelineOrder = map[TaskState]int{
	TaskStatePending:     0,
	TaskStateResolving:   1,
	TaskStateDownloading: 2,
	TaskStateEncoding:    3,
	TaskStateWriting:     4,
	TaskStateCompleted:   5,
}

// String returns the string representation of TaskState
func (ts TaskState) String() string {
	return string(ts)
}

// IsValid returns true if the state is one of the enumerated values
func (ts TaskState) IsValid() bool {
	if _, ok := pipelineOrder[ts]; ok {
		return true
	}
	return ts == TaskStateCancelled || ts == TaskStateFailed
}

// IsTerminal returns true if the task can no longer change state
func (ts TaskState) IsTerminal() bool {
	return ts == TaskStateCompleted || ts == TaskStateCancelled || ts == TaskStateFailed
}

// CanTransition reports whether moving from ts to next is a legal state
// change: strictly forward along the pipeline, or an escape into Cancelled
// or Failed from any non-terminal state.
func (ts TaskState) CanTransition(next TaskState) bool {
	if ts.IsTerminal() {
		return false
	}
	if next == TaskStateCancelled || next == TaskStateFailed {
		return true
	}
	from, ok := pipelineOrder[ts]
	to, okNext := pipelineOrder[next]
	return ok && okNext && to > from
}

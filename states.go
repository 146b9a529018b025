package longtask

import (
	"encoding/json"

	"github.com/bytedance/sonic"
)

// State is the discriminant of a TaskState.
// Use the exported constants instead of raw strings to avoid typos.
type State string

const (
	// StatePending marks a task that has not completed yet and carries its progress.
	StatePending State = "pending"
	// StateDone marks a completed task and carries its result.
	StateDone State = "done"
)

// AllStates lists every valid task state in a stable order.
var AllStates = []State{StatePending, StateDone}

// String returns the raw string value of the state.
func (s State) String() string { return string(s) }

// ParseState converts a string into a State, returning an error for unknown values.
func ParseState(s string) (State, error) {
	switch s {
	case string(StatePending):
		return StatePending, nil
	case string(StateDone):
		return StateDone, nil
	default:
		return "", ErrUnknownState
	}
}

// TaskState is what a poll returns for a known task: either Pending with a
// progress snapshot or Done with the final result. Only the field matching
// State is meaningful.
type TaskState[V, P any] struct {
	State    State
	Progress P
	Result   V
}

// Pending builds a pending TaskState.
func Pending[V, P any](p P) TaskState[V, P] {
	return TaskState[V, P]{State: StatePending, Progress: p}
}

// Done builds a completed TaskState.
func Done[V, P any](v V) TaskState[V, P] {
	return TaskState[V, P]{State: StateDone, Result: v}
}

// IsDone reports whether the task has completed.
func (s TaskState[V, P]) IsDone() bool { return s.State == StateDone }

// MarshalJSON encodes the state as {"state":"pending","progress":...}
// or {"state":"done","result":...}.
func (s TaskState[V, P]) MarshalJSON() ([]byte, error) {
	if s.State == StateDone {
		return json.Marshal(struct {
			State  State `json:"state"`
			Result V     `json:"result"`
		}{StateDone, s.Result})
	}
	return json.Marshal(struct {
		State    State `json:"state"`
		Progress P     `json:"progress"`
	}{StatePending, s.Progress})
}

type taskStateWire[V, P any] struct {
	State    string `json:"state"`
	Progress P      `json:"progress"`
	Result   V      `json:"result"`
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (s *TaskState[V, P]) UnmarshalJSON(data []byte) error {
	var w taskStateWire[V, P]
	if err := sonic.Unmarshal(data, &w); err != nil {
		return err
	}
	st, err := ParseState(w.State)
	if err != nil {
		return err
	}
	if st == StateDone {
		*s = Done[V, P](w.Result)
	} else {
		*s = Pending[V, P](w.Progress)
	}
	return nil
}

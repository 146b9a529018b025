package longtask

import "encoding/json"

// Outcome is the result a Server stores for a finished job. A failed job is
// still a completed task; its Error is set and Value is empty.
type Outcome struct {
	Value json.RawMessage `json:"value,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Failed reports whether the job returned an error.
func (o Outcome) Failed() bool { return o.Error != "" }

// Decode unmarshals Value into v.
func (o Outcome) Decode(v any) error {
	var enc Encoder = &JSONEncoder{}
	return enc.Decode(o.Value, v)
}

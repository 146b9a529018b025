package longtask

// Progressible is satisfied by progress values the Pool can track.
// Advance returns the value moved forward by one step; Clone returns a
// snapshot that shares no mutable state with the receiver.
type Progressible[P any] interface {
	Advance() P
	Clone() P
}

// Counter counts completed steps out of a known total.
type Counter struct {
	Progress int `json:"progress"`
	Total    int `json:"total"`
}

// Advance increments Progress, capped at Total.
func (c Counter) Advance() Counter {
	c.Progress = min(c.Progress+1, c.Total)
	return c
}

// Clone returns a copy of c.
func (c Counter) Clone() Counter { return c }

// Steps is a progress value for tasks that do not report progress.
type Steps struct{}

func (Steps) Advance() Steps { return Steps{} }
func (Steps) Clone() Steps   { return Steps{} }

package longtask

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestState_StringAndParse(t *testing.T) {
	if StatePending.String() != "pending" || StateDone.String() != "done" {
		t.Fatal("unexpected state string values")
	}
	for _, s := range AllStates {
		if _, err := ParseState(s.String()); err != nil {
			t.Fatalf("parse valid state %q failed: %v", s, err)
		}
	}
	if _, err := ParseState("failed"); err == nil {
		t.Fatal("expected error for invalid state")
	} else if err != ErrUnknownState {
		t.Fatalf("expected ErrUnknownState, got %v", err)
	}
}

func TestTaskState_Constructors(t *testing.T) {
	p := Pending[int](Counter{Progress: 2, Total: 5})
	require.False(t, p.IsDone())
	require.Equal(t, StatePending, p.State)

	d := Done[int, Counter](7)
	require.True(t, d.IsDone())
	require.Equal(t, 7, d.Result)
}

func TestTaskState_JSON(t *testing.T) {
	b, err := json.Marshal(Pending[int](Counter{Progress: 1, Total: 7}))
	require.NoError(t, err)
	require.JSONEq(t, `{"state":"pending","progress":{"progress":1,"total":7}}`, string(b))

	b, err = json.Marshal(Done[int, Counter](42))
	require.NoError(t, err)
	require.JSONEq(t, `{"state":"done","result":42}`, string(b))

	var got TaskState[int, Counter]
	require.NoError(t, json.Unmarshal([]byte(`{"state":"pending","progress":{"progress":3,"total":4}}`), &got))
	require.Equal(t, Pending[int](Counter{Progress: 3, Total: 4}), got)

	require.NoError(t, json.Unmarshal([]byte(`{"state":"done","result":42}`), &got))
	require.Equal(t, Done[int, Counter](42), got)

	require.ErrorIs(t, json.Unmarshal([]byte(`{"state":"lost"}`), &got), ErrUnknownState)
}

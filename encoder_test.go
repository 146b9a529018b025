package longtask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEncoder_Roundtrip(t *testing.T) {
	enc := &JSONEncoder{}
	in := Counter{Progress: 4, Total: 9}
	data, err := enc.Encode(in)
	require.NoError(t, err, "encode should not error")

	var out Counter
	require.NoError(t, enc.Decode(data, &out), "decode should not error")
	assert.Equal(t, in, out, "roundtrip mismatch")
}

func TestJSONEncoder_DecodeError(t *testing.T) {
	enc := &JSONEncoder{}
	var out struct{ A int }
	err := enc.Decode([]byte("{"), &out)
	require.Error(t, err, "expected error for invalid JSON")
}

func TestOutcome_DecodeAndFailed(t *testing.T) {
	o := Outcome{Value: []byte(`{"answer":42}`)}
	require.False(t, o.Failed())
	var v struct {
		Answer int `json:"answer"`
	}
	require.NoError(t, o.Decode(&v))
	require.Equal(t, 42, v.Answer)

	failed := Outcome{Error: "boom"}
	require.True(t, failed.Failed())
}

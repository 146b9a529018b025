package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/UniQw/longtask/internal/hctx"
	"github.com/stretchr/testify/require"
)

func TestWorker_Run_Success(t *testing.T) {
	advanced := 0
	var got Result
	exec := func(ctx context.Context, kind string, payload []byte) ([]byte, error) {
		require.Equal(t, "sum", kind)
		require.Equal(t, []byte("in"), payload)
		st, ok := hctx.From(ctx)
		require.True(t, ok)
		st.Advance()
		st.Advance()
		return []byte("42"), nil
	}

	res := Run(context.Background(), exec, Job{
		ID:      "t1",
		Kind:    "sum",
		Payload: []byte("in"),
		Advance: func() { advanced++ },
		Finish:  func(r Result) { got = r },
	})

	require.NoError(t, res.Err)
	require.Equal(t, []byte("42"), res.Value)
	require.Equal(t, int64(2), res.Steps)
	require.Equal(t, 2, advanced)
	require.Equal(t, res, got, "Finish should receive the same result")
}

func TestWorker_Run_Error(t *testing.T) {
	boom := errors.New("boom")
	res := Run(context.Background(), func(context.Context, string, []byte) ([]byte, error) {
		return nil, boom
	}, Job{Kind: "x"})
	require.ErrorIs(t, res.Err, boom)
	require.Nil(t, res.Value)
}

func TestWorker_Run_RecoversPanic(t *testing.T) {
	finished := false
	res := Run(context.Background(), func(context.Context, string, []byte) ([]byte, error) {
		panic("kaboom")
	}, Job{Kind: "x", Finish: func(Result) { finished = true }})

	var pe *PanicError
	require.ErrorAs(t, res.Err, &pe)
	require.Equal(t, "kaboom", pe.Value)
	require.NotEmpty(t, pe.Stack)
	require.Contains(t, res.Err.Error(), "kaboom")
	require.True(t, finished, "Finish must run after a panic")
}

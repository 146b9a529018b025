package hctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestState_NewAndWithFrom(t *testing.T) {
	calls := 0
	st := New(func() { calls++ })
	require.NotNil(t, st)

	ctx := WithState(context.Background(), st)
	got, ok := From(ctx)
	require.True(t, ok, "From should find state")
	require.Same(t, st, got, "should retrieve the same pointer")

	got.Advance()
	got.Advance()
	require.Equal(t, 2, calls)
	require.Equal(t, int64(2), st.Steps())
}

func TestState_NilAdvanceOnlyCounts(t *testing.T) {
	st := New(nil)
	st.Advance()
	require.Equal(t, int64(1), st.Steps())
}

func TestState_From_Absent(t *testing.T) {
	ctx := context.Background()
	st, ok := From(ctx)
	require.False(t, ok)
	require.Nil(t, st)
}

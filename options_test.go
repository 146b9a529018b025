package longtask

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOptions_Defaults(t *testing.T) {
	o := buildOptions(nil)
	require.Zero(t, o.lifespan)
	require.NotNil(t, o.now)
	require.IsType(t, nopLogger{}, o.log)
}

func TestOptions_Setters(t *testing.T) {
	var o options

	WithLifespan(5 * time.Minute)(&o)
	require.Equal(t, 5*time.Minute, o.lifespan, "Lifespan not set")

	// negative disables expiry
	WithLifespan(-time.Second)(&o)
	require.Zero(t, o.lifespan)

	fixed := time.Unix(42, 0)
	WithClock(func() time.Time { return fixed })(&o)
	require.Equal(t, fixed, o.now())

	// nil values keep the previous setting
	WithClock(nil)(&o)
	require.Equal(t, fixed, o.now())

	l := NewFmtLogger()
	WithLogger(l)(&o)
	require.Same(t, l, o.log)
	WithLogger(nil)(&o)
	require.Same(t, l, o.log)
}

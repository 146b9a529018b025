package keys

// Package keys centralizes Redis key and channel construction.
// It is kept in internal to avoid leaking key formats to public API.

// Done is the pub/sub channel on which completions of a namespace are announced.
func Done(ns string) string { return "longtask:{" + ns + "}:done" }

// Namespace holds all precomputed names for a namespace.
type Namespace struct {
	Done string
}

// For returns the precomputed names for the provided namespace.
func For(ns string) Namespace {
	return Namespace{
		Done: Done(ns),
	}
}

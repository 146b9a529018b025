package longtask

import "errors"

// ErrHandleConsumed is the panic value used when a Handle is used after Complete.
var ErrHandleConsumed = errors.New("longtask: handle already consumed")

// ErrForeignHandle is the panic value used when a Handle is passed to a pool that did not issue it.
var ErrForeignHandle = errors.New("longtask: handle issued by another pool")

// ErrPendingMissing is the panic value used when a live Handle has no pending entry.
// It can only happen if the handle discipline was bypassed.
var ErrPendingMissing = errors.New("longtask: pending task not found for live handle")

// ErrUnknownState is returned when an invalid state is used.
var ErrUnknownState = errors.New("longtask: unknown state")

// ErrUnknownKind is returned when Submit is called for a job kind without a handler.
var ErrUnknownKind = errors.New("longtask: unknown job kind")

// ErrServerStopped is returned when Submit is called on a server that is not running.
var ErrServerStopped = errors.New("longtask: server not running")

// ErrQueueFull is returned when the runtime cannot accept another job.
var ErrQueueFull = errors.New("longtask: job queue full")

// ErrTaskNotFound is returned by clients when a polled task is unknown,
// already collected or expired.
var ErrTaskNotFound = errors.New("longtask: task not found")

// Package httpapi exposes a longtask Server over HTTP.
//
// Routes:
//   - POST /jobs/{kind}  start a job, body is the JSON payload, 202 {"id": "..."}
//   - GET  /tasks/{id}   poll a task, 200 with its state or 404
//   - GET  /stats        pending and completed counts
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/UniQw/longtask"
	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// MaxBodySize limits job payloads.
const MaxBodySize = 1 << 20

// Service is the part of longtask.Server the router needs.
type Service interface {
	SubmitRaw(kind string, payload []byte) (uuid.UUID, error)
	Status(id uuid.UUID) (longtask.TaskStatus, bool)
	Stats() (pending, completed int)
}

// Accepted is the body of a 202 response.
type Accepted struct {
	ID uuid.UUID `json:"id"`
}

// Stats is the body of GET /stats.
type Stats struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// ErrorBody is returned with every non-2xx status.
type ErrorBody struct {
	Error string `json:"error"`
}

// NewRouter builds the HTTP handler for svc. A nil logger disables request logs.
func NewRouter(svc Service, l longtask.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if l != nil {
		r.Use(requestLogger(l))
	}

	r.Post("/jobs/{kind}", func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, MaxBodySize))
		if err != nil {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorBody{Error: err.Error()})
			return
		}
		if len(body) == 0 {
			body = []byte("null")
		} else if !sonic.Valid(body) {
			writeJSON(w, http.StatusBadRequest, ErrorBody{Error: "payload is not valid JSON"})
			return
		}

		id, err := svc.SubmitRaw(chi.URLParam(req, "kind"), body)
		switch {
		case err == nil:
			w.Header().Set("Location", "/tasks/"+id.String())
			writeJSON(w, http.StatusAccepted, Accepted{ID: id})
		case errors.Is(err, longtask.ErrUnknownKind):
			writeJSON(w, http.StatusNotFound, ErrorBody{Error: err.Error()})
		case errors.Is(err, longtask.ErrQueueFull), errors.Is(err, longtask.ErrServerStopped):
			writeJSON(w, http.StatusServiceUnavailable, ErrorBody{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, ErrorBody{Error: err.Error()})
		}
	})

	r.Get("/tasks/{id}", func(w http.ResponseWriter, req *http.Request) {
		// a malformed id can never name a task
		id, err := uuid.Parse(chi.URLParam(req, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, ErrorBody{Error: longtask.ErrTaskNotFound.Error()})
			return
		}
		st, ok := svc.Status(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, ErrorBody{Error: longtask.ErrTaskNotFound.Error()})
			return
		}
		writeJSON(w, http.StatusOK, st)
	})

	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		p, c := svc.Stats()
		writeJSON(w, http.StatusOK, Stats{Pending: p, Completed: c})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func requestLogger(l longtask.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			l.Debugf("http: method=%s path=%s status=%d dur=%s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
		})
	}
}

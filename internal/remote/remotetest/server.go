// Package remotetest provides an in-memory task collection endpoint for tests.
package remotetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/baiirun/launchboard/internal/model"
)

// Server is a fake collection endpoint mounted at /tables/tasks.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	tasks    []model.Task
	requests []string
	failWith int // status returned for every request when non-zero
	clock    model.Millis
}

// NewServer starts a fake endpoint and closes it when the test ends.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{clock: 1723636800000}

	r := mux.NewRouter()
	r.Use(s.record, s.failures)
	r.HandleFunc("/tables/tasks", s.list).Methods(http.MethodGet)
	r.HandleFunc("/tables/tasks", s.create).Methods(http.MethodPost)
	r.HandleFunc("/tables/tasks/{id}", s.replace).Methods(http.MethodPut)
	r.HandleFunc("/tables/tasks/{id}", s.patch).Methods(http.MethodPatch)
	r.HandleFunc("/tables/tasks/{id}", s.delete).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// NewAbsentServer starts an endpoint that answers 404 to everything.
func NewAbsentServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	return srv
}

// FailWith makes every following request answer status. Zero restores
// normal behavior.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = status
}

// Seed stores tasks as if they had been created remotely.
func (s *Server) Seed(tasks ...model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, task := range tasks {
		s.insert(task)
	}
}

// Tasks returns a copy of the stored tasks.
func (s *Server) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.tasks...)
}

// Requests returns "METHOD /path?query" for every request received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, fmt.Sprintf("%s %s", r.Method, r.URL.RequestURI()))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) failures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := s.failWith
		s.mu.Unlock()
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := append([]model.Task{}, s.tasks...)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		if limit < len(data) {
			data = data[:limit]
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data, "total": len(s.tasks)})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var task model.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	task.ID = ""
	writeJSON(w, http.StatusCreated, s.insert(task))
}

func (s *Server) replace(w http.ResponseWriter, r *http.Request) {
	var task model.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(mux.Vars(r)["id"])
	if idx == -1 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	task.ID = s.tasks[idx].ID
	task.CreatedAt = s.tasks[idx].CreatedAt
	task.UpdatedAt = s.tick()
	s.tasks[idx] = task
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) patch(w http.ResponseWriter, r *http.Request) {
	var patch model.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(mux.Vars(r)["id"])
	if idx == -1 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	patch.Apply(&s.tasks[idx])
	s.tasks[idx].UpdatedAt = s.tick()
	writeJSON(w, http.StatusOK, s.tasks[idx])
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(mux.Vars(r)["id"])
	if idx == -1 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

// insert requires s.mu.
func (s *Server) insert(task model.Task) model.Task {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = s.tick()
	task.UpdatedAt = task.CreatedAt
	s.tasks = append(s.tasks, task)
	return task
}

// tick requires s.mu.
func (s *Server) tick() model.Millis {
	s.clock += 1000
	return s.clock
}

// indexOf requires s.mu.
func (s *Server) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

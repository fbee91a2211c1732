// Package server exposes a store.Persistence over the /api/todos REST API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/selection"
	"tableflip.dev/todo/pkg/store"
)

// RootPath is the collection route of the API.
const RootPath = "/api/todos"

// Server serves the todo API.
type Server struct {
	persistence store.Persistence
	schema      *jsonschema.Schema
	log         *slog.Logger
	mux         *http.ServeMux
}

// New returns a Server over p. A nil logger uses slog.Default().
func New(p store.Persistence, log *slog.Logger) (*Server, error) {
	if p == nil {
		return nil, errors.New("server requires persistence")
	}
	if log == nil {
		log = slog.Default()
	}
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	s := &Server{persistence: p, schema: schema, log: log, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET "+RootPath, s.list)
	s.mux.HandleFunc("POST "+RootPath, s.create)
	s.mux.HandleFunc("GET "+RootPath+"/{id}", s.read)
	s.mux.HandleFunc("PUT "+RootPath+"/{id}", s.update)
	s.mux.HandleFunc("DELETE "+RootPath+"/{id}", s.delete)
	s.mux.HandleFunc("POST "+RootPath+"/{id}/toggle_completed", s.toggle)
	s.mux.HandleFunc("GET /api/state", s.state)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
}

// ListenAndServe serves on addr until ctx is done. onListening, when set, is
// called with the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, onListening func(net.Addr)) error {
	httpSrv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if onListening != nil {
		onListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	err = httpSrv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	todos, err := s.persistence.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.reply(w, http.StatusOK, todos)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	f, err := s.decodeFields(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	t, err := s.persistence.Create(r.Context(), f)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info("todo created", "id", t.ID)
	s.reply(w, http.StatusCreated, t)
}

func (s *Server) read(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	t, err := s.persistence.Read(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.reply(w, http.StatusOK, t)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	f, err := s.decodeFields(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	t, err := s.persistence.Update(r.Context(), id, f)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info("todo updated", "id", id)
	s.reply(w, http.StatusOK, t)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.persistence.Delete(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info("todo deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	t, err := s.persistence.ToggleCompleted(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info("todo toggled", "id", id, "completed", t.Completed)
	s.reply(w, http.StatusOK, t)
}

// state derives the lists and visible todos for ?scope=&date=. Without a
// date nothing is selected.
func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	todos, err := s.persistence.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	sel := selection.None()
	if date := r.URL.Query().Get("date"); date != "" {
		scope, err := lists.ParseScope(r.URL.Query().Get("scope"))
		if err != nil {
			s.reply(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		if !duedate.IsPseudo(date) {
			if err := duedate.Valid(date); err != nil {
				s.reply(w, http.StatusBadRequest, errorBody{Error: err.Error()})
				return
			}
		}
		sel = selection.Select(scope, date)
	}
	s.reply(w, http.StatusOK, engine.Derive(todos, sel))
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		s.reply(w, http.StatusBadRequest, errorBody{Error: "invalid todo id"})
		return 0, false
	}
	return id, true
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.reply(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, store.ErrInvalid):
		s.reply(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		s.reply(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func (s *Server) reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn("write response", "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/biobank/internal/storage"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, types.StandardTableNames)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		respondErr(w, types.Validationf(table, "offset: %v", err))
		return
	}
	limit, err := queryInt(r, "limit", s.opts.DefaultPageSize)
	if err != nil {
		respondErr(w, types.Validationf(table, "limit: %v", err))
		return
	}
	if limit > s.opts.MaxPageSize {
		limit = s.opts.MaxPageSize
	}

	var rows []types.Entity
	err = s.backend.WithSession(r.Context(), func(sess *storage.Session) error {
		rows, err = s.engine.List(r.Context(), sess, table, offset, limit)
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var ent types.Entity
	err := s.backend.WithSession(r.Context(), func(sess *storage.Session) (err error) {
		ent, err = s.engine.Get(r.Context(), sess, vars["table"], vars["id"])
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ent)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]
	payload, err := readPayload(w, r, table)
	if err != nil {
		respondErr(w, err)
		return
	}

	var ent types.Entity
	err = s.backend.WithSession(r.Context(), func(sess *storage.Session) (err error) {
		ent, err = s.engine.Create(r.Context(), sess, table, payload)
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, ent)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patch, err := readPayload(w, r, vars["table"])
	if err != nil {
		respondErr(w, err)
		return
	}

	var ent types.Entity
	err = s.backend.WithSession(r.Context(), func(sess *storage.Session) (err error) {
		ent, err = s.engine.Update(r.Context(), sess, vars["table"], vars["id"], patch)
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := s.backend.WithSession(r.Context(), func(sess *storage.Session) error {
		return s.engine.Delete(r.Context(), sess, vars["table"], vars["id"])
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func readPayload(w http.ResponseWriter, r *http.Request, table string) (types.Payload, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, types.Validationf(table, "reading body: %v", err)
	}
	p, err := types.ParsePayload(body)
	if err != nil {
		var e *types.Error
		if errors.As(err, &e) {
			e.Table = table
		}
		return nil, err
	}
	return p, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// statusFor maps the error taxonomy onto HTTP. Constraint violations are
// client errors: the request conflicts with rows already stored.
func statusFor(kind types.ErrorKind) int {
	switch kind {
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindValidation:
		return http.StatusUnprocessableEntity
	case types.KindConstraint:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondErr(w http.ResponseWriter, err error) {
	kind := types.KindOf(err)
	body := errorBody{Error: kind.String(), Detail: err.Error()}
	var e *types.Error
	if errors.As(err, &e) && e.Detail != "" {
		body.Detail = e.Detail
	}
	if kind == types.KindUnknown {
		body.Error = "internal_error"
	}
	respondJSON(w, statusFor(kind), body)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

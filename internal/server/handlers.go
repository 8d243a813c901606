package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bgrant/devnotes/internal/domain"
)

type apiError struct {
	Error string `json:"error"`
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiError{Error: msg}); err != nil {
		s.logger.Error("failed to write error response", "error", err)
	}
}

// readDocument reads and validates a request body as a document: a JSON
// array of projects, stored in canonical form so byte comparison on the
// client stays meaningful.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		s.respondError(w, http.StatusRequestEntityTooLarge, "document too large")
		return nil, false
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		s.respondError(w, http.StatusBadRequest, "document body must be a list of projects")
		return nil, false
	}
	var projects []domain.Project
	if err := json.Unmarshal(body, &projects); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid document body")
		return nil, false
	}
	canonical, err := json.Marshal(projects)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to encode document")
		return nil, false
	}
	return canonical, true
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readDocument(w, r)
	if !ok {
		return
	}

	doc, err := s.docs.Create(r.Context(), body)
	if err != nil {
		s.logger.Error("failed to create document", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to create document")
		return
	}

	w.Header().Set("Location", "/api/documents/"+doc.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]string{"id": doc.ID}); err != nil {
		s.logger.Error("failed to write create response", "error", err)
	}
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "document_id")

	doc, err := s.docs.Get(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to get document", "doc_id", id, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to get document")
		return
	}
	if doc == nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(doc.Body); err != nil {
		s.logger.Error("failed to write document", "doc_id", id, "error", err)
	}
}

func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "document_id")

	body, ok := s.readDocument(w, r)
	if !ok {
		return
	}

	existing, err := s.docs.Get(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to check document", "doc_id", id, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to update document")
		return
	}
	if existing == nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}

	if err := s.docs.Put(r.Context(), id, body); err != nil {
		s.logger.Error("failed to update document", "doc_id", id, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to update document")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package server

import (
	"net/http"

	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/services/clients"
)

// withClients answers 404 while no client registry is configured
func (s *Server) withClients(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.clients == nil {
			writeJSON(w, http.StatusNotFound, errorBody("CLIENTS_DISABLED", "client registry is not enabled"))
			return
		}
		next(w, r)
	}
}

// handleListClients lists clients, filtered by the q query parameter
func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	list, err := s.clients.ListClients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseClientID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := s.clients.GetClient(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req clients.CreateClientRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	c, err := s.clients.CreateClient(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseClientID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req clients.UpdateClientRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ID = id

	c, err := s.clients.UpdateClient(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseClientID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.clients.DeleteClient(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewMoveResult(true, ""))
}

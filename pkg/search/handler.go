package search

import (
	"encoding/json"
	"net/http"

	"github.com/agendo/agendo/internal/rest"
	"github.com/agendo/agendo/pkg/event"
)

type Handler struct {
	search Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Missing query",
			Details: "'query' parameter must not be empty",
		}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	events, err := h.search.Search(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]event.EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, event.EventToDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

package freetime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/agendo/agendo/internal/rest"
)

type Handler struct {
	freeTime *Service
}

type TimeSlotDTO struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration string `json:"duration"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

func (h *Handler) GetFreeSlots(w http.ResponseWriter, r *http.Request) {
	dateString := r.URL.Query().Get("date")
	date, err := time.Parse("2006-01-02", dateString)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "'date' must be in YYYY-MM-DD format",
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	slots, err := h.freeTime.FreeSlotsOn(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TimeSlotDTO, 0, len(slots))
	for _, slot := range slots {
		dtos = append(dtos, TimeSlotDTO{
			Start:    slot.Start.Format("15:04"),
			End:      slot.End.Format("15:04"),
			Duration: slot.Duration().String(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/agendo/agendo/internal/rest"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	events Service
}

type EventDTO struct {
	UID         string `json:"uid,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	Repeat      string `json:"repeat"`
	Kind        string `json:"kind"`
}

func NewHandler(events Service) *Handler {
	return &Handler{events}
}

// GetEvents returns either the full event list or, when the "date" query
// parameter is present, the agenda of that single day with recurrence applied.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	dateString := r.URL.Query().Get("date")

	var events []Event
	var err error
	if dateString == "" {
		events, err = h.events.ListEvents(r.Context())
	} else {
		var date time.Time
		date, err = time.Parse(dateLayout, dateString)
		if err != nil {
			writeBadRequest(w, "Invalid date format", "'date' must be in YYYY-MM-DD format")
			return
		}
		events, err = h.events.EventsOnDate(r.Context(), date)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, EventToDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	uid, ok := eventUidFromRequest(w, r)
	if !ok {
		return
	}

	event, err := h.events.GetEvent(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(EventToDTO(*event)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := dtoToEvent(eventDTO)
	if err != nil {
		writeBadRequest(w, "Invalid event", err.Error())
		return
	}

	created, err := h.events.CreateEvent(r.Context(), *event)
	if err != nil {
		if errors.Is(err, ErrInvalidEvent) {
			writeBadRequest(w, "Invalid event", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(EventToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	uid, ok := eventUidFromRequest(w, r)
	if !ok {
		return
	}

	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := dtoToEvent(eventDTO)
	if err != nil {
		writeBadRequest(w, "Invalid event", err.Error())
		return
	}
	event.UID = uid

	modified, err := h.events.ModifyEvent(r.Context(), *event)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			http.Error(w, "event not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidEvent):
			writeBadRequest(w, "Invalid event", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(EventToDTO(*modified)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	uid, ok := eventUidFromRequest(w, r)
	if !ok {
		return
	}

	log.Tracef("Deleting event %s", uid)
	if err := h.events.DeleteEvent(r.Context(), uid); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EventToDTO converts a domain event to its JSON representation. Exported so
// other handlers returning events (search) render the same shape.
func EventToDTO(e Event) EventDTO {
	dto := EventDTO{
		UID:         e.UID.String(),
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format(dateLayout),
		Repeat:      string(e.Repeat),
		Kind:        string(e.Kind),
	}
	if e.StartTime != nil {
		dto.StartTime = e.StartTime.String()
	}
	if e.EndTime != nil {
		dto.EndTime = e.EndTime.String()
	}
	return dto
}

func dtoToEvent(dto EventDTO) (*Event, error) {
	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return nil, errors.New("'date' must be in YYYY-MM-DD format")
	}
	kind, err := ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	repeat, err := ParseRepeat(dto.Repeat)
	if err != nil {
		return nil, err
	}

	event := Event{
		Title:       dto.Title,
		Description: dto.Description,
		Date:        date,
		Repeat:      repeat,
		Kind:        kind,
	}
	if dto.StartTime != "" {
		start, err := ParseTimeOfDay(dto.StartTime)
		if err != nil {
			return nil, err
		}
		event.StartTime = &start
	}
	if dto.EndTime != "" {
		end, err := ParseTimeOfDay(dto.EndTime)
		if err != nil {
			return nil, err
		}
		event.EndTime = &end
	}
	return &event, nil
}

func eventUidFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	uid, err := uuid.Parse(vars["eventUid"])
	if err != nil {
		writeBadRequest(w, "Invalid event UID", "'eventUid' must be a valid UUID")
		return uuid.Nil, false
	}
	return uid, true
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   message,
		Details: details,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

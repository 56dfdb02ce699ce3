package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agendo/agendo/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Search(t *testing.T) {
	service := setupSearchTest(t,
		event.Event{Title: "Buy groceries", Date: date(2025, time.September, 2), Repeat: event.RepeatNone, Kind: event.KindTask},
		event.Event{Title: "Gym", Date: date(2025, time.September, 3), Repeat: event.RepeatNone, Kind: event.KindEvent},
	)
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=groceries", nil)
	w := httptest.NewRecorder()
	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var dtos []event.EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "Buy groceries", dtos[0].Title)
	assert.Equal(t, "2025-09-02", dtos[0].Date)
}

func TestHandler_Search_EmptyQuery(t *testing.T) {
	handler := NewHandler(setupSearchTest(t))

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	w := httptest.NewRecorder()
	handler.Search(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Search_NoResultsIsEmptyArray(t *testing.T) {
	handler := NewHandler(setupSearchTest(t))

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=nothing", nil)
	w := httptest.NewRecorder()
	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

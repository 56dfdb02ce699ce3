package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Events
	r.HandleFunc("/api/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event", deps.EventHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/event/{eventUid}", deps.EventHandler.GetEvent).Methods("GET")
	r.HandleFunc("/api/event/{eventUid}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/event/{eventUid}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Free time
	r.HandleFunc("/api/freetime", deps.FreeTimeHandler.GetFreeSlots).Methods("GET")

	// Search
	r.HandleFunc("/api/search", deps.SearchHandler.Search).Methods("GET")
}

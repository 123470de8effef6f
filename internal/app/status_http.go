package app

import (
	"encoding/json"
	"net/http"

	"github.com/frudas24/tuiomouse/internal/screen"
)

type stateResponse struct {
	ListenAddr string `json:"listenAddr"`
	Contacts   int    `json:"contacts"`
	Primary    *int64 `json:"primary,omitempty"`
}

// Handler returns the HTTP routes served on the status address.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	if a.status != nil {
		a.status.RegisterRoutes(mux)
	}
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/monitors", handleMonitors)
	mux.HandleFunc("/favicon.ico", handleFavicon)
	return mux
}

// handleState reports the listen address and the current primary contact.
func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	contacts := a.mapper.Contacts()
	resp := stateResponse{
		ListenAddr: a.cfg.ListenAddr(),
		Contacts:   len(contacts),
	}
	if len(contacts) > 0 {
		id := contacts[0].SessionID
		resp.Primary = &id
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleMonitors lists the displays reported by the OS.
func handleMonitors(w http.ResponseWriter, _ *http.Request) {
	list, err := screen.ListMonitors()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/C21MS0N/kurimu-words/internal/api/handler"
	"github.com/C21MS0N/kurimu-words/internal/api/middleware"
	"github.com/C21MS0N/kurimu-words/internal/services/registry"
	"github.com/C21MS0N/kurimu-words/internal/storage"
	"github.com/C21MS0N/kurimu-words/internal/transport"
)

// RouterConfig holds the collaborators the API router needs
type RouterConfig struct {
	Logger   *slog.Logger
	Registry *registry.Registry
	Storage  storage.Storage
	Hub      *transport.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.Registry)
	statsHandler := handler.NewStatsHandler(cfg.Storage)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Room lifecycle
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.HandleFunc("/{room}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{room}/lobby", roomHandler.OpenLobby).Methods(http.MethodPost)
	rooms.HandleFunc("/{room}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{room}/begin", roomHandler.Begin).Methods(http.MethodPost)
	rooms.HandleFunc("/{room}/game", roomHandler.Stop).Methods(http.MethodDelete)

	// Turn actions
	rooms.HandleFunc("/{room}/words", roomHandler.SubmitWord).Methods(http.MethodPost)
	rooms.HandleFunc("/{room}/forfeit", roomHandler.Forfeit).Methods(http.MethodPost)
	rooms.HandleFunc("/{room}/skip", roomHandler.Skip).Methods(http.MethodPost)
	rooms.HandleFunc("/{room}/rebound", roomHandler.Rebound).Methods(http.MethodPost)
	rooms.HandleFunc("/{room}/hint", roomHandler.Hint).Methods(http.MethodPost)

	// Event stream
	rooms.HandleFunc("/{room}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Stats and economy
	api.HandleFunc("/players/{player_id}/stats", statsHandler.GetStats).Methods(http.MethodGet)
	api.HandleFunc("/players/{player_id}/entitlements", statsHandler.GrantEntitlement).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}/entitlements/{kind}", statsHandler.GetEntitlement).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", statsHandler.Leaderboard).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

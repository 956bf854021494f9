package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/C21MS0N/kurimu-words/internal/api/apierr"
	"github.com/C21MS0N/kurimu-words/internal/api/request"
	"github.com/C21MS0N/kurimu-words/internal/api/response"
	"github.com/C21MS0N/kurimu-words/internal/model"
	"github.com/C21MS0N/kurimu-words/internal/storage"
)

const defaultLeaderboardLimit = 10

// StatsHandler handles stats, leaderboard and entitlement endpoints
type StatsHandler struct {
	storage storage.Storage
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(store storage.Storage) *StatsHandler {
	return &StatsHandler{storage: store}
}

// GetStats handles GET /api/v1/players/{player_id}/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["player_id"])

	stats, err := h.storage.GetStats(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(stats))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	entries, err := h.storage.TopPlayers(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}

// GetEntitlement handles GET /api/v1/players/{player_id}/entitlements/{kind}
func (h *StatsHandler) GetEntitlement(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.PlayerID(vars["player_id"])

	kind, err := parseEntitlementKind(vars["kind"])
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	count, err := h.storage.GetEntitlement(r.Context(), id, kind)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Entitlement{
		PlayerID: string(id),
		Kind:     string(kind),
		Count:    count,
	})
}

// GrantEntitlement handles POST /api/v1/players/{player_id}/entitlements
func (h *StatsHandler) GrantEntitlement(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.Count <= 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("count must be positive"))
		return
	}

	kind, err := parseEntitlementKind(req.Kind)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.storage.GrantEntitlement(r.Context(), id, kind, req.Count); err != nil {
		apierr.WriteError(w, err)
		return
	}

	count, err := h.storage.GetEntitlement(r.Context(), id, kind)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Entitlement{
		PlayerID: string(id),
		Kind:     string(kind),
		Count:    count,
	})
}

func parseEntitlementKind(raw string) (model.EntitlementKind, error) {
	switch strings.ToLower(raw) {
	case string(model.EntitlementSkip):
		return model.EntitlementSkip, nil
	case string(model.EntitlementRebound):
		return model.EntitlementRebound, nil
	case string(model.EntitlementHint):
		return model.EntitlementHint, nil
	default:
		return "", apierr.NewInvalidRequestError("kind must be skip, rebound or hint")
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/C21MS0N/kurimu-words/internal/api/apierr"
	"github.com/C21MS0N/kurimu-words/internal/api/request"
	"github.com/C21MS0N/kurimu-words/internal/api/response"
	"github.com/C21MS0N/kurimu-words/internal/model"
	"github.com/C21MS0N/kurimu-words/internal/services/game"
	"github.com/C21MS0N/kurimu-words/internal/services/registry"
)

// RoomHandler handles room lifecycle and turn endpoints
type RoomHandler struct {
	registry *registry.Registry
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(reg *registry.Registry) *RoomHandler {
	return &RoomHandler{registry: reg}
}

func roomKey(r *http.Request) model.RoomKey {
	return model.RoomKey(mux.Vars(r)["room"])
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.NewInvalidRequestError("Invalid JSON body")
	}
	return nil
}

// OpenLobby handles POST /api/v1/rooms/{room}/lobby
func (h *RoomHandler) OpenLobby(w http.ResponseWriter, r *http.Request) {
	var req request.OpenLobbyRequest
	if err := decodeBody(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if req.PlayerID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player_id is required"))
		return
	}

	cfg := model.DefaultGameConfig()
	switch strings.ToLower(req.Mode) {
	case "":
	case string(model.ModeProgressive):
		cfg.Mode = model.ModeProgressive
	case string(model.ModeRandomized):
		cfg.Mode = model.ModeRandomized
	default:
		apierr.WriteError(w, apierr.NewInvalidRequestError("mode must be progressive or randomized"))
		return
	}

	g := h.registry.GetOrCreate(roomKey(r))
	owner := model.Player{ID: model.PlayerID(req.PlayerID), DisplayName: req.DisplayName}
	if err := g.OpenLobby(r.Context(), owner, cfg); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SnapshotFromModel(g.Snapshot()))
}

// Join handles POST /api/v1/rooms/{room}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRequest
	if err := decodeBody(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if req.PlayerID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player_id is required"))
		return
	}

	g, err := h.registry.Get(roomKey(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	player := model.Player{ID: model.PlayerID(req.PlayerID), DisplayName: req.DisplayName}
	if err := g.Join(r.Context(), player); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SnapshotFromModel(g.Snapshot()))
}

// Begin handles POST /api/v1/rooms/{room}/begin
func (h *RoomHandler) Begin(w http.ResponseWriter, r *http.Request) {
	g, err := h.registry.Get(roomKey(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	turn, err := g.Begin(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TurnFromModel(*turn))
}

// Get handles GET /api/v1/rooms/{room}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.registry.Get(roomKey(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SnapshotFromModel(g.Snapshot()))
}

// Stop handles DELETE /api/v1/rooms/{room}/game
func (h *RoomHandler) Stop(w http.ResponseWriter, r *http.Request) {
	g, err := h.registry.Get(roomKey(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := g.Stop(r.Context()); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// SubmitWord handles POST /api/v1/rooms/{room}/words
func (h *RoomHandler) SubmitWord(w http.ResponseWriter, r *http.Request) {
	var req request.WordRequest
	if err := decodeBody(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if req.PlayerID == "" || req.Word == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player_id and word are required"))
		return
	}

	g, err := h.registry.Get(roomKey(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := g.SubmitWord(r.Context(), model.PlayerID(req.PlayerID), req.Word)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.WordAcceptedFromModel(result))
}

// Forfeit handles POST /api/v1/rooms/{room}/forfeit
func (h *RoomHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	var req request.PlayerActionRequest
	if err := decodeBody(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	g, err := h.registry.Get(roomKey(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := g.Forfeit(r.Context(), model.PlayerID(req.PlayerID)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SnapshotFromModel(g.Snapshot()))
}

// Skip handles POST /api/v1/rooms/{room}/skip
func (h *RoomHandler) Skip(w http.ResponseWriter, r *http.Request) {
	h.applyBoost(w, r, func(g *game.Game, id model.PlayerID) (any, error) {
		turn, err := g.ApplySkip(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return response.TurnFromModel(*turn), nil
	})
}

// Rebound handles POST /api/v1/rooms/{room}/rebound
func (h *RoomHandler) Rebound(w http.ResponseWriter, r *http.Request) {
	h.applyBoost(w, r, func(g *game.Game, id model.PlayerID) (any, error) {
		turn, err := g.ApplyRebound(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return response.TurnFromModel(*turn), nil
	})
}

// Hint handles POST /api/v1/rooms/{room}/hint
func (h *RoomHandler) Hint(w http.ResponseWriter, r *http.Request) {
	h.applyBoost(w, r, func(g *game.Game, id model.PlayerID) (any, error) {
		hint, err := g.ApplyHint(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return response.HintFromModel(hint), nil
	})
}

func (h *RoomHandler) applyBoost(w http.ResponseWriter, r *http.Request, apply func(*game.Game, model.PlayerID) (any, error)) {
	var req request.PlayerActionRequest
	if err := decodeBody(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if req.PlayerID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player_id is required"))
		return
	}

	g, err := h.registry.Get(roomKey(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := apply(g, model.PlayerID(req.PlayerID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

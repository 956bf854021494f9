package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/C21MS0N/kurimu-words/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeRoomNotFound         = "ROOM_NOT_FOUND"
	CodeLobbyAlreadyOpen     = "LOBBY_ALREADY_OPEN"
	CodeGameInProgress       = "GAME_IN_PROGRESS"
	CodeNoLobbyOpen          = "NO_LOBBY_OPEN"
	CodeNoGameRunning        = "NO_GAME_RUNNING"
	CodeAlreadyJoined        = "ALREADY_JOINED"
	CodeInsufficientPlayers  = "INSUFFICIENT_PLAYERS"
	CodeNotYourTurn          = "NOT_YOUR_TURN"
	CodeNotInGame            = "NOT_IN_GAME"
	CodeWrongLength          = "WRONG_LENGTH"
	CodeWrongLetter          = "WRONG_LETTER"
	CodeWordUsed             = "WORD_USED"
	CodeNotInLexicon         = "NOT_IN_LEXICON"
	CodeEntitlementExhausted = "ENTITLEMENT_EXHAUSTED"
	CodeStatsNotFound        = "STATS_NOT_FOUND"
	CodeGameCorrupt          = "GAME_CORRUPT"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrLobbyAlreadyOpen):
		return &httpError{http.StatusConflict, APIError{CodeLobbyAlreadyOpen, "A lobby is already open in this room"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "A game is already running in this room"}}
	case errors.Is(err, model.ErrNoLobbyOpen):
		return &httpError{http.StatusConflict, APIError{CodeNoLobbyOpen, "No lobby is open in this room"}}
	case errors.Is(err, model.ErrNoGameRunning):
		return &httpError{http.StatusConflict, APIError{CodeNoGameRunning, "No game is running in this room"}}
	case errors.Is(err, model.ErrAlreadyJoined):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyJoined, "Already joined this lobby"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrNotInGame):
		return &httpError{http.StatusForbidden, APIError{CodeNotInGame, "Not a player in this game"}}
	case errors.Is(err, model.ErrWrongLength):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeWrongLength, "Word has the wrong length"}}
	case errors.Is(err, model.ErrWrongLetter):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeWrongLetter, "Word does not start with the required letter"}}
	case errors.Is(err, model.ErrWordUsed):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeWordUsed, "Word was already played this game"}}
	case errors.Is(err, model.ErrNotInLexicon):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeNotInLexicon, "Word is not in the dictionary"}}
	case errors.Is(err, model.ErrEntitlementExhausted):
		return &httpError{http.StatusPaymentRequired, APIError{CodeEntitlementExhausted, "No uses of this boost remaining"}}
	case errors.Is(err, model.ErrStatsNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeStatsNotFound, "No stats recorded for this player"}}
	case errors.Is(err, model.ErrGameCorrupt):
		return &httpError{http.StatusConflict, APIError{CodeGameCorrupt, "Game ended in an unrecoverable state"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

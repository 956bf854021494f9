package request

// OpenLobbyRequest is the request body for opening a lobby in a room
type OpenLobbyRequest struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Mode        string `json:"mode,omitempty"`
}

// JoinRequest is the request body for joining an open lobby
type JoinRequest struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
}

// BeginRequest is the request body for starting the game from the lobby
type BeginRequest struct {
	PlayerID string `json:"player_id"`
}

// WordRequest is the request body for submitting a word
type WordRequest struct {
	PlayerID string `json:"player_id"`
	Word     string `json:"word"`
}

// PlayerActionRequest is the request body for forfeit and boost endpoints
type PlayerActionRequest struct {
	PlayerID string `json:"player_id"`
}

// GrantRequest is the request body for granting boost uses to a player
type GrantRequest struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

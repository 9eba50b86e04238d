package game

// @name MoveRequest
type MoveRequest struct {
	Path string `json:"path"`
	Move string `json:"move"`
}

// @name MoveResponse
type MoveResponse struct {
	Alternative int    `json:"alternative"`
	Notation    string `json:"notation"`
}

// @name PathRequest
type PathRequest struct {
	Path string `json:"path"`
}

// @name EditResponse
type EditResponse struct {
	Notation string `json:"notation"`
}

// QuarterView describes the quarter-turn a path points at.
// @name QuarterView
type QuarterView struct {
	Path           string  `json:"path"`
	Move           string  `json:"move,omitempty"`
	Modifier       string  `json:"modifier,omitempty"`
	ExtraStalemate bool    `json:"extra_stalemate,omitempty"`
	Description    *string `json:"description,omitempty"`
	Alternatives   int     `json:"alternatives"`
	Last           bool    `json:"last"`
}

package game

import "time"

// @name Tag
type Tag struct {
	Name  string `json:"name" bson:"name"`
	Value string `json:"value" bson:"value"`
}

// Game is the index record kept in Mongo. The notation text lives in Redis
// and is only filled in for responses.
// @name Game
type Game struct {
	GameKey   string    `json:"game_key" bson:"game_key"`
	Tags      []Tag     `json:"tags" bson:"tags"`
	PlyCount  int       `json:"ply_count" bson:"ply_count"`
	Source    string    `json:"source,omitempty" bson:"source,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	Notation  string    `json:"notation,omitempty" bson:"-"`
}

// @name GameCreateRequest
type GameCreateRequest struct {
	Notation string `json:"notation"`
}

// @name GameCreateResponse
type GameCreateResponse struct {
	UniqueKey string `json:"unique_key"`
}

// @name ArchiveResponse
type ArchiveResponse struct {
	PageNum    int    `json:"page_num" bson:"page_num"`
	TotalPages int    `json:"total_pages" bson:"total_pages"`
	Games      []Game `json:"games" bson:"games"`
}

// ArchiveFile is one *.pgn4 file found while walking an archive directory.
type ArchiveFile struct {
	Path     string
	Notation string
	Tags     []Tag
}

// @name ImportReport
type ImportReport struct {
	Imported map[string]string `json:"imported"`
	Failed   map[string]string `json:"failed,omitempty"`
}

// @name GameStateResponse
type GameStateResponse struct {
	GameKey  string `json:"game_key"`
	Action   string `json:"action"`
	Path     string `json:"path,omitempty"`
	Notation string `json:"notation"`
}

package game

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pgn4_backend/internal/domain/game"
)

const writeWait = 5 * time.Second

// Hub fans edits out to the websocket watchers of each game. All writes
// go through mu, so a connection never sees concurrent writers.
type Hub struct {
	mu       sync.Mutex
	log      *zap.SugaredLogger
	watchers map[string]map[*websocket.Conn]struct{}
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		log:      log,
		watchers: make(map[string]map[*websocket.Conn]struct{}),
	}
}

// Join registers conn and sends it the current state before any later update.
func (h *Hub) Join(gameKey string, conn *websocket.Conn, snapshot game.GameStateResponse) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := write(conn, snapshot); err != nil {
		return err
	}

	conns, ok := h.watchers[gameKey]
	if !ok {
		conns = make(map[*websocket.Conn]struct{})
		h.watchers[gameKey] = conns
	}
	conns[conn] = struct{}{}
	return nil
}

func (h *Hub) Leave(gameKey string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(gameKey, conn)
}

func (h *Hub) remove(gameKey string, conn *websocket.Conn) {
	conns := h.watchers[gameKey]
	if _, ok := conns[conn]; !ok {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.watchers, gameKey)
	}
	_ = conn.Close()
}

func (h *Hub) Broadcast(gameKey string, update game.GameStateResponse) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.watchers[gameKey] {
		if err := write(conn, update); err != nil {
			h.log.Infow("dropping watcher", "game_key", gameKey, "error", err)
			h.remove(gameKey, conn)
		}
	}
}

func (h *Hub) Watchers(gameKey string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers[gameKey])
}

func write(conn *websocket.Conn, msg game.GameStateResponse) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

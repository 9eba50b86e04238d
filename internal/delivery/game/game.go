package game

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pgn4_backend/internal/bootstrap"
	"pgn4_backend/internal/domain/game"
	gameErrors "pgn4_backend/internal/errors"
	"pgn4_backend/internal/httpresponse"
	gameuc "pgn4_backend/internal/usecase/game"
	"pgn4_backend/internal/utils"
)

const (
	ActionSnapshot = "snapshot"
	ActionAppend   = "append"
	ActionPromote  = "promote"
	ActionDelete   = "delete"
)

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	hub    *Hub
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameUC,
		hub:    NewHub(log),
	}
}

func (g *GameHandler) Routes(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Get("/", g.HandleListGames)
		r.Post("/", g.HandleNewGame)
		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", g.HandleGetGame)
			r.Post("/moves", g.HandleAppendMove)
			r.Post("/promote", g.HandlePromote)
			r.Post("/delete", g.HandleDelete)
			r.Get("/visit", g.HandleVisit)
			r.Get("/live", g.HandleLive)
		})
	})
}

func (g *GameHandler) writeUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gameErrors.ErrGameNotFound):
		httpresponse.WriteErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gameErrors.ErrInvalidNotation), errors.Is(err, gameErrors.ErrInvalidPath):
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, gameErrors.ErrEditConflict):
		httpresponse.WriteErrorResponse(w, http.StatusConflict, err.Error())
	default:
		g.log.Errorw("request failed", "error", err)
		httpresponse.WriteErrorResponse(w, http.StatusInternalServerError, gameErrors.ErrInternal.Error())
	}
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.GameCreateRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	gameKey, err := g.gameUC.CreateGame(r.Context(), req.Notation)
	if err != nil {
		g.writeUseCaseError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, game.GameCreateResponse{UniqueKey: gameKey})
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	found, err := g.gameUC.GetGame(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		g.writeUseCaseError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, found)
}

func (g *GameHandler) HandleAppendMove(w http.ResponseWriter, r *http.Request) {
	gameKey := chi.URLParam(r, "key")

	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := g.gameUC.AppendMove(r.Context(), gameKey, req.Path, req.Move)
	if err != nil {
		g.writeUseCaseError(w, err)
		return
	}

	g.hub.Broadcast(gameKey, game.GameStateResponse{
		GameKey:  gameKey,
		Action:   ActionAppend,
		Path:     req.Path,
		Notation: resp.Notation,
	})
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	g.handlePathEdit(w, r, ActionPromote, g.gameUC.PromoteToMainline)
}

func (g *GameHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	g.handlePathEdit(w, r, ActionDelete, g.gameUC.DeleteFrom)
}

func (g *GameHandler) handlePathEdit(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	edit func(ctx context.Context, gameKey, path string) (game.EditResponse, error),
) {
	gameKey := chi.URLParam(r, "key")

	var req game.PathRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := edit(r.Context(), gameKey, req.Path)
	if err != nil {
		g.writeUseCaseError(w, err)
		return
	}

	g.hub.Broadcast(gameKey, game.GameStateResponse{
		GameKey:  gameKey,
		Action:   action,
		Path:     req.Path,
		Notation: resp.Notation,
	})
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleVisit(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "0"
	}

	view, err := g.gameUC.Visit(r.Context(), chi.URLParam(r, "key"), path)
	if err != nil {
		g.writeUseCaseError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

func (g *GameHandler) HandleListGames(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	pageNum := 1
	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpresponse.WriteErrorResponse(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		pageNum = n
	}

	archive, err := g.gameUC.ListGames(r.Context(), query.Get("tag"), query.Get("value"), pageNum)
	if err != nil {
		g.writeUseCaseError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, archive)
}

// HandleLive streams the game's notation after every edit. The first message
// is a snapshot; anything the client sends is ignored.
func (g *GameHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	gameKey := chi.URLParam(r, "key")

	current, err := g.gameUC.GetGame(r.Context(), gameKey)
	if err != nil {
		g.writeUseCaseError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorw("websocket upgrade failed", "game_key", gameKey, "error", err)
		return
	}

	snapshot := game.GameStateResponse{
		GameKey:  gameKey,
		Action:   ActionSnapshot,
		Notation: current.Notation,
	}
	if err := g.hub.Join(gameKey, conn, snapshot); err != nil {
		g.log.Infow("watcher left before snapshot", "game_key", gameKey, "error", err)
		_ = conn.Close()
		return
	}
	defer g.hub.Leave(gameKey, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pgn4_backend/internal/domain/game"
	"pgn4_backend/internal/domain/pgn4"
	gameErrors "pgn4_backend/internal/errors"
)

type GameStore interface {
	GenerateGameKey() string
	SaveNotation(ctx context.Context, gameKey string, notation string) error
	LoadNotation(ctx context.Context, gameKey string) (string, error)
	UpdateNotation(ctx context.Context, gameKey string, edit func(string) (string, error)) (string, error)

	PutGameToMongoDatabase(ctx context.Context, gameData game.Game) error
	UpdateGameIndex(ctx context.Context, gameData game.Game) error
	GetArchiveGamesByTag(ctx context.Context, name, value string, pageNum int) (*game.ArchiveResponse, error)
}

type GameUseCase struct {
	store GameStore
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewGameUseCase(store GameStore, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{store: store, log: log, now: time.Now}
}

func parseNotation(text string) (*pgn4.PGN4, error) {
	doc, err := pgn4.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gameErrors.ErrInvalidNotation, err)
	}
	return doc, nil
}

func parsePath(text string) ([]int, error) {
	path, err := pgn4.ParsePath(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", gameErrors.ErrInvalidPath, text, err)
	}
	return path, nil
}

// parseStored parses text already in the store. It was written by this
// package, so a failure means the store is corrupt.
func parseStored(gameKey, text string) (*pgn4.PGN4, error) {
	doc, err := pgn4.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: stored notation of %s: %v", gameErrors.ErrInternal, gameKey, err)
	}
	return doc, nil
}

func tagsOf(doc *pgn4.PGN4) []game.Tag {
	tags := make([]game.Tag, 0, len(doc.Tags))
	for _, t := range doc.Tags {
		tags = append(tags, game.Tag{Name: t.Name, Value: t.Value})
	}
	return tags
}

func (g *GameUseCase) indexRecord(gameKey string, doc *pgn4.PGN4) game.Game {
	now := g.now()
	return game.Game{
		GameKey:   gameKey,
		Tags:      tagsOf(doc),
		PlyCount:  doc.PlyCount(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateGame stores the normalised notation under a fresh key.
func (g *GameUseCase) CreateGame(ctx context.Context, notation string) (string, error) {
	doc, err := parseNotation(notation)
	if err != nil {
		return "", err
	}
	return g.createGame(ctx, doc, "")
}

func (g *GameUseCase) createGame(ctx context.Context, doc *pgn4.PGN4, source string) (string, error) {
	gameKey := g.store.GenerateGameKey()

	if err := g.store.SaveNotation(ctx, gameKey, doc.String()); err != nil {
		return "", fmt.Errorf("%w: %w", gameErrors.ErrCreateGameFailed, err)
	}

	record := g.indexRecord(gameKey, doc)
	record.Source = source
	if err := g.store.PutGameToMongoDatabase(ctx, record); err != nil {
		g.log.Errorw("game stored but not indexed", "game_key", gameKey, "error", err)
	}

	g.log.Infow("game created", "game_key", gameKey, "plies", record.PlyCount)
	return gameKey, nil
}

func (g *GameUseCase) GetGame(ctx context.Context, gameKey string) (game.Game, error) {
	text, err := g.store.LoadNotation(ctx, gameKey)
	if err != nil {
		return game.Game{}, err
	}
	doc, err := parseStored(gameKey, text)
	if err != nil {
		return game.Game{}, err
	}

	return game.Game{
		GameKey:  gameKey,
		Tags:     tagsOf(doc),
		PlyCount: doc.PlyCount(),
		Notation: text,
	}, nil
}

// edit applies change to the stored game inside one store transaction and
// returns the new notation. The change may run more than once on conflicts.
func (g *GameUseCase) edit(ctx context.Context, gameKey string, path []int, change func(doc *pgn4.PGN4, path []int) error) (string, error) {
	var edited *pgn4.PGN4
	text, err := g.store.UpdateNotation(ctx, gameKey, func(current string) (string, error) {
		doc, err := parseStored(gameKey, current)
		if err != nil {
			return "", err
		}
		if err := change(doc, path); err != nil {
			return "", fmt.Errorf("%w: %s: %w", gameErrors.ErrInvalidPath, pgn4.FormatPath(path), err)
		}
		edited = doc
		return doc.String(), nil
	})
	if err != nil {
		return "", err
	}

	record := g.indexRecord(gameKey, edited)
	if err := g.store.UpdateGameIndex(ctx, record); err != nil {
		g.log.Errorw("game index not refreshed", "game_key", gameKey, "error", err)
	}
	return text, nil
}

// AppendMove adds moveText (one quarter-turn) after the quarter-turn at pathText.
func (g *GameUseCase) AppendMove(ctx context.Context, gameKey, pathText, moveText string) (game.MoveResponse, error) {
	path, err := parsePath(pathText)
	if err != nil {
		return game.MoveResponse{}, err
	}
	q, err := pgn4.ParseQuarterTurn(moveText)
	if err != nil {
		return game.MoveResponse{}, fmt.Errorf("%w: %w", gameErrors.ErrInvalidNotation, err)
	}

	var alternative int
	text, err := g.edit(ctx, gameKey, path, func(doc *pgn4.PGN4, path []int) error {
		var err error
		alternative, err = doc.AppendMove(path, q)
		return err
	})
	if err != nil {
		return game.MoveResponse{}, err
	}

	g.log.Infow("move appended", "game_key", gameKey, "path", pathText, "alternative", alternative)
	return game.MoveResponse{Alternative: alternative, Notation: text}, nil
}

func (g *GameUseCase) PromoteToMainline(ctx context.Context, gameKey, pathText string) (game.EditResponse, error) {
	path, err := parsePath(pathText)
	if err != nil {
		return game.EditResponse{}, err
	}

	text, err := g.edit(ctx, gameKey, path, (*pgn4.PGN4).PromoteToMainline)
	if err != nil {
		return game.EditResponse{}, err
	}

	g.log.Infow("variation promoted", "game_key", gameKey, "path", pathText)
	return game.EditResponse{Notation: text}, nil
}

func (g *GameUseCase) DeleteFrom(ctx context.Context, gameKey, pathText string) (game.EditResponse, error) {
	path, err := parsePath(pathText)
	if err != nil {
		return game.EditResponse{}, err
	}

	text, err := g.edit(ctx, gameKey, path, (*pgn4.PGN4).DeleteFrom)
	if err != nil {
		return game.EditResponse{}, err
	}

	g.log.Infow("line deleted", "game_key", gameKey, "path", pathText)
	return game.EditResponse{Notation: text}, nil
}

// Visit describes the quarter-turn at pathText without changing the game.
func (g *GameUseCase) Visit(ctx context.Context, gameKey, pathText string) (game.QuarterView, error) {
	path, err := parsePath(pathText)
	if err != nil {
		return game.QuarterView{}, err
	}
	text, err := g.store.LoadNotation(ctx, gameKey)
	if err != nil {
		return game.QuarterView{}, err
	}
	doc, err := parseStored(gameKey, text)
	if err != nil {
		return game.QuarterView{}, err
	}

	v := pgn4.NewVisitor(doc)
	if err := pgn4.FollowPath(v, &pgn4.PartialPath{}, path); err != nil {
		return game.QuarterView{}, fmt.Errorf("%w: %s: %w", gameErrors.ErrInvalidPath, pathText, err)
	}

	view := game.QuarterView{
		Path:         pgn4.FormatPath(path),
		Alternatives: v.Alternatives(),
		Last:         v.Last(),
	}
	if q := v.QTurn(); q != nil {
		view.Move = q.Main.String()
		if q.Modifier != nil {
			view.Modifier = q.Modifier.String()
		}
		view.ExtraStalemate = q.ExtraStalemate
		view.Description = q.Description
	}
	return view, nil
}

func (g *GameUseCase) ListGames(ctx context.Context, tagName, tagValue string, pageNum int) (*game.ArchiveResponse, error) {
	archive, err := g.store.GetArchiveGamesByTag(ctx, tagName, tagValue, pageNum)
	if err != nil {
		return nil, fmt.Errorf("%w: list games: %w", gameErrors.ErrInternal, err)
	}
	return archive, nil
}

// ImportArchive creates one game per file. Tags derived from the file's
// location are added only when the notation does not carry them already.
func (g *GameUseCase) ImportArchive(ctx context.Context, files []game.ArchiveFile) game.ImportReport {
	report := game.ImportReport{
		Imported: make(map[string]string, len(files)),
		Failed:   make(map[string]string),
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			report.Failed[file.Path] = err.Error()
			continue
		}

		doc, err := parseNotation(file.Notation)
		if err != nil {
			report.Failed[file.Path] = err.Error()
			continue
		}
		for _, tag := range file.Tags {
			if _, ok := doc.Tag(tag.Name); !ok {
				doc.Tags = append(doc.Tags, pgn4.Tag{Name: tag.Name, Value: tag.Value})
			}
		}

		gameKey, err := g.createGame(ctx, doc, file.Path)
		if err != nil {
			report.Failed[file.Path] = err.Error()
			continue
		}
		report.Imported[file.Path] = gameKey
	}

	g.log.Infow("archive imported", "imported", len(report.Imported), "failed", len(report.Failed))
	return report
}

package game

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pgn4_backend/internal/domain/game"
	"pgn4_backend/internal/domain/pgn4"
	gameErrors "pgn4_backend/internal/errors"
)

const basicGame = `1. d2-d3 .. b11-c11 .. k13-k12 .. m4-l4
2. h2-h3 .. b7-c7 .. g13-g12 .. m8-l8`

type fakeStore struct {
	next      int
	notations map[string]string
	index     map[string]game.Game
	indexErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		notations: map[string]string{},
		index:     map[string]game.Game{},
	}
}

func (f *fakeStore) GenerateGameKey() string {
	f.next++
	return fmt.Sprintf("game-%d", f.next)
}

func (f *fakeStore) SaveNotation(_ context.Context, key, notation string) error {
	f.notations[key] = notation
	return nil
}

func (f *fakeStore) LoadNotation(_ context.Context, key string) (string, error) {
	text, ok := f.notations[key]
	if !ok {
		return "", gameErrors.ErrGameNotFound
	}
	return text, nil
}

func (f *fakeStore) UpdateNotation(_ context.Context, key string, edit func(string) (string, error)) (string, error) {
	text, ok := f.notations[key]
	if !ok {
		return "", gameErrors.ErrGameNotFound
	}
	updated, err := edit(text)
	if err != nil {
		return "", err
	}
	f.notations[key] = updated
	return updated, nil
}

func (f *fakeStore) PutGameToMongoDatabase(_ context.Context, g game.Game) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.index[g.GameKey] = g
	return nil
}

func (f *fakeStore) UpdateGameIndex(_ context.Context, g game.Game) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.index[g.GameKey] = g
	return nil
}

func (f *fakeStore) GetArchiveGamesByTag(_ context.Context, name, value string, pageNum int) (*game.ArchiveResponse, error) {
	var games []game.Game
	for _, g := range f.index {
		for _, t := range g.Tags {
			if t.Name == name && (value == "" || t.Value == value) {
				games = append(games, g)
				break
			}
		}
	}
	return &game.ArchiveResponse{PageNum: pageNum, TotalPages: 1, Games: games}, nil
}

func newUseCase(t *testing.T) (*GameUseCase, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return NewGameUseCase(store, zap.NewNop().Sugar()), store
}

func TestCreateGameNormalises(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()

	key, err := uc.CreateGame(ctx, "[Variant \"FFA\"]\n1.   d2-d3   ..  b11-c11")
	require.NoError(t, err)

	assert.Equal(t, "[Variant \"FFA\"]\n\n\n\n1. d2-d3 .. b11-c11", store.notations[key])
	assert.Equal(t, 2, store.index[key].PlyCount)
	assert.Equal(t, []game.Tag{{Name: "Variant", Value: "FFA"}}, store.index[key].Tags)

	got, err := uc.GetGame(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, store.notations[key], got.Notation)
	assert.Equal(t, 2, got.PlyCount)
}

func TestCreateGameInvalid(t *testing.T) {
	uc, store := newUseCase(t)
	_, err := uc.CreateGame(context.Background(), "1. d2-z99")
	assert.ErrorIs(t, err, gameErrors.ErrInvalidNotation)

	var perr *pgn4.ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Empty(t, store.notations)
}

func TestCreateGameIndexFailureKeepsGame(t *testing.T) {
	uc, store := newUseCase(t)
	store.indexErr = errors.New("mongo down")

	key, err := uc.CreateGame(context.Background(), basicGame)
	require.NoError(t, err)
	assert.Contains(t, store.notations, key)
}

func TestGetGameMissing(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.GetGame(context.Background(), "nope")
	assert.ErrorIs(t, err, gameErrors.ErrGameNotFound)
}

func TestAppendMove(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	key, err := uc.CreateGame(ctx, basicGame)
	require.NoError(t, err)

	resp, err := uc.AppendMove(ctx, key, "8", "d3-d4")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Alternative)
	assert.Equal(t, basicGame+"\n3. d3-d4", resp.Notation)
	assert.Equal(t, 9, store.index[key].PlyCount)

	resp, err = uc.AppendMove(ctx, key, "0", "j2-j3")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Alternative)

	view, err := uc.Visit(ctx, key, "1-1-1")
	require.NoError(t, err)
	assert.Equal(t, "j2-j3", view.Move)
	assert.True(t, view.Last)
}

func TestAppendMoveErrors(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	key, err := uc.CreateGame(ctx, basicGame)
	require.NoError(t, err)
	before := store.notations[key]

	_, err = uc.AppendMove(ctx, key, "1-1", "j2-j3")
	assert.ErrorIs(t, err, gameErrors.ErrInvalidPath)
	assert.ErrorIs(t, err, pgn4.ErrEvenPath)

	_, err = uc.AppendMove(ctx, key, "20", "j2-j3")
	assert.ErrorIs(t, err, gameErrors.ErrInvalidPath)
	assert.ErrorIs(t, err, pgn4.ErrPathUnresolvable)

	_, err = uc.AppendMove(ctx, key, "1", "j2-")
	assert.ErrorIs(t, err, gameErrors.ErrInvalidNotation)

	_, err = uc.AppendMove(ctx, "nope", "1", "j2-j3")
	assert.ErrorIs(t, err, gameErrors.ErrGameNotFound)

	assert.Equal(t, before, store.notations[key])
}

func TestPromoteAndDelete(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	key, err := uc.CreateGame(ctx, basicGame)
	require.NoError(t, err)

	_, err = uc.AppendMove(ctx, key, "0", "j2-j3")
	require.NoError(t, err)

	_, err = uc.PromoteToMainline(ctx, key, "1-1-1")
	require.NoError(t, err)

	view, err := uc.Visit(ctx, key, "1")
	require.NoError(t, err)
	assert.Equal(t, "j2-j3", view.Move)
	assert.Equal(t, 1, view.Alternatives)

	view, err = uc.Visit(ctx, key, "1-1-8")
	require.NoError(t, err)
	assert.Equal(t, "m8-l8", view.Move)

	resp, err := uc.DeleteFrom(ctx, key, "1")
	require.NoError(t, err)
	assert.Equal(t, basicGame, resp.Notation)

	resp, err = uc.DeleteFrom(ctx, key, "6")
	require.NoError(t, err)
	assert.Equal(t, "1. d2-d3 .. b11-c11 .. k13-k12 .. m4-l4\n2. h2-h3", resp.Notation)

	_, err = uc.DeleteFrom(ctx, key, "0")
	assert.ErrorIs(t, err, gameErrors.ErrInvalidPath)
	assert.ErrorIs(t, err, pgn4.ErrZeroInPath)
}

func TestVisit(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	key, err := uc.CreateGame(ctx, "1. d2-d3 { opening } .. b11-c11R")
	require.NoError(t, err)

	view, err := uc.Visit(ctx, key, "1")
	require.NoError(t, err)
	assert.Equal(t, "d2-d3", view.Move)
	require.NotNil(t, view.Description)
	assert.Equal(t, "opening", *view.Description)
	assert.False(t, view.Last)

	view, err = uc.Visit(ctx, key, "2")
	require.NoError(t, err)
	assert.Equal(t, "b11-c11", view.Move)
	assert.Equal(t, "R", view.Modifier)
	assert.True(t, view.Last)

	view, err = uc.Visit(ctx, key, "0")
	require.NoError(t, err)
	assert.Empty(t, view.Move)
	assert.Equal(t, "0", view.Path)

	_, err = uc.Visit(ctx, key, "5")
	assert.ErrorIs(t, err, gameErrors.ErrInvalidPath)
	assert.ErrorIs(t, err, pgn4.ErrEndOfGame)
}

func TestListGames(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	_, err := uc.CreateGame(ctx, "[Variant \"Teams\"]\n1. d2-d3")
	require.NoError(t, err)
	_, err = uc.CreateGame(ctx, "[Variant \"FFA\"]\n1. d2-d3")
	require.NoError(t, err)

	archive, err := uc.ListGames(ctx, "Variant", "Teams", 1)
	require.NoError(t, err)
	require.Len(t, archive.Games, 1)
	assert.Equal(t, "Teams", archive.Games[0].Tags[0].Value)
}

func TestImportArchive(t *testing.T) {
	uc, store := newUseCase(t)
	files := []game.ArchiveFile{
		{Path: "Round 1/7.pgn4", Notation: "[GameNr \"99\"]\n1. d2-d3", Tags: []game.Tag{{Name: "GameNr", Value: "7"}, {Name: "Round", Value: "1"}}},
		{Path: "broken.pgn4", Notation: "1. zz"},
	}

	report := uc.ImportArchive(context.Background(), files)
	require.Len(t, report.Imported, 1)
	require.Contains(t, report.Failed, "broken.pgn4")

	key := report.Imported["Round 1/7.pgn4"]
	assert.Equal(t, "Round 1/7.pgn4", store.index[key].Source)
	assert.Equal(t, []game.Tag{{Name: "GameNr", Value: "99"}, {Name: "Round", Value: "1"}}, store.index[key].Tags)
}

func TestImportArchiveCancelled(t *testing.T) {
	uc, store := newUseCase(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := uc.ImportArchive(ctx, []game.ArchiveFile{{Path: "a.pgn4", Notation: "1. d2-d3"}})
	assert.Empty(t, report.Imported)
	assert.Contains(t, report.Failed, "a.pgn4")
	assert.Empty(t, store.notations)
}

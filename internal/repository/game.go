package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"pgn4_backend/internal/bootstrap"
	"pgn4_backend/internal/domain/game"
	gameErrors "pgn4_backend/internal/errors"
)

const (
	gamesCollection = "games"
	notationPrefix  = "pgn4:game:"
)

type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func (g *GameRepository) GenerateGameKey() string {
	return uuid.New().String()
}

func notationKey(gameKey string) string {
	return notationPrefix + gameKey
}

func (g *GameRepository) SaveNotation(ctx context.Context, gameKey string, notation string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return g.redis.Set(ctx, notationKey(gameKey), notation, 0).Err()
}

func (g *GameRepository) LoadNotation(ctx context.Context, gameKey string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	notation, err := g.redis.Get(ctx, notationKey(gameKey)).Result()
	if errors.Is(err, redis.Nil) {
		return "", gameErrors.ErrGameNotFound
	}
	return notation, err
}

// UpdateNotation runs edit against the stored notation inside a WATCH/MULTI
// transaction. If another writer changes the key in between, the edit is
// re-run on the fresh text, up to EditRetries times.
func (g *GameRepository) UpdateNotation(ctx context.Context, gameKey string, edit func(string) (string, error)) (string, error) {
	key := notationKey(gameKey)
	retries := g.cfg.EditRetries
	if retries < 1 {
		retries = 1
	}

	for attempt := 0; attempt < retries; attempt++ {
		var updated string
		err := g.redis.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, key).Result()
			if errors.Is(err, redis.Nil) {
				return gameErrors.ErrGameNotFound
			}
			if err != nil {
				return err
			}

			updated, err = edit(current)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, updated, 0)
				return nil
			})
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			g.log.Infow("notation changed during edit, retrying", "game_key", gameKey, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return "", err
		}
		return updated, nil
	}

	return "", gameErrors.ErrEditConflict
}

func (g *GameRepository) PutGameToMongoDatabase(ctx context.Context, gameData game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection(gamesCollection)

	_, err := collection.InsertOne(ctx, gameData)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", gameData.GameKey, err)
	}

	g.log.Infow("game indexed", "game_key", gameData.GameKey)
	return nil
}

// UpdateGameIndex refreshes tags and ply count after an edit. A missing
// record is created so games whose first insert failed heal on the next edit.
func (g *GameRepository) UpdateGameIndex(ctx context.Context, gameData game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection(gamesCollection)

	filter := bson.M{"game_key": gameData.GameKey}
	update := bson.M{
		"$set": bson.M{
			"tags":       gameData.Tags,
			"ply_count":  gameData.PlyCount,
			"updated_at": gameData.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": gameData.UpdatedAt,
		},
	}

	_, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("update game index %s: %w", gameData.GameKey, err)
	}
	return nil
}

func (g *GameRepository) GetGameByKey(ctx context.Context, gameKey string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection(gamesCollection)

	var result game.Game
	err := collection.FindOne(ctx, bson.M{"game_key": gameKey}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return result, gameErrors.ErrGameNotFound
	}
	if err != nil {
		return result, err
	}
	return result, nil
}

func tagFilter(name, value string) bson.M {
	if name == "" {
		return bson.M{}
	}
	match := bson.M{"name": name}
	if value != "" {
		match["value"] = value
	}
	return bson.M{"tags": bson.M{"$elemMatch": match}}
}

// GetArchiveGamesByTag lists indexed games carrying the tag, newest first.
// An empty name lists every game; an empty value matches any value.
func (g *GameRepository) GetArchiveGamesByTag(ctx context.Context, name, value string, pageNum int) (*game.ArchiveResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection(gamesCollection)
	filter := tagFilter(name, value)

	pageLimit := g.cfg.PageLimitGames
	if pageLimit < 1 {
		pageLimit = 20
	}
	if pageNum < 1 {
		pageNum = 1
	}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((pageNum - 1) * pageLimit)).
		SetLimit(int64(pageLimit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	games := make([]game.Game, 0, pageLimit)
	if err := cursor.All(ctx, &games); err != nil {
		return nil, err
	}

	return &game.ArchiveResponse{
		PageNum:    pageNum,
		TotalPages: int((total + int64(pageLimit) - 1) / int64(pageLimit)),
		Games:      games,
	}, nil
}

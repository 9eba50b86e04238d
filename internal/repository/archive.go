package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"pgn4_backend/internal/domain/game"
)

const archiveExt = ".pgn4"

var roundDir = regexp.MustCompile(`(?i)^Round (\d+)$`)

type ArchiveStorage struct {
	log *zap.SugaredLogger
}

func NewArchiveStorage(log *zap.SugaredLogger) *ArchiveStorage {
	return &ArchiveStorage{log: log}
}

// CollectArchive walks root for *.pgn4 files in lexical order.
func (a *ArchiveStorage) CollectArchive(root string) ([]game.ArchiveFile, error) {
	var files []game.ArchiveFile

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.EqualFold(filepath.Ext(info.Name()), archiveExt) {
			return nil
		}

		file, err := a.ReadArchiveFile(root, path)
		if err != nil {
			return fmt.Errorf("read archive file %s: %w", path, err)
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.log.Infow("archive collected", "root", root, "files", len(files))
	return files, nil
}

// ReadArchiveFile loads one file and derives tags from its location: a
// numeric file name becomes GameNr, a "Round N" directory becomes Round.
func (a *ArchiveStorage) ReadArchiveFile(root, path string) (game.ArchiveFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return game.ArchiveFile{}, err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	var tags []game.Tag
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if n, err := strconv.Atoi(name); err == nil {
		tags = append(tags, game.Tag{Name: "GameNr", Value: strconv.Itoa(n)})
	}
	if round, ok := ExtractRound(rel); ok {
		tags = append(tags, game.Tag{Name: "Round", Value: strconv.Itoa(round)})
	}

	return game.ArchiveFile{
		Path:     filepath.ToSlash(rel),
		Notation: string(data),
		Tags:     tags,
	}, nil
}

func ExtractRound(path string) (int, bool) {
	dirs := strings.Split(filepath.ToSlash(filepath.Dir(path)), "/")
	for _, dir := range dirs {
		if match := roundDir.FindStringSubmatch(dir); len(match) == 2 {
			round, err := strconv.Atoi(match[1])
			if err != nil {
				return 0, false
			}
			return round, true
		}
	}
	return 0, false
}

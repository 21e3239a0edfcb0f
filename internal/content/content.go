// Package content reads the per-character journey files.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/vytor/lirajourney/internal/errors"
	"github.com/vytor/lirajourney/internal/logger"
	"github.com/vytor/lirajourney/internal/models"
)

// CharacterFile is a character journey file on disk. ID is the file stem.
type CharacterFile struct {
	ID   string
	Path string
}

// LoadCharacter parses a character file. Malformed JSON is a parse error
// naming the file.
func LoadCharacter(path string) (models.Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Character{}, apperrors.NewNotFoundError("character file", path)
		}
		return models.Character{}, fmt.Errorf("read character %s: %w", path, err)
	}
	var character models.Character
	if err := json.Unmarshal(data, &character); err != nil {
		return models.Character{}, apperrors.NewParseError(path, err)
	}
	return character, nil
}

// ResolveCharacterFiles looks up {id}.json in dir for every id in order.
// It returns the files that exist, in order, and the ids that do not.
func ResolveCharacterFiles(ctx context.Context, dir string, order []string) (found []CharacterFile, missing []string) {
	log := logger.FromContext(ctx).WithPrefix("content")
	for _, id := range order {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		path := filepath.Join(dir, id+".json")
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			log.Warn("missing character file %s", path)
			missing = append(missing, id)
			continue
		}
		log.Debug("found character file %s", path)
		found = append(found, CharacterFile{ID: id, Path: path})
	}
	return found, missing
}

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Manifest describes site content that is not part of the character files.
type Manifest struct {
	CharacterOrder []string          `toml:"character_order"`
	Roles          map[string]string `toml:"roles"`
	Theme          map[string]string `toml:"theme"`
}

// DefaultManifest is the King Lear cast: main characters, then secondary
// characters, villains and servants.
func DefaultManifest() Manifest {
	return Manifest{
		CharacterOrder: []string{
			"king_lear",
			"cordelia",
			"goneril",
			"regan",
			"gloucester",
			"edgar",
			"edmund",
			"kent",
			"fool",
			"albany",
			"cornwall",
			"oswald",
		},
		Roles: map[string]string{
			"king_lear":  "Трагический король",
			"cordelia":   "Верная дочь",
			"goneril":    "Старшая дочь-предательница",
			"regan":      "Младшая дочь-предательница",
			"gloucester": "Благородный граф",
			"edgar":      "Законный сын Глостера",
			"edmund":     "Бастард Глостера",
			"kent":       "Верный советник",
			"fool":       "Мудрый шут",
			"albany":     "Муж Гонерильи",
			"cornwall":   "Муж Реганы",
			"oswald":     "Управляющий Гонерильи",
		},
		Theme: map[string]string{
			"primary":    "#6b5b95",
			"secondary":  "#764ba2",
			"accent":     "#667eea",
			"text":       "#333333",
			"background": "#f5f5f5",
		},
	}
}

// LoadManifest reads a TOML manifest. A missing file yields DefaultManifest;
// sections left out of the file keep their defaults.
func LoadManifest(path string) (Manifest, error) {
	m := DefaultManifest()
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}

	var file Manifest
	if err := toml.Unmarshal(data, &file); err != nil {
		return m, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(file.CharacterOrder) > 0 {
		m.CharacterOrder = file.CharacterOrder
	}
	for k, v := range file.Roles {
		m.Roles[k] = v
	}
	for k, v := range file.Theme {
		m.Theme[k] = v
	}
	return m, nil
}

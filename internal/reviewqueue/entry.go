// Package reviewqueue persists the learner's review queue and selects the
// words shown in the index page review section.
package reviewqueue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vytor/lirajourney/internal/jsonutil"
)

// Canonical key field names as written to disk.
const (
	fieldWordID      = "wordId"
	fieldCharacterID = "characterId"
	fieldPhaseID     = "phaseId"
)

var keyAliases = map[string][]string{
	fieldWordID:      {fieldWordID, "word_id"},
	fieldCharacterID: {fieldCharacterID, "character_id"},
	fieldPhaseID:     {fieldPhaseID, "phase_id"},
}

// Key is the composite identity of a queue entry. Absent parts are "".
type Key struct {
	WordID      string
	CharacterID string
	PhaseID     string
}

// NewKey normalizes each part with NormalizeID.
func NewKey(wordID, characterID, phaseID any) Key {
	return Key{
		WordID:      NormalizeID(wordID),
		CharacterID: NormalizeID(characterID),
		PhaseID:     NormalizeID(phaseID),
	}
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.WordID, k.CharacterID, k.PhaseID)
}

// NormalizeID turns an identifier of any JSON type into a comparable
// string: nil is "", numbers use their literal text, strings are trimmed.
func NormalizeID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Entry is one queued word: its key plus any override fields (translation,
// emoji, practice_url, ...) carried alongside.
type Entry struct {
	Key    Key
	Fields map[string]any
}

// NewEntry returns an entry with no overrides.
func NewEntry(key Key) Entry {
	return Entry{Key: key}
}

// Field returns the first non-empty string override among names.
func (e Entry) Field(names ...string) string {
	for _, name := range names {
		v, ok := e.Fields[name]
		if !ok || v == nil {
			continue
		}
		var text string
		switch t := v.(type) {
		case string:
			text = strings.TrimSpace(t)
		case json.Number, float64, int, int64, bool:
			text = strings.TrimSpace(fmt.Sprint(t))
		}
		if text != "" {
			return text
		}
	}
	return ""
}

// UnmarshalJSON accepts camelCase or snake_case key fields. camelCase wins
// when both are present.
func (e *Entry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	pick := func(canonical string) any {
		for _, name := range keyAliases[canonical] {
			if v, ok := raw[name]; ok && v != nil {
				return v
			}
		}
		return nil
	}
	e.Key = NewKey(pick(fieldWordID), pick(fieldCharacterID), pick(fieldPhaseID))

	e.Fields = nil
	for name, v := range raw {
		if isKeyField(name) {
			continue
		}
		if e.Fields == nil {
			e.Fields = make(map[string]any)
		}
		e.Fields[name] = v
	}
	return nil
}

// MarshalJSON writes the key fields first in camelCase, then overrides in
// sorted order.
func (e Entry) MarshalJSON() ([]byte, error) {
	obj := jsonutil.NewObject().
		Set(fieldWordID, e.Key.WordID).
		Set(fieldCharacterID, e.Key.CharacterID).
		Set(fieldPhaseID, e.Key.PhaseID)

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		if !isKeyField(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		obj.Set(name, e.Fields[name])
	}
	return obj.MarshalJSON()
}

func isKeyField(name string) bool {
	for _, aliases := range keyAliases {
		for _, alias := range aliases {
			if alias == name {
				return true
			}
		}
	}
	return false
}

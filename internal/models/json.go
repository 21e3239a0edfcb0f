package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StringList decodes either a JSON string or a JSON array into a list of
// trimmed, non-empty strings. Non-string array items are formatted with %v.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out []string
	add := func(v any) {
		if v == nil {
			return
		}
		text := strings.TrimSpace(fmt.Sprintf("%v", v))
		if text != "" {
			out = append(out, text)
		}
	}
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			add(item)
		}
	case bool:
		if v {
			add(v)
		}
	default:
		add(v)
	}
	*s = out
	return nil
}

// LocalizedText holds either a plain string (stored under the empty key) or
// a language-keyed object such as {"ru": "...", "en": "..."}.
type LocalizedText map[string]string

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*t = LocalizedText{"": text}
		return nil
	}
	if data[0] == '{' {
		var byLang map[string]any
		if err := json.Unmarshal(data, &byLang); err != nil {
			return err
		}
		out := make(LocalizedText, len(byLang))
		for lang, v := range byLang {
			if text, ok := v.(string); ok {
				out[lang] = text
			}
		}
		*t = out
		return nil
	}
	*t = nil
	return nil
}

// Pick returns the first non-empty value among langs, then the plain string.
func (t LocalizedText) Pick(langs ...string) string {
	for _, lang := range langs {
		if v := strings.TrimSpace(t[lang]); v != "" {
			return v
		}
	}
	return strings.TrimSpace(t[""])
}

// flexInt decodes a JSON number or numeric string. Anything else decodes to
// zero with ok=false.
func flexInt(data json.RawMessage) (int, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false
	}
	var n json.Number
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		n = json.Number(strings.TrimSpace(s))
	} else if err := json.Unmarshal(data, &n); err != nil {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return int(i), true
	}
	if f, err := strconv.ParseFloat(string(n), 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// Package site renders the journey and index pages and writes them out.
package site

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

var (
	themeKeyPattern   = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	themeValuePattern = regexp.MustCompile(`^[#a-zA-Z0-9(),.% ]+$`)
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		// json renders a value as a JavaScript literal inside <script>
		"json": func(v any) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
		// trusted marks author-written scene markup as HTML
		"trusted": func(s string) template.HTML {
			return template.HTML(s)
		},
		"join": func(values []string, sep string) string {
			return strings.Join(values, sep)
		},
		"themeVars": themeVars,
	}
}

// themeVars turns the manifest theme into CSS custom properties. Entries
// with unexpected characters are dropped.
func themeVars(theme map[string]string) template.CSS {
	keys := make([]string, 0, len(theme))
	for k := range theme {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := strings.TrimSpace(theme[k])
		if !themeKeyPattern.MatchString(k) || !themeValuePattern.MatchString(v) {
			continue
		}
		fmt.Fprintf(&b, "--%s: %s; ", k, v)
	}
	return template.CSS(strings.TrimSpace(b.String()))
}

// LoadTemplates parses the embedded page templates. When overrideDir is set,
// any *.html file in it replaces the embedded template of the same name.
func LoadTemplates(overrideDir string) (*template.Template, error) {
	t, err := template.New("site").Funcs(funcMap()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}
	if overrideDir == "" {
		return t, nil
	}

	matches, err := filepath.Glob(filepath.Join(overrideDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", path, err)
		}
		if _, err := t.New(filepath.Base(path)).Parse(string(data)); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", path, err)
		}
	}
	return t, nil
}

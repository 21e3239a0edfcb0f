// Package markup scans the semi-structured narrative text of theatrical
// scenes. It is a best-effort heuristic, not an HTML parser.
//
// Two constructs are recognized:
//
//	bold hint:  <b>WORD (hint)</b>   WORD holds no '(' or '<'; hint holds no ')' or '<'
//	blank:      ___ (hint)           exactly three underscores, one space, hint holds no ')'
//
// Text outside these constructs passes through untouched. Values written
// into HTML attributes are escaped with html.EscapeString.
package markup

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/vytor/lirajourney/internal/textutil"
)

var (
	boldHintPattern = regexp.MustCompile(`<b>([^(<]+)\(([^)<]+)\)</b>`)
	blankPattern    = regexp.MustCompile(`___ \(([^)]+)\)`)
)

// BoldHint is one <b>WORD (hint)</b> occurrence.
type BoldHint struct {
	German string
	Hint   string
}

// BoldHints returns the bold hints of text in order of appearance, with
// whitespace collapsed in both parts. Occurrences with an empty word or hint
// are skipped.
func BoldHints(text string) []BoldHint {
	matches := boldHintPattern.FindAllStringSubmatch(text, -1)
	hints := make([]BoldHint, 0, len(matches))
	for _, m := range matches {
		german := textutil.CollapseWhitespace(m[1])
		hint := textutil.CollapseWhitespace(m[2])
		if german == "" || hint == "" {
			continue
		}
		hints = append(hints, BoldHint{German: german, Hint: hint})
	}
	return hints
}

// Resolver maps a blank's hint to the answer shown in data-answer.
type Resolver func(hint string) string

// ReplaceBlanks substitutes every "___ (hint)" in text with a blank span.
func ReplaceBlanks(text string, resolve Resolver) string {
	return blankPattern.ReplaceAllStringFunc(text, func(match string) string {
		hint := blankPattern.FindStringSubmatch(match)[1]
		return BlankSpan(resolve(hint), hint)
	})
}

// BlankSpan renders a single blank.
func BlankSpan(answer, hint string) string {
	escapedHint := html.EscapeString(hint)
	return fmt.Sprintf(`<span class="blank" data-answer="%s" data-hint="%s">_______ (%s)</span>`,
		html.EscapeString(answer), escapedHint, escapedHint)
}

// QuotedWord returns the first «guillemet-quoted» substring of text, then
// the first "double-quoted" one, trimmed. ok is false when neither exists
// or the quoted text is blank.
func QuotedWord(text string) (word string, ok bool) {
	for _, pair := range [][2]rune{{'«', '»'}, {'"', '"'}} {
		if w, found := between(text, pair[0], pair[1]); found {
			return w, w != ""
		}
	}
	return "", false
}

// between finds the first open...close span with at least one rune inside.
func between(text string, open, close rune) (string, bool) {
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != open {
			continue
		}
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == close {
				if j > i+1 {
					return strings.TrimSpace(string(runes[i+1 : j])), true
				}
				break
			}
		}
	}
	return "", false
}

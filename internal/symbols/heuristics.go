package symbols

import (
	"strings"

	"fxsema/internal/syntax"
)

// Storage/interpolation qualifiers that may leak into the type slot of
// a declaration when the upstream tree is ambiguous.
var modifierWords = map[string]bool{
	"in":              true,
	"out":             true,
	"inout":           true,
	"uniform":         true,
	"const":           true,
	"static":          true,
	"extern":          true,
	"shared":          true,
	"groupshared":     true,
	"volatile":        true,
	"precise":         true,
	"row_major":       true,
	"column_major":    true,
	"linear":          true,
	"centroid":        true,
	"nointerpolation": true,
	"noperspective":   true,
	"sample":          true,
}

// IsModifier reports whether word is a declaration qualifier.
func IsModifier(word string) bool {
	return modifierWords[strings.ToLower(word)]
}

// ExtractNameType recovers a best-effort (name, type) pair from a raw
// declaration token slice. This is an explicit fallback for the cases
// where the upstream tree's own child roles are ambiguous or a
// qualifier keyword leaked into the type slot; it must not be used on
// the primary typed path.
//
// Contract: consider only the tokens before the first ':' or '=',
// drop qualifiers and punctuation, take the last two remaining words
// as (type, name), and append any '[N]' array suffix found in the raw
// range to the type text. Returns ok=false when fewer than two usable
// words remain.
func ExtractNameType(tokens []syntax.Token) (name, typeText string, ok bool) {
	var words []string
	suffix := ""
	for i := 0; i < len(tokens); i++ {
		text := tokens[i].Text
		if text == ":" || text == "=" || text == ";" {
			break
		}
		if text == "[" {
			// Capture the array suffix verbatim up to the closing bracket.
			j := i + 1
			suffix = "["
			for ; j < len(tokens) && tokens[j].Text != "]"; j++ {
				suffix += tokens[j].Text
			}
			suffix += "]"
			i = j
			continue
		}
		if IsModifier(text) || !isWord(text) {
			continue
		}
		words = append(words, text)
	}
	if len(words) < 2 {
		return "", "", false
	}
	name = words[len(words)-1]
	typeText = words[len(words)-2] + suffix
	return name, typeText, true
}

// ArraySuffix returns the '[N]' suffix following the declared name in
// the raw token range, if any.
func ArraySuffix(tokens []syntax.Token, name string) string {
	for i := 0; i < len(tokens); i++ {
		if tokens[i].Text != name {
			continue
		}
		if i+1 < len(tokens) && tokens[i+1].Text == "[" {
			suffix := "["
			for j := i + 2; j < len(tokens) && tokens[j].Text != "]"; j++ {
				suffix += tokens[j].Text
			}
			return suffix + "]"
		}
	}
	return ""
}

func isWord(text string) bool {
	if text == "" {
		return false
	}
	c := text[0]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

package inference

import (
	"errors"
	"strings"
	"unicode"
)

const (
	// MinTextLength is the floor for summarize/keywords/classify inputs.
	MinTextLength = 50
	// MinEmbedTextLength is lower: title plus a short body prefix is enough
	// for a useful embedding.
	MinEmbedTextLength = 20
	// MaxInputLength caps what is sent to the provider.
	MaxInputLength = 30000
)

// ErrInputTooShort marks content rejected before any provider call is made.
var ErrInputTooShort = errors.New("inference: input text too short")

// PrepareInput trims, collapses whitespace runs, rejects inputs below
// minLength and caps the result at MaxInputLength.
func PrepareInput(text string, minLength int) (string, error) {
	collapsed := collapseWhitespace(strings.TrimSpace(text))
	if len(collapsed) < minLength {
		return "", ErrInputTooShort
	}
	if len(collapsed) > MaxInputLength {
		collapsed = collapsed[:MaxInputLength]
	}
	return collapsed, nil
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inRun {
				b.WriteRune(' ')
			}
			inRun = true
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

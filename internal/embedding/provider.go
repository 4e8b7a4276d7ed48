// Package embedding turns skill text into vectors for semantic search.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxInputChars bounds the text sent to a provider.
const MaxInputChars = 8000

// ErrUnavailable reports that no vector could be produced after all attempts.
var ErrUnavailable = errors.New("embedding unavailable")

var ErrEmptyText = errors.New("text must not be empty")

type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
	Dimensions() int
}

// Truncate trims text to MaxInputChars runes.
func Truncate(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= MaxInputChars {
		return text
	}
	r := []rune(text)
	return string(r[:MaxInputChars])
}

func checkDimensions(v []float32, want int) error {
	if len(v) == 0 {
		return errors.New("empty embedding")
	}
	if want > 0 && len(v) != want {
		return &DimensionError{Got: len(v), Want: want}
	}
	return nil
}

type DimensionError struct {
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: got %d, want %d", e.Got, e.Want)
}

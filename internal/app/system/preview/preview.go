// Package preview derives short display strings from note content.
//
// All functions are pure: they never touch stored state and are safe to call
// from templates, handlers, and the document-title projection.
package preview

import (
	"strings"

	"github.com/dalemusser/stratanote/internal/domain/models"
)

// MaxLength is the default maximum number of visible characters in a preview.
const MaxLength = 30

// EmptyLabel is the sentinel preview for empty or whitespace-only content.
const EmptyLabel = "Empty note"

// Text returns a short preview of content: whitespace is trimmed, internal
// runs of whitespace collapse to single spaces, and the result is truncated
// to max runes with an ellipsis suffix when it does not fit.
func Text(content string, max int) string {
	collapsed := strings.Join(strings.Fields(content), " ")
	if collapsed == "" {
		return EmptyLabel
	}

	runes := []rune(collapsed)
	if len(runes) <= max {
		return collapsed
	}
	return string(runes[:max]) + "…"
}

// Title returns the document-title projection for the given content,
// in the form "<preview> - StrataNote".
func Title(content string) string {
	return Text(content, MaxLength) + " - " + models.AppName
}

// NoFileTitle is the document title when no file is current.
func NoFileTitle() string {
	return models.AppName
}

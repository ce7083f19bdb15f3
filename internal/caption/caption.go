// Package caption generates and composes the text written alongside each
// cropped image.
package caption

import (
	"context"
	"image"
	"strings"
)

// Captioner produces a short description of an image.
type Captioner interface {
	Caption(ctx context.Context, img image.Image) (string, error)
}

// Disabled returns no caption. Used when no model backend is configured.
type Disabled struct{}

// Caption implements Captioner.
func (Disabled) Caption(context.Context, image.Image) (string, error) { return "", nil }

// Compose joins the operator's global tags with a generated phrase for the
// editable caption field.
func Compose(tags, phrase string) string {
	tags = strings.TrimSpace(tags)
	phrase = strings.TrimSpace(phrase)
	switch {
	case tags == "":
		return phrase
	case phrase == "":
		return tags
	default:
		return tags + ", " + phrase
	}
}

// EnsureTags appends the global tags to the final caption when the
// operator edited them out, so every saved caption carries them exactly
// once.
func EnsureTags(text, tags string) string {
	text = strings.TrimSpace(text)
	tags = strings.TrimSpace(tags)
	if tags == "" || strings.Contains(text, tags) {
		return text
	}
	return strings.Trim(text+", "+tags, ", ")
}

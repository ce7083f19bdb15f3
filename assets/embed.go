// Package assets carries the prompt templates sent to the vision models.
package assets

import (
	"embed"
	"log"
	"strings"
	"sync"
)

//go:embed prompts/*.txt
var prompts embed.FS

var (
	loadOnce      sync.Once
	suggestPrompt string
	captionPrompt string
)

func load() {
	suggestPrompt = mustRead("prompts/suggest.txt")
	captionPrompt = mustRead("prompts/caption.txt")
}

func mustRead(name string) string {
	data, err := prompts.ReadFile(name)
	if err != nil {
		log.Fatalf("embedded prompt %s: %v", name, err)
	}
	return strings.TrimSpace(string(data))
}

// SuggestPrompt returns the subject-detection prompt.
func SuggestPrompt() string {
	loadOnce.Do(load)
	return suggestPrompt
}

// CaptionPrompt returns the captioning prompt.
func CaptionPrompt() string {
	loadOnce.Do(load)
	return captionPrompt
}

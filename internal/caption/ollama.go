package caption

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/example/croptag/assets"
)

const requestTimeout = 120 * time.Second

// Ollama captions images through a vision model on an Ollama server.
type Ollama struct {
	client *api.Client
	model  string
}

// NewOllama creates a captioner backed by the Ollama server at rawURL.
func NewOllama(rawURL, model string) (*Ollama, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("ollama url: %w", err)
	}
	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	return &Ollama{client: api.NewClient(base, http.DefaultClient), model: model}, nil
}

// Caption implements Captioner.
func (o *Ollama) Caption(ctx context.Context, img image.Image) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, requestTimeout)
		defer cancel()
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	stream := false
	req := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{{
			Role:    "user",
			Content: assets.CaptionPrompt(),
			Images:  []api.ImageData{buf.Bytes()},
		}},
		Stream: &stream,
	}

	var reply strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	return Clean(reply.String()), nil
}

// Clean flattens a model reply into a single-line caption: quotes and
// markdown emphasis stripped, whitespace collapsed.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`*")
	return strings.Join(strings.Fields(s), " ")
}

package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/example/croptag/assets"
	"github.com/example/croptag/internal/geometry"
)

// DefaultPadPx is the breathing room added around the detected subject.
const DefaultPadPx = 300

const minConfidence = 0.4

const requestTimeout = 120 * time.Second

// subjectReport mirrors the JSON the vision model is prompted to return.
// Box coordinates are normalized to [0,1].
type subjectReport struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		W float64 `json:"w"`
		H float64 `json:"h"`
	} `json:"box"`
}

// Ollama asks a vision model for the primary subject of the image and
// turns the reply into a padded square crop suggestion.
type Ollama struct {
	client *api.Client
	model  string
	pad    int
}

// NewOllama creates a suggester backed by the Ollama server at rawURL.
func NewOllama(rawURL, model string, pad int) (*Ollama, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("ollama url: %w", err)
	}
	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	if pad < 0 {
		pad = DefaultPadPx
	}
	return &Ollama{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
		pad:    pad,
	}, nil
}

// Suggest implements Suggester. Unusable model output means "no
// suggestion", not an error; only transport failures are reported.
func (o *Ollama) Suggest(ctx context.Context, img image.Image, sideMax int) (geometry.Box, bool, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, requestTimeout)
		defer cancel()
	}

	data, err := encodeJPEG(img)
	if err != nil {
		return geometry.Box{}, false, err
	}

	stream := false
	req := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{{
			Role:    "user",
			Content: assets.SuggestPrompt(),
			Images:  []api.ImageData{data},
		}},
		Stream: &stream,
	}

	var raw strings.Builder
	err = o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		raw.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return geometry.Box{}, false, fmt.Errorf("ollama chat: %w", err)
	}

	report, ok := parseSubjectReport(raw.String())
	if !ok || report.Confidence < minConfidence || report.Box.W <= 0 || report.Box.H <= 0 {
		return geometry.Box{}, false, nil
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	box := PadSquare(
		int(report.Box.X*float64(w)),
		int(report.Box.Y*float64(h)),
		int(report.Box.W*float64(w)),
		int(report.Box.H*float64(h)),
		o.pad, sideMax, w, h,
	)
	return box, true, nil
}

// parseSubjectReport extracts the subject JSON from a model reply that may
// be wrapped in prose or code fences. ok is false when no usable JSON is
// present.
func parseSubjectReport(raw string) (subjectReport, bool) {
	raw = sanitizeModelJSON(raw)
	if !strings.HasPrefix(raw, "{") {
		return subjectReport{}, false
	}
	var report subjectReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return subjectReport{}, false
	}
	return report, true
}

// sanitizeModelJSON strips code fences and trailing commas and keeps only
// the outermost JSON object.
func sanitizeModelJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.Trim(strings.TrimSpace(raw), "`")

	raw = trailingComma.ReplaceAllString(raw, "$1")

	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

package main

import (
	"flag"
	"fmt"

	"github.com/example/croptag/internal/appstate"
	"github.com/example/croptag/internal/caption"
	"github.com/example/croptag/internal/library"
	"github.com/example/croptag/internal/persist"
	"github.com/example/croptag/internal/suggest"
)

type reviewCmd struct {
	*root
	fs        *flag.FlagSet
	input     string
	output    string
	size      int
	tags      string
	suggested bool
	captioned bool
}

func parseReviewCmd(args []string, r *root) (*reviewCmd, error) {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	cmd := &reviewCmd{root: r.subcommand("review"), fs: fs}
	cfg := r.settings
	fs.StringVar(&cmd.input, "input", cfg.InputFolder, "folder containing the source images")
	fs.StringVar(&cmd.output, "output", cfg.OutputFolder, "folder that receives the cropped images and captions")
	fs.IntVar(&cmd.size, "size", cfg.CropSize, "side length of the saved square crops in pixels")
	fs.StringVar(&cmd.tags, "tags", cfg.GlobalTags, "comma separated tags prepended to every caption")
	fs.BoolVar(&cmd.suggested, "suggest", cfg.Ollama.Suggest, "ask the vision model for an initial crop suggestion")
	fs.BoolVar(&cmd.captioned, "caption", cfg.Ollama.Caption, "ask the caption model to describe each image")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *reviewCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *reviewCmd) Run() error {
	session, err := library.NewSession(c.input)
	if err != nil {
		return fmt.Errorf("failed to open image folder: %w", err)
	}
	writer, err := persist.NewWriter(c.output, c.size)
	if err != nil {
		return fmt.Errorf("failed to prepare output folder: %w", err)
	}

	suggester, captioner, err := c.root.models(c.suggested, c.captioned)
	if err != nil {
		return err
	}

	cfg := *c.root.settings
	cfg.InputFolder = c.input
	cfg.OutputFolder = c.output
	cfg.CropSize = c.size
	cfg.GlobalTags = c.tags

	app := appstate.New(
		appstate.WithSession(session),
		appstate.WithWriter(writer),
		appstate.WithSuggester(suggester),
		appstate.WithCaptioner(captioner),
		appstate.WithNotifier(c.root.notifier),
		appstate.WithTheme(c.root.activeTheme),
		appstate.WithSettings(cfg),
	)
	app.Run()
	return nil
}

// models builds the suggestion and caption providers from the settings,
// falling back to the disabled implementations when the flags are off.
func (r *root) models(suggested, captioned bool) (suggest.Suggester, caption.Captioner, error) {
	var suggester suggest.Suggester = suggest.Disabled{}
	var captioner caption.Captioner = caption.Disabled{}
	cfg := r.settings
	if suggested {
		s, err := suggest.NewOllama(cfg.Ollama.URL, cfg.Ollama.VisionModel, cfg.Ollama.PadPx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect vision model: %w", err)
		}
		suggester = s
	}
	if captioned {
		c, err := caption.NewOllama(cfg.Ollama.URL, cfg.Ollama.CaptionModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect caption model: %w", err)
		}
		captioner = c
	}
	return suggester, captioner, nil
}

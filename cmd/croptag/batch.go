package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/example/croptag/internal/caption"
	"github.com/example/croptag/internal/geometry"
	"github.com/example/croptag/internal/library"
	"github.com/example/croptag/internal/persist"
	"github.com/example/croptag/internal/suggest"
)

type batchCmd struct {
	*root
	fs        *flag.FlagSet
	input     string
	output    string
	size      int
	tags      string
	workers   int
	suggested bool
	captioned bool
}

func parseBatchCmd(args []string, r *root) (*batchCmd, error) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	cmd := &batchCmd{root: r.subcommand("batch"), fs: fs}
	cfg := r.settings
	fs.StringVar(&cmd.input, "input", cfg.InputFolder, "folder containing the source images")
	fs.StringVar(&cmd.output, "output", cfg.OutputFolder, "folder that receives the cropped images and captions")
	fs.IntVar(&cmd.size, "size", cfg.CropSize, "side length of the saved square crops in pixels")
	fs.StringVar(&cmd.tags, "tags", cfg.GlobalTags, "comma separated tags prepended to every caption")
	fs.IntVar(&cmd.workers, "workers", 4, "number of images processed in parallel")
	fs.BoolVar(&cmd.suggested, "suggest", cfg.Ollama.Suggest, "ask the vision model for a crop suggestion per image")
	fs.BoolVar(&cmd.captioned, "caption", cfg.Ollama.Caption, "ask the caption model to describe each image")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.workers < 1 {
		return nil, fmt.Errorf("workers must be positive, got %d", cmd.workers)
	}
	return cmd, nil
}

func (c *batchCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *batchCmd) Run() error {
	paths, err := library.List(c.input)
	if err != nil {
		return fmt.Errorf("failed to open image folder: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images found in %s", c.input)
	}
	writer, err := persist.NewWriter(c.output, c.size)
	if err != nil {
		return fmt.Errorf("failed to prepare output folder: %w", err)
	}
	suggester, captioner, err := c.root.models(c.suggested, c.captioned)
	if err != nil {
		return err
	}

	var saved, failed atomic.Int64

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(c.workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := c.process(ctx, path, writer, suggester, captioner); err != nil {
				log.Printf("batch %s: %v", filepath.Base(path), err)
				failed.Add(1)
				return nil
			}
			saved.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d of %d images saved", saved.Load(), len(paths))
	if failed.Load() > 0 {
		summary += fmt.Sprintf(", %d failed", failed.Load())
	}
	fmt.Fprintln(os.Stdout, summary)
	if c.root.notifier != nil {
		c.root.notifier.Batch(summary)
	}
	if failed.Load() > 0 {
		return fmt.Errorf("%d images failed", failed.Load())
	}
	return nil
}

func (c *batchCmd) process(ctx context.Context, path string, writer *persist.Writer, suggester suggest.Suggester, captioner caption.Captioner) error {
	img, err := library.Load(path)
	if err != nil {
		return err
	}
	b := img.Bounds()
	bounds := geometry.Bounds{Width: b.Dx(), Height: b.Dy()}
	sideMax := bounds.Width
	if bounds.Height < sideMax {
		sideMax = bounds.Height
	}

	var suggestion *geometry.Box
	if box, ok, err := suggester.Suggest(ctx, img, sideMax); err != nil {
		log.Printf("suggest %s: %v", filepath.Base(path), err)
	} else if ok {
		suggestion = &box
	}

	crop, err := geometry.New(bounds, c.size, suggestion,
		geometry.WithMinSide(c.root.settings.MinSide))
	if err != nil {
		return err
	}

	phrase := ""
	if text, err := captioner.Caption(ctx, img); err != nil {
		log.Printf("caption %s: %v", filepath.Base(path), err)
	} else {
		phrase = text
	}
	text := caption.EnsureTags(caption.Compose(c.tags, phrase), c.tags)

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	_, err = writer.Save(img, crop.Current(), stem, text)
	return err
}

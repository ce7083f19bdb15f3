package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/example/croptag/internal/library"
)

type listCmd struct {
	*root
	fs     *flag.FlagSet
	input  string
	output string
}

func parseListCmd(args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	cmd := &listCmd{root: r.subcommand("list"), fs: fs}
	cfg := r.settings
	fs.StringVar(&cmd.input, "input", cfg.InputFolder, "folder containing the source images")
	fs.StringVar(&cmd.output, "output", cfg.OutputFolder, "output folder checked for already saved crops")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *listCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *listCmd) Run() error {
	paths, err := library.List(c.input)
	if err != nil {
		return fmt.Errorf("failed to open image folder: %w", err)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stdout, "no images found")
		return nil
	}
	fmt.Fprintln(os.Stdout, "available images (* marks images already saved):")
	for idx, path := range paths {
		marker := " "
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if _, err := os.Stat(filepath.Join(c.output, stem+".png")); err == nil {
			marker = "*"
		}
		dims := "?"
		if f, err := os.Open(path); err == nil {
			if cfg, _, err := image.DecodeConfig(f); err == nil {
				dims = fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
			}
			f.Close()
		}
		fmt.Fprintf(os.Stdout, "%s %3d: %-40s %s\n", marker, idx+1, filepath.Base(path), dims)
	}
	return nil
}

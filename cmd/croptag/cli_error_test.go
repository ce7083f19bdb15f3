package main

import (
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/example/croptag/internal/config"
)

func testRoot() *root {
	return &root{
		fs:       flag.NewFlagSet("croptag", flag.ContinueOnError),
		program:  "croptag",
		settings: config.Default(),
	}
}

func TestRootRunWithoutCommand(t *testing.T) {
	r := testRoot()
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRootRunUnknownCommand(t *testing.T) {
	r := testRoot()
	err := r.Run([]string{"bogus"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestUsageErrorRendersRootHelp(t *testing.T) {
	err := &UsageError{of: testRoot()}
	help := err.Error()
	if !strings.Contains(help, "Usage: croptag") {
		t.Errorf("expected help to contain usage line, got %q", help)
	}
	for _, cmd := range []string{"review", "batch", "list", "config", "version"} {
		if !strings.Contains(help, cmd) {
			t.Errorf("expected help to mention %q", cmd)
		}
	}
}

func TestParseReviewRejectsPositionalArgs(t *testing.T) {
	_, err := parseReviewCmd([]string{"extra"}, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "review window") {
		t.Errorf("expected review help text, got %q", err.Error())
	}
}

func TestParseBatchRejectsBadWorkers(t *testing.T) {
	_, err := parseBatchCmd([]string{"-workers", "0"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "workers must be positive"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestBatchRunEmptyFolder(t *testing.T) {
	cmd := &batchCmd{
		root:    testRoot(),
		input:   t.TempDir(),
		output:  t.TempDir(),
		size:    64,
		workers: 1,
	}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "no images found"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestConfigRunUnknownSubcommand(t *testing.T) {
	cmd, err := parseConfigCmd([]string{"frobnicate"}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "unknown config command"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

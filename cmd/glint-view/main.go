// Package main is a terminal viewer for the glint layout engine. It
// renders a document through the engine one frame at a time, with the
// terminal cell grid standing in for pixels.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dshills/glint/internal/display/displaytest"
	"github.com/dshills/glint/internal/settings"
)

func main() {
	os.Exit(run())
}

func run() int {
	var settingsPath string
	var logPath string
	flag.StringVar(&settingsPath, "settings", "", "Path to a JSON settings file")
	flag.StringVar(&logPath, "log", "", "Path to a diagnostics log file")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal")
		return 1
	}

	cfg := settings.Default()
	if settingsPath != "" {
		doc, err := os.ReadFile(settingsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read settings: %v\n", err)
			return 1
		}
		cfg, err = settings.Parse(doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: parse settings: %v\n", err)
			return 1
		}
	}

	logger := zap.NewNop()
	if logPath != "" {
		lc := zap.NewProductionConfig()
		lc.OutputPaths = []string{logPath}
		built, err := lc.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log: %v\n", err)
			return 1
		}
		logger = built
		defer logger.Sync() //nolint:errcheck
	}

	source, err := loadSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	viewer, err := newViewer(source, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer viewer.Close()

	if err := viewer.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadSource reads a file into a display source, or builds a sample
// document when no path is given.
func loadSource(path string) (*displaytest.Source, error) {
	if path == "" {
		return displaytest.SingleExcerpt(displaytest.SampleText(200, 60, 'a')...), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	return displaytest.SingleExcerpt(lines...), nil
}

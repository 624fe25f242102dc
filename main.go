package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"nowplaying/internal/app"
	"nowplaying/internal/config"
	"nowplaying/internal/media"
	"nowplaying/internal/output"
	"nowplaying/internal/platform"
	"nowplaying/internal/provider"
)

func main() {
	formatFlag := flag.String("format", "", "output format: text, json, yaml, markdown")
	watchFlag := flag.Bool("watch", false, "keep running and refresh the display")
	intervalFlag := flag.Duration("interval", 0, "watch-mode refresh interval (e.g. 500ms)")
	verboseFlag := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "nowplaying: %v\n", err)
		os.Exit(1)
	}

	if cfg.HelperPath != "" {
		platform.SetHelperPath(cfg.HelperPath)
	}

	formatName := cfg.Format
	if *formatFlag != "" {
		formatName = *formatFlag
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nowplaying: %v\n", err)
		os.Exit(1)
	}

	interval := cfg.PollInterval()
	if *intervalFlag > 0 {
		interval = *intervalFlag
	}
	if interval < 250*time.Millisecond {
		interval = 250 * time.Millisecond
	}

	p := provider.New(platform.Fetch, logger)

	if *watchFlag {
		if err := runWatch(p, interval); err != nil {
			fmt.Fprintf(os.Stderr, "nowplaying: %v\n", err)
			os.Exit(1)
		}
		return
	}

	os.Exit(runOnce(p, format))
}

// runOnce performs a single fetch and prints the result. Nothing playing is
// a normal outcome, not a failure.
func runOnce(p *provider.Provider, format output.Format) int {
	if err := p.Collect(); err != nil {
		if errors.Is(err, media.ErrNotPlaying) {
			fmt.Println("Nothing playing.")
			return 0
		}
		fmt.Fprintf(os.Stderr, "nowplaying: %s: %v\n", media.CodeOf(err), err)
		return 1
	}

	info, _ := p.Current()
	rendered, err := output.Render(info, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nowplaying: %v\n", err)
		return 1
	}
	fmt.Println(rendered)
	return 0
}

func runWatch(p *provider.Provider, interval time.Duration) error {
	program := tea.NewProgram(app.New(p, interval), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run watch UI: %w", err)
	}
	return nil
}

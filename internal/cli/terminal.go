package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// ANSI color codes
const (
	ColorReset = "\033[0m"
	ColorGreen = "\033[32m"
	ColorCyan  = "\033[36m"
)

// Spinner frames for animated progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Terminal provides terminal-aware output utilities
type Terminal struct {
	IsTerminal   bool
	UseColor     bool
	out          io.Writer
	spinnerIndex int
}

// NewTerminal creates a new Terminal instance
func NewTerminal() *Terminal {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal, // Only use color in terminal
		out:        os.Stdout,
	}
}

// ClearLine clears the current line (terminal only)
func (t *Terminal) ClearLine() {
	if t.IsTerminal {
		fmt.Fprint(t.out, "\r\033[K")
	}
}

// Spinner returns the next spinner frame
func (t *Terminal) Spinner() string {
	if !t.IsTerminal {
		return ""
	}
	frame := spinnerFrames[t.spinnerIndex]
	t.spinnerIndex = (t.spinnerIndex + 1) % len(spinnerFrames)
	return frame
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// Reveal animates a spinner with the given label for d, then clears it.
// It returns early when ctx is cancelled and does nothing off a terminal.
func (t *Terminal) Reveal(ctx context.Context, label string, d time.Duration) {
	if !t.IsTerminal || d <= 0 {
		return
	}

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		t.ClearLine()
		fmt.Fprintf(t.out, "%s %s", t.Color(ColorCyan, t.Spinner()), label)

		select {
		case <-ctx.Done():
			t.ClearLine()
			return
		case <-timer.C:
			t.ClearLine()
			return
		case <-ticker.C:
		}
	}
}

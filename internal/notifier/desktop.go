package notifier

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/gen2brain/beeep"
)

// Runner executes an external command. Swapped out in tests.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the command and folds its stderr into the error.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// RichSink shows a macOS notification that opens the posting when clicked,
// via terminal-notifier.
type RichSink struct {
	run  Runner
	icon string
}

func NewRichSink(run Runner, icon string) *RichSink {
	return &RichSink{run: run, icon: icon}
}

func (s *RichSink) Name() string { return "terminal-notifier" }

func (s *RichSink) Send(ctx context.Context, a Alert) error {
	args := []string{"-title", a.Title, "-message", a.Body, "-open", a.Link}
	if s.icon != "" {
		args = append(args, "-appIcon", s.icon)
	}
	return s.run(ctx, "terminal-notifier", args...)
}

// NotifyFunc raises a plain desktop popup. BeeepNotify in production.
type NotifyFunc func(title, message, icon string) error

// BeeepNotify delivers through beeep: osascript on macOS, D-Bus or
// notify-send on Linux and the BSDs, toast notifications on Windows.
func BeeepNotify(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

// BasicSink shows a plain popup without click-through.
type BasicSink struct {
	notify NotifyFunc
	icon   string
}

func NewBasicSink(notify NotifyFunc, icon string) *BasicSink {
	return &BasicSink{notify: notify, icon: icon}
}

func (s *BasicSink) Name() string { return "basic" }

func (s *BasicSink) Send(ctx context.Context, a Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.notify(a.Title, a.Body, s.icon); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}

// Probe inspects the host once and returns the desktop chain in fallback
// order: rich, then basic, then console. lookPath is usually exec.LookPath.
func Probe(goos string, lookPath func(string) (string, error), run Runner, notify NotifyFunc, icon string, logger *slog.Logger) []Sink {
	has := func(bins ...string) bool {
		for _, bin := range bins {
			if _, err := lookPath(bin); err == nil {
				return true
			}
		}
		return false
	}

	var chain []Sink
	switch goos {
	case "darwin":
		if has("terminal-notifier") {
			chain = append(chain, NewRichSink(run, icon))
		}
		if has("osascript") {
			chain = append(chain, NewBasicSink(notify, icon))
		}
	case "linux", "freebsd", "openbsd", "netbsd":
		if has("notify-send", "kdialog") {
			chain = append(chain, NewBasicSink(notify, ""))
		}
	case "windows":
		if has("powershell", "pwsh") {
			chain = append(chain, NewBasicSink(notify, ""))
		}
	}
	if len(chain) == 0 {
		logger.Info("no desktop notification capability found, using console output only", "os", goos)
	}
	return append(chain, NewConsoleSink(logger))
}

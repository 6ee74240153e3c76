package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/woodhull/taskmgr/internal/interp"
	"github.com/woodhull/taskmgr/internal/logging"
)

// MaxLineLength is the longest accepted command line, in characters. A
// line of exactly this length still tokenizes; anything longer fails with
// TooLongLine before any tokenization.
const MaxLineLength = 1024

// maxScanBuffer bounds the scanner's line buffer. Well above
// MaxLineLength so over-long lines are rejected by the protocol, not by
// the scanner.
const maxScanBuffer = 1024 * 1024

// Stats summarizes one replay.
type Stats struct {
	// Lines is the number of lines read, including skipped ones.
	Lines int
	// Commands is the number of lines that reached the interpreter or
	// failed the length check.
	Commands int
	// Failures is the number of commands that rendered an error line.
	Failures int
}

// Runner replays command files through an interpreter.
type Runner struct {
	interp *interp.Interp
	logger *slog.Logger
}

// New creates a Runner. A nil logger discards logs.
func New(in *interp.Interp, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{interp: in, logger: logger}
}

// RunFile replays the command file at path, writing protocol output to w.
// The returned error is non-nil only when the file cannot be read;
// per-line failures are rendered into w and counted in Stats.
func (r *Runner) RunFile(ctx context.Context, path string, w io.Writer) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("input file not found: %s", path)
	}
	defer f.Close()

	stats := r.Run(ctx, f, w)
	r.logger.Info("replay finished",
		logging.File(path),
		slog.Int(logging.KeyLines, stats.Lines),
		slog.Int(logging.KeyCommands, stats.Commands),
		slog.Int(logging.KeyFailures, stats.Failures),
	)
	return stats, nil
}

// Run replays command lines from src, writing protocol output to w.
func (r *Runner) Run(ctx context.Context, src io.Reader, w io.Writer) Stats {
	var stats Stats

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxScanBuffer)

	for scanner.Scan() {
		line := scanner.Text()
		stats.Lines++

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		// The length check precedes the comment check: an over-long
		// comment line is still rejected.
		if utf8.RuneCountInString(line) > MaxLineLength {
			stats.Commands++
			stats.Failures++
			interp.WriteError(w, interp.KindTooLongLine, line)
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		stats.Commands++
		if kind := r.interp.Execute(ctx, w, line); kind != "" {
			stats.Failures++
		}
	}
	if err := scanner.Err(); err != nil {
		r.logger.Warn("stopped reading input", logging.Err(err))
	}

	return stats
}

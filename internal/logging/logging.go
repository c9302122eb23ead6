package logger

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled diagnostic output for the command-line surface.
// It must never be reached from the clean/smudge/diff code paths' own
// standard output, since the host VCS treats that stream as file
// content — see internal/filter/doc.go.
type Logger struct {
	Verbose bool
	Debug   bool
}

// level pairs a tag and color with the stream it writes to, so the four
// Logger methods below are dispatch, not four copies of the same
// Fprintf/color-function call.
type level struct {
	tag   string
	paint *color.Color
	out   *os.File
}

var (
	levelInfo  = level{"info", color.New(color.FgGreen), os.Stdout}
	levelDebug = level{"debug", color.New(color.FgCyan), os.Stdout}
	levelWarn  = level{"warn", color.New(color.FgYellow), os.Stderr}
	levelErr   = level{"error", color.New(color.FgRed), os.Stderr}
)

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose {
		log(levelInfo, msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		log(levelDebug, msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	log(levelWarn, msg, args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	log(levelErr, msg, args...)
}

func log(lv level, msg string, args ...any) {
	fmt.Fprintf(lv.out, lv.paint.Sprintf("[%s] ", lv.tag)+msg+"\n", args...)
}

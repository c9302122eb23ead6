package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text: a color when the
// terminal supports it, or a plain-text decoration (quotes, brackets,
// backticks) as a substitute when it doesn't.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// decorated constructs a Formatter that paints text c when color is
// available and wraps it in prefix/suffix otherwise.
func decorated(c color.Attribute, prefix, suffix string) Formatter {
	return Formatter{color: color.New(c), prefix: prefix, suffix: suffix}
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	// Check NO_COLOR environment variable (https://no-color.org/).
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	// Also respect fatih/color's detection (terminal capability, TERM=dumb, etc.).
	return color.NoColor
}

// Semantic formatters for CLI output. Every command prints through one
// of these rather than calling fatih/color directly, so a NO_COLOR
// session still reads clearly from decoration alone.
var (
	// Code formats a runnable git-crypt command, e.g. "git-crypt unlock".
	Code = decorated(color.FgYellow, "`", "`")

	// Path formats a file or working-tree path, e.g. a key file location.
	// No decoration without color: paths are self-evident.
	Path = decorated(color.FgYellow, "", "")

	// Flag formats a CLI flag like --key-name.
	// No decoration without color: the -- prefix is sufficient.
	Flag = decorated(color.FgYellow, "", "")

	// Success formats a completed-operation indicator.
	Success = decorated(color.FgGreen, "", "")

	// Error formats a failed-operation indicator.
	Error = decorated(color.FgRed, "", "")

	// Warning formats a precondition or inconsistency worth the user's
	// attention without failing the command, e.g. a path bound to a key
	// that isn't installed.
	Warning = decorated(color.FgYellow, "", "")

	// Info formats an informational hint or directional indicator.
	Info = decorated(color.FgCyan, "", "")

	// Highlight formats an emphasized domain value: a key name or a key
	// version number.
	Highlight = decorated(color.FgCyan, "'", "'")

	// Muted formats de-emphasized or secondary text, e.g. a path with no
	// filter binding.
	Muted = decorated(color.FgHiBlack, "(", ")")
)

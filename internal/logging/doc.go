// Package logger provides structured logging for the CLI.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic colors from the fatih/color
// package. Infof (only when verbose) and Debugf (only when debug) write to
// stdout; Warnf and Errorf always write to stderr.
//
// # Verbosity Levels
//
//   - --verbose: shows info messages
//   - --debug: shows debug messages
//
// Without flags, only warnings and errors are shown.
//
// # Filter-driver caveat
//
// clean, smudge, and diff write their payload to stdout and nothing else;
// the host VCS treats stdout as the file's content. A Logger used inside
// those code paths must never be configured to write to stdout — only
// Warnf/Errorf (stderr) are safe there, and even those should be used
// sparingly since malformed stderr output can confuse scripted callers.
package logger

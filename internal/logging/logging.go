package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"
)

var logfile *os.File
var verbose bool

// out receives terminal diagnostics. Stdout is reserved for search results.
var out io.Writer = os.Stderr

// colored is set only when out is a terminal.
var colored = isTerminal(os.Stderr)

func init() { log.SetOutput(io.Discard) }

// Init opens <dir>/logs/ytmsearch.log and mirrors every message into it.
// On error messages still reach the terminal but nothing is mirrored.
func Init(dir string) error {
	Close()
	p := filepath.Join(dir, "logs")
	if err := os.MkdirAll(p, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(p, "ytmsearch.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logfile = f
	log.SetOutput(f)
	return nil
}

func Close() {
	if logfile != nil {
		_ = logfile.Close()
		logfile = nil
	}
	log.SetOutput(io.Discard)
}

// SetOutput redirects terminal diagnostics.
func SetOutput(w io.Writer) {
	out = w
	colored = isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func color(code, s string) string {
	if !colored {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func Success(msg string) {
	_, _ = fmt.Fprintln(out, color("32", msg))
	log.Println(msg)
}

func Warn(msg string) {
	_, _ = fmt.Fprintln(out, color("33", msg))
	log.Println("[WARN] " + msg)
}

func Error(msg string) {
	_, _ = fmt.Fprintln(out, color("31", msg))
	log.Println("[ERROR] " + msg)
}

// SetVerbose toggles verbose output.
func SetVerbose(v bool) { verbose = v }

// Debug prints only when verbose mode is enabled.
func Debug(msg string) {
	if !verbose {
		return
	}
	_, _ = fmt.Fprintln(out, color("90", msg))
	log.Println("[DEBUG] " + msg)
}

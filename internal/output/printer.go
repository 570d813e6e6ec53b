// ABOUTME: Terminal output for CLI commands
// ABOUTME: Colored status lines via fatih/color with NO_COLOR and --color support

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ColorMode represents color output mode
type ColorMode int

const (
	// ColorAuto enables colors based on environment
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever forces colors off
	ColorNever
)

// ParseColorMode parses a --color value
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors decides whether to color output written to out
func ResolveColors(mode ColorMode, out io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Printer writes formatted lines to out and err
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer
func NewPrinter(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: errOut, useColors: useColors}
}

// Out returns the standard output writer
func (p *Printer) Out() io.Writer { return p.out }

func (p *Printer) colored(w io.Writer, attr color.Attribute, prefix, plain, format string, args ...any) {
	if p.useColors {
		c := color.New(attr)
		c.EnableColor()
		c.Fprintf(w, prefix+format+"\n", args...)
		return
	}
	fmt.Fprintf(w, plain+format+"\n", args...)
}

// Info prints an informational line
func (p *Printer) Info(format string, args ...any) {
	p.colored(p.out, color.FgCyan, "", "", format, args...)
}

// Success prints a success line
func (p *Printer) Success(format string, args ...any) {
	p.colored(p.out, color.FgGreen, "✓ ", "[OK] ", format, args...)
}

// Warning prints a warning line to err
func (p *Printer) Warning(format string, args ...any) {
	p.colored(p.err, color.FgYellow, "⚠ ", "[WARN] ", format, args...)
}

// Error prints an error line to err
func (p *Printer) Error(format string, args ...any) {
	p.colored(p.err, color.FgRed, "✗ ", "[ERROR] ", format, args...)
}

// Print prints a plain line
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints a section header with an underline
func (p *Printer) Header(title string) {
	if p.useColors {
		c := color.New(color.FgWhite, color.Bold)
		c.EnableColor()
		c.Fprintf(p.out, "\n%s\n", title)
		fmt.Fprintf(p.out, "%s\n", strings.Repeat("─", len([]rune(title))))
		return
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
}

// Bold returns text in bold when colors are on
func (p *Printer) Bold(text string) string {
	if !p.useColors {
		return text
	}
	c := color.New(color.Bold)
	c.EnableColor()
	return c.Sprint(text)
}

// Dim returns dimmed text when colors are on
func (p *Printer) Dim(text string) string {
	if !p.useColors {
		return text
	}
	c := color.New(color.Faint)
	c.EnableColor()
	return c.Sprint(text)
}

// StatusBadge renders a study session status
func (p *Printer) StatusBadge(status string) string {
	if !p.useColors {
		return fmt.Sprintf("[%s]", status)
	}
	var c *color.Color
	switch status {
	case "completed", "healthy":
		c = color.New(color.FgGreen)
	case "failed", "error":
		c = color.New(color.FgRed)
	case "processing", "pending":
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgWhite)
	}
	c.EnableColor()
	return c.Sprint("● " + status)
}

// JSON writes v as indented JSON
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package prettyprinter

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

// Style colors report text. The zero value and Plain print text unchanged.
type Style struct {
	color bool
}

func Plain() *Style { return &Style{} }

func Colored() *Style { return &Style{color: true} }

// DetectStyle colors output only for terminals that support it.
func DetectStyle(f *os.File) *Style {
	return &Style{color: colorSupported(f)}
}

func colorSupported(f *os.File) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if f == nil {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func (s *Style) paint(code, text string) string {
	if s == nil || !s.color || text == "" {
		return text
	}
	return code + text + ansiReset
}

func (s *Style) Comment(text string) string { return s.paint(ansiGray, text) }
func (s *Style) Error(text string) string   { return s.paint(ansiRed, text) }
func (s *Style) OK(text string) string      { return s.paint(ansiGreen, text) }
func (s *Style) Bold(text string) string    { return s.paint(ansiBold, text) }

// StripANSI removes the escape codes added by a colored style.
func StripANSI(s string) string {
	for _, code := range []string{ansiReset, ansiRed, ansiGreen, ansiGray, ansiBold} {
		s = strings.ReplaceAll(s, code, "")
	}
	return s
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/fuellog/internal/client/models"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// interactive reports whether stdin is a terminal. Scripted sessions
// (stdin redirected from a file or pipe) get no prompt decoration.
func interactive() bool {
	return isTerminal(int(os.Stdin.Fd()))
}

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetTextDefault is GetSimpleText with a default shown in brackets and
// returned for an empty answer.
func GetTextDefault(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// GetNumber reads an optional number. Empty input yields nil; anything that
// does not parse is asked again.
func GetNumber(reader *bufio.Reader, prompt string, w io.Writer) (*float64, error) {
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		if v := models.ParseNumber(s); v != nil {
			return v, nil
		}
		fmt.Fprintf(w, "Not a number: %q\n", s)
	}
}

// GetConfirmation asks a yes/no question. Only y/yes (any case) is a yes;
// EOF counts as no.
func GetConfirmation(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	if _, err := fmt.Fprint(w, prompt+"\n[y/N] "); err != nil {
		return false, err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// confirm is the services.ConfirmFunc used by the CLI.
func (a *App) confirm(ctx context.Context, prompt string) (bool, error) {
	if a.config.AssumeYes {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return GetConfirmation(a.reader, prompt, a.out)
}

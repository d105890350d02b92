package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// inputReader is the part of Console the prompt helpers need.
type inputReader interface {
	ReadLine(ctx context.Context) (string, error)
	ReadSecret(ctx context.Context) ([]byte, error)
}

// GetSimpleText prints prompt to w and reads a single line from r.
// Surrounding whitespace is trimmed.
func GetSimpleText(ctx context.Context, r inputReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := r.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a secret from r. A newline is
// printed after the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(ctx context.Context, r inputReader, prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := r.ReadSecret(ctx)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline prints prompt and hint to w and reads lines until an empty
// line or the end of input. The collected text is joined with '\n'.
func GetMultiline(ctx context.Context, r inputReader, prompt, hint string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n%s\n", prompt, hint); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := r.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), nil
}

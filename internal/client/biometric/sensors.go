package biometric

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/dmitrijs2005/fingergate/internal/common"
)

// UnsupportedSensor models a platform without a fingerprint capability.
type UnsupportedSensor struct{}

func (UnsupportedSensor) Probe(context.Context) Availability { return Unavailable }

func (UnsupportedSensor) Scan(context.Context) error { return common.ErrBiometricUnavailable }

// LineReader reads one line of user input, giving up when ctx is done.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// PromptSensor stands in for a touch sensor on a terminal: the user confirms
// the scan by pressing Enter (or typing "y"); anything else is a mismatch.
type PromptSensor struct {
	In     LineReader
	Out    io.Writer
	Prompt string
}

func (s *PromptSensor) Probe(context.Context) Availability {
	if s == nil || s.In == nil {
		return Unavailable
	}
	return Available
}

func (s *PromptSensor) Scan(ctx context.Context) error {
	if s.Out != nil {
		prompt := s.Prompt
		if prompt == "" {
			prompt = "Touch the sensor and press Enter (n to cancel): "
		}
		fmt.Fprint(s.Out, prompt)
	}

	line, err := s.In.ReadLine(ctx)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return nil
	default:
		return ErrNoMatch
	}
}

// CommandSensor delegates verification to an external program such as
// fprintd-verify. Exit status 0 means a match.
type CommandSensor struct {
	Command string
	Args    []string
	Stdout  io.Writer
	Stderr  io.Writer

	lookPath func(string) (string, error)
}

// NewCommandSensor splits command on whitespace into a program and its
// arguments.
func NewCommandSensor(command string, stdout, stderr io.Writer) *CommandSensor {
	fields := strings.Fields(command)
	s := &CommandSensor{Stdout: stdout, Stderr: stderr, lookPath: exec.LookPath}
	if len(fields) > 0 {
		s.Command = fields[0]
		s.Args = fields[1:]
	}
	return s
}

func (s *CommandSensor) Probe(context.Context) Availability {
	if s.Command == "" {
		return Unavailable
	}
	lookPath := s.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(s.Command); err != nil {
		return Unavailable
	}
	return Available
}

func (s *CommandSensor) Scan(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, s.Command, s.Args...)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s exited with %d", ErrNoMatch, s.Command, exitErr.ExitCode())
	}
	return fmt.Errorf("run %s: %w", s.Command, err)
}

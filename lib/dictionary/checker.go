package dictionary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrCheckerUnavailable means the spell checker cannot be started at all.
	ErrCheckerUnavailable = errors.New("spell checker unavailable")
	// ErrProtocol means the spell checker answered with something that does
	// not belong to the word it was asked about.
	ErrProtocol = errors.New("spell checker protocol violation")
)

// Checker is the external spelling oracle. Check is given one word in its
// original case and returns the checker's raw response: empty when the word
// is accepted, otherwise the misspelled fragments separated by whitespace.
type Checker interface {
	Verify(ctx context.Context) error
	Check(ctx context.Context, word string) (string, error)
}

// DefaultCommand is `aspell list`, which echoes back misspelled words read
// from stdin.
var DefaultCommand = []string{"aspell", "list"}

// ListChecker runs a list-style checker as a short-lived subprocess per word.
// Each call blocks until the subprocess exits.
type ListChecker struct {
	Command []string
}

func NewListChecker(command []string) ListChecker {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return ListChecker{Command: command}
}

func (c ListChecker) Verify(ctx context.Context) error {
	if len(c.Command) == 0 {
		return fmt.Errorf("%w: no command configured", ErrCheckerUnavailable)
	}
	_, err := exec.LookPath(c.Command[0])
	if err != nil {
		return fmt.Errorf("%w: %s is not installed: %w", ErrCheckerUnavailable, c.Command[0], err)
	}
	return nil
}

func (c ListChecker) Check(ctx context.Context, word string) (string, error) {
	cmd := exec.CommandContext(ctx, c.Command[0], c.Command[1:]...)
	cmd.Stdin = strings.NewReader(word + "\n")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf(
			"run %s: %w (stderr: %s)",
			strings.Join(c.Command, " "), err, strings.TrimSpace(stderr.String()),
		)
	}
	return strings.TrimSpace(stdout.String()), nil
}

package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Viewer shows a file to the user.
type Viewer interface {
	Open(ctx context.Context, path string) error
}

// CommandViewer hands the file to an external program and waits for it to exit.
type CommandViewer struct {
	Command string
	Args    []string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

func NewCommandViewer(command string, args ...string) *CommandViewer {
	return &CommandViewer{
		Command: command,
		Args:    args,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

func (v *CommandViewer) Open(ctx context.Context, path string) error {
	args := append(append([]string{}, v.Args...), path)

	cmd := exec.CommandContext(ctx, v.Command, args...)
	cmd.Stdin = v.Stdin
	cmd.Stdout = v.Stdout
	cmd.Stderr = v.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("viewer %s failed: %w", v.Command, err)
	}
	return nil
}

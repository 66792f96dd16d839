package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// maxLineSize bounds a single scanned line. Server log lines and pasted
// console input can get long, but anything past this is a protocol violation.
const maxLineSize = 1024 * 1024

var errServerExited = errors.New("server exited")

// Server is the wrapped subprocess: stdin carries line-oriented commands in,
// stdout carries log lines out. The process is killed when the context given
// to StartServer is cancelled.
type Server struct {
	cmd    *exec.Cmd
	Stdin  io.WriteCloser
	stdout io.ReadCloser
	events chan<- Event
}

func StartServer(ctx context.Context, command string, args []string, events chan<- Event) (*Server, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("server stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("server stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch server: %w", err)
	}
	return &Server{cmd: cmd, Stdin: stdin, stdout: stdout, events: events}, nil
}

// Run reads server stdout line by line and enqueues each as a ProcessLine,
// blocking when the queue is full. It returns errServerExited once stdout
// closes: the server going away ends the whole bridge.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.stdout)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		select {
		case s.events <- ProcessLine{Text: scanner.Text()}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read server stdout: %w", err)
	}
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("%w: %v", errServerExited, err)
	}
	return errServerExited
}

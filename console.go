package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

var errConsoleClosed = errors.New("console input closed")

// Console reads operator-typed lines and enqueues them for forwarding to the
// server's stdin.
type Console struct {
	in     io.Reader
	events chan<- Event
}

func NewConsole(in io.Reader, events chan<- Event) *Console {
	return &Console{in: in, events: events}
}

// Run reads lines until EOF or read failure; either ends the whole bridge.
func (c *Console) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		select {
		case c.events <- ConsoleLine{Text: scanner.Text()}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read console: %w", err)
	}
	return errConsoleClosed
}

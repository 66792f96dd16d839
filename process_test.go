package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerRunEmitsLines(t *testing.T) {
	events := make(chan Event, queueDepth)
	server, err := StartServer(context.Background(), "echo", []string{"one\ntwo"}, events)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- server.Run(context.Background()) }()

	assert.Equal(t, ProcessLine{Text: "one"}, <-events)
	assert.Equal(t, ProcessLine{Text: "two"}, <-events)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, errServerExited)
	case <-time.After(5 * time.Second):
		t.Fatal("server reader did not finish")
	}
}

func TestServerStdinReachesProcess(t *testing.T) {
	events := make(chan Event, queueDepth)
	server, err := StartServer(context.Background(), "cat", nil, events)
	require.NoError(t, err)

	_, err = server.Stdin.Write([]byte("stop\n"))
	require.NoError(t, err)
	require.NoError(t, server.Stdin.Close())

	done := make(chan error, 1)
	go func() { done <- server.Run(context.Background()) }()

	assert.Equal(t, ProcessLine{Text: "stop"}, <-events)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, errServerExited)
	case <-time.After(5 * time.Second):
		t.Fatal("server reader did not finish")
	}
}

func TestStartServerMissingCommand(t *testing.T) {
	_, err := StartServer(context.Background(), "/nonexistent/server", nil, make(chan Event))
	assert.ErrorContains(t, err, "launch server")
}

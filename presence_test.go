package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresenceEmpty(t *testing.T) {
	p := NewPresence()

	count, names := p.Snapshot()
	assert.Equal(t, 0, count)
	assert.Equal(t, "", names)
}

func TestPresenceJoinOrder(t *testing.T) {
	p := NewPresence()
	p.Join("Alice")
	p.Join("Bob")

	count, names := p.Snapshot()
	assert.Equal(t, 2, count)
	assert.Equal(t, "Alice, Bob", names)
}

func TestPresenceJoinIdempotent(t *testing.T) {
	p := NewPresence()
	p.Join("Alice")
	p.Join("Alice")

	count, names := p.Snapshot()
	assert.Equal(t, 1, count)
	assert.Equal(t, "Alice", names)
}

func TestPresenceQuit(t *testing.T) {
	p := NewPresence()
	p.Join("Alice")
	p.Join("Bob")
	p.Join("Carol")
	p.Quit("Bob")

	count, names := p.Snapshot()
	assert.Equal(t, 2, count)
	assert.Equal(t, "Alice, Carol", names)
}

func TestPresenceQuitAbsent(t *testing.T) {
	p := NewPresence()
	p.Join("Alice")
	p.Quit("Bob")

	count, names := p.Snapshot()
	assert.Equal(t, 1, count)
	assert.Equal(t, "Alice", names)
}

func TestPresenceRejoinAfterQuit(t *testing.T) {
	p := NewPresence()
	p.Join("Alice")
	p.Join("Bob")
	p.Quit("Alice")
	p.Join("Alice")

	count, names := p.Snapshot()
	assert.Equal(t, 2, count)
	assert.Equal(t, "Bob, Alice", names)
}

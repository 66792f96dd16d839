package main

import "strings"

// Presence tracks which players are currently online. It is rebuilt entirely
// from observed join/quit log lines, starting empty on every run. Only the
// bridge loop touches it, so it needs no locking.
type Presence struct {
	names []string
	set   map[string]struct{}
}

func NewPresence() *Presence {
	return &Presence{set: make(map[string]struct{})}
}

// Join marks a player as online. Joining an already-online player is a no-op.
func (p *Presence) Join(name string) {
	if _, ok := p.set[name]; ok {
		return
	}
	p.set[name] = struct{}{}
	p.names = append(p.names, name)
}

// Quit marks a player as offline. Quitting an absent player is a no-op.
func (p *Presence) Quit(name string) {
	if _, ok := p.set[name]; !ok {
		return
	}
	delete(p.set, name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			break
		}
	}
}

// Count returns how many players are online.
func (p *Presence) Count() int {
	return len(p.names)
}

// Snapshot returns the online count and the names joined with ", ", in join
// order.
func (p *Presence) Snapshot() (int, string) {
	return len(p.names), strings.Join(p.names, ", ")
}

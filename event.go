package main

// Event is one item on the bridge's shared queue. Exactly one of the three
// implementations below is produced, depending on the source.
type Event interface {
	event()
}

// ChatMessage is an inbound Discord message.
type ChatMessage struct {
	Author    string
	Body      string
	ChannelID uint64 // channel the message arrived on
}

// ProcessLine is one line of the server subprocess's stdout.
type ProcessLine struct {
	Text string
}

// ConsoleLine is one line typed by the operator on the local console.
type ConsoleLine struct {
	Text string
}

func (ChatMessage) event() {}
func (ProcessLine) event() {}
func (ConsoleLine) event() {}

// RecordKind identifies what a server log line turned out to be.
type RecordKind int

const (
	RecordUnrecognized RecordKind = iota
	RecordJoin
	RecordQuit
	RecordAchievement
	RecordChat
)

func (k RecordKind) String() string {
	switch k {
	case RecordJoin:
		return "join"
	case RecordQuit:
		return "quit"
	case RecordAchievement:
		return "achievement"
	case RecordChat:
		return "chat"
	default:
		return "unrecognized"
	}
}

// LogRecord is the classified form of a server log line. It is derived
// transiently by classify and never stored.
type LogRecord struct {
	Kind        RecordKind
	Name        string // player name (empty for RecordUnrecognized)
	Achievement string // RecordAchievement only
	Body        string // RecordChat only
}

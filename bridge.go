package main

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// queueDepth bounds the shared event queue. A full queue blocks producers,
// so a flooding log source throttles against the bridge's processing rate
// instead of growing without bound.
const queueDepth = 10

// onlineCommand asks the bridge for the current player list.
const onlineCommand = "!online"

// Bridge is the single consumer of the event queue. It owns the presence set
// and is the only writer to server stdin and console stdout; everything else
// only produces events.
type Bridge struct {
	events  <-chan Event
	chat    ChatSender
	stdin   io.Writer // server subprocess stdin
	console io.Writer

	generalChannel uint64 // join/quit/achievement/chat notifications
	serverChannel  uint64 // raw log mirror

	online    *Presence
	telemetry *Telemetry
}

func NewBridge(events <-chan Event, chat ChatSender, stdin, console io.Writer, generalChannel, serverChannel uint64, telemetry *Telemetry) *Bridge {
	return &Bridge{
		events:         events,
		chat:           chat,
		stdin:          stdin,
		console:        console,
		generalChannel: generalChannel,
		serverChannel:  serverChannel,
		online:         NewPresence(),
		telemetry:      telemetry,
	}
}

// Run drains the queue until ctx is cancelled or a forward fails. Any write
// or send error is fatal: the presence set may already disagree with what was
// announced, so the loop stops rather than skipping the event.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-b.events:
			if err := b.dispatch(event); err != nil {
				return err
			}
		}
	}
}

func (b *Bridge) dispatch(event Event) error {
	switch event := event.(type) {
	case ChatMessage:
		return b.onChat(event)
	case ProcessLine:
		return b.onProcessLine(event.Text)
	case ConsoleLine:
		return b.onConsoleLine(event.Text)
	default:
		return fmt.Errorf("unknown event type %T", event)
	}
}

func (b *Bridge) onChat(msg ChatMessage) error {
	// Never re-ingest our own relay.
	if msg.Author == relayIdentity {
		return nil
	}

	if strings.TrimSpace(msg.Body) == onlineCommand {
		count, names := b.online.Snapshot()
		reply := fmt.Sprintf("%d online: %s", count, names)
		if err := b.chat.Send(msg.ChannelID, reply); err != nil {
			return fmt.Errorf("answer %s: %w", onlineCommand, err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(b.stdin, "/say [%s]: %s\n", msg.Author, msg.Body); err != nil {
		return fmt.Errorf("relay chat to server: %w", err)
	}
	return nil
}

func (b *Bridge) onProcessLine(text string) error {
	if _, err := fmt.Fprintln(b.console, text); err != nil {
		return fmt.Errorf("echo to console: %w", err)
	}

	// The server channel carries the full transcript, classified or not.
	if err := b.chat.Send(b.serverChannel, text); err != nil {
		return fmt.Errorf("mirror to server channel: %w", err)
	}

	record := classify(text)
	b.telemetry.RecordEvent(record)

	var display string
	switch record.Kind {
	case RecordJoin:
		b.online.Join(record.Name)
		b.telemetry.SetOnline(b.online.Count())
		display = fmt.Sprintf("%s joined the server!", record.Name)
	case RecordQuit:
		b.online.Quit(record.Name)
		b.telemetry.SetOnline(b.online.Count())
		display = fmt.Sprintf("%s left the server.", record.Name)
	case RecordAchievement:
		display = fmt.Sprintf("%s unlocked achievement [%s]!", record.Name, record.Achievement)
	case RecordChat:
		display = fmt.Sprintf("[%s]: %s", record.Name, record.Body)
	case RecordUnrecognized:
		return nil
	}

	if err := b.chat.Send(b.generalChannel, display); err != nil {
		return fmt.Errorf("notify general channel: %w", err)
	}
	return nil
}

func (b *Bridge) onConsoleLine(text string) error {
	if _, err := io.WriteString(b.stdin, text+"\n"); err != nil {
		return fmt.Errorf("forward console to server: %w", err)
	}
	return nil
}

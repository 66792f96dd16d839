package main

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// relayIdentity is the author name this bridge posts under. Inbound messages
// from this author are dropped so the bridge never re-ingests its own relay.
const relayIdentity = "mc-sync"

// ChatSender sends text to a Discord channel by ID. Satisfied by
// DiscordChannel; faked in tests.
type ChatSender interface {
	Send(channelID uint64, text string) error
}

// DiscordChannel adapts a Discord bot session to the bridge: inbound guild
// messages become ChatMessage events on the shared queue, outbound sends go
// to a channel by ID.
type DiscordChannel struct {
	session   *discordgo.Session
	events    chan<- Event
	botUserID string
}

func NewDiscordChannel(token string, events chan<- Event) (*DiscordChannel, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discordgo session: %w", err)
	}

	dc := &DiscordChannel{session: session, events: events}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	session.AddHandler(dc.onMessage)

	return dc, nil
}

// Start opens the gateway session and holds it until ctx is cancelled.
// discordgo resumes dropped connections on its own, retrying indefinitely,
// so a disconnect never surfaces here as an error.
func (dc *DiscordChannel) Start(ctx context.Context) error {
	if err := dc.session.Open(); err != nil {
		return fmt.Errorf("discord open: %w", err)
	}
	dc.botUserID = dc.session.State.User.ID
	log.Printf("discord bot connected as %s", dc.session.State.User.Username)

	<-ctx.Done()
	return dc.session.Close()
}

func (dc *DiscordChannel) Send(channelID uint64, text string) error {
	if _, err := dc.session.ChannelMessageSend(strconv.FormatUint(channelID, 10), text); err != nil {
		return fmt.Errorf("send to Discord: %w", err)
	}
	return nil
}

func (dc *DiscordChannel) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// The name check in the bridge handles the relay identity; dropping our
	// own user ID here covers renames of the bot account.
	if m.Author.ID == dc.botUserID {
		return
	}
	if m.Content == "" {
		return
	}

	channelID, err := strconv.ParseUint(m.ChannelID, 10, 64)
	if err != nil {
		log.Printf("discord: non-numeric channel ID %q", m.ChannelID)
		return
	}

	dc.events <- ChatMessage{
		Author:    m.Author.Username,
		Body:      m.Content,
		ChannelID: channelID,
	}
}

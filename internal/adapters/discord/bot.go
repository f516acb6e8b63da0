package discord

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"eventbot/internal/domain/entities"
)

const commandTimeout = 10 * time.Second

// Bot is the Discord adapter: it feeds channel messages to the Handler.
type Bot struct {
	session *discordgo.Session
	handler *Handler
}

// NewSession creates the Discord session with the intents prefix commands need.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent
	return s, nil
}

func NewBot(session *discordgo.Session, handler *Handler) *Bot {
	bot := &Bot{
		session: session,
		handler: handler,
	}
	bot.setupHandlers()
	return bot
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		log.Printf("🤖 Logged in as %s.", r.User.Username)
	})
	b.session.AddHandler(b.handleMessage)
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	reply, ok := b.handler.Execute(ctx, Invocation{
		ID:       uuid.NewString(),
		Scope:    entities.Scope{GuildID: m.GuildID, ChannelID: m.ChannelID},
		AuthorID: m.Author.ID,
		Content:  m.Content,
	})
	if ok {
		sendReply(s, m.Message, reply)
	}
}

// Start connects and runs the bot until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	log.Println("🤖 Bot online. Press CTRL+C to quit.")
	<-ctx.Done()
	log.Println("👋 Shutting down.")
	return nil
}

package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"applebot/internal/application"
	"applebot/internal/config"
	"applebot/internal/domain/birthday"
	"applebot/internal/domain/reminder"
	"applebot/internal/ports/output"
)

// Bot is the Discord adapter. It feeds guild scheduled events into the
// reminder registry, runs the scheduler and handles the birthday
// verification channel.
type Bot struct {
	session    *discordgo.Session
	config     *config.Config
	clock      reminder.Clock
	registry   *reminder.Registry
	scheduler  *application.Scheduler
	assigner   *birthday.Assigner
	translator output.T
}

// NewBot creates a Bot and wires the reminder core: registry -> sink ->
// scheduler, with the Discord session as both event source and sink target.
func NewBot(
	cfg *config.Config,
	clock reminder.Clock,
	registry *reminder.Registry,
	store output.SnapshotStore,
	translator output.T,
) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création de la session Discord: %w", err)
	}

	sink := NewSink(s, registry, translator, cfg.UpdatesChannelID, cfg.Locale)
	scheduler := application.NewScheduler(clock, registry, sink, store, cfg.TickInterval, cfg.SendTimeout)

	bot := &Bot{
		session:    s,
		config:     cfg,
		clock:      clock,
		registry:   registry,
		scheduler:  scheduler,
		assigner:   birthday.NewAssigner(cfg.MinimumAge),
		translator: translator,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentGuildScheduledEvents

	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleEventCreate)
	b.session.AddHandler(b.handleEventUpdate)
	b.session.AddHandler(b.handleEventDelete)
	b.session.AddHandler(b.handleMessage)
}

// Start runs the bot until ctx is cancelled. The scheduler's current tick
// always finishes before the session is closed.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("erreur lors de l'ouverture de la session: %w", err)
	}
	defer b.session.Close()

	done := make(chan struct{})
	go func() {
		b.scheduler.Run(ctx)
		close(done)
	}()

	fmt.Println("🤖 Apple Bot en ligne ! Appuyez sur CTRL+C pour quitter.")
	<-ctx.Done()
	<-done

	log.Println("👋 Apple Bot s'arrête...")
	return nil
}

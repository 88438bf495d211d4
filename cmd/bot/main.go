package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"applebot/internal/adapters/discord"
	"applebot/internal/config"
	"applebot/internal/domain/reminder"
	"applebot/internal/infrastructure/database"
	"applebot/internal/infrastructure/i18n"
	"applebot/internal/ports/output"
	"applebot/pkg/tz"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erreur de configuration: %v", err)
	}

	loc, err := tz.Load(cfg.Timezone)
	if err != nil {
		log.Fatalf("❌ Fuseau horaire invalide: %v", err)
	}
	clock := reminder.NewSystemClock(loc)

	registry, err := reminder.NewRegistry(cfg.ReminderOffsets)
	if err != nil {
		log.Fatalf("❌ Offsets de rappel invalides: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store output.SnapshotStore
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Erreur lors de l'initialisation de la base de données: %v", err)
		}
		defer pool.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("❌ Erreur lors des migrations: %v", err)
		}

		repo := database.NewSnapshotRepository(pool)
		snapshot, err := repo.Load(ctx)
		if err != nil {
			log.Printf("⚠️ Lecture du snapshot impossible, reprise à vide: %v", err)
		} else {
			registry.Restore(snapshot)
			log.Printf("✅ Snapshot restauré (%d événement(s))", len(snapshot))
		}
		store = repo
	} else {
		log.Println("⚠️ DATABASE_URL absent: les rappels ne survivront pas à un redémarrage.")
	}

	translator := i18n.NewTranslator(cfg.Locale)

	bot, err := discord.NewBot(cfg, clock, registry, store, translator)
	if err != nil {
		log.Fatalf("❌ Erreur lors de la création du bot: %v", err)
	}
	if err := bot.Start(ctx); err != nil {
		log.Printf("❌ Erreur lors du démarrage du bot: %v", err)
		os.Exit(1)
	}
}

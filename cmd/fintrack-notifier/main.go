// fintrack-notifier consumes gamification events and renders them to the
// log. It stands in for a real push channel; the queue is durable so
// events survive notifier downtime.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/notify"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := applog.New(applog.Config{Level: slog.LevelInfo, Component: applog.ComponentNotify})
	applog.SetDefault(logger)

	logger.Info("Starting fintrack-notifier")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the notifier")
		os.Exit(1)
	}

	client, err := notify.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = client.Consume(ctx, func(n *notify.Notification) error {
		logger.Info(render(n),
			"kind", n.Kind,
			"xp", n.XP,
			"level", n.Level,
			"timestamp", n.Timestamp)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("Notifier stopped gracefully")
}

func render(n *notify.Notification) string {
	switch n.Kind {
	case notify.KindChallengeCompleted:
		return fmt.Sprintf("🎯 %s (+%d XP)", n.Title, n.XP)
	case notify.KindAchievementUnlocked:
		return fmt.Sprintf("🏆 %s [%s]", n.Title, n.Detail)
	case notify.KindLevelUp:
		return fmt.Sprintf("⬆️ %s", n.Title)
	case notify.KindBudgetAlert:
		return fmt.Sprintf("⚠️ %s: %s", n.Title, n.Detail)
	default:
		if n.Detail != "" {
			return fmt.Sprintf("%s: %s", n.Title, n.Detail)
		}
		return n.Title
	}
}

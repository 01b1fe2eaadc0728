package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"procurement/cmd"
	kafkain "procurement/internal/adapters/in/kafka"
	"procurement/internal/adapters/out/notify"
	"procurement/internal/adapters/out/postgres/accessrepo"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/clock"

	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err = configs.ValidateForNotifier(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var notifier ports.Notifier = notify.NewLogNotifier(logger)
	if configs.SMTPAddr != "" {
		gormDB, dbErr := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
		if dbErr != nil {
			log.Fatalf("Error connecting to database: %v", dbErr)
		}
		approvers := accessrepo.NewGormApproverDirectory(gormDB, clock.System{})
		smtpNotifier, smtpErr := notify.NewSMTPNotifier(configs.SMTP(), approvers, logger)
		if smtpErr != nil {
			log.Fatalf("Invalid SMTP configuration: %v", smtpErr)
		}
		notifier = smtpNotifier
	}

	consumer := kafkain.NewOrderCreatedConsumer(
		configs.KafkaBrokers,
		configs.KafkaOrderEventsTopic,
		configs.KafkaConsumerGroup,
		notifier,
		logger,
	)
	if configs.KafkaDeadLetterTopic != "" {
		consumer.WithDeadLetter(kafkain.NewDeadLetterWriter(configs.KafkaBrokers, configs.KafkaDeadLetterTopic))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Notifier started",
		"topic", configs.KafkaOrderEventsTopic,
		"group", configs.KafkaConsumerGroup,
		"dead_letter_topic", configs.KafkaDeadLetterTopic)
	runErr := consumer.Run(ctx)
	if closeErr := consumer.Close(); closeErr != nil {
		logger.Warn("Kafka consumer close failed", "error", closeErr)
	}
	if runErr != nil {
		logger.Error("Notifier stopped with error", "error", runErr)
		os.Exit(1)
	}
	logger.Info("Notifier stopped")
}

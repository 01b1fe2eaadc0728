package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"procurement/internal/adapters/out/notify"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/jobs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	UploadDir string

	KafkaBrokers          []string
	KafkaOrderEventsTopic string
	KafkaConsumerGroup    string
	KafkaDeadLetterTopic  string

	OutboxRelaySchedule string
	OutboxBatchSize     int
	PublishTimeout      time.Duration

	SMTPAddr     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

// LoadConfig reads the configuration from the environment, after loading a
// .env file from the working directory when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		UploadDir: envOr("UPLOAD_DIR", "uploads"),

		KafkaBrokers:          splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderEventsTopic: envOr("KAFKA_ORDER_EVENTS_TOPIC", "procurement.order-events"),
		KafkaConsumerGroup:    envOr("KAFKA_CONSUMER_GROUP", "procurement-notifier"),
		KafkaDeadLetterTopic:  envOr("KAFKA_DEAD_LETTER_TOPIC", "procurement.order-events.dlq"),

		OutboxRelaySchedule: envOr("OUTBOX_RELAY_SCHEDULE", jobs.DefaultOutboxRelaySchedule),
		OutboxBatchSize:     commands.DefaultOutboxBatchSize,
		PublishTimeout:      commands.DefaultPublishTimeout,

		SMTPAddr:     os.Getenv("SMTP_ADDR"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
	}

	if raw := os.Getenv("OUTBOX_BATCH_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return Config{}, fmt.Errorf("OUTBOX_BATCH_SIZE must be a positive integer, got %q", raw)
		}
		cfg.OutboxBatchSize = size
	}
	if raw := os.Getenv("PUBLISH_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return Config{}, fmt.Errorf("PUBLISH_TIMEOUT must be a positive duration, got %q", raw)
		}
		cfg.PublishTimeout = timeout
	}

	return cfg, nil
}

// ValidateForAPI reports what the API process cannot start without.
func (c Config) ValidateForAPI() error {
	var missing []string
	for key, value := range map[string]string{
		"DB_HOST":                  c.DBHost,
		"DB_USER":                  c.DBUser,
		"DB_NAME":                  c.DBName,
		"JWT_SECRET":               c.JWTSecret,
		"KAFKA_ORDER_EVENTS_TOPIC": c.KafkaOrderEventsTopic,
	} {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(c.KafkaBrokers) == 0 {
		missing = append(missing, "KAFKA_BROKERS")
	}
	return missingError(missing)
}

// ValidateForNotifier reports what the notifier process cannot start without.
// SMTP settings are optional: without SMTP_ADDR notifications are logged.
// With SMTP the approvers are read from the database, so it must be reachable.
func (c Config) ValidateForNotifier() error {
	var missing []string
	if len(c.KafkaBrokers) == 0 {
		missing = append(missing, "KAFKA_BROKERS")
	}
	if c.KafkaConsumerGroup == "" {
		missing = append(missing, "KAFKA_CONSUMER_GROUP")
	}
	if c.SMTPAddr != "" {
		for key, value := range map[string]string{
			"SMTP_FROM": c.SMTPFrom,
			"DB_HOST":   c.DBHost,
			"DB_USER":   c.DBUser,
			"DB_NAME":   c.DBName,
		} {
			if value == "" {
				missing = append(missing, key)
			}
		}
	}
	return missingError(missing)
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// SMTP returns the notifier settings.
func (c Config) SMTP() notify.SMTPConfig {
	return notify.SMTPConfig{
		Addr:     c.SMTPAddr,
		Username: c.SMTPUser,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func missingError(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
}

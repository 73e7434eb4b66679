package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	pkgkafka "github.com/urjitutjit/creditapprovalsystem/pkg/kafka"
)

func watchCmd() *cobra.Command {
	var cfg pkgkafka.Config
	var topic, eventType string

	c := &cobra.Command{
		Use:   "watch",
		Short: "Tail credit domain events from Kafka",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			consumer, err := pkgkafka.NewConsumer(cfg, topic, printEvent(cmd.OutOrStdout(), eventType), logger)
			if err != nil {
				return err
			}
			defer func() { _ = consumer.Close() }()

			return consumer.Start(ctx)
		},
	}

	c.Flags().StringSliceVar(&cfg.Brokers, "brokers", []string{"localhost:9092"}, "Kafka brokers")
	c.Flags().StringVar(&topic, "topic", "credit-events", "Topic to tail")
	c.Flags().StringVar(&cfg.ConsumerGroup, "group", "", "Consumer group (default: none, start at the newest offset)")
	c.Flags().StringVar(&eventType, "type", "", "Only print events of this type")
	c.Flags().BoolVar(&cfg.TLS, "tls", false, "Connect over TLS")
	c.Flags().BoolVar(&cfg.SASLEnabled, "sasl", false, "Authenticate with SASL")
	c.Flags().StringVar(&cfg.SASLMechanism, "sasl-mechanism", "PLAIN", "SASL mechanism")
	c.Flags().StringVar(&cfg.SASLUsername, "sasl-username", "", "SASL username")
	c.Flags().StringVar(&cfg.SASLPassword, "sasl-password", "", "SASL password")
	return c
}

// printEvent writes one line per message: time, type, key, payload.
func printEvent(w io.Writer, only string) pkgkafka.Handler {
	return func(_ context.Context, msg pkgkafka.Message) error {
		eventType := msg.Headers["event_type"]
		if only != "" && !strings.EqualFold(only, eventType) {
			return nil
		}
		_, err := fmt.Fprintf(w, "%s %-28s %s %s\n",
			msg.Time.UTC().Format(time.RFC3339), eventType, msg.Key, msg.Value)
		return err
	}
}

package kafka

import (
	"context"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.transport != nil {
		t.Error("expected default transport without TLS or SASL")
	}
}

func TestNewProducerRejectsUnknownMechanism(t *testing.T) {
	_, err := NewProducer(Config{Brokers: []string{"kafka:9092"}, SASLEnabled: true, SASLMechanism: "GSSAPI"})
	if err == nil {
		t.Fatal("expected error for unsupported mechanism")
	}
}

func TestSASLMechanism(t *testing.T) {
	tests := []struct {
		mechanism string
		wantName  string
	}{
		{mechanism: "", wantName: "PLAIN"},
		{mechanism: "plain", wantName: "PLAIN"},
		{mechanism: "SCRAM-SHA-256", wantName: "SCRAM-SHA-256"},
		{mechanism: "SCRAM-SHA-512", wantName: "SCRAM-SHA-512"},
	}
	for _, tt := range tests {
		t.Run(tt.wantName+"/"+tt.mechanism, func(t *testing.T) {
			cfg := Config{SASLEnabled: true, SASLMechanism: tt.mechanism, SASLUsername: "u", SASLPassword: "p"}
			m, err := cfg.saslMechanism()
			if err != nil {
				t.Fatalf("saslMechanism: %v", err)
			}
			if m.Name() != tt.wantName {
				t.Errorf("mechanism = %s, want %s", m.Name(), tt.wantName)
			}
		})
	}

	m, err := Config{}.saslMechanism()
	if err != nil || m != nil {
		t.Errorf("disabled SASL should yield nil mechanism, got %v, %v", m, err)
	}
}

func TestProducerTransportCarriesSecurity(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:      []string{"kafka:9093"},
		TLS:          true,
		SASLEnabled:  true,
		SASLUsername: "svc",
		SASLPassword: "secret",
	})
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}
	w := p.writer("credit-events")
	transport, ok := w.Transport.(*kafkago.Transport)
	if !ok {
		t.Fatalf("writer transport = %T, want *kafka.Transport", w.Transport)
	}
	if transport.TLS == nil {
		t.Error("expected TLS config on transport")
	}
	if _, ok := transport.SASL.(plain.Mechanism); !ok {
		t.Errorf("SASL = %T, want plain.Mechanism", transport.SASL)
	}
}

func TestWriterIsCachedPerTopic(t *testing.T) {
	p, _ := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	a1 := p.writer("topic-a")
	a2 := p.writer("topic-a")
	b := p.writer("topic-b")

	if a1 != a2 {
		t.Error("expected same writer instance for same topic")
	}
	if a1 == b {
		t.Error("expected different writer per topic")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}

func TestPublishNothingIsNoop(t *testing.T) {
	p, _ := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err := p.Publish(context.Background(), "credit-events"); err != nil {
		t.Fatalf("Publish with no messages: %v", err)
	}
	if len(p.writers) != 0 {
		t.Error("no writer should be created for an empty publish")
	}
}

func TestToKafkaMessagesOrdersHeaders(t *testing.T) {
	out := toKafkaMessages([]Message{{
		Key:     []byte("cust-1"),
		Value:   []byte(`{}`),
		Headers: map[string]string{"event_type": "credit.loan.created", "event_id": "e-1"},
	}})

	if len(out) != 1 {
		t.Fatalf("expected 1 message, got %d", len(out))
	}
	h := out[0].Headers
	if len(h) != 2 || h[0].Key != "event_id" || h[1].Key != "event_type" {
		t.Fatalf("unexpected headers: %+v", h)
	}
	if string(h[1].Value) != "credit.loan.created" {
		t.Errorf("event_type = %s", h[1].Value)
	}
}

func TestFromKafkaMessage(t *testing.T) {
	msg := fromKafkaMessage(kafkago.Message{
		Topic:   "credit-events",
		Offset:  42,
		Key:     []byte("loan-1"),
		Value:   []byte(`{"a":1}`),
		Headers: []kafkago.Header{{Key: "event_type", Value: []byte("credit.loan.created")}},
	})

	if msg.Topic != "credit-events" || msg.Offset != 42 {
		t.Errorf("unexpected position %s/%d", msg.Topic, msg.Offset)
	}
	if msg.Headers["event_type"] != "credit.loan.created" {
		t.Errorf("event_type header = %q", msg.Headers["event_type"])
	}
}

package relay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultNATSSubject is used when no subject is configured.
const DefaultNATSSubject = "assessments.received"

// Publisher is the subset of *nats.Conn used by NATSRelay.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSRelay publishes accepted submissions on a NATS subject.
type NATSRelay struct {
	publisher Publisher
	subject   string
}

// ConnectNATS dials the NATS server at url.
func ConnectNATS(url, clientName string) (*nats.Conn, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("nats url must not be empty")
	}

	conn, err := nats.Connect(url,
		nats.Name(clientName),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to nats: %w", err)
	}

	return conn, nil
}

// NewNATSRelay builds a relay. A nil publisher yields a relay that always skips.
func NewNATSRelay(publisher Publisher, subject string) *NATSRelay {
	if strings.TrimSpace(subject) == "" {
		subject = DefaultNATSSubject
	}
	return &NATSRelay{publisher: publisher, subject: subject}
}

// Name identifies the relay in logs and metrics.
func (r *NATSRelay) Name() string {
	return "nats"
}

// Subject returns the subject submissions are published on.
func (r *NATSRelay) Subject() string {
	return r.subject
}

// Relay publishes payload. Delivery is fire-and-forget at the NATS level.
func (r *NATSRelay) Relay(ctx context.Context, payload []byte) Result {
	if r.publisher == nil {
		return Skipped(r.Name(), "nats not connected")
	}
	if err := ctx.Err(); err != nil {
		return Failed(r.Name(), 0, err)
	}

	start := time.Now()
	if err := r.publisher.Publish(r.subject, payload); err != nil {
		result := Failed(r.Name(), 0, fmt.Errorf("publish %s: %w", r.subject, err))
		result.Duration = time.Since(start)
		return result
	}

	result := Relayed(r.Name(), 0, "")
	result.Duration = time.Since(start)
	return result
}

package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
)

type natsConn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

// NATSPublisher publishes auction events on {prefix}.{event type}
type NATSPublisher struct {
	conn   natsConn
	prefix string
}

// NewNATSPublisher connects to the NATS server at url
func NewNATSPublisher(url, subjectPrefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("auction-marketplace"))
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	return newNATSPublisher(conn, subjectPrefix), nil
}

func newNATSPublisher(conn natsConn, subjectPrefix string) *NATSPublisher {
	if subjectPrefix == "" {
		subjectPrefix = "marketplace.auctions"
	}
	return &NATSPublisher{conn: conn, prefix: strings.TrimSuffix(subjectPrefix, ".")}
}

// Subject returns the subject an event type is published on
func (p *NATSPublisher) Subject(eventType string) string {
	return p.prefix + "." + strings.TrimPrefix(eventType, "auction.")
}

// Publish sends the event as JSON. ctx is unused; core NATS publishes are fire-and-forget.
func (p *NATSPublisher) Publish(_ context.Context, event AuctionEvent) error {
	payload, err := encode(event)
	if err != nil {
		return fmt.Errorf("nats publish %s: encode: %w", event.Type, err)
	}
	if err := p.conn.Publish(p.Subject(event.Type), payload); err != nil {
		return fmt.Errorf("nats publish %s: %w", event.Type, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

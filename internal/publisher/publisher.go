package publisher

import (
	"TrafficLens/internal/config"
	"TrafficLens/internal/render"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
)

// Publisher is responsible for publishing finished analyses to a NATS subject.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher creates a new NATS report publisher.
func NewPublisher(cfg config.PublisherConfig) (*Publisher, error) {
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Printf("Connected to NATS server at %s", cfg.NATSURL)
	return &Publisher{nc: nc, subject: cfg.Subject}, nil
}

// Publish serializes an AnalysisResponse to JSON and publishes it to the
// configured NATS subject.
func (p *Publisher) Publish(payload interface{}) error {
	resp, ok := payload.(*render.AnalysisResponse)
	if !ok {
		return fmt.Errorf("invalid payload type for Publisher: expected *render.AnalysisResponse, got %T", payload)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	return p.nc.Publish(p.subject, data)
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		log.Println("NATS connection drained and closed.")
	}
}

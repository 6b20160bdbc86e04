package publisher

import (
	"TrafficLens/internal/config"
	"TrafficLens/internal/render"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
)

// ReportHandler is a function that processes a received analysis.
type ReportHandler func(resp render.AnalysisResponse)

// Subscriber is responsible for subscribing to the report subject and
// processing incoming analyses.
type Subscriber struct {
	nc      *nats.Conn
	sub     *nats.Subscription
	subject string
}

// NewSubscriber creates a new NATS report subscriber.
func NewSubscriber(cfg config.PublisherConfig) (*Subscriber, error) {
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Printf("Connected to NATS server at %s", cfg.NATSURL)
	return &Subscriber{nc: nc, subject: cfg.Subject}, nil
}

// Start subscribes to the report subject and hands each decoded analysis to
// the provided handler.
func (s *Subscriber) Start(handler ReportHandler) error {
	sub, err := s.nc.Subscribe(s.subject, func(msg *nats.Msg) {
		var resp render.AnalysisResponse
		if err := json.Unmarshal(msg.Data, &resp); err != nil {
			log.Printf("Error unmarshalling report: %v", err)
			return
		}
		handler(resp)
	})
	if err != nil {
		return err
	}
	s.sub = sub
	log.Printf("Subscribed to '%s'. Waiting for reports...", s.subject)
	return nil
}

// Close unsubscribes and closes the NATS connection.
func (s *Subscriber) Close() {
	if s.sub != nil {
		s.sub.Unsubscribe()
	}
	if s.nc != nil {
		s.nc.Close()
		log.Println("NATS connection closed.")
	}
}

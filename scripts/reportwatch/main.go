package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"TrafficLens/internal/config"
	"TrafficLens/internal/publisher"
	"TrafficLens/internal/render"

	"github.com/nats-io/nats.go"
)

func main() {
	natsURL := flag.String("nats", nats.DefaultURL, "NATS server URL")
	subject := flag.String("subject", "trafficlens.reports", "Report subject to subscribe to")
	flag.Parse()

	sub, err := publisher.NewSubscriber(config.PublisherConfig{
		NATSURL: *natsURL,
		Subject: *subject,
	})
	if err != nil {
		log.Fatalf("Failed to create subscriber: %v", err)
	}
	defer sub.Close()

	// Print a one-line summary per incoming report
	handler := func(resp render.AnalysisResponse) {
		log.Printf("Report for %q: %d records, %d cars total, %d lines skipped",
			resp.Meta.Filename, resp.Meta.RecordsProcessed,
			resp.Analysis.TotalCars, resp.Meta.LinesSkipped)
	}

	if err := sub.Start(handler); err != nil {
		log.Fatalf("Subscriber failed to start: %v", err)
	}

	// Wait for a shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
}

package main

import (
	"TrafficLens/internal/api"
	"TrafficLens/internal/config"
	"TrafficLens/internal/model"
	"TrafficLens/internal/publisher"
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

func main() {
	configFile := flag.String("config", "configs/config.yaml", "Path to the configuration file")
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize error monitoring if enabled
	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			TracesSampleRate: 1.0,
		}); err != nil {
			log.Printf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// 3. Build the report publisher if enabled
	var pub model.ReportPublisher
	if cfg.Publisher.Enabled {
		p, err := publisher.NewPublisher(cfg.Publisher)
		if err != nil {
			log.Fatalf("Failed to create report publisher: %v", err)
		}
		defer p.Close()
		pub = p
	}

	// 4. Build the router with its access log
	accessLog := api.NewAccessLogger(cfg.AccessLog)
	router := api.NewRouter(cfg, pub, accessLog)

	var handler http.Handler = router
	if cfg.Sentry.Enabled {
		handler = sentryhttp.New(sentryhttp.Options{}).Handle(router)
	}

	// 5. Start HTTP server
	server := &http.Server{
		Addr:    cfg.API.ListenAddr,
		Handler: handler,
	}

	go func() {
		log.Printf("API server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", server.Addr, err)
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("API server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("API server exited.")
}

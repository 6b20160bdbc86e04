package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"TrafficLens/internal/model"
)

func main() {
	outputFile := flag.String("o", "traffic.txt", "Output traffic file path")
	days := flag.Int("days", 7, "Number of days to generate")
	start := flag.String("start", "2021-12-01", "First day (YYYY-MM-DD)")
	malformed := flag.Int("malformed", 0, "Number of malformed lines to sprinkle in")
	flag.Parse()

	startDay, err := time.Parse(model.DateLayout, *start)
	if err != nil {
		log.Fatalf("Invalid start day: %v", err)
	}

	f, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	total := *days * 48
	log.Printf("Generating %d half-hour records into %s...", total, *outputFile)

	// Malformed lines go in at evenly spaced positions so the parser's
	// skip-and-continue path gets exercised across the whole file.
	malformedEvery := 0
	if *malformed > 0 {
		malformedEvery = total / *malformed
		if malformedEvery < 1 {
			malformedEvery = 1
		}
	}

	written := 0
	for d := 0; d < *days; d++ {
		for slot := 0; slot < 48; slot++ {
			ts := startDay.AddDate(0, 0, d).Add(time.Duration(slot) * 30 * time.Minute)

			// Rough day/night shape: quiet overnight, busy around rush hours.
			hour := ts.Hour()
			base := 2
			if hour >= 6 && hour <= 20 {
				base = 10 + rng.Intn(20)
			}
			count := base + rng.Intn(6)

			if _, err := fmt.Fprintf(f, "%s %d\n", ts.Format(model.TimestampLayout), count); err != nil {
				log.Fatalf("Failed to write record: %v", err)
			}
			written++

			if malformedEvery > 0 && written%malformedEvery == 0 {
				if _, err := fmt.Fprintln(f, badLine(rng)); err != nil {
					log.Fatalf("Failed to write record: %v", err)
				}
			}
		}
	}

	log.Printf("Successfully generated %d records into %s.", written, *outputFile)
}

// badLine returns one of the malformed shapes the parser must survive.
func badLine(rng *rand.Rand) string {
	switch rng.Intn(3) {
	case 0:
		return "not-a-timestamp 12"
	case 1:
		return "2021-12-01T05:00:00 twelve"
	default:
		return "2021-12-01T05:00:00 12 extra"
	}
}

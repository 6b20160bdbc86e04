package render

import (
	"TrafficLens/internal/model"
	"fmt"
	"io"
	"sort"
)

// FormatRecord renders one record as "<ISO timestamp> <count>".
func FormatRecord(r model.Record) string {
	return fmt.Sprintf("%s %d", r.Timestamp.Format(model.TimestampLayout), r.Count)
}

// WriteText writes the plain-text report: the total on its own line, then
// per-day totals sorted by date, then the top periods in rank order, then the
// lowest window in window order.
func WriteText(w io.Writer, rep *model.Report) error {
	if _, err := fmt.Fprintf(w, "%d\n", rep.TotalCars); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	days := make([]string, 0, len(rep.CarsPerDay))
	for d := range rep.CarsPerDay {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		if _, err := fmt.Fprintf(w, "%s %d\n", d, rep.CarsPerDay[d]); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	for _, r := range rep.TopPeriods {
		if _, err := fmt.Fprintln(w, FormatRecord(r)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	for _, r := range rep.LowestWindow {
		if _, err := fmt.Fprintln(w, FormatRecord(r)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	return nil
}

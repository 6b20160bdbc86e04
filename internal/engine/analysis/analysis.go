package analysis

import (
	"TrafficLens/internal/model"
	"errors"
	"sort"
)

// ErrNoRecords is returned by Run when the input holds no records at all.
// Callers treat it as a defined empty outcome, not a failure.
var ErrNoRecords = errors.New("no records found in input")

// TotalCars returns the sum of all counts. Zero for empty input.
func TotalCars(records []model.Record) int64 {
	var total int64
	for _, r := range records {
		total += r.Count
	}
	return total
}

// CarsPerDay sums counts per calendar day, keyed by the date portion of the
// timestamp (model.DateLayout). Duplicate timestamps sum into the same day.
// Iteration order over the result is unspecified; display code must sort keys.
func CarsPerDay(records []model.Record) map[string]int64 {
	perDay := make(map[string]int64)
	for _, r := range records {
		perDay[r.Timestamp.Format(model.DateLayout)] += r.Count
	}
	return perDay
}

// TopThree returns the up-to-three records with the highest counts, ordered
// by count descending. Ties are broken by the earlier timestamp. The input
// slice is not modified.
func TopThree(records []model.Record) []model.Record {
	sorted := make([]model.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	if len(sorted) > 3 {
		sorted = sorted[:3]
	}
	return sorted
}

// MinWindow returns the three contiguous records with the smallest combined
// count, using an O(N) sliding sum. Contiguity means consecutive slice
// indices, NOT consecutive timestamps: the result only describes the quietest
// 1.5 hours when the caller has already sorted the records chronologically,
// as Run does. Ties keep the leftmost window. Fewer than three records is a
// defined fallback: the input comes back unchanged.
func MinWindow(records []model.Record) []model.Record {
	if len(records) < 3 {
		return records
	}

	bestStart := 0
	bestSum := records[0].Count + records[1].Count + records[2].Count

	currentSum := bestSum
	for start := 1; start <= len(records)-3; start++ {
		// Slide by one: drop the record leaving the window, add the one entering.
		currentSum -= records[start-1].Count
		currentSum += records[start+2].Count
		if currentSum < bestSum {
			bestSum = currentSum
			bestStart = start
		}
	}

	return records[bestStart : bestStart+3]
}

// Run produces the full report for a set of parsed records. It sorts a copy
// of the input by timestamp before any aggregation, which is what gives
// MinWindow's index contiguity its chronological meaning. The caller's slice
// is never mutated. Empty input returns ErrNoRecords.
func Run(records []model.Record) (*model.Report, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	sorted := make([]model.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	return &model.Report{
		TotalCars:    TotalCars(sorted),
		CarsPerDay:   CarsPerDay(sorted),
		TopPeriods:   TopThree(sorted),
		LowestWindow: MinWindow(sorted),
		RecordCount:  len(sorted),
	}, nil
}

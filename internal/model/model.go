package model

import "time"

// TimestampLayout is the extended ISO-8601 form used by traffic files,
// e.g. "2021-12-01T05:00:00". time.Parse also accepts an optional
// fractional-seconds suffix on top of this layout.
const TimestampLayout = "2006-01-02T15:04:05"

// DateLayout is the calendar-day form used for per-day grouping keys.
const DateLayout = "2006-01-02"

// Record is a single half-hour observation from a traffic counter: the
// start of the interval and the number of cars seen during it.
type Record struct {
	Timestamp time.Time
	Count     int64
}

// ParseReason classifies why a single input line was rejected.
type ParseReason int

const (
	// ReasonWrongFieldCount marks a line that did not split into exactly
	// two whitespace-separated fields.
	ReasonWrongFieldCount ParseReason = iota
	// ReasonBadTimestamp marks a line whose first field is not a valid
	// ISO-8601 timestamp.
	ReasonBadTimestamp
	// ReasonBadCount marks a line whose second field is not a base-10
	// integer.
	ReasonBadCount
	// ReasonOther marks any other failure while handling a line.
	ReasonOther
)

func (r ParseReason) String() string {
	switch r {
	case ReasonWrongFieldCount:
		return "wrong field count"
	case ReasonBadTimestamp:
		return "bad timestamp"
	case ReasonBadCount:
		return "bad count"
	default:
		return "other"
	}
}

// Diagnostic describes one skipped input line. Line numbers are 1-based
// positions in the original input, counting blank lines.
type Diagnostic struct {
	Line   int
	Raw    string
	Reason ParseReason
	Detail string
}

// Report holds the results of every analysis over one set of records.
type Report struct {
	// TotalCars is the sum of all counts.
	TotalCars int64
	// CarsPerDay maps a calendar day (DateLayout) to the cars seen that day.
	CarsPerDay map[string]int64
	// TopPeriods contains the up-to-three records with the highest counts,
	// ordered by count descending, ties broken by earlier timestamp.
	TopPeriods []Record
	// LowestWindow is the contiguous run of three records with the least
	// combined traffic, in chronological order.
	LowestWindow []Record
	// RecordCount is the number of records the report was computed from.
	RecordCount int
}

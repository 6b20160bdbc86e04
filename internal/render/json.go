package render

import "TrafficLens/internal/model"

// RecordJSON is the wire form of one half-hour record.
type RecordJSON struct {
	Timestamp string `json:"timestamp"`
	Count     int64  `json:"count"`
}

// Meta describes the input the analysis was computed from.
type Meta struct {
	Filename         string `json:"filename"`
	RecordsProcessed int    `json:"records_processed"`
	LinesSkipped     int    `json:"lines_skipped"`
}

// Analysis carries the four results in wire form.
type Analysis struct {
	TotalCars    int64            `json:"total_cars"`
	CarsPerDay   map[string]int64 `json:"cars_per_day"`
	Top3Periods  []RecordJSON     `json:"top_3_periods"`
	LowestWindow []RecordJSON     `json:"lowest_1_5_hour_window"`
}

// AnalysisResponse is the structured response body shared by the HTTP API
// and the NATS report publisher.
type AnalysisResponse struct {
	Meta     Meta     `json:"meta"`
	Analysis Analysis `json:"analysis"`
}

func toRecordJSON(records []model.Record) []RecordJSON {
	out := make([]RecordJSON, 0, len(records))
	for _, r := range records {
		out = append(out, RecordJSON{
			Timestamp: r.Timestamp.Format(model.TimestampLayout),
			Count:     r.Count,
		})
	}
	return out
}

// NewAnalysisResponse shapes a report into the structured response form.
// inputName identifies the analyzed input (an uploaded file's name);
// linesSkipped is the number of malformed lines the parser dropped.
func NewAnalysisResponse(inputName string, rep *model.Report, linesSkipped int) *AnalysisResponse {
	return &AnalysisResponse{
		Meta: Meta{
			Filename:         inputName,
			RecordsProcessed: rep.RecordCount,
			LinesSkipped:     linesSkipped,
		},
		Analysis: Analysis{
			TotalCars:    rep.TotalCars,
			CarsPerDay:   rep.CarsPerDay,
			Top3Periods:  toRecordJSON(rep.TopPeriods),
			LowestWindow: toRecordJSON(rep.LowestWindow),
		},
	}
}

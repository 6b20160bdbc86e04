package parser

import (
	"TrafficLens/internal/model"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LineError reports why one input line was rejected.
type LineError struct {
	Reason model.ParseReason
	Detail string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

// parseLine converts one non-blank line into a Record. A valid line holds
// exactly two whitespace-separated fields: an ISO-8601 timestamp and a
// base-10 count. Failures come back as *LineError values, never panics.
func parseLine(line string) (model.Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return model.Record{}, &LineError{
			Reason: model.ReasonWrongFieldCount,
			Detail: fmt.Sprintf("expected 2 fields, got %d", len(fields)),
		}
	}

	ts, err := time.Parse(model.TimestampLayout, fields[0])
	if err != nil {
		return model.Record{}, &LineError{
			Reason: model.ReasonBadTimestamp,
			Detail: fmt.Sprintf("invalid timestamp %q", fields[0]),
		}
	}

	// Negative counts pass here on purpose: the parser only requires a
	// base-10 integer, it does not range-check.
	count, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return model.Record{}, &LineError{
			Reason: model.ReasonBadCount,
			Detail: fmt.Sprintf("invalid count %q", fields[1]),
		}
	}

	return model.Record{Timestamp: ts, Count: count}, nil
}

// Parse reads half-hour traffic counts from r, one record per line. Malformed
// lines are skipped and reported as Diagnostics; they never fail the parse.
// Lines may be arbitrarily long. Records come back in input order. The
// returned error is resource-level only (the reader itself failed); empty or
// all-invalid input is not an error.
func Parse(r io.Reader) ([]model.Record, []model.Diagnostic, error) {
	var records []model.Record
	var diags []model.Diagnostic

	reader := bufio.NewReader(r)
	lineNum := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if len(raw) > 0 {
			lineNum++
			line := strings.TrimSpace(raw)
			if line != "" {
				rec, err := parseLine(line)
				if err != nil {
					reason := model.ReasonOther
					detail := err.Error()
					var lineErr *LineError
					if errors.As(err, &lineErr) {
						reason = lineErr.Reason
						detail = lineErr.Detail
					}
					diags = append(diags, model.Diagnostic{
						Line:   lineNum,
						Raw:    line,
						Reason: reason,
						Detail: detail,
					})
				} else {
					records = append(records, rec)
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return records, diags, fmt.Errorf("failed to read input: %w", readErr)
		}
	}

	return records, diags, nil
}

// ParseFile opens the given traffic file and parses it with Parse. An
// unreadable file is fatal to the operation and is returned as an error.
func ParseFile(path string) ([]model.Record, []model.Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

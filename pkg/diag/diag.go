// Package diag builds diagnostic records for faults captured during
// expression evaluation.
//
// The task engine never constructs diagnostic records itself: it hands
// the fault to a Recorder and stores whatever record comes back. This
// keeps record construction (IDs, timestamps, logging) out of the core.
package diag

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Record is an opaque diagnostic describing a captured fault.
type Record struct {
	// ID uniquely identifies this record
	ID string

	// Time is when the fault was captured
	Time time.Time

	// Message is the human-readable fault description
	Message string

	// Identifier names the failing unit (typically the expression source text)
	Identifier string

	// Cause is the underlying fault, if any
	Cause error
}

// String renders the record for display.
func (r *Record) String() string {
	if r.Cause != nil {
		return fmt.Sprintf("[%s] %s (%s): %v", r.ID, r.Message, r.Identifier, r.Cause)
	}
	return fmt.Sprintf("[%s] %s (%s)", r.ID, r.Message, r.Identifier)
}

// Unwrap returns the underlying fault for errors.Is/As support.
func (r *Record) Unwrap() error {
	return r.Cause
}

// Recorder captures faults into diagnostic records.
type Recorder interface {
	// Capture builds a record for a fault. The cause may be nil when the
	// fault has no underlying error.
	Capture(message, identifier string, cause error) *Record
}

// recorder is the default Recorder. It stamps records with UUIDs and
// logs each capture at debug level.
type recorder struct {
	logger *slog.Logger
}

// NewRecorder creates the default Recorder. A nil logger falls back to
// slog.Default().
func NewRecorder(logger *slog.Logger) Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &recorder{logger: logger}
}

// Capture implements Recorder.
func (r *recorder) Capture(message, identifier string, cause error) *Record {
	rec := &Record{
		ID:         uuid.NewString(),
		Time:       time.Now(),
		Message:    message,
		Identifier: identifier,
		Cause:      cause,
	}

	r.logger.Debug("captured fault",
		slog.String("diagnostic_id", rec.ID),
		slog.String("identifier", identifier),
		slog.Any("error", cause),
	)

	return rec
}

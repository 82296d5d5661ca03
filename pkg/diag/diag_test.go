package diag

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	rec := NewRecorder(nil)

	cause := errors.New("pool not found")
	before := time.Now()
	record := rec.Capture("expression evaluation failed", `restartPool("missing")`, cause)

	require.NotNil(t, record)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "expression evaluation failed", record.Message)
	assert.Equal(t, `restartPool("missing")`, record.Identifier)
	assert.Equal(t, cause, record.Cause)
	assert.False(t, record.Time.Before(before))
}

func TestCapture_NilCause(t *testing.T) {
	rec := NewRecorder(nil)

	record := rec.Capture("step skipped", "intro", nil)

	require.NotNil(t, record)
	assert.NoError(t, record.Cause)
	assert.NotContains(t, record.String(), "<nil>")
}

func TestCapture_UniqueIDs(t *testing.T) {
	rec := NewRecorder(nil)

	a := rec.Capture("fault", "x", nil)
	b := rec.Capture("fault", "x", nil)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestRecord_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	record := NewRecorder(nil).Capture("fault", "x", cause)

	assert.Equal(t, cause, record.Unwrap())
}

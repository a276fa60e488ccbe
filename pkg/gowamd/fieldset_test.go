package gowamd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testResult() Result {
	return Result{Fields: map[string]any{
		"model":       "SM4",
		"latitude":    46.83631,
		"recorded_at": "2025-02-20T17:00:00-06:00",
		"samplerate":  float64(256000),
	}}
}

func TestFieldSetString(t *testing.T) {
	fs := testResult().FieldSet()
	model, err := fs.String("model")
	require.NoError(t, err)
	require.Equal(t, "SM4", model)

	_, err = fs.String("missing")
	require.Error(t, err)
}

func TestFieldSetFloat(t *testing.T) {
	fs := testResult().FieldSet()
	lat, err := fs.Float("latitude")
	require.NoError(t, err)
	require.InDelta(t, 46.83631, lat, 1e-9)

	_, err = fs.Float("model")
	require.Error(t, err)
}

func TestFieldSetInt(t *testing.T) {
	fs := testResult().FieldSet()
	rate, err := fs.Int("samplerate")
	require.NoError(t, err)
	require.EqualValues(t, 256000, rate)
}

func TestFieldSetTime(t *testing.T) {
	fs := testResult().FieldSet()
	ts, err := fs.Time("recorded_at")
	require.NoError(t, err)

	// The recorder's UTC offset survives the round trip.
	_, offset := ts.Zone()
	require.Equal(t, -6*3600, offset)
	require.Equal(t, "2025-02-20T17:00:00-06:00", ts.Format(time.RFC3339))

	_, err = fs.Time("model")
	require.Error(t, err)
}

func TestFieldSetEmpty(t *testing.T) {
	fs := Result{}.FieldSet()
	_, ok := fs.Raw("anything")
	require.False(t, ok)
}

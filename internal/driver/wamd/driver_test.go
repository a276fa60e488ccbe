package wamd

import (
	"context"
	"math"
	"testing"

	"github.com/joeweiss/gowamd/internal/options"
)

func TestDriverProcess(t *testing.T) {
	fields, err := (Driver{}).Process(context.Background(), sm4Stream())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if fields["model"] != "SM4" {
		t.Fatalf("unexpected model: %v", fields["model"])
	}
	if fields["recorded_at"] != "2025-02-20T17:00:00-06:00" {
		t.Fatalf("unexpected recorded_at: %v", fields["recorded_at"])
	}
	if fields["utc_offset"] != "-06:00" {
		t.Fatalf("unexpected utc_offset: %v", fields["utc_offset"])
	}
	if lat, ok := fields["latitude"].(float64); !ok || math.Abs(lat-46.83631) > 1e-9 {
		t.Fatalf("unexpected latitude: %v", fields["latitude"])
	}
	if fields["latitude_dir"] != "N" || fields["longitude_dir"] != "W" {
		t.Fatalf("unexpected hemisphere letters: %v %v", fields["latitude_dir"], fields["longitude_dir"])
	}
	if temp, ok := fields["temperature_c"].(float64); !ok || math.Abs(temp+2.5) > 1e-9 {
		t.Fatalf("unexpected temperature_c: %v", fields["temperature_c"])
	}
	if _, ok := fields["firmware"]; ok {
		t.Fatal("absent fields must be omitted from the map")
	}
}

func TestDriverProcessEmptyChunk(t *testing.T) {
	fields, err := (Driver{}).Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected only the envelope keys, got %v", fields)
	}
}

func TestDriverProcessIncludeUnknown(t *testing.T) {
	ctx := options.WithDecode(context.Background(), options.Decode{IncludeUnknown: true})
	fields, err := (Driver{}).Process(ctx, record(0xAB, []byte("VOICE")))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if fields["unknown_ab"] != "VOICE" {
		t.Fatalf("unexpected unknown_ab: %v", fields["unknown_ab"])
	}
}

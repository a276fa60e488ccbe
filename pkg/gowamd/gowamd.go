package gowamd

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/joeweiss/gowamd/internal/container"
	"github.com/joeweiss/gowamd/internal/driver"
	_ "github.com/joeweiss/gowamd/internal/driver/guano" // register driver
	_ "github.com/joeweiss/gowamd/internal/driver/wamd"  // register driver
)

// ErrNoMetadata is returned when a container carries no recognized metadata
// chunk.
var ErrNoMetadata = errors.New("no metadata chunk found")

// Result captures one decoded metadata chunk.
type Result struct {
	Driver    string
	ChunkID   string
	Source    string
	ByteCount int
	Fields    map[string]any
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"driver":     r.Driver,
		"chunk":      r.ChunkID,
		"byte_count": r.ByteCount,
	}
	if r.Source != "" {
		summary["source"] = r.Source
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("driver: %s chunk:%s bytes:%d (marshal error: %v)", r.Driver, r.ChunkID, r.ByteCount, err)
	}
	return string(data)
}

// ExtractFile decodes every recognized metadata chunk of a WAV file.
func ExtractFile(ctx context.Context, path string) ([]Result, error) {
	return ExtractFileWithOptions(ctx, path, ExtractOptions{})
}

// ExtractFileWithOptions decodes a WAV file with custom options.
func ExtractFileWithOptions(ctx context.Context, path string, opts ExtractOptions) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	results, err := Extract(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range results {
		results[i].Source = path
	}
	return results, nil
}

// Extract walks the WAVE container, collects the chunks a driver is
// registered for, and decodes each one. It returns ErrNoMetadata when the
// container holds none of them.
func Extract(ctx context.Context, r io.Reader, opts ExtractOptions) ([]Result, error) {
	ctx = opts.toInternal(ctx)
	known := map[string]bool{}
	for _, id := range driver.ChunkIDs() {
		known[id] = true
	}
	chunks, err := container.Scan(r, func(id string) bool { return known[id] })
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, ErrNoMetadata
	}
	results := make([]Result, 0, len(chunks))
	for _, c := range chunks {
		res, err := decodeChunk(ctx, c.ID, c.Data)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// DecodeChunkHex decodes a hex-encoded chunk payload directly, without a
// container around it.
func DecodeChunkHex(ctx context.Context, chunkID, raw string, opts ExtractOptions) (Result, error) {
	ctx = opts.toInternal(ctx)
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	return decodeChunk(ctx, chunkID, data)
}

func decodeChunk(ctx context.Context, chunkID string, payload []byte) (Result, error) {
	drv, err := driver.Lookup(chunkID)
	if err != nil {
		return Result{}, err
	}
	fields, err := drv.Process(ctx, payload)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", drv.Name(), err)
	}
	return Result{
		Driver:    drv.Name(),
		ChunkID:   chunkID,
		ByteCount: len(payload),
		Fields:    fields,
	}, nil
}

func decodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(input)
	if strings.HasPrefix(strings.ToUpper(clean), "0X") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex payload must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

package testutil

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LoadJSON loads a JSON fixture from testdata relative to the repo root.
func LoadJSON(t *testing.T, rel string, v any) {
	t.Helper()
	data := readTestdata(t, rel)
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

// LoadHex returns a trimmed hex string from a testdata relative path.
func LoadHex(t *testing.T, rel string) string {
	t.Helper()
	data := readTestdata(t, rel)
	return strings.TrimSpace(string(data))
}

// LoadHexBytes returns the decoded bytes of a hex fixture.
func LoadHexBytes(t *testing.T, rel string) []byte {
	t.Helper()
	return DecodeHex(t, LoadHex(t, rel))
}

// DecodeHex converts a fixture hex string into raw bytes.
func DecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		t.Fatalf("decode hex: %v", err)
	}
	return b
}

// WAVChunk is one chunk of a synthesized container.
type WAVChunk struct {
	ID   string
	Data []byte
}

// BuildWAV assembles a minimal RIFF/WAVE stream from raw chunks, including
// the pad byte after odd-sized chunks.
func BuildWAV(t *testing.T, chunks ...WAVChunk) []byte {
	t.Helper()
	var body []byte
	body = append(body, 'W', 'A', 'V', 'E')
	for _, c := range chunks {
		if len(c.ID) != 4 {
			t.Fatalf("chunk ID %q must be four characters", c.ID)
		}
		body = append(body, c.ID...)
		body = binary.LittleEndian.AppendUint32(body, uint32(len(c.Data)))
		body = append(body, c.Data...)
		if len(c.Data)%2 == 1 {
			body = append(body, 0x00)
		}
	}
	out := make([]byte, 0, len(body)+8)
	out = append(out, 'R', 'I', 'F', 'F')
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
		filepath.Join("..", "..", "..", "testdata", rel),
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}

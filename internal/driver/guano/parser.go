package guano

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// parseBlock splits the chunk payload into "Key: Value" lines. Well-known
// keys land on the same field names the wamd driver uses so callers can
// read either chunk uniformly; anything else passes through under a
// normalized key. Lines without a separator are skipped.
func parseBlock(payload []byte) (map[string]any, error) {
	text := strings.TrimRight(string(payload), "\x00")
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("guano block is not valid UTF-8")
	}
	fields := map[string]any{
		"_":     "metadata",
		"chunk": chunkID,
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		applyField(fields, strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return fields, nil
}

func applyField(fields map[string]any, key, value string) {
	switch key {
	case "GUANO|Version":
		fields["guano_version"] = value
	case "Make":
		fields["make"] = value
	case "Model":
		fields["model"] = value
	case "Serial":
		fields["serial"] = value
	case "Firmware Version":
		fields["firmware"] = value
	case "Timestamp":
		// GUANO timestamps may omit the UTC offset, so the value is
		// passed through as written.
		fields["recorded_at"] = value
	case "Loc Position":
		if lat, lon, ok := parsePosition(value); ok {
			fields["latitude"] = lat
			fields["longitude"] = lon
		}
	case "Samplerate":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			fields["samplerate_hz"] = v
		}
	case "Length":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			fields["length_s"] = v
		}
	case "Note":
		fields["note"] = strings.ReplaceAll(value, `\n`, "\n")
	default:
		fields[normalizeKey(key)] = value
	}
}

// parsePosition reads the "<lat> <lon>" pair in signed decimal degrees.
func parsePosition(value string) (lat, lon float64, ok bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(parts[0], 64)
	lon, errLon := strconv.ParseFloat(parts[1], 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

func normalizeKey(key string) string {
	key = strings.ToLower(key)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, key)
}

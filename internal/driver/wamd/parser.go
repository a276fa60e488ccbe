package wamd

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joeweiss/gowamd/internal/options"
	"github.com/joeweiss/gowamd/internal/records"
)

const (
	tagModel       = 0x01
	tagSerial      = 0x02
	tagFirmware    = 0x03
	tagPrefix      = 0x04
	tagRecordedAt  = 0x05
	tagSoftware    = 0x10
	tagMicConfig   = 0x12
	tagSensitivity = 0x13
	tagPosition    = 0x14
	tagTemperature = 0x15
)

// Fixed-point calibration for the binary position and temperature tags,
// derived from sample SM4 files: positions are signed 32-bit counts on the
// 1e-5 degree WGS84 grid, temperatures signed 16-bit hundredths of a degree.
const (
	positionScale     = 1e5
	positionValueSize = 4
	temperatureScale  = 100
)

// Metadata is the structured record assembled from a wamd chunk. A field the
// chunk never carried, or whose bytes did not decode, stays absent: empty
// for strings, nil for the pointer fields, so zero readings such as 0.0
// degrees stay representable.
type Metadata struct {
	Model        string
	Serial       string
	Firmware     string
	Prefix       string
	Software     string
	MicConfig    string
	Sensitivity  string
	RecordedAt   *time.Time
	Latitude     *float64
	Longitude    *float64
	TemperatureC *float64
	Unknown      map[string]string
}

// Decode assembles a Metadata record from raw wamd chunk bytes.
func Decode(data []byte) Metadata {
	return DecodeWithOptions(data, options.Decode{})
}

// DecodeWithOptions runs one pass over the tag-value records in data. A
// repeated tag overwrites the earlier value. No malformed tag aborts the
// pass: a value that does not decode leaves its field absent and the scan
// continues, and a truncated stream yields whatever was decoded before the
// cut.
func DecodeWithOptions(data []byte, opts options.Decode) Metadata {
	var md Metadata
	for _, rec := range records.Scan(data) {
		switch rec.Tag {
		case tagModel:
			if s, ok := decodeText(rec.Value); ok {
				md.Model = s
			}
		case tagSerial:
			if s, ok := decodeText(rec.Value); ok {
				md.Serial = s
			}
		case tagFirmware:
			if s, ok := decodeText(rec.Value); ok {
				md.Firmware = s
			}
		case tagPrefix:
			if s, ok := decodeText(rec.Value); ok {
				md.Prefix = s
			}
		case tagRecordedAt:
			if ts, ok := decodeTimestamp(rec.Value); ok {
				md.RecordedAt = &ts
			}
		case tagSoftware:
			if s, ok := decodeText(rec.Value); ok {
				md.Software = s
			}
		case tagMicConfig:
			if s, ok := decodeText(rec.Value); ok {
				md.MicConfig = s
			}
		case tagSensitivity:
			// Vendor-defined unit with no documented scale, passed
			// through as written.
			if s, ok := decodeText(rec.Value); ok {
				md.Sensitivity = s
			}
		case tagPosition:
			if lat, lon, ok := decodePosition(rec.Value); ok {
				md.Latitude = &lat
				md.Longitude = &lon
			}
		case tagTemperature:
			if c, ok := decodeTemperature(rec.Value); ok {
				md.TemperatureC = &c
			}
		default:
			if opts.IncludeUnknown {
				if md.Unknown == nil {
					md.Unknown = map[string]string{}
				}
				key := fmt.Sprintf("unknown_%02x", rec.Tag)
				if s, ok := decodeText(rec.Value); ok {
					md.Unknown[key] = s
				} else {
					md.Unknown[key] = hex.EncodeToString(rec.Value)
				}
			}
		}
	}
	return md
}

func decodeText(b []byte) (string, bool) {
	s := strings.TrimRight(string(b), "\x00")
	if !utf8.ValidString(s) {
		return "", false
	}
	return s, true
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
}

// decodeTimestamp parses the recording moment, keeping the recorder's UTC
// offset attached to the value.
func decodeTimestamp(b []byte) (time.Time, bool) {
	s, ok := decodeText(b)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// decodePosition decodes the GPS pair: two signed scaled integers, latitude
// first, negative meaning South/West. Older firmware writes the position as
// a WGS84 sentence instead, which is handled before the binary form.
func decodePosition(b []byte) (lat, lon float64, ok bool) {
	if s, text := decodeText(b); text && strings.HasPrefix(s, "WGS84,") {
		return parsePositionSentence(s)
	}
	if len(b) < 2*positionValueSize {
		return 0, 0, false
	}
	rawLat := int32(binary.LittleEndian.Uint32(b[0:positionValueSize]))
	rawLon := int32(binary.LittleEndian.Uint32(b[positionValueSize : 2*positionValueSize]))
	lat = float64(rawLat) / positionScale
	lon = float64(rawLon) / positionScale
	if !validPosition(lat, lon) {
		return 0, 0, false
	}
	return lat, lon, true
}

// parsePositionSentence handles the text form "WGS84,<lat>,<N|S>,<lon>,<E|W>".
func parsePositionSentence(s string) (lat, lon float64, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) < 5 {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	if strings.TrimSpace(parts[2]) == "S" {
		lat = -lat
	}
	if strings.TrimSpace(parts[4]) == "W" {
		lon = -lon
	}
	if !validPosition(lat, lon) {
		return 0, 0, false
	}
	return lat, lon, true
}

func validPosition(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// decodeTemperature recovers degrees Celsius. The decimal-text form written
// by older firmware is unambiguous, so it is tried before the scaled
// integer.
func decodeTemperature(b []byte) (float64, bool) {
	if s, ok := decodeText(b); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v, true
		}
	}
	if len(b) < 2 {
		return 0, false
	}
	raw := int16(binary.LittleEndian.Uint16(b[:2]))
	return float64(raw) / temperatureScale, true
}

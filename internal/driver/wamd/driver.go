package wamd

import (
	"context"
	"time"

	"github.com/joeweiss/gowamd/internal/driver"
	"github.com/joeweiss/gowamd/internal/options"
)

const chunkID = "wamd"

func init() {
	driver.Register(chunkID, Driver{})
}

// Driver decodes the Wildlife Acoustics wamd metadata chunk.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "wamd" }

// Process decodes the chunk payload into a flat field map. The format makes
// no forward-compatibility promises, so decoding never fails: a chunk full
// of unknown tags simply yields a sparse map.
func (Driver) Process(ctx context.Context, payload []byte) (map[string]any, error) {
	md := DecodeWithOptions(payload, options.DecodeFrom(ctx))
	return md.Fields(), nil
}

// Fields renders the record for presentation; absent fields are omitted.
// Hemisphere letters are derived from coordinate signs.
func (md Metadata) Fields() map[string]any {
	fields := map[string]any{
		"_":     "metadata",
		"chunk": chunkID,
	}
	if md.Model != "" {
		fields["model"] = md.Model
	}
	if md.Serial != "" {
		fields["serial"] = md.Serial
	}
	if md.Firmware != "" {
		fields["firmware"] = md.Firmware
	}
	if md.Prefix != "" {
		fields["prefix"] = md.Prefix
	}
	if md.Software != "" {
		fields["software"] = md.Software
	}
	if md.MicConfig != "" {
		fields["mic_config"] = md.MicConfig
	}
	if md.Sensitivity != "" {
		fields["sensitivity"] = md.Sensitivity
	}
	if md.RecordedAt != nil {
		fields["recorded_at"] = md.RecordedAt.Format(time.RFC3339)
		fields["utc_offset"] = md.RecordedAt.Format("-07:00")
	}
	if md.Latitude != nil {
		fields["latitude"] = *md.Latitude
		fields["latitude_dir"] = hemisphere(*md.Latitude, "N", "S")
	}
	if md.Longitude != nil {
		fields["longitude"] = *md.Longitude
		fields["longitude_dir"] = hemisphere(*md.Longitude, "E", "W")
	}
	if md.TemperatureC != nil {
		fields["temperature_c"] = *md.TemperatureC
	}
	for k, v := range md.Unknown {
		fields[k] = v
	}
	return fields
}

func hemisphere(v float64, pos, neg string) string {
	if v < 0 {
		return neg
	}
	return pos
}

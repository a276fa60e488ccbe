package guano

import (
	"context"

	"github.com/joeweiss/gowamd/internal/driver"
)

const chunkID = "guan"

func init() {
	driver.Register(chunkID, Driver{})
}

// Driver decodes the GUANO metadata chunk carried by bat recorders.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "guano" }

// Process parses the UTF-8 key/value block into a flat field map.
func (Driver) Process(_ context.Context, payload []byte) (map[string]any, error) {
	return parseBlock(payload)
}

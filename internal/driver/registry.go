package driver

import (
	"context"
	"fmt"
	"sync"
)

// Driver decodes the payload of one metadata chunk type.
type Driver interface {
	Name() string
	Process(context.Context, []byte) (map[string]any, error)
}

var (
	regMu    sync.RWMutex
	registry = map[string]Driver{}
)

// Register stores a driver for a four-character chunk ID.
func Register(chunkID string, drv Driver) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[chunkID] = drv
}

// Lookup returns the driver registered for the chunk ID.
func Lookup(chunkID string) (Driver, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	drv, ok := registry[chunkID]
	if !ok {
		return nil, fmt.Errorf("no driver registered for chunk %q", chunkID)
	}
	return drv, nil
}

// ChunkIDs lists every chunk ID with a registered driver. The container
// walker uses it to decide which chunk payloads are worth collecting.
func ChunkIDs() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}

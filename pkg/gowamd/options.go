package gowamd

import (
	"context"

	internalopts "github.com/joeweiss/gowamd/internal/options"
)

// ExtractOptions configures decoding.
type ExtractOptions struct {
	// IncludeUnknown reports unrecognized wamd tags as unknown_XX fields
	// instead of skipping them.
	IncludeUnknown bool
}

func (opts ExtractOptions) toInternal(ctx context.Context) context.Context {
	return internalopts.WithDecode(ctx, internalopts.Decode{
		IncludeUnknown: opts.IncludeUnknown,
	})
}

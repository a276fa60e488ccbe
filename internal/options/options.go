package options

import "context"

type contextKey struct{}

// Decode carries per-call decoding options down to the chunk drivers.
type Decode struct {
	// IncludeUnknown reports tags outside the documented table as
	// unknown_XX fields instead of dropping them.
	IncludeUnknown bool
}

// WithDecode stores the options inside the context.
func WithDecode(ctx context.Context, o Decode) context.Context {
	return context.WithValue(ctx, contextKey{}, o)
}

// DecodeFrom retrieves the options from context, zero value if absent.
func DecodeFrom(ctx context.Context) Decode {
	if v := ctx.Value(contextKey{}); v != nil {
		if o, ok := v.(Decode); ok {
			return o
		}
	}
	return Decode{}
}

package convert

import "context"

// Converter defines the interface for the PNG to WebP conversion function.
type Converter interface {
	Convert(ctx context.Context, data []byte, quality float64) (*Result, error)
}

package convert

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"log"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

// Encoder settings
const (
	// DefaultQuality mirrors the quality slider default (100%)
	DefaultQuality = 1.0
	MinQuality     = 0.0
	MaxQuality     = 1.0

	// encoderQualityScale maps the [0,1] quality factor onto the encoder's 0..100 range
	encoderQualityScale = 100

	// MaxSurfacePixels bounds the offscreen raster (16384 x 16384)
	MaxSurfacePixels = 16384 * 16384

	// Pre-allocation for the output buffer
	outputBufferHint = 256 * 1024
)

// Result is the encoded WebP output of a single conversion
type Result struct {
	Data   []byte
	Size   int64
	Width  int
	Height int
}

// WebPConverter decodes PNG input, draws it onto an offscreen RGBA surface
// and re-encodes the surface as lossy WebP.
type WebPConverter struct{}

// NewWebPConverter creates the default converter
func NewWebPConverter() Converter {
	return &WebPConverter{}
}

// Convert runs the decode, draw and encode steps for one file
func (c *WebPConverter) Convert(ctx context.Context, data []byte, quality float64) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, newError(StageRead, MsgReadFailed, errors.New("empty input"))
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, newError(StageDecode, MsgDecodeFailed, err)
	}

	surface, err := newSurface(img.Bounds())
	if err != nil {
		return nil, err
	}
	draw.Copy(surface, image.Point{}, img, img.Bounds(), draw.Src, nil)

	encoded, err := encode(surface, quality)
	if err != nil {
		return nil, err
	}

	bounds := surface.Bounds()
	return &Result{
		Data:   encoded,
		Size:   int64(len(encoded)),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// newSurface allocates the offscreen raster the decoded image is drawn onto
func newSurface(bounds image.Rectangle) (*image.RGBA, error) {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, newError(StageSurface, MsgSurfaceFailed, errors.New("empty image bounds"))
	}
	if int64(w)*int64(h) > MaxSurfacePixels {
		return nil, newError(StageSurface, MsgSurfaceFailed, errors.New("image exceeds maximum surface size"))
	}
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

// encode writes the surface as WebP at the given quality factor
func encode(surface *image.RGBA, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(outputBufferHint)

	opts := &webp.Options{Quality: float32(ClampQuality(quality) * encoderQualityScale)}
	if err := webp.Encode(&buf, surface, opts); err != nil {
		log.Printf("WebP encoder failed: %v", err)
		return nil, newError(StageEncode, MsgEncodeFailed, err)
	}
	if buf.Len() == 0 {
		return nil, newError(StageEncode, MsgEncodeFailed, errors.New("encoder produced no output"))
	}
	return buf.Bytes(), nil
}

// ClampQuality keeps the quality factor inside [0,1]
func ClampQuality(quality float64) float64 {
	if quality < MinQuality {
		return MinQuality
	}
	if quality > MaxQuality {
		return MaxQuality
	}
	return quality
}

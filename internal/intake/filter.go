package intake

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/png2webp/internal/model"
)

// Accepted input type and the message shown when nothing matches it
const (
	MIMETypePNG     = "image/png"
	MsgPNGOnly      = "Please select PNG images only"
	octetStreamMIME = "application/octet-stream"
)

// DetectMIME resolves the MIME type from the file extension, falling back to content sniffing
func DetectMIME(name string, data []byte) string {
	detected := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if detected == "" {
		if len(data) == 0 {
			return octetStreamMIME
		}
		detected = http.DetectContentType(data)
	}
	if idx := strings.Index(detected, ";"); idx != -1 {
		detected = detected[:idx]
	}
	return strings.TrimSpace(detected)
}

// IsPNG reports whether the source carries the PNG MIME type
func IsPNG(src *model.Source) bool {
	return src != nil && src.MIMEType == MIMETypePNG
}

// Filter keeps PNG sources only. When nothing is left it returns the message to show.
// With multiple disabled only the first accepted source is kept.
func Filter(sources []*model.Source, multiple bool) ([]*model.Source, string) {
	var accepted []*model.Source
	for _, src := range sources {
		if IsPNG(src) {
			accepted = append(accepted, src)
		}
	}

	if len(accepted) == 0 {
		return nil, MsgPNGOnly
	}
	if !multiple && len(accepted) > 1 {
		return accepted[:1], ""
	}
	return accepted, ""
}

// FromReader reads a source from r. An empty mimeType is detected from name and content.
func FromReader(name, mimeType string, r io.Reader) (*model.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if mimeType == "" {
		mimeType = DetectMIME(name, data)
	}
	return &model.Source{Name: name, MIMEType: mimeType, Data: data}, nil
}

// FromPath reads a source from the local filesystem
func FromPath(path string) (*model.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return FromReader(filepath.Base(path), "", f)
}

package preview

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // original previews
	"log"
	"sync"

	"fyne.io/fyne/v2"
	_ "github.com/chai2010/webp" // result previews
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// Thumbnail bounds for previews
const (
	ThumbnailMaxWidth  = 256
	ThumbnailMaxHeight = 256
	HandlePrefix       = "preview-"
)

// Handle is a temporary display handle for one image payload
type Handle struct {
	mu        sync.RWMutex
	name      string
	resource  fyne.Resource
	thumbnail image.Image
	size      int64
	released  bool
}

// Name returns the unique handle name
func (h *Handle) Name() string {
	return h.name
}

// Released reports whether the handle was released
func (h *Handle) Released() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.released
}

// Resource returns the raw payload as a fyne resource, nil once released
func (h *Handle) Resource() fyne.Resource {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.resource
}

// Image returns the thumbnail, nil if the payload could not be decoded or the handle was released
func (h *Handle) Image() image.Image {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.thumbnail
}

// Size returns the payload size in bytes
func (h *Handle) Size() int64 {
	return h.size
}

// Store tracks every handle it issued until it is released
type Store struct {
	mu      sync.Mutex
	handles map[string]*Handle
}

// NewStore creates an empty handle store
func NewStore() *Store {
	return &Store{handles: make(map[string]*Handle)}
}

// Create issues a handle for data. Undecodable payloads still get a handle without a thumbnail.
func (s *Store) Create(name string, data []byte) (*Handle, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot create preview for %s: empty payload", name)
	}

	h := &Handle{
		name: generateHandleName(),
		size: int64(len(data)),
	}
	h.resource = fyne.NewStaticResource(name, data)
	h.thumbnail = thumbnail(data)
	if h.thumbnail == nil {
		log.Printf("Preview for %s has no thumbnail", name)
	}

	s.mu.Lock()
	s.handles[h.name] = h
	s.mu.Unlock()

	return h, nil
}

// Release frees the payload held by the handle. Releasing twice is a no-op.
func (s *Store) Release(h *Handle) {
	if h == nil {
		return
	}

	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.resource = nil
	h.thumbnail = nil
	h.mu.Unlock()

	s.mu.Lock()
	delete(s.handles, h.name)
	s.mu.Unlock()
}

// ReleaseAll releases every live handle
func (s *Store) ReleaseAll() {
	s.mu.Lock()
	handles := make([]*Handle, 0, len(s.handles))
	for _, h := range s.handles {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	for _, h := range handles {
		s.Release(h)
	}
}

// Live returns the number of handles not yet released
func (s *Store) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// thumbnail decodes data and scales it down to fit the preview bounds
func thumbnail(data []byte) image.Image {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return resize.Thumbnail(ThumbnailMaxWidth, ThumbnailMaxHeight, img, resize.Lanczos3)
}

// generateHandleName generates a unique, time ordered handle name
func generateHandleName() string {
	id, err := uuid.NewV7()
	if err != nil {
		return HandlePrefix + uuid.NewString()
	}
	return HandlePrefix + id.String()
}

package conversion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/png2webp/internal/convert"
	"github.com/ytget/png2webp/internal/model"
	"github.com/ytget/png2webp/internal/preview"
)

// ItemIDPrefix prefixes every generated item ID
const ItemIDPrefix = "item-"

var (
	ErrItemNotFound = errors.New("conversion item not found")
	ErrBatchRunning = errors.New("conversion already in progress")
)

// Service keeps the item list and converts items sequentially
type Service struct {
	items        []*model.ConversionItem
	itemsMutex   sync.RWMutex
	quality      float64
	batchRunning bool
	converter    convert.Converter
	previews     *preview.Store
	onUpdate     func(*model.ConversionItem) // callback for UI updates
}

// NewService creates a conversion service
func NewService(converter convert.Converter, previews *preview.Store) *Service {
	if converter == nil {
		converter = convert.NewWebPConverter()
	}
	if previews == nil {
		previews = preview.NewStore()
	}
	return &Service{
		quality:   convert.DefaultQuality,
		converter: converter,
		previews:  previews,
	}
}

// SetUpdateCallback sets the callback function for item updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionItem)) {
	s.itemsMutex.Lock()
	s.onUpdate = callback
	s.itemsMutex.Unlock()
}

// SetQuality sets the quality factor used by the next conversions
func (s *Service) SetQuality(quality float64) {
	s.itemsMutex.Lock()
	s.quality = convert.ClampQuality(quality)
	s.itemsMutex.Unlock()
}

// Quality returns the current quality factor
func (s *Service) Quality() float64 {
	s.itemsMutex.RLock()
	defer s.itemsMutex.RUnlock()
	return s.quality
}

// AddSources appends an idle item per source, in order
func (s *Service) AddSources(sources []*model.Source) []*model.ConversionItem {
	added := make([]*model.ConversionItem, 0, len(sources))

	s.itemsMutex.Lock()
	for _, src := range sources {
		if src == nil {
			continue
		}

		var original model.DisplayHandle
		if h, err := s.previews.Create(src.Name, src.Data); err != nil {
			log.Printf("No preview for %s: %v", src.Name, err)
		} else {
			original = h
		}

		item := model.NewConversionItem(generateItemID(), src, original)
		s.items = append(s.items, item)
		added = append(added, item.Clone())
		log.Printf("Item added: id=%s name=%s size=%d", item.ID, src.Name, item.OriginalSize)
	}
	s.itemsMutex.Unlock()

	return added
}

// Items returns a snapshot of all items in list order
func (s *Service) Items() []*model.ConversionItem {
	s.itemsMutex.RLock()
	defer s.itemsMutex.RUnlock()

	items := make([]*model.ConversionItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item.Clone())
	}
	return items
}

// Get returns an item by ID
func (s *Service) Get(id string) (*model.ConversionItem, bool) {
	s.itemsMutex.RLock()
	defer s.itemsMutex.RUnlock()

	if _, item := s.find(id); item != nil {
		return item.Clone(), true
	}
	return nil, false
}

// Completed returns the completed items in list order
func (s *Service) Completed() []*model.ConversionItem {
	s.itemsMutex.RLock()
	defer s.itemsMutex.RUnlock()

	var completed []*model.ConversionItem
	for _, item := range s.items {
		if item.Status == model.ItemStatusCompleted {
			completed = append(completed, item.Clone())
		}
	}
	return completed
}

// HasCompleted reports whether any item can be downloaded
func (s *Service) HasCompleted() bool {
	s.itemsMutex.RLock()
	defer s.itemsMutex.RUnlock()

	for _, item := range s.items {
		if item.Status == model.ItemStatusCompleted {
			return true
		}
	}
	return false
}

// AnyConverting reports whether an item is being converted right now
func (s *Service) AnyConverting() bool {
	s.itemsMutex.RLock()
	defer s.itemsMutex.RUnlock()

	for _, item := range s.items {
		if item.Status.IsActive() {
			return true
		}
	}
	return false
}

// IsConverting reports whether a Convert All batch is running
func (s *Service) IsConverting() bool {
	s.itemsMutex.RLock()
	defer s.itemsMutex.RUnlock()
	return s.batchRunning
}

// ConvertItem converts a single item at the current quality.
// Items already converting or completed are left alone.
func (s *Service) ConvertItem(ctx context.Context, id string) error {
	return s.convertItem(ctx, id, s.Quality())
}

// convertItem converts id at the given quality
func (s *Service) convertItem(ctx context.Context, id string, quality float64) error {
	s.itemsMutex.Lock()
	_, item := s.find(id)
	if item == nil {
		s.itemsMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if !item.Status.CanConvert() {
		s.itemsMutex.Unlock()
		return nil
	}

	item.MarkConverting()
	data := item.Source.Data
	snapshot := item.Clone()
	s.itemsMutex.Unlock()

	log.Printf("Converting item %s (%s) at quality %.2f", id, snapshot.DisplayName(), quality)
	s.notifyUpdate(snapshot)

	result, err := s.converter.Convert(ctx, data, quality)

	s.itemsMutex.Lock()
	if _, current := s.find(id); current == nil {
		// removed while converting
		s.itemsMutex.Unlock()
		log.Printf("Item %s removed during conversion, result dropped", id)
		return nil
	}

	if err == nil {
		var handle *preview.Handle
		handle, err = s.previews.Create(convert.WebPFileName(item.DisplayName()), result.Data)
		if err == nil {
			item.MarkCompleted(result.Data, handle)
			log.Printf("Item %s completed: %d -> %d bytes", id, item.OriginalSize, result.Size)
		}
	}
	if err != nil {
		var convErr *convert.Error
		if errors.As(err, &convErr) {
			log.Printf("Item %s failed: %s", id, convErr.Detail())
		} else {
			log.Printf("Item %s failed: %v", id, err)
		}
		item.MarkError(convert.Message(err))
	}
	snapshot = item.Clone()
	s.itemsMutex.Unlock()

	s.notifyUpdate(snapshot)
	return nil
}

// ConvertAll converts every item that is not completed, one at a time in list order,
// at the quality set when the batch starts. A cancelled ctx stops the batch before the next item starts.
func (s *Service) ConvertAll(ctx context.Context) error {
	s.itemsMutex.Lock()
	if s.batchRunning {
		s.itemsMutex.Unlock()
		return ErrBatchRunning
	}
	s.batchRunning = true
	// the whole batch uses the quality chosen when it started
	quality := s.quality
	ids := make([]string, 0, len(s.items))
	for _, item := range s.items {
		ids = append(ids, item.ID)
	}
	s.itemsMutex.Unlock()

	defer func() {
		s.itemsMutex.Lock()
		s.batchRunning = false
		s.itemsMutex.Unlock()
	}()

	started := time.Now()
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.convertItem(ctx, id, quality); err != nil && !errors.Is(err, ErrItemNotFound) {
			return err
		}
	}
	log.Printf("Convert all finished: %d items in %s", len(ids), time.Since(started).Round(time.Millisecond))
	return nil
}

// RemoveItem removes an item and releases its display handles
func (s *Service) RemoveItem(id string) error {
	s.itemsMutex.Lock()
	idx, item := s.find(id)
	if item == nil {
		s.itemsMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.itemsMutex.Unlock()

	s.releaseHandles(item)
	log.Printf("Item %s removed", id)
	return nil
}

// Close releases every handle and empties the list
func (s *Service) Close() {
	s.itemsMutex.Lock()
	items := s.items
	s.items = nil
	s.itemsMutex.Unlock()

	for _, item := range items {
		s.releaseHandles(item)
	}
	s.previews.ReleaseAll()
	log.Printf("Conversion service closed, %d items released", len(items))
}

// find returns the index and item for id; callers hold itemsMutex
func (s *Service) find(id string) (int, *model.ConversionItem) {
	for i, item := range s.items {
		if item.ID == id {
			return i, item
		}
	}
	return -1, nil
}

func (s *Service) releaseHandles(item *model.ConversionItem) {
	for _, h := range item.Handles() {
		if ph, ok := h.(*preview.Handle); ok {
			s.previews.Release(ph)
		}
	}
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(item *model.ConversionItem) {
	s.itemsMutex.RLock()
	callback := s.onUpdate
	s.itemsMutex.RUnlock()

	if callback != nil {
		callback(item)
	}
}

// generateItemID generates a unique item ID using UUID v7 for time ordering
func generateItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(ItemIDPrefix+"%d", time.Now().UnixNano())
	}
	return ItemIDPrefix + id.String()
}

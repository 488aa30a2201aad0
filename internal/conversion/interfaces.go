package conversion

import (
	"context"

	"github.com/ytget/png2webp/internal/model"
)

// Queue defines the interface for the conversion service.
type Queue interface {
	SetUpdateCallback(func(*model.ConversionItem))
	AddSources(sources []*model.Source) []*model.ConversionItem
	Items() []*model.ConversionItem
	Get(id string) (*model.ConversionItem, bool)
	Completed() []*model.ConversionItem
	ConvertItem(ctx context.Context, id string) error
	ConvertAll(ctx context.Context) error
	RemoveItem(id string) error
	SetQuality(quality float64)
	Quality() float64
	HasCompleted() bool
	AnyConverting() bool
	IsConverting() bool
	Close()
}

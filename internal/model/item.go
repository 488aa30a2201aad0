package model

import (
	"fmt"
	"math"
	"time"
)

// DefaultErrorMessage is shown when a conversion failed without a description
const DefaultErrorMessage = "Conversion failed"

// File size formatting constants
const (
	FileSizeUnit    = 1024
	SizePlaceholder = "-"
)

// FileSizeUnits lists the units used by FormatFileSize, smallest first
var FileSizeUnits = []string{"B", "KB", "MB", "GB"}

// Source is the original input of a conversion item
type Source struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Size returns the byte size of the source
func (s *Source) Size() int64 {
	if s == nil {
		return 0
	}
	return int64(len(s.Data))
}

// DisplayHandle is a temporary preview resource owned by an item.
// It must be released when the item goes away.
type DisplayHandle interface {
	Name() string
	Released() bool
}

// ConversionItem represents a single PNG file queued for WebP conversion
type ConversionItem struct {
	ID             string
	Source         *Source
	OriginalHandle DisplayHandle
	ResultHandle   DisplayHandle // set only when Status is completed
	Result         []byte        // encoded WebP bytes
	OriginalSize   int64
	ResultSize     *int64 // nil until completed
	Status         ItemStatus
	Error          string // last error message if any
	CreatedAt      time.Time
	StartedAt      time.Time
	FinishedAt     time.Time
}

// NewConversionItem creates an idle item for the given source
func NewConversionItem(id string, src *Source, original DisplayHandle) *ConversionItem {
	return &ConversionItem{
		ID:             id,
		Source:         src,
		OriginalHandle: original,
		OriginalSize:   src.Size(),
		Status:         ItemStatusIdle,
		CreatedAt:      time.Now(),
	}
}

// DisplayName returns the original file name
func (it *ConversionItem) DisplayName() string {
	if it.Source == nil {
		return ""
	}
	return it.Source.Name
}

// MarkConverting moves the item into the converting state
func (it *ConversionItem) MarkConverting() {
	it.Status = ItemStatusConverting
	it.Error = ""
	it.StartedAt = time.Now()
}

// MarkCompleted stores the encoded result and its display handle
func (it *ConversionItem) MarkCompleted(result []byte, handle DisplayHandle) {
	size := int64(len(result))
	it.Status = ItemStatusCompleted
	it.Result = result
	it.ResultSize = &size
	it.ResultHandle = handle
	it.Error = ""
	it.FinishedAt = time.Now()
}

// MarkError records a failed conversion. Any previous result is dropped.
func (it *ConversionItem) MarkError(message string) {
	if message == "" {
		message = DefaultErrorMessage
	}
	it.Status = ItemStatusError
	it.Error = message
	it.Result = nil
	it.ResultSize = nil
	it.ResultHandle = nil
	it.FinishedAt = time.Now()
}

// Valid checks that a result handle exists if and only if the item is completed
func (it *ConversionItem) Valid() error {
	hasResult := it.ResultHandle != nil
	completed := it.Status == ItemStatusCompleted
	if hasResult != completed {
		return fmt.Errorf("item %s: status %s with result handle present=%v", it.ID, it.Status, hasResult)
	}
	if it.Status == ItemStatusError && it.Error == "" {
		return fmt.Errorf("item %s: error status without message", it.ID)
	}
	return nil
}

// Handles returns every display handle currently owned by the item
func (it *ConversionItem) Handles() []DisplayHandle {
	var handles []DisplayHandle
	if it.OriginalHandle != nil {
		handles = append(handles, it.OriginalHandle)
	}
	if it.ResultHandle != nil {
		handles = append(handles, it.ResultHandle)
	}
	return handles
}

// Clone returns a shallow copy safe to hand to the UI
func (it *ConversionItem) Clone() *ConversionItem {
	c := *it
	if it.ResultSize != nil {
		size := *it.ResultSize
		c.ResultSize = &size
	}
	return &c
}

// FormatFileSize formats a byte count as "1.5 MB"; nil renders as "-"
func FormatFileSize(bytes *int64) string {
	if bytes == nil {
		return SizePlaceholder
	}

	size := float64(*bytes)
	unit := 0
	for size >= FileSizeUnit && unit < len(FileSizeUnits)-1 {
		size /= FileSizeUnit
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, FileSizeUnits[unit])
}

// CalculateSavings returns how much smaller the result is, as a rounded percentage
func CalculateSavings(originalSize int64, resultSize *int64) string {
	if resultSize == nil || originalSize <= 0 {
		return SizePlaceholder
	}

	saved := float64(originalSize - *resultSize)
	percentage := saved / float64(originalSize) * 100
	return fmt.Sprintf("%d%%", int(math.Round(percentage)))
}

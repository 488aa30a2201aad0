package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	name     string
	released bool
}

func (h *fakeHandle) Name() string   { return h.name }
func (h *fakeHandle) Released() bool { return h.released }

func size(n int64) *int64 { return &n }

func TestNewConversionItem(t *testing.T) {
	src := &Source{Name: "photo.png", MIMEType: "image/png", Data: []byte{1, 2, 3}}
	item := NewConversionItem("item-1", src, &fakeHandle{name: "orig"})

	require.Equal(t, ItemStatusIdle, item.Status)
	require.Equal(t, int64(3), item.OriginalSize)
	require.Nil(t, item.ResultSize)
	require.Nil(t, item.ResultHandle)
	require.Equal(t, "photo.png", item.DisplayName())
	require.NoError(t, item.Valid())
}

func TestConversionItem_Lifecycle(t *testing.T) {
	item := NewConversionItem("item-1", &Source{Name: "a.png", Data: []byte{1}}, nil)

	item.MarkConverting()
	require.Equal(t, ItemStatusConverting, item.Status)
	require.NoError(t, item.Valid())

	item.MarkCompleted([]byte{9, 9}, &fakeHandle{name: "result"})
	require.Equal(t, ItemStatusCompleted, item.Status)
	require.NotNil(t, item.ResultSize)
	require.Equal(t, int64(2), *item.ResultSize)
	require.NoError(t, item.Valid())

	item.MarkError("")
	require.Equal(t, ItemStatusError, item.Status)
	require.Equal(t, DefaultErrorMessage, item.Error)
	require.Nil(t, item.ResultHandle)
	require.Nil(t, item.ResultSize)
	require.NoError(t, item.Valid())

	item.MarkConverting()
	require.Empty(t, item.Error)
}

func TestConversionItem_ValidDetectsBrokenInvariant(t *testing.T) {
	item := NewConversionItem("item-1", &Source{Name: "a.png"}, nil)
	item.ResultHandle = &fakeHandle{}
	require.Error(t, item.Valid())

	item = NewConversionItem("item-2", &Source{Name: "b.png"}, nil)
	item.Status = ItemStatusCompleted
	require.Error(t, item.Valid())
}

func TestConversionItem_Handles(t *testing.T) {
	orig := &fakeHandle{name: "orig"}
	item := NewConversionItem("item-1", &Source{Name: "a.png"}, orig)
	require.Len(t, item.Handles(), 1)

	item.MarkCompleted([]byte{1}, &fakeHandle{name: "result"})
	require.Len(t, item.Handles(), 2)
}

func TestConversionItem_Clone(t *testing.T) {
	item := NewConversionItem("item-1", &Source{Name: "a.png"}, nil)
	item.MarkCompleted([]byte{1, 2}, &fakeHandle{})

	clone := item.Clone()
	*clone.ResultSize = 100
	clone.Status = ItemStatusError

	require.Equal(t, int64(2), *item.ResultSize)
	require.Equal(t, ItemStatusCompleted, item.Status)
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    *int64
		expected string
	}{
		{nil, "-"},
		{size(0), "0.0 B"},
		{size(512), "512.0 B"},
		{size(1024), "1.0 KB"},
		{size(1536), "1.5 KB"},
		{size(1572864), "1.5 MB"},
		{size(1073741824), "1.0 GB"},
		{size(5 * 1099511627776), "5120.0 GB"},
	}

	for _, test := range tests {
		result := FormatFileSize(test.bytes)
		if result != test.expected {
			t.Errorf("FormatFileSize(%v) = %s, expected %s", test.bytes, result, test.expected)
		}
	}
}

func TestCalculateSavings(t *testing.T) {
	tests := []struct {
		original int64
		result   *int64
		expected string
	}{
		{1000, nil, "-"},
		{1000, size(750), "25%"},
		{1000, size(1000), "0%"},
		{1000, size(1500), "-50%"},
		{3, size(2), "33%"},
		{0, size(10), "-"},
	}

	for _, test := range tests {
		result := CalculateSavings(test.original, test.result)
		if result != test.expected {
			t.Errorf("CalculateSavings(%d, %v) = %s, expected %s", test.original, test.result, result, test.expected)
		}
	}
}

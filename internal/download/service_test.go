package download

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ytget/png2webp/internal/model"
)

type handle struct{}

func (handle) Name() string   { return "h" }
func (handle) Released() bool { return false }

func completedItem(id, name string, data []byte) *model.ConversionItem {
	item := model.NewConversionItem(id, &model.Source{Name: name, MIMEType: "image/png", Data: []byte("png")}, nil)
	item.MarkCompleted(data, handle{})
	return item
}

func TestNewService(t *testing.T) {
	service := NewService("/tmp")
	require.Equal(t, "/tmp", service.DownloadDirectory())

	service.SetDownloadDirectory("/elsewhere")
	require.Equal(t, "/elsewhere", service.DownloadDirectory())
}

func TestFileName(t *testing.T) {
	require.Equal(t, "photo.webp", FileName(completedItem("1", "photo.png", []byte("x"))))
	require.Equal(t, "scan.webp", FileName(completedItem("2", "scan", []byte("x"))))
}

func TestDownloadItem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	service := NewService(dir)
	item := completedItem("1", "photo.png", []byte("RIFFdata"))

	path, err := service.DownloadItem(item)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "photo.webp"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("RIFFdata"), content)

	// second download of the same name must not overwrite
	second, err := service.DownloadItem(item)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "photo (1).webp"), second)
}

func TestDownloadItem_NotCompleted(t *testing.T) {
	service := NewService(t.TempDir())

	idle := model.NewConversionItem("1", &model.Source{Name: "a.png"}, nil)
	_, err := service.DownloadItem(idle)
	require.ErrorIs(t, err, ErrNotCompleted)

	failed := model.NewConversionItem("2", &model.Source{Name: "b.png"}, nil)
	failed.MarkError("Failed to load image")
	_, err = service.DownloadItem(failed)
	require.ErrorIs(t, err, ErrNotCompleted)

	_, err = service.DownloadItem(nil)
	require.ErrorIs(t, err, ErrNotCompleted)
}

func TestDownloadAll(t *testing.T) {
	dir := t.TempDir()
	service := NewService(dir)

	idle := model.NewConversionItem("3", &model.Source{Name: "c.png"}, nil)
	items := []*model.ConversionItem{
		completedItem("1", "a.png", []byte("A")),
		idle,
		completedItem("2", "b.png", []byte("B")),
		nil,
	}

	paths, err := service.DownloadAll(items)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a.webp"), filepath.Join(dir, "b.webp")}, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestDownloadAll_ReportsFailures(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// a regular file where the directory should be
	service := NewService(blocker)
	paths, err := service.DownloadAll([]*model.ConversionItem{completedItem("1", "a.png", []byte("A"))})
	require.Error(t, err)
	require.Contains(t, err.Error(), "a.png")
	require.Empty(t, paths)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestWriteTo(t *testing.T) {
	service := NewService(t.TempDir())
	item := completedItem("1", "a.png", []byte("WEBP"))

	var buf bytes.Buffer
	require.NoError(t, service.WriteTo(item, &buf))
	require.Equal(t, "WEBP", buf.String())

	require.ErrorContains(t, service.WriteTo(item, failingWriter{}), "pipe closed")

	idle := model.NewConversionItem("2", &model.Source{Name: "b.png"}, nil)
	require.ErrorIs(t, service.WriteTo(idle, &buf), ErrNotCompleted)
}

package download

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ytget/png2webp/internal/convert"
	"github.com/ytget/png2webp/internal/model"
	"github.com/ytget/png2webp/internal/platform"
)

// ErrNotCompleted is returned for items without a WebP result
var ErrNotCompleted = errors.New("item is not converted")

// Service handles saving converted results
type Service struct {
	mu          sync.RWMutex
	downloadDir string
}

// NewService creates a new download service
func NewService(downloadDir string) *Service {
	return &Service{downloadDir: downloadDir}
}

// SetDownloadDirectory sets the download directory
func (s *Service) SetDownloadDirectory(dir string) {
	s.mu.Lock()
	s.downloadDir = dir
	s.mu.Unlock()
}

// DownloadDirectory returns the download directory
func (s *Service) DownloadDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.downloadDir
}

// FileName returns the name a completed item is saved under
func FileName(item *model.ConversionItem) string {
	return convert.WebPFileName(item.DisplayName())
}

// DownloadItem writes the item's result into the download directory and returns the file path
func (s *Service) DownloadItem(item *model.ConversionItem) (string, error) {
	if err := checkCompleted(item); err != nil {
		return "", err
	}

	dir := s.DownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create download directory %s: %w", dir, err)
	}

	path, err := platform.UniqueFilePath(dir, FileName(item))
	if err != nil {
		return "", err
	}

	// O_EXCL keeps a file created between the name check and here intact
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, platform.DefaultFilePermissions)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(item.Result); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	log.Printf("Downloaded item %s to %s (%d bytes)", item.ID, path, len(item.Result))
	return path, nil
}

// DownloadAll downloads one file per completed item and skips the rest
func (s *Service) DownloadAll(items []*model.ConversionItem) ([]string, error) {
	var paths []string
	var errs []error

	for _, item := range items {
		if item == nil || item.Status != model.ItemStatusCompleted {
			continue
		}
		path, err := s.DownloadItem(item)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", item.DisplayName(), err))
			continue
		}
		paths = append(paths, path)
	}

	return paths, errors.Join(errs...)
}

// WriteTo streams the item's result to w, used by the save dialog
func (s *Service) WriteTo(item *model.ConversionItem, w io.Writer) error {
	if err := checkCompleted(item); err != nil {
		return err
	}
	if _, err := w.Write(item.Result); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName(item), err)
	}
	return nil
}

func checkCompleted(item *model.ConversionItem) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", ErrNotCompleted)
	}
	if item.Status != model.ItemStatusCompleted || len(item.Result) == 0 {
		return fmt.Errorf("%w: %s (%s)", ErrNotCompleted, item.DisplayName(), item.Status)
	}
	return nil
}

package download

import (
	"io"

	"github.com/ytget/png2webp/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	DownloadItem(item *model.ConversionItem) (string, error)
	DownloadAll(items []*model.ConversionItem) ([]string, error)
	WriteTo(item *model.ConversionItem, w io.Writer) error

	// SetDownloadDirectory sets the directory bulk downloads are written to
	SetDownloadDirectory(dir string)
	DownloadDirectory() string
}

package intake

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ytget/png2webp/internal/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n0000")

func TestDetectMIME(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"photo.png", nil, "image/png"},
		{"PHOTO.PNG", nil, "image/png"},
		{"photo.jpg", nil, "image/jpeg"},
		{"no-extension", pngMagic, "image/png"},
		{"no-extension", nil, "application/octet-stream"},
		{"fake.unknownext", []byte("plain words"), "text/plain"},
	}

	for _, test := range tests {
		result := DetectMIME(test.name, test.data)
		if result != test.expected {
			t.Errorf("DetectMIME(%s) = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestFilter(t *testing.T) {
	png1 := &model.Source{Name: "a.png", MIMEType: MIMETypePNG}
	png2 := &model.Source{Name: "b.png", MIMEType: MIMETypePNG}
	jpg := &model.Source{Name: "c.jpg", MIMEType: "image/jpeg"}
	webp := &model.Source{Name: "d.webp", MIMEType: "image/webp"}

	accepted, msg := Filter([]*model.Source{png1, jpg, png2}, true)
	require.Empty(t, msg)
	require.Equal(t, []*model.Source{png1, png2}, accepted)

	accepted, msg = Filter([]*model.Source{jpg, webp}, true)
	require.Nil(t, accepted)
	require.Equal(t, MsgPNGOnly, msg)

	accepted, msg = Filter(nil, true)
	require.Nil(t, accepted)
	require.Equal(t, MsgPNGOnly, msg)

	accepted, msg = Filter([]*model.Source{jpg, png2, png1}, false)
	require.Empty(t, msg)
	require.Equal(t, []*model.Source{png2}, accepted)
}

func TestIsPNG(t *testing.T) {
	require.True(t, IsPNG(&model.Source{MIMEType: "image/png"}))
	require.False(t, IsPNG(&model.Source{Name: "renamed.png", MIMEType: "image/jpeg"}))
	require.False(t, IsPNG(nil))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestFromReader(t *testing.T) {
	src, err := FromReader("x.png", "", strings.NewReader("data"))
	require.NoError(t, err)
	require.Equal(t, "x.png", src.Name)
	require.Equal(t, MIMETypePNG, src.MIMEType)
	require.Equal(t, int64(4), src.Size())

	src, err = FromReader("x.png", "image/jpeg", strings.NewReader("data"))
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", src.MIMEType)

	_, err = FromReader("x.png", "", failingReader{})
	require.ErrorContains(t, err, "disk gone")
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(path, pngMagic, 0o644))

	src, err := FromPath(path)
	require.NoError(t, err)
	require.Equal(t, "image.png", src.Name)
	require.True(t, IsPNG(src))
	require.Equal(t, pngMagic, src.Data)

	_, err = FromPath(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
}

package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/require"
)

func makeImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestStore_CreatePNG(t *testing.T) {
	store := NewStore()
	data := encodePNG(t, makeImage(512, 128))

	h, err := store.Create("photo.png", data)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(h.Name(), HandlePrefix))
	require.False(t, h.Released())
	require.Equal(t, int64(len(data)), h.Size())
	require.Equal(t, "photo.png", h.Resource().Name())
	require.Equal(t, 1, store.Live())

	thumb := h.Image()
	require.NotNil(t, thumb)
	require.LessOrEqual(t, thumb.Bounds().Dx(), ThumbnailMaxWidth)
	require.LessOrEqual(t, thumb.Bounds().Dy(), ThumbnailMaxHeight)
}

func TestStore_CreateWebP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, webp.Encode(&buf, makeImage(16, 16), &webp.Options{Quality: 80}))

	h, err := NewStore().Create("photo.webp", buf.Bytes())
	require.NoError(t, err)
	require.NotNil(t, h.Image())
}

func TestStore_CreateUndecodable(t *testing.T) {
	store := NewStore()

	h, err := store.Create("broken.png", []byte("garbage"))
	require.NoError(t, err)
	require.Nil(t, h.Image())
	require.NotNil(t, h.Resource())

	_, err = store.Create("empty.png", nil)
	require.Error(t, err)
	require.Equal(t, 1, store.Live())
}

func TestStore_Release(t *testing.T) {
	store := NewStore()
	h1, err := store.Create("a.png", encodePNG(t, makeImage(4, 4)))
	require.NoError(t, err)
	h2, err := store.Create("b.png", encodePNG(t, makeImage(4, 4)))
	require.NoError(t, err)
	require.NotEqual(t, h1.Name(), h2.Name())

	store.Release(h1)
	require.True(t, h1.Released())
	require.Nil(t, h1.Resource())
	require.Nil(t, h1.Image())
	require.Equal(t, 1, store.Live())

	store.Release(h1)
	store.Release(nil)
	require.Equal(t, 1, store.Live())
	require.False(t, h2.Released())
}

func TestStore_ReleaseAll(t *testing.T) {
	store := NewStore()
	var handles []*Handle
	for i := 0; i < 3; i++ {
		h, err := store.Create("x.png", encodePNG(t, makeImage(2, 2)))
		require.NoError(t, err)
		handles = append(handles, h)
	}

	store.ReleaseAll()
	require.Zero(t, store.Live())
	for _, h := range handles {
		require.True(t, h.Released())
	}
}

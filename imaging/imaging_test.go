package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))

	decoded, err := Decode(pngBytes(t, img))
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	decoded, err = Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dy())
}

func TestDecode_BMP(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 6, 3))))

	decoded, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 6, decoded.Bounds().Dx())
	assert.Equal(t, 3, decoded.Bounds().Dy())
}

func TestDecode_TIFF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, tiff.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 5, 7)), nil))

	decoded, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 5, decoded.Bounds().Dx())
	assert.Equal(t, 7, decoded.Bounds().Dy())
}

func TestDecode_WebP(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("testdata/photo.lossy.webp")
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Positive(t, decoded.Bounds().Dx())
	assert.Positive(t, decoded.Bounds().Dy())
}

func TestDecode_InvalidBytes(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("this is not an image"))
	assert.Error(t, err)

	_, err = Decode(nil)
	assert.Error(t, err)
}

func TestToNRGBA(t *testing.T) {
	t.Parallel()

	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	rgba.Set(1, 1, color.RGBA{R: 200, A: 255})

	got := ToNRGBA(rgba)
	assert.Equal(t, rgba.Bounds(), got.Bounds())
	assert.Equal(t, uint8(200), got.NRGBAAt(1, 1).R)
	assert.Equal(t, uint8(255), got.NRGBAAt(1, 1).A)

	// Already NRGBA comes back untouched.
	assert.Same(t, got, ToNRGBA(got))

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	assert.Equal(t, uint8(255), ToNRGBA(gray).NRGBAAt(0, 0).A)
}

func TestResizeWithinMax(t *testing.T) {
	t.Parallel()

	big := image.NewNRGBA(image.Rect(0, 0, 4000, 2000))
	got := ResizeWithinMax(big, 2048)
	assert.Equal(t, 2048, got.Bounds().Dx())
	assert.Equal(t, 1024, got.Bounds().Dy())

	small := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	assert.Same(t, small, ResizeWithinMax(small, 2048))
}

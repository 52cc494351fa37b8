package imaging

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
)

// TransparentIndex is the palette slot rendered fully transparent in
// every GIF this package produces.
const TransparentIndex = 0

// alphaCutoff decides which source pixels end up transparent after
// quantization.
const alphaCutoff = 128

// EncodeGIF quantizes src into a paletted image whose slot 0 is
// reserved transparent and writes it as a GIF. The palette is trimmed
// to the smallest power of two covering the indices actually used, so
// flat images encode with small color tables.
func EncodeGIF(w io.Writer, src *image.NRGBA) error {
	pal := make(color.Palette, 0, 256)
	pal = append(pal, color.RGBA{})
	pal = append(pal, palette.Plan9[:255]...)

	b := src.Bounds()
	dst := image.NewPaletted(b, pal)
	draw.FloydSteinberg.Draw(dst, b, src, b.Min)

	// Dithering diffuses error into see-through regions; pin those
	// pixels back to the transparent slot.
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if src.NRGBAAt(x, y).A < alphaCutoff {
				dst.SetColorIndex(x, y, TransparentIndex)
			}
		}
	}

	maxIdx := 0
	for _, idx := range dst.Pix {
		if int(idx) > maxIdx {
			maxIdx = int(idx)
		}
	}
	size := 2
	for size < maxIdx+1 {
		size <<= 1
	}
	dst.Palette = dst.Palette[:size]

	return gif.Encode(w, dst, nil)
}

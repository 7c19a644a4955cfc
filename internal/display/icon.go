package display

import (
	"image"

	"github.com/sweepdial/sweepdial/internal/raster"
	"github.com/sweepdial/sweepdial/internal/render"
)

// Icon rasterizes a miniature dial for use as the window icon, so no image
// asset needs shipping or decoding.
func Icon(size int, v render.Variant, u *render.Uniforms) *image.RGBA {
	if size < 1 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	buf := make([]uint32, size*size)
	cv, err := raster.New(buf, raster.Dimensions{Width: size, Height: size})
	if err != nil {
		return img
	}
	cv.Clear(u.Background)
	v.Render(cv, 0, u)

	for i, px := range buf {
		j := i * 4
		img.Pix[j+0] = raster.R(px)
		img.Pix[j+1] = raster.G(px)
		img.Pix[j+2] = raster.B(px)
		img.Pix[j+3] = 0xFF
	}
	return img
}

package images

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/openstays/stay-booking/internal/httperr"
)

// maxEdge bounds the long edge of stored pictures.
const maxEdge = 1024

const quality = 80

// Normalize decodes an uploaded picture (jpeg, png or webp), downscales
// it so the long edge fits maxEdge and re-encodes it as webp. Returns
// the encoded bytes ready for the upload store.
func Normalize(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	src = downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: quality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func downscale(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}

	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

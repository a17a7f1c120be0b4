package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"

	"github.com/openstays/stay-booking/internal/httperr"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeProducesWebp(t *testing.T) {
	out, err := Normalize(bytes.NewReader(pngBytes(t, 64, 48)))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("small pictures must keep their size, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestNormalizeDownscalesLargePictures(t *testing.T) {
	out, err := Normalize(bytes.NewReader(pngBytes(t, 2048, 1024)))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if cfg.Width != maxEdge {
		t.Errorf("long edge must shrink to %d, got %d", maxEdge, cfg.Width)
	}
	if cfg.Height != maxEdge/2 {
		t.Errorf("aspect ratio must hold, got height %d", cfg.Height)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := Normalize(strings.NewReader("definitely not an image"))
	if !httperr.IsBusiness(err, "invalid_image") {
		t.Fatalf("expected invalid_image, got %v", err)
	}
}

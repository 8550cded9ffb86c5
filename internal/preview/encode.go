package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/creatura/internal/export"
	"github.com/Faultbox/creatura/internal/logger"
	"github.com/Faultbox/creatura/internal/scene"
)

// Downsample reduces img to size x size with premultiplied-alpha-aware
// CatmullRom filtering, which avoids dark fringes at transparent edges.
func Downsample(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return img
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := float64(dst.Pix[i+3])
		if a > 1 {
			inv := 255 / a
			out.Pix[i] = clamp255(float64(dst.Pix[i]) * inv)
			out.Pix[i+1] = clamp255(float64(dst.Pix[i+1]) * inv)
			out.Pix[i+2] = clamp255(float64(dst.Pix[i+2]) * inv)
		}
		out.Pix[i+3] = dst.Pix[i+3]
	}
	return out
}

// EncodeWebP writes img as lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}
	return nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// Host is a scene.Host that renders the tree to Path. The format follows the
// extension: .png writes PNG, anything else WebP.
type Host struct {
	Path    string
	Options Options
}

var _ scene.Host = (*Host)(nil)

// Instantiate renders root and writes the image.
func (h *Host) Instantiate(root *scene.Node) error {
	if root == nil {
		return fmt.Errorf("preview: nil root")
	}
	img := Render(export.Bake(root), h.Options)

	if err := os.MkdirAll(filepath.Dir(h.Path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(h.Path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", h.Path, err)
	}
	encode := EncodeWebP
	if strings.EqualFold(filepath.Ext(h.Path), ".png") {
		encode = EncodePNG
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("wrote preview", zap.String("path", h.Path), zap.Int("size", img.Bounds().Dx()))
	return nil
}

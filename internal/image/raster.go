// Package image provides image loading, OpenCV conversion, and preview scaling.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"microalgae-counter/pkg/geometry"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrUnreadable is returned (wrapped) when a file cannot be opened or decoded as an image.
var ErrUnreadable = errors.New("image unreadable")

// Raster is a decoded image held in memory.
type Raster struct {
	Path   string      // Original file path
	Image  image.Image // Decoded pixel data
	Format string      // Decoder name: "png", "jpeg", "tiff", "bmp"
}

// Load reads and decodes the image at path. Any failure wraps ErrUnreadable.
func Load(path string) (*Raster, error) {
	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrUnreadable, filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %v", ErrUnreadable, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", ErrUnreadable, err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrUnreadable)
	}

	return &Raster{
		Path:   path,
		Image:  img,
		Format: format,
	}, nil
}

// Width returns the image width in pixels.
func (r *Raster) Width() int {
	if r == nil || r.Image == nil {
		return 0
	}
	return r.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (r *Raster) Height() int {
	if r == nil || r.Image == nil {
		return 0
	}
	return r.Image.Bounds().Dy()
}

// Bounds returns the image extent with its origin at (0,0).
func (r *Raster) Bounds() geometry.RectInt {
	return geometry.RectInt{Width: r.Width(), Height: r.Height()}
}

// Name returns the base file name.
func (r *Raster) Name() string {
	return filepath.Base(r.Path)
}

// SupportedFormats returns the list of supported image file extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

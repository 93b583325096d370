// Package imageio - decoding and encoding between image files and the
// engine's pixel buffers. The filter engine itself never touches a file;
// this package is the boundary it receives loaded buffers from and hands
// results back to.
package imageio

import (
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rasterlab/go-raster/raster"
)

// ImageFormat represents supported image formats.
type ImageFormat string

const (
	// FormatJPEG is the JPEG image format.
	FormatJPEG ImageFormat = "jpeg"
	// FormatWebP is the WebP image format.
	FormatWebP ImageFormat = "webp"
	// FormatPNG is the PNG image format.
	FormatPNG ImageFormat = "png"
)

// jpegQuality is used for every JPEG encode.
const jpegQuality = 92

// ErrUnsupportedFormat is returned for file extensions the engine cannot
// decode or encode.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// DetectFormat maps a file path to its image format by extension.
//
// Arguments:
// - path: File path whose extension decides the format.
//
// Returns:
// - ImageFormat: The detected format.
// - error: ErrUnsupportedFormat when the extension is not recognized.
func DetectFormat(path string) (ImageFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".webp":
		return FormatWebP, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "extension %q", filepath.Ext(path))
	}
}

// Load decodes an image file into a pixel buffer.
//
// Grayscale sources become single-channel buffers; everything else becomes
// three-channel RGB (alpha is discarded).
//
// Arguments:
// - path: Path to a PNG, JPEG, or WebP file.
//
// Returns:
// - *raster.Image: The decoded pixel grid.
// - error: Error if the file cannot be read or decoded.
func Load(path string) (*raster.Image, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	var decoded image.Image
	switch format {
	case FormatPNG:
		decoded, err = png.Decode(f)
	case FormatJPEG:
		decoded, err = jpeg.Decode(f)
	case FormatWebP:
		decoded, err = webp.Decode(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	img, err := FromImage(decoded)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"path":     path,
		"format":   format,
		"width":    img.Width,
		"height":   img.Height,
		"channels": img.Channels,
	}).Debug("image loaded")
	return img, nil
}

// Save encodes a pixel buffer to a file; the format follows the extension.
//
// Arguments:
// - path: Destination path ending in .png, .jpg/.jpeg, or .webp.
// - img: Pixel buffer to encode.
//
// Returns:
// - error: Error if the buffer is empty or the file cannot be written.
func Save(path string, img *raster.Image) error {
	if img.Empty() {
		return raster.ErrNoImage
	}
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	out := ToImage(img)
	switch format {
	case FormatPNG:
		err = png.Encode(f, out)
	case FormatJPEG:
		err = jpeg.Encode(f, out, &jpeg.Options{Quality: jpegQuality})
	case FormatWebP:
		err = webp.Encode(f, out, &webp.Options{Quality: jpegQuality})
	}
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return nil
}

// FromImage converts a decoded image.Image into the engine's pixel buffer.
// *image.Gray sources map to a single-channel buffer; all other color
// models are flattened to RGB.
func FromImage(src image.Image) (*raster.Image, error) {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if gray, ok := src.(*image.Gray); ok {
		img, err := raster.NewImage(width, height, raster.GrayChannels)
		if err != nil {
			return nil, err
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.Set(x, y, 0, gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return img, nil
	}

	img, err := raster.NewImage(width, height, raster.RGBChannels)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			img.Set(x, y, 0, uint8(r>>8))
			img.Set(x, y, 1, uint8(g>>8))
			img.Set(x, y, 2, uint8(b>>8))
		}
	}
	return img, nil
}

// ToImage converts a pixel buffer back into an image.Image for encoding or
// display: *image.Gray for single-channel buffers, opaque *image.RGBA
// otherwise.
func ToImage(img *raster.Image) image.Image {
	if img.Channels == raster.GrayChannels {
		gray := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
		for y := 0; y < img.Height; y++ {
			copy(gray.Pix[y*gray.Stride:y*gray.Stride+img.Width], img.Pix[y*img.Width:(y+1)*img.Width])
		}
		return gray
	}

	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			o := rgba.PixOffset(x, y)
			rgba.Pix[o] = img.At(x, y, 0)
			rgba.Pix[o+1] = img.At(x, y, 1)
			rgba.Pix[o+2] = img.At(x, y, 2)
			rgba.Pix[o+3] = 0xff
		}
	}
	return rgba
}

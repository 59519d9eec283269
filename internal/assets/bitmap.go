package assets

import (
	"image"
	"time"
)

// Bitmap is a decoded, render-ready image. It is owned by the caller; the
// Loader keeps no reference to it.
type Bitmap struct {
	img    image.Image
	format string
}

// NewBitmap wraps an already decoded image.
func NewBitmap(img image.Image, format string) *Bitmap {
	return &Bitmap{img: img, format: format}
}

func (b *Bitmap) Image() image.Image { return b.img }

// Format is the name the decoder registered under ("png", "gif", "webp", ...).
func (b *Bitmap) Format() string { return b.format }

func (b *Bitmap) Width() int  { return b.img.Bounds().Dx() }
func (b *Bitmap) Height() int { return b.img.Bounds().Dy() }

// Animation is a sequence of frames with per-frame display delays.
type Animation struct {
	Frames []*Bitmap
	Delays []time.Duration // zero means "next tick"
}

func (a *Animation) Len() int { return len(a.Frames) }

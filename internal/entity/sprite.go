package entity

import (
	"github.com/hajimehoshi/ebiten/v2"

	"planewar/internal/animation"
	"planewar/internal/assets"
)

// Sprite is an animated bitmap positioned by its centre on the logical canvas.
type Sprite struct {
	X, Y float64

	frames []*ebiten.Image
	ticker *animation.Ticker
}

// NewSprite uploads an animation's frames, keeping their own delays.
func NewSprite(anim *assets.Animation) *Sprite {
	return &Sprite{
		frames: upload(anim.Frames),
		ticker: animation.NewTickerWithDelays(anim.Delays, ebiten.TPS()),
	}
}

// NewSpriteFromBitmaps cycles through bitmaps, ticksPerFrame ticks each.
func NewSpriteFromBitmaps(bitmaps []*assets.Bitmap, ticksPerFrame int) *Sprite {
	return &Sprite{
		frames: upload(bitmaps),
		ticker: animation.NewTicker(ticksPerFrame, len(bitmaps)),
	}
}

func upload(bitmaps []*assets.Bitmap) []*ebiten.Image {
	frames := make([]*ebiten.Image, len(bitmaps))
	for i, b := range bitmaps {
		frames[i] = ebiten.NewImageFromImage(b.Image())
	}
	return frames
}

func (s *Sprite) Update() {
	if len(s.frames) == 0 {
		return
	}
	s.ticker.Tick()
}

func (s *Sprite) Draw(dst *ebiten.Image) {
	if len(s.frames) == 0 {
		return
	}

	img := s.frames[s.ticker.Current()]
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(s.X-float64(w)/2, s.Y-float64(h)/2)

	dst.DrawImage(img, op)
}

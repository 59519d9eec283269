// Package assets turns named resources into decoded bitmaps.
package assets

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/webp" // Register WebP format
)

var gifMagic = []byte("GIF8")

// Loader fetches and decodes bitmaps. Every call performs a fresh retrieval;
// nothing is cached and nothing is retried.
type Loader struct {
	fetcher Fetcher
	timeout time.Duration
	log     log.FieldLogger
}

type Option func(*Loader)

// WithTimeout bounds each load. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

func WithLogger(logger log.FieldLogger) Option {
	return func(l *Loader) { l.log = logger }
}

func NewLoader(f Fetcher, opts ...Option) *Loader {
	l := &Loader{fetcher: f, log: log.StandardLogger()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadBitmap retrieves name and decodes it into a Bitmap.
func (l *Loader) LoadBitmap(ctx context.Context, name string) (*Bitmap, error) {
	start := time.Now()

	data, err := l.fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Kind: KindDecode, Name: name, Err: err}
	}

	bmp := NewBitmap(img, format)
	l.log.WithFields(log.Fields{
		"name":    name,
		"format":  format,
		"width":   bmp.Width(),
		"height":  bmp.Height(),
		"elapsed": time.Since(start),
	}).Debug("bitmap loaded")
	return bmp, nil
}

// LoadAnimation retrieves name and decodes every frame. GIFs keep their
// frame delays; any other encoding becomes a single frame.
func (l *Loader) LoadAnimation(ctx context.Context, name string) (*Animation, error) {
	data, err := l.fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	if !bytes.HasPrefix(data, gifMagic) {
		img, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, &Error{Kind: KindDecode, Name: name, Err: err}
		}
		return &Animation{
			Frames: []*Bitmap{NewBitmap(img, format)},
			Delays: []time.Duration{0},
		}, nil
	}

	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Kind: KindDecode, Name: name, Err: err}
	}

	anim := compose(g)
	l.log.WithFields(log.Fields{
		"name":   name,
		"frames": anim.Len(),
	}).Debug("animation loaded")
	return anim, nil
}

func (l *Loader) fetch(ctx context.Context, name string) ([]byte, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	// 1. Retrieve
	body, err := l.fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, failure(KindResourceUnavailable, name, err)
	}
	defer body.Close()

	// 2. Read the whole payload
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, failure(KindTransfer, name, err)
	}
	return data, nil
}

// compose flattens GIF frames, which may only cover part of the canvas,
// into full-size images.
func compose(g *gif.GIF) *Animation {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() && len(g.Image) > 0 {
		bounds = g.Image[0].Bounds()
	}

	canvas := image.NewRGBA(bounds)
	anim := &Animation{
		Frames: make([]*Bitmap, 0, len(g.Image)),
		Delays: make([]time.Duration, 0, len(g.Image)),
	}

	for i, frame := range g.Image {
		var previous *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = image.NewRGBA(bounds)
			draw.Draw(previous, bounds, canvas, bounds.Min, draw.Src)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		snapshot := image.NewRGBA(bounds)
		draw.Draw(snapshot, bounds, canvas, bounds.Min, draw.Src)
		anim.Frames = append(anim.Frames, NewBitmap(snapshot, "gif"))

		delay := time.Duration(0)
		if i < len(g.Delay) {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		anim.Delays = append(anim.Delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return anim
}

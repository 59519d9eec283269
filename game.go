package main

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	log "github.com/sirupsen/logrus"

	"planewar/internal/assets"
	"planewar/internal/config"
	"planewar/internal/entity"
	"planewar/internal/stage"
	"planewar/internal/viewport"
)

var (
	ColLetterbox = color.RGBA{0x10, 0x10, 0x10, 0xff}
	ColSky       = color.RGBA{0xc3, 0xc8, 0xc9, 0xff}
)

// Hero frames swap every heroTicksPerFrame ticks.
const heroTicksPerFrame = 8

// Game drives one scaled container through the ebiten loop.
type Game struct {
	Tick int

	cfg    config.Config
	log    log.FieldLogger
	loader *assets.Loader
	stage  *stage.Stage
	resize *viewport.Notifier
	view   *viewport.View

	container *stage.Container
	hero      *entity.Sprite

	// in-flight hero loads; nil once resolved
	heroFrames []*assets.Pending[*assets.Bitmap]
	heroAnim   *assets.Pending[*assets.Animation]
	loadErr    error
}

func NewGame(ctx context.Context, cfg config.Config, loader *assets.Loader, logger log.FieldLogger) (*Game, error) {
	st := stage.New()
	container := stage.NewContainer(cfg.ContainerID, cfg.Viewport())
	container.Background = ColSky
	st.Add(container)

	resize := viewport.NewNotifier()
	view, err := viewport.Init(viewport.Options{ContainerID: cfg.ContainerID}, viewport.Host{
		Document: st.Document(),
		Resize:   resize,
		Logical:  cfg.Viewport(),
		Log:      logger,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		log:       logger,
		loader:    loader,
		stage:     st,
		resize:    resize,
		view:      view,
		container: container,
	}

	if cfg.HeroAnimation != "" {
		g.heroAnim = loader.StartAnimation(ctx, cfg.HeroAnimation)
	} else {
		for _, a := range []assets.BitmapAsset{assets.Hero1, assets.Hero2} {
			g.heroFrames = append(g.heroFrames, loader.Start(ctx, a.Filename()))
		}
	}
	return g, nil
}

// Close stops resize handling.
func (g *Game) Close() {
	g.view.Close()
}

// Update: Logic (60 TPS)
func (g *Game) Update() error {
	g.Tick++

	g.pollHero()
	if g.hero != nil {
		g.hero.Update()
	}
	return nil
}

// pollHero resolves pending loads without blocking the frame. A failed load
// leaves the hero out; nothing is retried.
func (g *Game) pollHero() {
	if g.heroAnim != nil {
		anim, done, err := g.heroAnim.Poll()
		if !done {
			return
		}
		name := g.heroAnim.Name
		g.heroAnim = nil
		if err != nil {
			g.failHero(name, err)
			return
		}
		g.placeHero(entity.NewSprite(anim))
		return
	}

	if g.heroFrames == nil {
		return
	}
	bitmaps := make([]*assets.Bitmap, 0, len(g.heroFrames))
	for _, p := range g.heroFrames {
		bmp, done, err := p.Poll()
		if !done {
			return
		}
		if err != nil {
			g.heroFrames = nil
			g.failHero(p.Name, err)
			return
		}
		bitmaps = append(bitmaps, bmp)
	}
	g.heroFrames = nil
	g.placeHero(entity.NewSpriteFromBitmaps(bitmaps, heroTicksPerFrame))
}

func (g *Game) placeHero(s *entity.Sprite) {
	s.X = float64(g.container.Width) / 2
	s.Y = float64(g.container.Height) * 0.8
	g.hero = s
}

func (g *Game) failHero(name string, err error) {
	g.loadErr = err
	g.log.WithFields(log.Fields{
		"name": name,
		"kind": assets.KindOf(err).String(),
	}).WithError(err).Error("hero bitmap unavailable")
}

// Draw: Rendering (VSync)
func (g *Game) Draw(screen *ebiten.Image) {
	// 1. Letterbox
	screen.Fill(ColLetterbox)

	// 2. Logical canvas
	g.container.Clear()
	canvas := g.container.Canvas()
	switch {
	case g.hero != nil:
		g.hero.Draw(canvas)
	case g.loadErr != nil:
		ebitenutil.DebugPrint(canvas, "HERO UNAVAILABLE")
	default:
		ebitenutil.DebugPrint(canvas, "LOADING...")
	}

	// 3. Scale to window
	g.stage.Present(screen)
}

// Layout: Scaling Strategy
// The screen matches the window; the container carries the scale.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize.Observe(float64(outsideWidth), float64(outsideHeight))
	return max(outsideWidth, 1), max(outsideHeight, 1)
}

// Package stage holds the ebiten-backed containers the viewport scales.
package stage

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"planewar/internal/viewport"
)

// Container is a logical-size canvas presented on screen through a uniform
// scale transform.
type Container struct {
	ID         string
	Width      int
	Height     int
	Background color.Color

	canvas    *ebiten.Image
	transform viewport.Transform
	visible   bool
}

func NewContainer(id string, size viewport.Config) *Container {
	return &Container{
		ID:         id,
		Width:      size.LogicalWidth,
		Height:     size.LogicalHeight,
		Background: color.Black,
		transform:  viewport.Identity,
		visible:    true,
	}
}

func (c *Container) SetTransform(t viewport.Transform) { c.transform = t }
func (c *Container) SetVisible(v bool)                 { c.visible = v }

func (c *Container) Transform() viewport.Transform { return c.transform }
func (c *Container) Visible() bool                 { return c.visible }

// Canvas is the logical-size image to draw into. It is cleared to the
// background colour by Clear, not automatically.
func (c *Container) Canvas() *ebiten.Image {
	if c.canvas == nil {
		c.canvas = ebiten.NewImage(c.Width, c.Height)
	}
	return c.canvas
}

func (c *Container) Clear() {
	c.Canvas().Fill(c.Background)
}

// Present draws the canvas centred on screen with the current transform.
// Hidden containers draw nothing.
func (c *Container) Present(screen *ebiten.Image) {
	if !c.visible || !c.transform.Drawable() {
		return
	}

	s := c.transform.Scale
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(
		(float64(sw)-float64(c.Width)*s)/2,
		(float64(sh)-float64(c.Height)*s)/2,
	)
	op.Filter = ebiten.FilterLinear

	screen.DrawImage(c.Canvas(), op)
}

// Package viewport fits a fixed-size logical canvas inside the real window.
package viewport

import (
	"math"
	"strconv"
)

// ComputeScale returns the uniform factor that makes a logical canvas of
// lw x lh fit inside a viewport of vw x vh. Both ratios are taken in floating
// point and the smaller wins, so the canvas never exceeds either dimension.
//
// A non-positive viewport dimension yields a non-positive result, which
// ApplyScale treats as "hide".
func ComputeScale(vw, vh, lw, lh float64) float64 {
	return math.Min(vw/lw, vh/lh)
}

// Transform is a uniform 2D scale.
type Transform struct {
	Scale float64
}

// Identity is the transform of an unscaled element.
var Identity = Transform{Scale: 1}

// String renders the transform as a CSS-style value, e.g. "scale(0.5)".
func (t Transform) String() string {
	return "scale(" + strconv.FormatFloat(t.Scale, 'g', -1, 64) + ")"
}

// Drawable reports whether the transform can be applied without collapsing
// or inverting the element.
func (t Transform) Drawable() bool {
	return t.Scale > 0 && !math.IsInf(t.Scale, 0) && !math.IsNaN(t.Scale)
}

// Element is anything a Transform can be applied to.
type Element interface {
	SetTransform(Transform)
	SetVisible(bool)
}

// ApplyScale sets a uniform scale on el. Applying the same scale twice leaves
// el unchanged. A scale that is not Drawable hides el and keeps its last
// transform.
func ApplyScale(el Element, scale float64) {
	t := Transform{Scale: scale}
	if !t.Drawable() {
		el.SetVisible(false)
		return
	}
	el.SetTransform(t)
	el.SetVisible(true)
}

package panorama

import (
	"errors"
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ErrInvalidZoom is returned when a requested zoom factor is zero, negative,
// or non-finite. The previous zoom and position are retained.
var ErrInvalidZoom = errors.New("panorama: zoom factor must be positive and finite")

// scrollAnim holds active scroll-to tweens for the viewport X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// zoomAnim holds an active zoom-to tween.
type zoomAnim struct {
	tween *gween.Tween
	done  bool
}

// Viewport is the camera window over the background: a top-left world
// position, a destination size in screen pixels, and a zoom factor. The
// visible world rectangle is Size/zoom, clamped so it never leaves the
// background extent.
type Viewport struct {
	// Pos is the top-left corner of the visible area, in world space.
	// After setting it directly, call Clamp.
	Pos Vec2
	// Size is the viewport extent in destination-surface pixels.
	Size Vec2

	zoom           float64
	worldW, worldH float64

	scrollTween *scrollAnim
	zoomTween   *zoomAnim
}

// NewViewport creates a viewport over a background of the given world extent,
// at zoom 1.0 with the camera at the origin.
func NewViewport(worldW, worldH float64, size Vec2) *Viewport {
	v := &Viewport{
		Size:   size,
		zoom:   1.0,
		worldW: worldW,
		worldH: worldH,
	}
	v.Clamp()
	return v
}

// WorldSize returns the background extent the viewport is bound to.
func (v *Viewport) WorldSize() (w, h float64) {
	return v.worldW, v.worldH
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// SetZoom sets the zoom factor and re-clamps the position (zooming out may
// require re-centering). Fails with ErrInvalidZoom for non-positive or
// non-finite factors; nothing is mutated on failure.
func (v *Viewport) SetZoom(factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidZoom, factor)
	}
	v.zoom = factor
	v.Clamp()
	return nil
}

// Scroll moves the camera by the given world-space delta. Out-of-range
// deltas are silently clamped to the background bounds; that is the
// documented policy, not a failure.
func (v *Viewport) Scroll(dx, dy float64) {
	v.Pos.X += dx
	v.Pos.Y += dy
	v.Clamp()
}

// Center positions the camera so the visible area is centered on the given
// world point, clamped to the background bounds.
func (v *Viewport) Center(p Vec2) {
	v.Pos.X = p.X - v.Size.X/v.zoom/2
	v.Pos.Y = p.Y - v.Size.Y/v.zoom/2
	v.Clamp()
}

// Clamp restricts the camera position so the visible area stays within the
// background extent. When the visible area is larger than the background on
// an axis (zoomed out past 1:1 coverage), the position snaps to 0 on that
// axis and the scroll engine letterbox-centers the output instead.
func (v *Viewport) Clamp() {
	visW := v.Size.X / v.zoom
	visH := v.Size.Y / v.zoom

	if maxX := v.worldW - visW; maxX <= 0 {
		v.Pos.X = 0
	} else {
		v.Pos.X = math.Max(0, math.Min(v.Pos.X, maxX))
	}
	if maxY := v.worldH - visH; maxY <= 0 {
		v.Pos.Y = 0
	} else {
		v.Pos.Y = math.Max(0, math.Min(v.Pos.Y, maxY))
	}
}

// VisibleWorldRect returns the portion of the background currently visible,
// in world space. Always contained in [0, worldW] x [0, worldH].
func (v *Viewport) VisibleWorldRect() Rect {
	vis := Rect{X: v.Pos.X, Y: v.Pos.Y, Width: v.Size.X / v.zoom, Height: v.Size.Y / v.zoom}
	return vis.Intersect(Rect{Width: v.worldW, Height: v.worldH})
}

// WorldToScreen converts a world-space point to destination-surface pixels:
// translation by -Pos, then scale by zoom.
func (v *Viewport) WorldToScreen(p Vec2) Vec2 {
	return Vec2{X: (p.X - v.Pos.X) * v.zoom, Y: (p.Y - v.Pos.Y) * v.zoom}
}

// ScreenToWorld converts a destination-surface point back to world space.
// Inverse of WorldToScreen up to floating-point tolerance.
func (v *Viewport) ScreenToWorld(p Vec2) Vec2 {
	return Vec2{X: p.X/v.zoom + v.Pos.X, Y: p.Y/v.zoom + v.Pos.Y}
}

// ScrollTo animates the camera to the given world position over duration
// seconds. Advance it with Update; each step is clamped.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.Pos.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.Pos.Y), float32(y), duration, easeFn),
	}
}

// ZoomTo animates the zoom factor to the given target over duration seconds.
// The target is validated up front with the same rules as SetZoom.
func (v *Viewport) ZoomTo(factor float64, duration float32, easeFn ease.TweenFunc) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidZoom, factor)
	}
	v.zoomTween = &zoomAnim{
		tween: gween.New(float32(v.zoom), float32(factor), duration, easeFn),
	}
	return nil
}

// Update advances active scroll and zoom tweens by dt seconds.
func (v *Viewport) Update(dt float32) {
	if v.scrollTween != nil {
		st := v.scrollTween
		if !st.doneX {
			val, done := st.tweenX.Update(dt)
			v.Pos.X = float64(val)
			st.doneX = done
		}
		if !st.doneY {
			val, done := st.tweenY.Update(dt)
			v.Pos.Y = float64(val)
			st.doneY = done
		}
		if st.doneX && st.doneY {
			v.scrollTween = nil
		}
	}

	if v.zoomTween != nil {
		val, done := v.zoomTween.tween.Update(dt)
		// Endpoints are pre-validated, but overshooting easings (back,
		// elastic) can dip below zero mid-flight; hold the last valid zoom
		// for those steps.
		if z := float64(val); z > 0 {
			v.zoom = z
		}
		if done {
			v.zoomTween = nil
		}
	}

	v.Clamp()
}

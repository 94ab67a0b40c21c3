package panorama

import "math"

// The scroll engine: pure functions that turn the current Viewport and the
// resolved scaled background into exact blit geometry. Deterministic given
// their inputs; no state of their own.

// computeBlit returns the source rectangle to copy from the scaled
// background (scaledW x scaledH, i.e. background extent times zoom) and the
// destination offset in viewport pixels. Both are integer-aligned.
//
// The source rect is the visible world rect times zoom, clamped to the
// scaled surface bounds so float rounding can never push it a pixel outside.
// When the scaled visible area is smaller than the viewport (zoomed out past
// 1:1 coverage of the background), the destination offset centers the image:
// letterboxing, not stretching.
func computeBlit(v *Viewport, scaledW, scaledH int) (src Rect, dst Vec2) {
	z := v.Zoom()
	vis := v.VisibleWorldRect()

	sx := pixRound(vis.X * z)
	sy := pixRound(vis.Y * z)
	sw := pixRound(vis.Width * z)
	sh := pixRound(vis.Height * z)

	if sx < 0 {
		sx = 0
	}
	if sy < 0 {
		sy = 0
	}
	if sx+sw > scaledW {
		sw = scaledW - sx
	}
	if sy+sh > scaledH {
		sh = scaledH - sy
	}
	if sw > pixRound(v.Size.X) {
		sw = pixRound(v.Size.X)
	}
	if sh > pixRound(v.Size.Y) {
		sh = pixRound(v.Size.Y)
	}

	src = Rect{X: float64(sx), Y: float64(sy), Width: float64(sw), Height: float64(sh)}

	var dx, dy float64
	if float64(sw) < v.Size.X {
		dx = math.Round((v.Size.X - float64(sw)) / 2)
	}
	if float64(sh) < v.Size.Y {
		dy = math.Round((v.Size.Y - float64(sh)) / 2)
	}
	return src, Vec2{X: dx, Y: dy}
}

// exposedStrips returns the screen-space rectangles newly exposed when the
// destination content is shifted by (shiftX, shiftY) pixels: up to one
// full-height vertical strip and one horizontal strip covering the remaining
// width. The two never overlap. A zero shift exposes nothing; a shift of a
// full viewport extent or more exposes everything.
func exposedStrips(shiftX, shiftY int, size Vec2) []Rect {
	w := size.X
	h := size.Y

	if shiftX == 0 && shiftY == 0 {
		return nil
	}
	if math.Abs(float64(shiftX)) >= w || math.Abs(float64(shiftY)) >= h {
		return []Rect{{Width: w, Height: h}}
	}

	var strips []Rect

	if shiftX > 0 {
		strips = append(strips, Rect{Width: float64(shiftX), Height: h})
	} else if shiftX < 0 {
		strips = append(strips, Rect{X: w + float64(shiftX), Width: -float64(shiftX), Height: h})
	}

	if shiftY != 0 {
		// Horizontal strip spans only the width not already covered by the
		// vertical strip.
		x0 := math.Max(0, float64(shiftX))
		x1 := w + math.Min(0, float64(shiftX))
		strip := Rect{X: x0, Width: x1 - x0, Height: math.Abs(float64(shiftY))}
		if shiftY < 0 {
			strip.Y = h + float64(shiftY)
		}
		strips = append(strips, strip)
	}

	return strips
}

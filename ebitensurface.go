package panorama

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenSurface is the GPU Surface backend, wrapping an ebiten.Image for use
// inside an Ebitengine game loop. Like the rest of the package it is
// single-threaded: call it only from the game's Update/Draw goroutine.
type EbitenSurface struct {
	img *ebiten.Image
}

// NewEbitenSurface creates a transparent GPU surface.
func NewEbitenSurface(width, height int) *EbitenSurface {
	return &EbitenSurface{img: ebiten.NewImage(width, height)}
}

// WrapEbitenImage wraps an existing ebiten.Image (for example the screen
// image passed to Draw) as a Surface. The image is not copied.
func WrapEbitenImage(img *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{img: img}
}

// Image returns the wrapped ebiten.Image.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

// Size returns the surface dimensions in pixels.
func (s *EbitenSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// NewCompatible creates a transparent GPU surface.
func (s *EbitenSurface) NewCompatible(width, height int) Surface {
	return NewEbitenSurface(width, height)
}

// ebitenFilter maps a Filter to the ebiten sampling mode.
func ebitenFilter(f Filter) ebiten.Filter {
	if f == FilterLinear {
		return ebiten.FilterLinear
	}
	return ebiten.FilterNearest
}

// Blit draws srcRect of src at dst. src must be an *EbitenSurface.
func (s *EbitenSurface) Blit(src Surface, dst Vec2, srcRect Rect) {
	es, ok := src.(*EbitenSurface)
	if !ok {
		panic(fmt.Sprintf("panorama: EbitenSurface.Blit: incompatible source surface %T", src))
	}

	from := es.img
	if !srcRect.Empty() {
		b := es.img.Bounds()
		sr := rectToBounds(srcRect).Add(b.Min).Intersect(b)
		if sr.Empty() {
			return
		}
		from = es.img.SubImage(sr).(*ebiten.Image)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(math.Round(dst.X), math.Round(dst.Y))
	s.img.DrawImage(from, op)
}

// Scale returns a resampled copy of the surface.
func (s *EbitenSurface) Scale(factor float64, filter Filter) Surface {
	w, h := s.Size()
	nw := pixRound(float64(w) * factor)
	nh := pixRound(float64(h) * factor)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	out := NewEbitenSurface(nw, nh)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(nw)/float64(w), float64(nh)/float64(h))
	op.Filter = ebitenFilter(filter)
	out.img.DrawImage(s.img, op)
	return out
}

// Shift moves the pixel content by (dx, dy) in place. Ebiten forbids drawing
// an image onto itself, so the content is staged through a pooled scratch
// image first. Exposed strips keep their previous values.
func (s *EbitenSurface) Shift(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	w, h := s.Size()
	if dx >= w || -dx >= w || dy >= h || -dy >= h {
		return
	}

	scratch := scratchImages.acquire(w, h)
	defer scratchImages.release(scratch)

	copyOp := &ebiten.DrawImageOptions{}
	copyOp.Blend = ebiten.BlendCopy
	scratch.DrawImage(s.img, copyOp)

	// Only the region that survives the shift is drawn back, at its shifted
	// position; pixels the shift discards are never touched. BlendCopy keeps
	// alpha exact.
	sx0, sy0 := max(0, -dx), max(0, -dy)
	sx1, sy1 := w+min(0, -dx), h+min(0, -dy)
	sub := scratch.SubImage(image.Rect(sx0, sy0, sx1, sy1)).(*ebiten.Image)
	backOp := &ebiten.DrawImageOptions{}
	backOp.Blend = ebiten.BlendCopy
	backOp.GeoM.Translate(float64(sx0+dx), float64(sy0+dy))
	s.img.DrawImage(sub, backOp)
}

// Fill sets every pixel to c.
func (s *EbitenSurface) Fill(c color.RGBA) {
	s.img.Fill(c)
}

// --- Scratch image pool ---

// scratchPool manages reusable offscreen ebiten.Images keyed by power-of-two
// dimensions, so repeated Shift calls allocate nothing after warmup. The
// package is single-threaded (frame loop only), so no locking.
type scratchPool struct {
	buckets map[uint64][]*ebiten.Image
}

var scratchImages scratchPool

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

// acquire returns a cleared offscreen image with at least (w, h) pixels.
// Dimensions are rounded up to the next power of two.
func (p *scratchPool) acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// release returns an image to the pool for reuse. It is cleared on the next
// acquire, not here.
func (p *scratchPool) release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

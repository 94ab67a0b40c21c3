package panorama

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"
)

// ErrSurfaceMismatch is returned by Frame when the destination surface is
// smaller than the configured viewport size. This is a caller configuration
// bug, not a transient condition; silent cropping would only hide it.
var ErrSurfaceMismatch = errors.New("panorama: destination surface smaller than viewport")

// Config configures a ScrollBackground. Zero values get defaults where
// noted.
type Config struct {
	// ViewportSize is the visible area in destination pixels. Required.
	ViewportSize Vec2
	// Pos is the initial camera position (top-left, world space).
	// Default origin; clamped.
	Pos Vec2
	// Zoom is the initial zoom factor. Default 1.0.
	Zoom float64
	// Filter selects the scaling quality for zoomed backgrounds.
	// Default FilterNearest.
	Filter Filter
	// CacheCapacity bounds how many zoom levels the cache keeps.
	// Default 1 (single slot).
	CacheCapacity int
	// Debug enables per-frame stats and diagnostics on stderr.
	Debug bool
}

// FrameResult reports what a Frame call did.
type FrameResult struct {
	// Unchanged is true when nothing moved since the previous frame and
	// the destination already holds it; no pixels were touched. Callers
	// may skip presenting such frames.
	Unchanged bool
	// Dirty lists the screen regions that changed, for callers that
	// present partial updates. The slice is reused by the next Frame call.
	Dirty []Rect
}

// ScrollBackground scrolls and zooms one background surface behind a
// viewport and composites sprites on top. It owns a Viewport, a ZoomCache,
// and a SpriteLayer; one instance per scroll region, so split-screen views
// are just two instances.
//
// All methods must be called from the single thread that owns the
// destination surface.
type ScrollBackground struct {
	background Surface
	viewport   *Viewport
	cache      *ZoomCache
	sprites    *SpriteLayer
	debug      bool

	// Previous-frame state for the unchanged/shift fast paths.
	havePrev    bool
	prevDest    Surface
	prevSrc     Rect
	prevZoom    float64
	prevBlits   []SpriteBlit
	forceRedraw bool

	dirtyBuf []Rect
}

// New creates a ScrollBackground over the given background surface. The
// background extent is fixed for the instance's lifetime. Fails with
// ErrInvalidZoom for an invalid initial zoom.
func New(background Surface, cfg Config) (*ScrollBackground, error) {
	bw, bh := background.Size()
	if bw <= 0 || bh <= 0 {
		return nil, fmt.Errorf("panorama: background surface is empty (%dx%d)", bw, bh)
	}
	if cfg.ViewportSize.X <= 0 || cfg.ViewportSize.Y <= 0 {
		return nil, fmt.Errorf("panorama: viewport size must be positive, got %gx%g",
			cfg.ViewportSize.X, cfg.ViewportSize.Y)
	}

	vp := NewViewport(float64(bw), float64(bh), cfg.ViewportSize)
	if cfg.Zoom != 0 {
		if err := vp.SetZoom(cfg.Zoom); err != nil {
			return nil, err
		}
	}
	vp.Pos = cfg.Pos
	vp.Clamp()

	return &ScrollBackground{
		background:  background,
		viewport:    vp,
		cache:       NewZoomCache(background, cfg.Filter, cfg.CacheCapacity),
		sprites:     NewSpriteLayer(),
		debug:       cfg.Debug,
		forceRedraw: true,
	}, nil
}

// Viewport returns the instance's viewport, for direct camera control
// (Center, ScrollTo, ZoomTo, coordinate conversion).
func (b *ScrollBackground) Viewport() *Viewport {
	return b.viewport
}

// Background returns the background surface. After painting into it, call
// Invalidate.
func (b *ScrollBackground) Background() Surface {
	return b.background
}

// Sprites returns the sprite layer, for bulk operations beyond the
// AddSprite/RemoveSprite/MoveSprite facade.
func (b *ScrollBackground) Sprites() *SpriteLayer {
	return b.sprites
}

// Scroll moves the camera by a world-space delta, clamped to the background.
func (b *ScrollBackground) Scroll(dx, dy float64) {
	b.viewport.Scroll(dx, dy)
}

// Center centers the camera on a world point, clamped to the background.
func (b *ScrollBackground) Center(p Vec2) {
	b.viewport.Center(p)
}

// SetZoom sets the zoom factor. Fails with ErrInvalidZoom for non-positive
// or non-finite factors; the previous zoom stays in effect.
func (b *ScrollBackground) SetZoom(factor float64) error {
	return b.viewport.SetZoom(factor)
}

// Update advances camera scroll/zoom tweens by dt seconds. Call once per
// tick when using Viewport.ScrollTo or Viewport.ZoomTo.
func (b *ScrollBackground) Update(dt float32) {
	b.viewport.Update(dt)
}

// AddSprite adds a sprite at the given world position and z-order and
// returns its id. The image is externally owned and composited at native
// pixel size.
func (b *ScrollBackground) AddSprite(surface Surface, pos Vec2, z int) SpriteID {
	return b.sprites.Add(surface, pos, z)
}

// RemoveSprite removes a sprite. Removing an unknown id is a documented
// no-op returning false (with a debug-mode diagnostic), so calling it twice
// has the same effect as calling it once.
func (b *ScrollBackground) RemoveSprite(id SpriteID) bool {
	ok := b.sprites.Remove(id)
	if !ok {
		b.warnUnknownSprite("RemoveSprite", id)
	}
	return ok
}

// MoveSprite repositions a sprite in world space. Unknown ids are a no-op
// returning false.
func (b *ScrollBackground) MoveSprite(id SpriteID, pos Vec2) bool {
	ok := b.sprites.SetPos(id, pos)
	if !ok {
		b.warnUnknownSprite("MoveSprite", id)
	}
	return ok
}

// Blit draws src onto the background at the given world position, then
// invalidates the zoom cache and forces a full redraw on the next Frame.
func (b *ScrollBackground) Blit(src Surface, pos Vec2) {
	b.background.Blit(src, pos, Rect{})
	b.Invalidate()
}

// Invalidate drops cached scaled backgrounds and forces the next Frame to
// repaint fully. Call it after mutating the background surface directly.
func (b *ScrollBackground) Invalidate() {
	b.cache.Invalidate()
	b.forceRedraw = true
}

// Redraw forces the next Frame to repaint the full viewport without
// dropping the zoom cache.
func (b *ScrollBackground) Redraw() {
	b.forceRedraw = true
}

// Frame composites one frame into dest: background via the scroll engine,
// then sprites in z order, tracking dirty regions.
//
// When neither the camera nor any sprite changed since the previous Frame
// into the same destination, nothing is drawn and Unchanged is reported.
// When only the camera scrolled, the destination content is shifted in
// place and just the newly exposed strips are redrawn from the scaled
// background. Both fast paths require the destination surface to be the
// same object as last frame and still hold its pixels; double-buffered
// callers simply get full redraws.
//
// Sprite image content is compared by surface identity: callers animating a
// sprite by repainting the same surface should call Redraw (or swap in a
// distinct surface per frame).
func (b *ScrollBackground) Frame(dest Surface) (FrameResult, error) {
	dw, dh := dest.Size()
	if float64(dw) < b.viewport.Size.X || float64(dh) < b.viewport.Size.Y {
		return FrameResult{}, fmt.Errorf("%w: destination %dx%d, viewport %gx%g",
			ErrSurfaceMismatch, dw, dh, b.viewport.Size.X, b.viewport.Size.Y)
	}

	var stats frameStats
	var t0 time.Time
	if b.debug {
		t0 = time.Now()
	}

	scaled := b.cache.Resolve(b.viewport.Zoom())
	sw, sh := scaled.Size()
	src, dstOff := computeBlit(b.viewport, sw, sh)

	if b.debug {
		stats.resolveTime = time.Since(t0)
		t0 = time.Now()
	}

	blits := b.sprites.Render(b.viewport)
	letterboxed := dstOff != (Vec2{})
	if letterboxed {
		// Sprites must stay registered with the centered background: shift
		// them by the letterbox offset and clip to the area it covers.
		content := Rect{X: dstOff.X, Y: dstOff.Y, Width: src.Width, Height: src.Height}
		blits = alignToContent(blits, dstOff, content)
	}
	b.dirtyBuf = b.dirtyBuf[:0]

	zoomChanged := math.Abs(b.viewport.Zoom()-b.prevZoom) > zoomEpsilon
	full := b.forceRedraw || !b.havePrev || zoomChanged || dest != b.prevDest || letterboxed

	shiftX := pixRound(b.prevSrc.X - src.X)
	shiftY := pixRound(b.prevSrc.Y - src.Y)
	camMoved := shiftX != 0 || shiftY != 0
	spritesChanged := !equalBlits(blits, b.prevBlits)

	viewRect := Rect{Width: b.viewport.Size.X, Height: b.viewport.Size.Y}

	switch {
	case !full && !camMoved && !spritesChanged:
		return FrameResult{Unchanged: true}, nil

	case full:
		if src.Width < b.viewport.Size.X || src.Height < b.viewport.Size.Y {
			dest.Fill(letterboxColor)
		}
		dest.Blit(scaled, dstOff, src)
		b.dirtyBuf = append(b.dirtyBuf, viewRect)
		stats.fullRedraw = true

	case camMoved:
		// Shift the surviving content and repaint only the exposed strips,
		// plus the (shifted) areas the previous frame's sprites occupied.
		dest.Shift(shiftX, shiftY)
		strips := exposedStrips(shiftX, shiftY, b.viewport.Size)
		for _, strip := range strips {
			b.restoreBackground(dest, scaled, src, strip)
		}
		for _, pb := range b.prevBlits {
			moved := pb.Dst
			moved.X += float64(shiftX)
			moved.Y += float64(shiftY)
			b.restoreBackground(dest, scaled, src, moved.Intersect(viewRect))
		}
		stats.stripCount = len(strips)
		// Everything on screen moved.
		b.dirtyBuf = append(b.dirtyBuf, viewRect)

	default:
		// Camera still; only sprites changed. Restore the background under
		// last frame's sprites, then redraw.
		for _, pb := range b.prevBlits {
			b.restoreBackground(dest, scaled, src, pb.Dst)
			b.dirtyBuf = append(b.dirtyBuf, pb.Dst)
		}
		for _, sb := range blits {
			b.dirtyBuf = append(b.dirtyBuf, sb.Dst)
		}
		b.dirtyBuf = coalesceDirty(b.dirtyBuf)
	}

	for _, sb := range blits {
		dest.Blit(sb.Surface, sb.Dst.Pos(), sb.Src)
	}

	if b.debug {
		stats.blitTime = time.Since(t0)
		stats.spriteCount = len(blits)
		stats.dirtyCount = len(b.dirtyBuf)
		b.debugLog(stats)
	}

	b.havePrev = true
	b.prevDest = dest
	b.prevSrc = src
	b.prevZoom = b.viewport.Zoom()
	b.prevBlits = append(b.prevBlits[:0], blits...)
	b.forceRedraw = false

	return FrameResult{Dirty: b.dirtyBuf}, nil
}

// letterboxColor fills the destination when the scaled background is smaller
// than the viewport. Note the whole destination is filled, not just the
// margins; callers drawing outside the viewport should use a dedicated
// destination surface.
var letterboxColor = color.RGBA{A: 0xff}

// restoreBackground repaints the screen-space rect r from the scaled
// background. r is clipped to the area the background actually covers.
func (b *ScrollBackground) restoreBackground(dest, scaled Surface, src Rect, r Rect) {
	content := Rect{Width: src.Width, Height: src.Height}
	rr := r.Intersect(content)
	if rr.Empty() {
		return
	}
	dest.Blit(scaled, rr.Pos(), Rect{
		X:      rr.X + src.X,
		Y:      rr.Y + src.Y,
		Width:  rr.Width,
		Height: rr.Height,
	})
}

// alignToContent shifts sprite blits by the letterbox offset and clips them
// to the content rect the background covers, dropping blits that end up
// entirely in the margin. Keeps sprites attached to the background when the
// scaled image is smaller than the viewport.
func alignToContent(blits []SpriteBlit, off Vec2, content Rect) []SpriteBlit {
	out := blits[:0]
	for _, sb := range blits {
		sb.Dst.X += off.X
		sb.Dst.Y += off.Y
		clipped := sb.Dst.Intersect(content)
		if clipped.Empty() {
			continue
		}
		sb.Src.X += clipped.X - sb.Dst.X
		sb.Src.Y += clipped.Y - sb.Dst.Y
		sb.Src.Width = clipped.Width
		sb.Src.Height = clipped.Height
		sb.Dst = clipped
		out = append(out, sb)
	}
	return out
}

// coalesceDirty merges overlapping dirty rects in place so each changed
// region is reported once.
func coalesceDirty(rects []Rect) []Rect {
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Intersects(rects[j]) {
				rects[i] = rects[i].Union(rects[j])
				rects = append(rects[:j], rects[j+1:]...)
				// Rescan: the grown rect may now overlap earlier survivors.
				j = i
			}
		}
	}
	return rects
}

// equalBlits reports whether two blit lists are identical: same surfaces in
// the same order at the same source and destination rects.
func equalBlits(a, b []SpriteBlit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

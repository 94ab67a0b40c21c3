package panorama

import "sort"

// SpriteID is the stable identifier assigned to a sprite when it is added.
type SpriteID uint64

// sprite is a positioned, externally-owned image composited over the
// background. The layer holds only a reference and placement metadata.
type sprite struct {
	id      SpriteID
	pos     Vec2 // world space
	surface Surface
	z       int
	seq     uint64 // insertion order; breaks z ties
}

// SpriteBlit is one draw instruction produced by SpriteLayer.Render: copy
// Src of Surface to Dst on the destination. Both rects are integer-aligned
// and Dst is already clipped to the viewport bounds.
type SpriteBlit struct {
	Surface Surface
	Src     Rect
	Dst     Rect
}

// SpriteLayer is an ordered collection of sprites. Draw order is ascending
// z, ties broken by insertion order, so later-added sprites at the same z
// draw on top. The order is recomputed only when membership or a z value
// changes, not every frame.
type SpriteLayer struct {
	sprites  []*sprite
	byID     map[SpriteID]*sprite
	nextID   SpriteID
	nextSeq  uint64
	needSort bool

	blitBuf []SpriteBlit // reused across Render calls
}

// NewSpriteLayer creates an empty sprite layer.
func NewSpriteLayer() *SpriteLayer {
	return &SpriteLayer{byID: make(map[SpriteID]*sprite)}
}

// Add inserts a sprite and returns its id. The image is composited at its
// native pixel size; zoom affects placement only, so callers that want
// sprites to grow with the zoom scale their images themselves.
func (l *SpriteLayer) Add(surface Surface, pos Vec2, z int) SpriteID {
	l.nextID++
	l.nextSeq++
	sp := &sprite{id: l.nextID, pos: pos, surface: surface, z: z, seq: l.nextSeq}
	l.sprites = append(l.sprites, sp)
	l.byID[sp.id] = sp
	l.needSort = true
	return sp.id
}

// Remove deletes the sprite with the given id. Removing an unknown id is a
// no-op and returns false, so cleanup is idempotent.
func (l *SpriteLayer) Remove(id SpriteID) bool {
	sp, ok := l.byID[id]
	if !ok {
		return false
	}
	delete(l.byID, id)
	for i, s := range l.sprites {
		if s == sp {
			l.sprites = append(l.sprites[:i], l.sprites[i+1:]...)
			break
		}
	}
	return true
}

// SetPos moves a sprite to a new world position. Returns false for an
// unknown id.
func (l *SpriteLayer) SetPos(id SpriteID, pos Vec2) bool {
	sp, ok := l.byID[id]
	if !ok {
		return false
	}
	sp.pos = pos
	return true
}

// SetZ changes a sprite's draw order. Returns false for an unknown id.
func (l *SpriteLayer) SetZ(id SpriteID, z int) bool {
	sp, ok := l.byID[id]
	if !ok {
		return false
	}
	if sp.z != z {
		sp.z = z
		l.needSort = true
	}
	return true
}

// Len returns the number of sprites in the layer.
func (l *SpriteLayer) Len() int {
	return len(l.sprites)
}

// sortIfNeeded re-sorts by (z, insertion seq). The key is unique per sprite,
// so the order is fully deterministic.
func (l *SpriteLayer) sortIfNeeded() {
	if !l.needSort {
		return
	}
	sort.Slice(l.sprites, func(i, j int) bool {
		a, b := l.sprites[i], l.sprites[j]
		if a.z != b.z {
			return a.z < b.z
		}
		return a.seq < b.seq
	})
	l.needSort = false
}

// Render produces the ordered blit list for the current viewport. Sprites
// whose screen rect does not intersect the viewport are culled; sprites
// straddling the edge are clipped, with Src reduced to the visible part.
// The returned slice is reused by the next Render call.
func (l *SpriteLayer) Render(v *Viewport) []SpriteBlit {
	l.sortIfNeeded()
	l.blitBuf = l.blitBuf[:0]

	destW := pixRound(v.Size.X)
	destH := pixRound(v.Size.Y)

	for _, sp := range l.sprites {
		w, h := sp.surface.Size()
		screen := v.WorldToScreen(sp.pos)
		x0 := pixRound(screen.X)
		y0 := pixRound(screen.Y)

		// Clip [x0, x0+w) x [y0, y0+h) to the viewport.
		cx0, cy0 := max(x0, 0), max(y0, 0)
		cx1, cy1 := min(x0+w, destW), min(y0+h, destH)
		if cx1 <= cx0 || cy1 <= cy0 {
			continue // fully outside: culled
		}

		l.blitBuf = append(l.blitBuf, SpriteBlit{
			Surface: sp.surface,
			Src: Rect{
				X:      float64(cx0 - x0),
				Y:      float64(cy0 - y0),
				Width:  float64(cx1 - cx0),
				Height: float64(cy1 - cy0),
			},
			Dst: Rect{
				X:      float64(cx0),
				Y:      float64(cy0),
				Width:  float64(cx1 - cx0),
				Height: float64(cy1 - cy0),
			},
		})
	}
	return l.blitBuf
}

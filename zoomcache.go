package panorama

import "math"

// zoomEpsilon is the tolerance within which two zoom factors are considered
// the same cache key. Guards against float drift from tweened zoom values
// re-requesting near-identical factors.
const zoomEpsilon = 1e-6

// zoomCacheEntry pairs a zoom factor with the scaled background it produced.
type zoomCacheEntry struct {
	factor  float64
	surface Surface
}

// ZoomCache memoizes zoom-scaled copies of a background surface. Scaling the
// full background is the most expensive operation in the system; the cache
// turns the dominant access pattern (zoom held steady across many frames)
// into an identity lookup.
//
// The cache exclusively owns its scaled surfaces. Capacity 1 (the default)
// holds a single zoom level at a time, which is sufficient when the zoom only
// changes on discrete user actions; a larger bound keeps the most recently
// used levels for callers that flip between a few fixed zooms.
type ZoomCache struct {
	src      Surface
	filter   Filter
	capacity int
	entries  []zoomCacheEntry // most recently used first

	hits, misses uint64
}

// NewZoomCache creates a cache over src. Capacities below 1 are treated as 1.
func NewZoomCache(src Surface, filter Filter, capacity int) *ZoomCache {
	if capacity < 1 {
		capacity = 1
	}
	return &ZoomCache{src: src, filter: filter, capacity: capacity}
}

// Resolve returns the background scaled by factor. A factor within
// zoomEpsilon of a cached entry (or of 1.0, which aliases the source surface
// itself) is a hit and returns the same surface identity; otherwise the
// background is rescaled, stored, and the least recently used entry beyond
// capacity is evicted.
func (c *ZoomCache) Resolve(factor float64) Surface {
	if math.Abs(factor-1.0) < zoomEpsilon {
		c.hits++
		return c.src
	}

	for i, e := range c.entries {
		if math.Abs(e.factor-factor) < zoomEpsilon {
			c.hits++
			if i != 0 {
				copy(c.entries[1:i+1], c.entries[:i])
				c.entries[0] = e
			}
			return e.surface
		}
	}

	c.misses++
	scaled := c.src.Scale(factor, c.filter)
	c.entries = append(c.entries, zoomCacheEntry{})
	copy(c.entries[1:], c.entries)
	c.entries[0] = zoomCacheEntry{factor: factor, surface: scaled}
	if len(c.entries) > c.capacity {
		c.entries = c.entries[:c.capacity]
	}
	return scaled
}

// Invalidate drops all cached surfaces. Callers must invoke this whenever
// the background's pixel content changes; the cache does not detect it.
func (c *ZoomCache) Invalidate() {
	c.entries = c.entries[:0]
}

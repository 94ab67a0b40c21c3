package panorama

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-frame timing and blit metrics.
// Only populated when the ScrollBackground is in debug mode.
type frameStats struct {
	resolveTime time.Duration
	blitTime    time.Duration
	fullRedraw  bool
	stripCount  int
	spriteCount int
	dirtyCount  int
}

// debugLog prints frame metrics and cumulative cache counters to stderr.
func (b *ScrollBackground) debugLog(stats frameStats) {
	if !b.debug {
		return
	}
	mode := "partial"
	if stats.fullRedraw {
		mode = "full"
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[panorama] %s | resolve: %v | blit: %v | strips: %d | sprites: %d | dirty: %d\n",
		mode, stats.resolveTime, stats.blitTime, stats.stripCount, stats.spriteCount, stats.dirtyCount)
	_, _ = fmt.Fprintf(os.Stderr,
		"[panorama] zoom cache: %d hits / %d misses\n",
		b.cache.hits, b.cache.misses)
}

// warnUnknownSprite reports a RemoveSprite call with an id that is not in
// the layer. Removal of unknown ids is defined as a no-op, so this is a
// diagnostic, never an error, and only appears in debug mode.
func (b *ScrollBackground) warnUnknownSprite(op string, id SpriteID) {
	if !b.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[panorama] warning: %s: unknown sprite id %d\n", op, id)
}

// Package panorama scrolls and zooms a large 2D raster background behind a
// fixed-size viewport and composites movable sprites on top, redrawing only
// what changed each frame.
//
// The package owns the coordinate model (world space vs. screen space at an
// arbitrary zoom factor), a single-slot-by-default cache of the zoom-scaled
// background, and the dirty-region bookkeeping that turns "nothing moved"
// into a no-op frame. It does not open windows, decode images, or read
// input; callers hand it decoded [Surface] buffers and call [ScrollBackground.Frame]
// once per tick.
//
// # Quick start
//
//	bg := panorama.NewImageSurface(2000, 1000)
//	// ... paint the background ...
//	view, err := panorama.New(bg, panorama.Config{
//		ViewportSize: panorama.Vec2{X: 800, Y: 600},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	id := view.AddSprite(heroImg, panorama.Vec2{X: 400, Y: 300}, 1)
//
//	// per tick:
//	view.Scroll(dx, dy)
//	res, err := view.Frame(screen)
//	if err == nil && !res.Unchanged {
//		present(screen, res.Dirty)
//	}
//	_ = id
//
// # Surfaces
//
// All pixel operations go through the [Surface] interface. Two backends are
// provided: [ImageSurface], a pure-software buffer backed by image.RGBA and
// scaled with golang.org/x/image/draw, and [EbitenSurface], which wraps an
// ebiten.Image for use inside an [Ebitengine] game loop. Surfaces from
// different backends must not be mixed within one ScrollBackground.
//
// # Camera animation
//
// [Viewport.ScrollTo] and [Viewport.ZoomTo] animate the camera with eased
// tweens (via [gween]); advance them by calling [ScrollBackground.Update]
// each tick.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package panorama

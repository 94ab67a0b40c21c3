package panorama

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Surface is the raster-buffer capability the engine consumes. It is the
// external primitive from the system's point of view: the package never
// touches pixels except through this interface.
//
// Implementations are not interchangeable at runtime: the src argument of
// Blit must come from the same backend as the receiver. Mixing backends is a
// programming error and panics.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)

	// NewCompatible creates a new, fully transparent surface of the same
	// backend with the given dimensions.
	NewCompatible(width, height int) Surface

	// Blit draws srcRect of src onto this surface with its top-left corner
	// at dst, clipped to both surfaces' bounds. An empty srcRect selects
	// all of src. Coordinates are rounded to whole pixels.
	Blit(src Surface, dst Vec2, srcRect Rect)

	// Scale returns a new surface holding this surface resampled by factor
	// using the given filter. Factor must be positive; the result is at
	// least 1x1.
	Scale(factor float64, filter Filter) Surface

	// Shift moves the surface's content by (dx, dy) pixels in place.
	// Pixels shifted in from outside keep their previous values; callers
	// are expected to repaint the exposed strips.
	Shift(dx, dy int)

	// Fill sets every pixel to c.
	Fill(c color.RGBA)
}

// pixRound converts a float coordinate to a whole pixel.
func pixRound(v float64) int {
	return int(math.Round(v))
}

// rectToBounds converts a Rect to an image.Rectangle with rounded edges.
func rectToBounds(r Rect) image.Rectangle {
	return image.Rect(pixRound(r.X), pixRound(r.Y), pixRound(r.X+r.Width), pixRound(r.Y+r.Height))
}

// ImageSurface is the software Surface backend, backed by an image.RGBA.
// It needs no display or GPU, which makes composited output directly
// verifiable in tests.
type ImageSurface struct {
	img *image.RGBA
}

// NewImageSurface creates a transparent software surface.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewImageSurfaceFrom copies an arbitrary image into a new software surface.
func NewImageSurfaceFrom(src image.Image) *ImageSurface {
	b := src.Bounds()
	s := NewImageSurface(b.Dx(), b.Dy())
	draw.Draw(s.img, s.img.Bounds(), src, b.Min, draw.Src)
	return s
}

// RGBA returns the underlying pixel buffer. Callers may paint into it
// directly; if the surface is a ScrollBackground's background, follow up
// with ScrollBackground.Invalidate.
func (s *ImageSurface) RGBA() *image.RGBA {
	return s.img
}

// Size returns the surface dimensions in pixels.
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// NewCompatible creates a transparent software surface.
func (s *ImageSurface) NewCompatible(width, height int) Surface {
	return NewImageSurface(width, height)
}

// Blit draws srcRect of src at dst. src must be an *ImageSurface.
func (s *ImageSurface) Blit(src Surface, dst Vec2, srcRect Rect) {
	is, ok := src.(*ImageSurface)
	if !ok {
		panic(fmt.Sprintf("panorama: ImageSurface.Blit: incompatible source surface %T", src))
	}

	sb := is.img.Bounds()
	var sr image.Rectangle
	if srcRect.Empty() {
		sr = sb
	} else {
		sr = rectToBounds(srcRect).Intersect(sb)
	}
	if sr.Empty() {
		return
	}

	dp := image.Pt(pixRound(dst.X), pixRound(dst.Y))
	dr := image.Rectangle{Min: dp, Max: dp.Add(sr.Size())}
	draw.Draw(s.img, dr, is.img, sr.Min, draw.Over)
}

// scalerFor maps a Filter to an x/image scaler.
func scalerFor(f Filter) xdraw.Scaler {
	if f == FilterLinear {
		return xdraw.ApproxBiLinear
	}
	return xdraw.NearestNeighbor
}

// Scale returns a resampled copy of the surface.
func (s *ImageSurface) Scale(factor float64, filter Filter) Surface {
	w, h := s.Size()
	nw := pixRound(float64(w) * factor)
	nh := pixRound(float64(h) * factor)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	out := NewImageSurface(nw, nh)
	scalerFor(filter).Scale(out.img, out.img.Bounds(), s.img, s.img.Bounds(), xdraw.Src, nil)
	return out
}

// Shift moves the pixel content by (dx, dy) in place. Rows are copied in an
// order that keeps the overlapping region intact.
func (s *ImageSurface) Shift(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	w, h := s.Size()
	if dx >= w || -dx >= w || dy >= h || -dy >= h {
		return // entire content shifted out
	}

	// Row span that survives the horizontal shift, in destination coords.
	x0, x1 := 0, w // [x0, x1)
	if dx > 0 {
		x0 = dx
	} else {
		x1 = w + dx
	}
	rowBytes := (x1 - x0) * 4

	stride := s.img.Stride
	pix := s.img.Pix

	copyRow := func(dstY int) {
		srcY := dstY - dy
		di := dstY*stride + x0*4
		si := srcY*stride + (x0-dx)*4
		copy(pix[di:di+rowBytes], pix[si:si+rowBytes])
	}

	if dy > 0 {
		// Moving down: walk bottom-up so source rows are read before
		// being overwritten.
		for y := h - 1; y >= dy; y-- {
			copyRow(y)
		}
	} else {
		for y := 0; y < h+dy; y++ {
			copyRow(y)
		}
	}
}

// Fill sets every pixel to c.
func (s *ImageSurface) Fill(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// AssembleTiles composes a grid of equally sized tiles into one surface,
// row-major: tiles[row][col]. All rows must have the same length and all
// tiles the same dimensions. The result uses the backend of tiles[0][0].
func AssembleTiles(tiles [][]Surface) (Surface, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, fmt.Errorf("panorama: AssembleTiles: empty tile grid")
	}
	cols := len(tiles[0])
	tw, th := tiles[0][0].Size()
	for row := range tiles {
		if len(tiles[row]) != cols {
			return nil, fmt.Errorf("panorama: AssembleTiles: row %d has %d tiles, want %d", row, len(tiles[row]), cols)
		}
		for col, tile := range tiles[row] {
			w, h := tile.Size()
			if w != tw || h != th {
				return nil, fmt.Errorf("panorama: AssembleTiles: tile (%d,%d) is %dx%d, want %dx%d", row, col, w, h, tw, th)
			}
		}
	}

	out := tiles[0][0].NewCompatible(cols*tw, len(tiles)*th)
	for row := range tiles {
		for col, tile := range tiles[row] {
			out.Blit(tile, Vec2{X: float64(col * tw), Y: float64(row * th)}, Rect{})
		}
	}
	return out, nil
}

package panorama

import (
	"image"
	"image/color"
	"testing"
)

// patternSurface fills a surface with a per-pixel deterministic pattern so
// blit results can be traced back to source coordinates.
func patternSurface(w, h int) *ImageSurface {
	s := NewImageSurface(w, h)
	img := s.RGBA()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 0xff})
		}
	}
	return s
}

// solidSurface fills a surface with a single opaque color.
func solidSurface(w, h int, c color.RGBA) *ImageSurface {
	s := NewImageSurface(w, h)
	s.Fill(c)
	return s
}

func at(s *ImageSurface, x, y int) color.RGBA {
	return s.RGBA().RGBAAt(x, y)
}

func samePixels(a, b *ImageSurface) bool {
	ab, bb := a.RGBA(), b.RGBA()
	if ab.Bounds() != bb.Bounds() {
		return false
	}
	for i := range ab.Pix {
		if ab.Pix[i] != bb.Pix[i] {
			return false
		}
	}
	return true
}

func TestImageSurfaceSizeAndFill(t *testing.T) {
	s := NewImageSurface(40, 30)
	w, h := s.Size()
	if w != 40 || h != 30 {
		t.Fatalf("Size = %dx%d, want 40x30", w, h)
	}

	red := color.RGBA{R: 0xff, A: 0xff}
	s.Fill(red)
	if at(s, 0, 0) != red || at(s, 39, 29) != red {
		t.Error("Fill did not cover the surface")
	}
}

func TestImageSurfaceBlit(t *testing.T) {
	dst := solidSurface(20, 20, color.RGBA{A: 0xff})
	src := patternSurface(5, 5)

	dst.Blit(src, Vec2{X: 10, Y: 10}, Rect{})

	if got, want := at(dst, 10, 10), at(src, 0, 0); got != want {
		t.Errorf("pixel (10,10) = %v, want %v", got, want)
	}
	if got, want := at(dst, 14, 14), at(src, 4, 4); got != want {
		t.Errorf("pixel (14,14) = %v, want %v", got, want)
	}
	if got := at(dst, 9, 10); got != (color.RGBA{A: 0xff}) {
		t.Errorf("pixel left of blit changed: %v", got)
	}
}

func TestImageSurfaceBlitSrcRect(t *testing.T) {
	dst := NewImageSurface(10, 10)
	src := patternSurface(8, 8)

	dst.Blit(src, Vec2{}, Rect{X: 2, Y: 3, Width: 4, Height: 4})

	if got, want := at(dst, 0, 0), at(src, 2, 3); got != want {
		t.Errorf("pixel (0,0) = %v, want src(2,3) %v", got, want)
	}
	if got, want := at(dst, 3, 3), at(src, 5, 6); got != want {
		t.Errorf("pixel (3,3) = %v, want src(5,6) %v", got, want)
	}
	if got := at(dst, 4, 0); got != (color.RGBA{}) {
		t.Errorf("pixel beyond src rect changed: %v", got)
	}
}

func TestImageSurfaceBlitClips(t *testing.T) {
	dst := NewImageSurface(10, 10)
	src := patternSurface(6, 6)

	// Partially off the top-left corner.
	dst.Blit(src, Vec2{X: -3, Y: -3}, Rect{})
	if got, want := at(dst, 0, 0), at(src, 3, 3); got != want {
		t.Errorf("pixel (0,0) = %v, want src(3,3) %v", got, want)
	}

	// Fully outside: must be a no-op, not a panic.
	dst.Blit(src, Vec2{X: 50, Y: 50}, Rect{})
	dst.Blit(src, Vec2{}, Rect{X: 100, Y: 100, Width: 5, Height: 5})
}

func TestImageSurfaceScaleNearest(t *testing.T) {
	src := patternSurface(4, 4)
	out := src.Scale(2.0, FilterNearest).(*ImageSurface)

	w, h := out.Size()
	if w != 8 || h != 8 {
		t.Fatalf("scaled size = %dx%d, want 8x8", w, h)
	}
	if got, want := at(out, 0, 0), at(src, 0, 0); got != want {
		t.Errorf("corner (0,0) = %v, want %v", got, want)
	}
	if got, want := at(out, 7, 7), at(src, 3, 3); got != want {
		t.Errorf("corner (7,7) = %v, want %v", got, want)
	}
}

func TestImageSurfaceScaleMinimumSize(t *testing.T) {
	src := patternSurface(10, 10)
	out := src.Scale(0.01, FilterNearest)
	w, h := out.Size()
	if w != 1 || h != 1 {
		t.Errorf("scaled size = %dx%d, want 1x1", w, h)
	}
}

func TestImageSurfaceShift(t *testing.T) {
	s := patternSurface(10, 10)
	orig := patternSurface(10, 10)

	s.Shift(3, 2)

	// Shifted content: (3,2) now holds the old (0,0).
	if got, want := at(s, 3, 2), at(orig, 0, 0); got != want {
		t.Errorf("pixel (3,2) = %v, want old (0,0) %v", got, want)
	}
	if got, want := at(s, 9, 9), at(orig, 6, 7); got != want {
		t.Errorf("pixel (9,9) = %v, want old (6,7) %v", got, want)
	}
	// Exposed strips keep their previous values.
	if got, want := at(s, 0, 5), at(orig, 0, 5); got != want {
		t.Errorf("exposed pixel (0,5) = %v, want unchanged %v", got, want)
	}
	if got, want := at(s, 5, 0), at(orig, 5, 0); got != want {
		t.Errorf("exposed pixel (5,0) = %v, want unchanged %v", got, want)
	}
}

func TestImageSurfaceShiftNegative(t *testing.T) {
	s := patternSurface(10, 10)
	orig := patternSurface(10, 10)

	s.Shift(-4, -1)

	if got, want := at(s, 0, 0), at(orig, 4, 1); got != want {
		t.Errorf("pixel (0,0) = %v, want old (4,1) %v", got, want)
	}
	if got, want := at(s, 5, 8), at(orig, 9, 9); got != want {
		t.Errorf("pixel (5,8) = %v, want old (9,9) %v", got, want)
	}
	if got, want := at(s, 9, 5), at(orig, 9, 5); got != want {
		t.Errorf("exposed pixel (9,5) = %v, want unchanged %v", got, want)
	}
}

func TestImageSurfaceShiftOutOfRange(t *testing.T) {
	s := patternSurface(5, 5)
	orig := patternSurface(5, 5)
	s.Shift(5, 0)
	if !samePixels(s, orig) {
		t.Error("full-width shift should leave the surface unchanged")
	}
}

func TestNewImageSurfaceFrom(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.SetRGBA(1, 2, color.RGBA{R: 7, G: 8, B: 9, A: 0xff})

	s := NewImageSurfaceFrom(img)
	if got := at(s, 1, 2); got != (color.RGBA{R: 7, G: 8, B: 9, A: 0xff}) {
		t.Errorf("pixel (1,2) = %v", got)
	}
}

func TestAssembleTiles(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	green := color.RGBA{G: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	purple := color.RGBA{R: 0x64, B: 0x64, A: 0xff}

	tiles := [][]Surface{
		{solidSurface(4, 3, red), solidSurface(4, 3, green)},
		{solidSurface(4, 3, blue), solidSurface(4, 3, purple)},
	}

	out, err := AssembleTiles(tiles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h := out.Size()
	if w != 8 || h != 6 {
		t.Fatalf("assembled size = %dx%d, want 8x6", w, h)
	}

	s := out.(*ImageSurface)
	if at(s, 0, 0) != red || at(s, 4, 0) != green || at(s, 0, 3) != blue || at(s, 7, 5) != purple {
		t.Error("tile placement mismatch")
	}
}

func TestAssembleTilesErrors(t *testing.T) {
	if _, err := AssembleTiles(nil); err == nil {
		t.Error("expected error for empty grid")
	}
	if _, err := AssembleTiles([][]Surface{{}}); err == nil {
		t.Error("expected error for empty row")
	}

	ragged := [][]Surface{
		{NewImageSurface(4, 4), NewImageSurface(4, 4)},
		{NewImageSurface(4, 4)},
	}
	if _, err := AssembleTiles(ragged); err == nil {
		t.Error("expected error for ragged grid")
	}

	mismatched := [][]Surface{
		{NewImageSurface(4, 4), NewImageSurface(4, 5)},
	}
	if _, err := AssembleTiles(mismatched); err == nil {
		t.Error("expected error for mismatched tile sizes")
	}
}

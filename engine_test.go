package panorama

import "testing"

func TestComputeBlitIdentity(t *testing.T) {
	v := NewViewport(2000, 1000, Vec2{X: 800, Y: 600})
	v.Scroll(300, 100)

	src, dst := computeBlit(v, 2000, 1000)
	if src != (Rect{X: 300, Y: 100, Width: 800, Height: 600}) {
		t.Errorf("src = %v", src)
	}
	if dst != (Vec2{}) {
		t.Errorf("dst = %v, want origin", dst)
	}
}

func TestComputeBlitZoom(t *testing.T) {
	v := NewViewport(2000, 1000, Vec2{X: 800, Y: 600})
	if err := v.SetZoom(2.0); err != nil {
		t.Fatal(err)
	}
	v.Scroll(100, 50)

	// Scaled background is 4000x2000; visible world rect 400x300 at (100,50)
	// maps to an 800x600 source at (200,100).
	src, dst := computeBlit(v, 4000, 2000)
	if src != (Rect{X: 200, Y: 100, Width: 800, Height: 600}) {
		t.Errorf("src = %v", src)
	}
	if dst != (Vec2{}) {
		t.Errorf("dst = %v, want origin", dst)
	}
}

func TestComputeBlitLetterbox(t *testing.T) {
	v := NewViewport(2000, 1000, Vec2{X: 800, Y: 600})
	if err := v.SetZoom(0.25); err != nil {
		t.Fatal(err)
	}

	// Scaled background is 500x250, smaller than the viewport on both axes:
	// the whole image blits centered, not stretched.
	src, dst := computeBlit(v, 500, 250)
	if src != (Rect{Width: 500, Height: 250}) {
		t.Errorf("src = %v, want the whole scaled surface", src)
	}
	if dst != (Vec2{X: 150, Y: 175}) {
		t.Errorf("dst = %v, want centered (150, 175)", dst)
	}
}

func TestComputeBlitRoundingGuard(t *testing.T) {
	// An awkward factor whose scaled extent rounds: the source rect must
	// stay inside the scaled surface.
	v := NewViewport(1000, 1000, Vec2{X: 800, Y: 600})
	if err := v.SetZoom(1.0 / 3.0); err != nil {
		t.Fatal(err)
	}

	scaledW, scaledH := 333, 333
	src, _ := computeBlit(v, scaledW, scaledH)
	if src.X < 0 || src.Y < 0 ||
		src.X+src.Width > float64(scaledW) || src.Y+src.Height > float64(scaledH) {
		t.Errorf("src %v escapes scaled surface %dx%d", src, scaledW, scaledH)
	}
}

func TestExposedStripsNone(t *testing.T) {
	if got := exposedStrips(0, 0, Vec2{X: 100, Y: 80}); got != nil {
		t.Errorf("zero shift = %v, want nil", got)
	}
}

func TestExposedStripsRight(t *testing.T) {
	// Content shifted left by 10: a 10px strip on the right edge is exposed.
	got := exposedStrips(-10, 0, Vec2{X: 100, Y: 80})
	if len(got) != 1 || got[0] != (Rect{X: 90, Width: 10, Height: 80}) {
		t.Errorf("strips = %v", got)
	}
}

func TestExposedStripsDiagonal(t *testing.T) {
	got := exposedStrips(3, -2, Vec2{X: 10, Y: 8})
	// Left strip at full height, bottom strip covering the remaining width.
	want0 := Rect{Width: 3, Height: 8}
	want1 := Rect{X: 3, Y: 6, Width: 7, Height: 2}
	if len(got) != 2 || got[0] != want0 || got[1] != want1 {
		t.Errorf("strips = %v, want [%v %v]", got, want0, want1)
	}

	// The two strips never overlap and together cover the exposed L.
	if got[0].Intersects(got[1]) {
		t.Error("strips overlap")
	}
	area := got[0].Width*got[0].Height + got[1].Width*got[1].Height
	if area != 3*8+7*2 {
		t.Errorf("exposed area = %g, want %d", area, 3*8+7*2)
	}
}

func TestExposedStripsFullJump(t *testing.T) {
	got := exposedStrips(0, 90, Vec2{X: 100, Y: 80})
	if len(got) != 1 || got[0] != (Rect{Width: 100, Height: 80}) {
		t.Errorf("strips = %v, want the full viewport", got)
	}
}

package scrollcore

import "testing"

func TestSplitFrameFitsUnchanged(t *testing.T) {
	f := Frame{Rect: Rect{X: 0, Y: 0, W: 100, H: 100}, Number: 0}
	tiles := SplitFrame(f, 200, 200)
	if len(tiles) != 1 || tiles[0].Split != nil {
		t.Fatalf("expected a single untiled frame, got %v", tiles)
	}
}

func TestSplitFrameOversizePage(t *testing.T) {
	f := Frame{Rect: Rect{X: 100, Y: 100, W: 3800, H: 5800}, Number: 0}
	tiles := SplitFrame(f, 1000, 1000)

	const wantRows, wantCols = 6, 4
	if len(tiles) != wantRows*wantCols {
		t.Fatalf("len(tiles) = %d, want %d", len(tiles), wantRows*wantCols)
	}

	wantW, wantH := 3800/wantCols, 5800/wantRows
	for i, tile := range tiles {
		if tile.Number != 0 {
			t.Errorf("tile %d Number = %d, want 0", i, tile.Number)
		}
		if tile.Split == nil || int(*tile.Split) != i {
			t.Errorf("tile %d Split = %v, want %d", i, tile.Split, i)
		}
		if tile.Rect.W != wantW || tile.Rect.H != wantH {
			t.Errorf("tile %d size = %dx%d, want %dx%d", i, tile.Rect.W, tile.Rect.H, wantW, wantH)
		}
	}

	// row-major order: tile 0 is the top-left sub-rectangle.
	if tiles[0].Rect.X != f.Rect.X || tiles[0].Rect.Y != f.Rect.Y {
		t.Errorf("tiles[0] origin = (%d,%d), want (%d,%d)", tiles[0].Rect.X, tiles[0].Rect.Y, f.Rect.X, f.Rect.Y)
	}
	last := tiles[len(tiles)-1]
	if last.Rect.X+last.Rect.W > f.Rect.X+f.Rect.W || last.Rect.Y+last.Rect.H > f.Rect.Y+f.Rect.H {
		t.Errorf("last tile %v overflows source rect %v", last.Rect, f.Rect)
	}
}

package geometry

import "testing"

func TestSelectionNormalizesAnyCorner(t *testing.T) {
	tests := []struct {
		name                       string
		ox, oy, cx, cy             float64
		wantX, wantY, wantW, wantH float64
	}{
		{"drag right-down", 10, 20, 110, 220, 10, 20, 100, 200},
		{"drag left-up", 110, 220, 10, 20, 10, 20, 100, 200},
		{"drag right-up", 10, 220, 110, 20, 10, 20, 100, 200},
		{"drag left-down", 110, 20, 10, 220, 10, 20, 100, 200},
		{"zero drag", 50, 50, 50, 50, 50, 50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Selection(tt.ox, tt.oy, tt.cx, tt.cy)
			want := Bounds{tt.wantX, tt.wantY, tt.wantW, tt.wantH}
			if got != want {
				t.Errorf("Selection() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestSelectionCommittableRequiresBothAxes(t *testing.T) {
	if Selection(0, 0, 49, 200).Committable() {
		t.Error("49x200 selection should not be committable")
	}
	if Selection(0, 0, 200, 49).Committable() {
		t.Error("200x49 selection should not be committable")
	}
	if !Selection(0, 0, 50, 50).Committable() {
		t.Error("50x50 selection should be committable")
	}
}

func TestTranslateKeepsSize(t *testing.T) {
	start := Bounds{X: 100, Y: 100, Width: 80, Height: 60}
	got := Translate(start, -250, 40)
	want := Bounds{X: -150, Y: 140, Width: 80, Height: 60}
	if got != want {
		t.Errorf("Translate() = %+v, want %+v", got, want)
	}
}

func TestResizeEastOnlyChangesWidth(t *testing.T) {
	start := Bounds{X: 10, Y: 20, Width: 100, Height: 100}

	got := Resize(start, HandleE, 35, 999)
	if got.X != start.X || got.Y != start.Y || got.Height != start.Height {
		t.Errorf("east handle moved anchor or height: %+v", got)
	}
	if got.Width != 135 {
		t.Errorf("Width = %v, want 135", got.Width)
	}

	// Shrinking far past the minimum floors at MinSize.
	got = Resize(start, HandleE, -500, 0)
	if got.Width != MinSize {
		t.Errorf("Width = %v, want %v", got.Width, MinSize)
	}
	if got.X != start.X || got.Y != start.Y {
		t.Errorf("east handle must not move origin: %+v", got)
	}
}

func TestResizeWestPinsRightEdge(t *testing.T) {
	start := Bounds{X: 10, Y: 20, Width: 100, Height: 100}

	// Shrink delta larger than startWidth-MinSize: width floors at MinSize
	// and the right edge stays exactly where it was.
	got := Resize(start, HandleW, 400, 0)
	if got.Width != MinSize {
		t.Errorf("Width = %v, want %v", got.Width, MinSize)
	}
	if got.Right() != start.Right() {
		t.Errorf("right edge moved: %v, want %v", got.Right(), start.Right())
	}

	// Growing leftwards also pins the right edge.
	got = Resize(start, HandleW, -40, 0)
	if got.Width != 140 || got.X != -30 || got.Right() != start.Right() {
		t.Errorf("west grow = %+v", got)
	}
}

func TestResizeNorthPinsBottomEdge(t *testing.T) {
	start := Bounds{X: 0, Y: 50, Width: 100, Height: 80}
	got := Resize(start, HandleN, 0, 300)
	if got.Height != MinSize {
		t.Errorf("Height = %v, want %v", got.Height, MinSize)
	}
	if got.Bottom() != start.Bottom() {
		t.Errorf("bottom edge moved: %v, want %v", got.Bottom(), start.Bottom())
	}
}

func TestResizeCornersComposePerAxis(t *testing.T) {
	start := Bounds{X: 10, Y: 10, Width: 100, Height: 100}

	got := Resize(start, HandleNW, 30, 40)
	want := Bounds{X: 40, Y: 50, Width: 70, Height: 60}
	if got != want {
		t.Errorf("nw resize = %+v, want %+v", got, want)
	}

	got = Resize(start, HandleSE, -20, 25)
	want = Bounds{X: 10, Y: 10, Width: 80, Height: 125}
	if got != want {
		t.Errorf("se resize = %+v, want %+v", got, want)
	}
}

func TestResizeNeverShrinksBelowMinSize(t *testing.T) {
	start := Bounds{X: 0, Y: 0, Width: 200, Height: 200}
	handles := []Handle{HandleN, HandleS, HandleE, HandleW, HandleNE, HandleNW, HandleSE, HandleSW}
	deltas := []float64{-10000, -200, -151, -150, 0, 150, 151, 10000}

	for _, h := range handles {
		for _, dx := range deltas {
			for _, dy := range deltas {
				got := Resize(start, h, dx, dy)
				if got.Width < MinSize || got.Height < MinSize {
					t.Fatalf("Resize(%v, %v, %v) = %+v violates minimum size", h, dx, dy, got)
				}
			}
		}
	}
}

func TestHandleAt(t *testing.T) {
	b := Bounds{X: 0, Y: 0, Width: 200, Height: 200}
	tests := []struct {
		name   string
		x, y   float64
		want   Handle
		wantOK bool
	}{
		{"top-left corner", 2, 2, HandleNW, true},
		{"top edge", 100, 2, HandleN, true},
		{"bottom-right corner", 198, 198, HandleSE, true},
		{"east edge", 198, 100, HandleE, true},
		{"interior", 100, 100, 0, false},
		{"outside", 300, 100, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HandleAt(b, tt.x, tt.y, 10)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("HandleAt(%v,%v) = %v,%v want %v,%v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

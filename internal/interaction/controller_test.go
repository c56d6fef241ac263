package interaction

import (
	"testing"

	"github.com/velin-dev/uisketch/internal/geometry"
	"github.com/velin-dev/uisketch/internal/models"
)

func regions() []models.Region {
	return []models.Region{
		{ID: "below", Bounds: geometry.Bounds{X: 100, Y: 100, Width: 200, Height: 200}},
		{ID: "above", Bounds: geometry.Bounds{X: 150, Y: 150, Width: 200, Height: 200}},
	}
}

func TestSelectionGestureCommitsOnlyAboveThreshold(t *testing.T) {
	c := NewController()

	c.PointerDown(10, 10, nil)
	if c.Gesture() != GestureSelecting {
		t.Fatal("press on empty canvas should start selecting")
	}
	c.PointerMove(40, 300)
	if _, committable, active := c.Selection(); !active || committable {
		t.Error("30x290 selection should be active but not committable")
	}

	// Released at 49 wide: one sub-threshold axis discards the whole thing.
	commit := c.PointerUp(59, 300)
	if commit.Kind != CommitNone {
		t.Errorf("commit = %+v, want none", commit)
	}
	if c.Gesture() != GestureNone {
		t.Error("gesture should reset after release")
	}

	c.PointerDown(10, 10, nil)
	commit = c.PointerUp(310, 220)
	if commit.Kind != CommitSelection {
		t.Fatalf("commit = %+v, want selection", commit)
	}
	want := geometry.Bounds{X: 10, Y: 10, Width: 300, Height: 210}
	if commit.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", commit.Bounds, want)
	}
}

func TestSelectionNormalizesLeftwardDrag(t *testing.T) {
	c := NewController()
	c.PointerDown(300, 250, nil)
	commit := c.PointerUp(100, 50)
	if commit.Kind != CommitSelection {
		t.Fatalf("commit = %+v", commit)
	}
	want := geometry.Bounds{X: 100, Y: 50, Width: 200, Height: 200}
	if commit.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", commit.Bounds, want)
	}
}

func TestDragGestureKeepsStoreUntouchedUntilRelease(t *testing.T) {
	c := NewController()
	rs := regions()

	// Interior press away from any edge zone.
	c.PointerDown(250, 250, rs)
	if c.Gesture() != GestureDragging {
		t.Fatalf("gesture = %v, want dragging", c.Gesture())
	}

	c.PointerMove(280, 240)
	candidate, ok := c.CandidateFor("above")
	if !ok {
		t.Fatal("candidate should track the dragged region")
	}
	want := geometry.Bounds{X: 180, Y: 140, Width: 200, Height: 200}
	if candidate != want {
		t.Errorf("candidate = %+v, want %+v", candidate, want)
	}
	if _, ok := c.CandidateFor("below"); ok {
		t.Error("other regions must not get a candidate")
	}

	commit := c.PointerUp(300, 200)
	if commit.Kind != CommitBounds || commit.RegionID != "above" {
		t.Fatalf("commit = %+v", commit)
	}
	want = geometry.Bounds{X: 200, Y: 100, Width: 200, Height: 200}
	if commit.Bounds != want {
		t.Errorf("committed bounds = %+v, want %+v", commit.Bounds, want)
	}
}

func TestPressOnEdgeStartsResize(t *testing.T) {
	c := NewController()
	rs := regions()

	// Near the left edge of "below", outside "above".
	c.PointerDown(102, 120, rs)
	if c.Gesture() != GestureResizing {
		t.Fatalf("gesture = %v, want resizing", c.Gesture())
	}

	commit := c.PointerUp(142, 120)
	if commit.Kind != CommitBounds || commit.RegionID != "below" {
		t.Fatalf("commit = %+v", commit)
	}
	// West handle: right edge pinned at 300.
	if commit.Bounds.Right() != 300 || commit.Bounds.Width != 160 {
		t.Errorf("bounds = %+v", commit.Bounds)
	}
}

func TestTopmostRegionWinsHitTest(t *testing.T) {
	c := NewController()
	rs := regions()

	// Overlap zone: both contain (200,200), "above" drawn later.
	c.PointerDown(200, 200, rs)
	commit := c.PointerUp(200, 200)
	if commit.RegionID != "above" {
		t.Errorf("RegionID = %q, want the topmost region", commit.RegionID)
	}

	if r, ok := HitRegion(rs, 200, 200); !ok || r.ID != "above" {
		t.Errorf("HitRegion = %v %v", r.ID, ok)
	}
	if _, ok := HitRegion(rs, 10, 10); ok {
		t.Error("empty canvas should not hit any region")
	}
}

func TestCancelDiscardsGesture(t *testing.T) {
	c := NewController()
	c.PointerDown(10, 10, nil)
	c.PointerMove(200, 200)
	c.Cancel()

	if c.Gesture() != GestureNone {
		t.Error("cancel should reset the gesture")
	}
	if _, _, active := c.Selection(); active {
		t.Error("no selection should remain after cancel")
	}
}

func TestResizeCandidateNeverBelowMinSize(t *testing.T) {
	c := NewController()
	rs := []models.Region{{ID: "r", Bounds: geometry.Bounds{X: 100, Y: 100, Width: 120, Height: 120}}}

	// Grab the south-east corner and shove it far past the top-left.
	c.PointerDown(218, 218, rs)
	c.PointerMove(-500, -500)
	candidate, _ := c.CandidateFor("r")
	if candidate.Width < geometry.MinSize || candidate.Height < geometry.MinSize {
		t.Errorf("candidate = %+v violates minimum size", candidate)
	}
}

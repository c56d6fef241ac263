// Package interaction is the pointer-gesture state machine: it tracks
// the live selection rectangle and per-gesture candidate bounds, and
// decides what (if anything) a pointer release commits. Nothing here
// touches the region store; commits are returned to the caller.
package interaction

import (
	"github.com/velin-dev/uisketch/internal/geometry"
	"github.com/velin-dev/uisketch/internal/models"
)

// HandleSlop is how far (in canvas units) from a region edge a press
// still grabs a resize handle.
const HandleSlop = 8.0

// Gesture identifies what the pointer is currently doing.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureSelecting
	GestureDragging
	GestureResizing
)

// CommitKind says what a pointer release produced.
type CommitKind int

const (
	CommitNone      CommitKind = iota
	CommitSelection            // a committable selection rectangle was drawn
	CommitBounds               // a drag or resize finished; new bounds for RegionID
)

// Commit is the all-or-nothing outcome of a finished gesture.
type Commit struct {
	Kind     CommitKind
	RegionID string
	Bounds   geometry.Bounds
}

// Controller holds the state of the active gesture. While dragging or
// resizing, the candidate bounds live here and only here; the store sees
// a single commit on release.
type Controller struct {
	gesture     Gesture
	originX     float64
	originY     float64
	targetID    string
	startBounds geometry.Bounds
	handle      geometry.Handle
	candidate   geometry.Bounds
}

func NewController() *Controller {
	return &Controller{}
}

// Gesture reports the active gesture kind.
func (c *Controller) Gesture() Gesture {
	return c.gesture
}

// PointerDown starts a gesture. A press on a region's edge zone starts
// resizing, inside a region starts dragging, and anywhere else starts a
// fresh selection. Regions are hit-tested topmost (last drawn) first.
func (c *Controller) PointerDown(x, y float64, regions []models.Region) {
	for i := len(regions) - 1; i >= 0; i-- {
		r := regions[i]
		if h, ok := geometry.HandleAt(r.Bounds, x, y, HandleSlop); ok {
			c.gesture = GestureResizing
			c.targetID = r.ID
			c.startBounds = r.Bounds
			c.handle = h
			c.originX, c.originY = x, y
			c.candidate = r.Bounds
			return
		}
		if r.Bounds.Contains(x, y) {
			c.gesture = GestureDragging
			c.targetID = r.ID
			c.startBounds = r.Bounds
			c.originX, c.originY = x, y
			c.candidate = r.Bounds
			return
		}
	}

	c.gesture = GestureSelecting
	c.targetID = ""
	c.originX, c.originY = x, y
	c.candidate = geometry.Selection(x, y, x, y)
}

// PointerMove advances the candidate bounds of the active gesture.
func (c *Controller) PointerMove(x, y float64) {
	switch c.gesture {
	case GestureSelecting:
		c.candidate = geometry.Selection(c.originX, c.originY, x, y)
	case GestureDragging:
		c.candidate = geometry.Translate(c.startBounds, x-c.originX, y-c.originY)
	case GestureResizing:
		c.candidate = geometry.Resize(c.startBounds, c.handle, x-c.originX, y-c.originY)
	}
}

// PointerUp ends the gesture and reports what to commit. Sub-threshold
// selections are discarded; drags and resizes always commit their final
// candidate in one step.
func (c *Controller) PointerUp(x, y float64) Commit {
	c.PointerMove(x, y)
	defer c.reset()

	switch c.gesture {
	case GestureSelecting:
		if !c.candidate.Committable() {
			return Commit{Kind: CommitNone}
		}
		return Commit{Kind: CommitSelection, Bounds: c.candidate}
	case GestureDragging, GestureResizing:
		return Commit{Kind: CommitBounds, RegionID: c.targetID, Bounds: c.candidate}
	}
	return Commit{Kind: CommitNone}
}

// Cancel abandons the active gesture without committing anything.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.gesture = GestureNone
	c.targetID = ""
	c.candidate = geometry.Bounds{}
}

// Selection returns the live selection rectangle and whether it meets
// the commit threshold, for invalid-state styling while drawing.
func (c *Controller) Selection() (bounds geometry.Bounds, committable, active bool) {
	if c.gesture != GestureSelecting {
		return geometry.Bounds{}, false, false
	}
	return c.candidate, c.candidate.Committable(), true
}

// CandidateFor returns the in-gesture bounds for a region, so the view
// can show live geometry without the store ever seeing partial state.
func (c *Controller) CandidateFor(regionID string) (geometry.Bounds, bool) {
	if (c.gesture == GestureDragging || c.gesture == GestureResizing) && c.targetID == regionID {
		return c.candidate, true
	}
	return geometry.Bounds{}, false
}

// HitRegion returns the topmost region containing the point.
func HitRegion(regions []models.Region, x, y float64) (models.Region, bool) {
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].Bounds.Contains(x, y) {
			return regions[i], true
		}
	}
	return models.Region{}, false
}

package models

import "github.com/velin-dev/uisketch/internal/geometry"

// Region is a user-placed rectangle with an associated prompt and a
// possibly-generated component tree. Loading and Error are mutually
// exclusive outcomes of the most recent gateway call; Component is nil
// only while no generation has yet succeeded.
type Region struct {
	ID        string
	Bounds    geometry.Bounds
	Prompt    string
	Component *ComponentNode
	Loading   bool
	Error     string
}

// Clone returns a copy safe to hand across the bus.
func (r Region) Clone() Region {
	r.Component = r.Component.Clone()
	return r
}

// CanvasSize is the current drawable area in canvas units. Recomputed on
// container resize, never persisted.
type CanvasSize struct {
	Width  float64
	Height float64
}

// Canvas units per terminal cell. Cells are roughly twice as tall as
// wide, so the vertical scale doubles to keep drawn rectangles visually
// proportional.
const (
	CellUnitWidth  = 10.0
	CellUnitHeight = 20.0
)

// RegionSummary is the slice of a region the gateway needs for
// positional context.
type RegionSummary struct {
	Prompt string          `json:"prompt"`
	Bounds geometry.Bounds `json:"bounds"`
}

// GenerationContext is assembled per request: the target bounds, the
// canvas size, and a snapshot of every other committed region at request
// time. It is a copy, not a live view; concurrent edits after the
// request leave it stale, which is acceptable.
type GenerationContext struct {
	Target          geometry.Bounds `json:"target"`
	Canvas          CanvasSize      `json:"canvas"`
	ExistingRegions []RegionSummary `json:"existingRegions,omitempty"`
}

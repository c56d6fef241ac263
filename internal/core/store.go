package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/velin-dev/uisketch/internal/geometry"
	"github.com/velin-dev/uisketch/internal/models"
)

// ErrInvalidState marks a programming-contract violation: an operation
// that normal UI interaction can never produce, such as confirming a
// prompt for a pending region that does not exist. It is a defect
// signal, not a recoverable condition.
var ErrInvalidState = errors.New("invalid state")

// RegionStore is the single owner of committed regions and the one
// pending (unconfirmed) region for event-driven architecture. All
// mutation goes through compound operations under the lock; snapshots
// handed out never alias internal state.
type RegionStore struct {
	mu      sync.RWMutex
	regions []models.Region
	pending *models.Region
	canvas  models.CanvasSize
}

func NewRegionStore() *RegionStore {
	return &RegionStore{
		regions: make([]models.Region, 0),
	}
}

// BeginSelection turns a drawn selection into the pending region,
// replacing any prior one. Sub-threshold bounds are a silent no-op: the
// selection never existed.
func (rs *RegionStore) BeginSelection(bounds geometry.Bounds) (models.Region, bool) {
	if !bounds.Committable() {
		return models.Region{}, false
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	pending := models.Region{
		ID:     uuid.NewString(),
		Bounds: bounds,
	}
	rs.pending = &pending
	return pending, true
}

// ConfirmPrompt transitions the pending region into the committed list
// with a generation in flight. The caller owns triggering the actual
// gateway call after this returns.
func (rs *RegionStore) ConfirmPrompt(regionID, prompt string) (models.Region, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.pending == nil || rs.pending.ID != regionID {
		return models.Region{}, fmt.Errorf("%w: no pending region with id %s", ErrInvalidState, regionID)
	}

	region := *rs.pending
	region.Prompt = prompt
	region.Loading = true
	region.Error = ""
	rs.regions = append(rs.regions, region)
	rs.pending = nil
	return region.Clone(), nil
}

// CancelPending clears the pending slot if the id matches; no-op
// otherwise.
func (rs *RegionStore) CancelPending(regionID string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.pending == nil || rs.pending.ID != regionID {
		return false
	}
	rs.pending = nil
	return true
}

// Delete removes a committed region, or clears the pending slot if the
// id matches there instead. An in-flight generation for the region is
// not cancelled; its eventual result is dropped by ApplyResult.
func (rs *RegionStore) Delete(regionID string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for i, r := range rs.regions {
		if r.ID == regionID {
			rs.regions = append(rs.regions[:i], rs.regions[i+1:]...)
			return true
		}
	}
	if rs.pending != nil && rs.pending.ID == regionID {
		rs.pending = nil
		return true
	}
	return false
}

// Resize replaces the bounds of a committed region. Geometric validity
// is the geometry engine's guarantee, not re-checked here.
func (rs *RegionStore) Resize(regionID string, bounds geometry.Bounds) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for i := range rs.regions {
		if rs.regions[i].ID == regionID {
			rs.regions[i].Bounds = bounds
			return true
		}
	}
	return false
}

// UpdateComponent directly replaces a region's tree (manual edit path).
// The tree must pass the mandatory-field check; failures leave stored
// state untouched.
func (rs *RegionStore) UpdateComponent(regionID string, component *models.ComponentNode) error {
	if err := models.ValidateComponent(component); err != nil {
		return err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	for i := range rs.regions {
		if rs.regions[i].ID == regionID {
			rs.regions[i].Component = component.Clone()
			rs.regions[i].Error = ""
			return nil
		}
	}
	return fmt.Errorf("%w: no region with id %s", ErrInvalidState, regionID)
}

// StartGeneration flags a region as loading for a refinement pass.
func (rs *RegionStore) StartGeneration(regionID string) (models.Region, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for i := range rs.regions {
		if rs.regions[i].ID == regionID {
			rs.regions[i].Loading = true
			rs.regions[i].Error = ""
			return rs.regions[i].Clone(), true
		}
	}
	return models.Region{}, false
}

// ApplyResult lands an async generation outcome by id. A missing id
// means the region was deleted while the call was in flight: the result
// is dropped and nothing is recreated. Loading and Error end mutually
// exclusive.
func (rs *RegionStore) ApplyResult(regionID string, component *models.ComponentNode, genErr error) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for i := range rs.regions {
		if rs.regions[i].ID != regionID {
			continue
		}
		rs.regions[i].Loading = false
		if genErr != nil {
			// Region keeps its last-good component.
			rs.regions[i].Error = genErr.Error()
		} else {
			rs.regions[i].Component = component.Clone()
			rs.regions[i].Error = ""
		}
		return true
	}
	return false
}

// ClearAll empties the committed list and the pending slot.
func (rs *RegionStore) ClearAll() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.regions = rs.regions[:0]
	rs.pending = nil
}

// SetCanvasSize records the current drawable area.
func (rs *RegionStore) SetCanvasSize(size models.CanvasSize) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.canvas = size
}

// CanvasSize returns the current drawable area.
func (rs *RegionStore) CanvasSize() models.CanvasSize {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.canvas
}

// Snapshot returns deep copies of the committed list and pending slot.
func (rs *RegionStore) Snapshot() ([]models.Region, *models.Region) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	regions := make([]models.Region, len(rs.regions))
	for i, r := range rs.regions {
		regions[i] = r.Clone()
	}
	var pending *models.Region
	if rs.pending != nil {
		p := rs.pending.Clone()
		pending = &p
	}
	return regions, pending
}

// AnyLoading reports whether any region has a generation in flight.
func (rs *RegionStore) AnyLoading() bool {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	for _, r := range rs.regions {
		if r.Loading {
			return true
		}
	}
	return false
}

// ContextFor assembles the positional context for a generation request:
// the target's bounds, the canvas size, and a snapshot of every other
// committed region. The snapshot is taken now; later edits do not reach
// the in-flight request.
func (rs *RegionStore) ContextFor(region models.Region) models.GenerationContext {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	genCtx := models.GenerationContext{
		Target: region.Bounds,
		Canvas: rs.canvas,
	}
	for _, r := range rs.regions {
		if r.ID == region.ID {
			continue
		}
		genCtx.ExistingRegions = append(genCtx.ExistingRegions, models.RegionSummary{
			Prompt: r.Prompt,
			Bounds: r.Bounds,
		})
	}
	return genCtx
}

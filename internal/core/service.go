package core

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/velin-dev/uisketch/internal/eventbus"
	"github.com/velin-dev/uisketch/internal/models"
	"github.com/velin-dev/uisketch/internal/render"
)

// Generator is the external capability that turns a prompt plus
// positional context into a component tree, or refines an existing one.
type Generator interface {
	Generate(ctx context.Context, prompt string, genCtx models.GenerationContext) (*models.ComponentNode, error)
	Refine(ctx context.Context, component *models.ComponentNode, instruction string) (*models.ComponentNode, error)
}

// CanvasService owns the region store and drives it from the UI event
// stream. Gateway calls are the only suspension points: they run in
// goroutines with no cancellation, and their results land by id-keyed
// lookup so a delete that races a response silently wins.
type CanvasService struct {
	generator Generator // May be nil when the gateway is not configured
	store     *RegionStore
	eventBus  *eventbus.EventBus
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewCanvasService creates a CanvasService regardless of gateway
// availability, so the canvas keeps working for pure geometry even with
// no credentials configured.
func NewCanvasService(gen Generator, eb *eventbus.EventBus) *CanvasService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CanvasService{
		generator: gen,
		store:     NewRegionStore(),
		eventBus:  eb,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Store exposes the region store for read-side wiring.
func (cs *CanvasService) Store() *RegionStore {
	return cs.store
}

// IsReady reports whether generation is available.
func (cs *CanvasService) IsReady() bool {
	return cs.generator != nil
}

// Start runs the core logic in a goroutine
func (cs *CanvasService) Start() {
	cs.pushStateToUI(nil)
	go cs.eventLoop()
}

func (cs *CanvasService) Stop() {
	cs.cancel()
}

func (cs *CanvasService) eventLoop() {
	for {
		select {
		case <-cs.ctx.Done():
			return
		case event, ok := <-cs.eventBus.UIToCore():
			if !ok {
				return
			}
			cs.handleUIEvent(event)
		}
	}
}

func (cs *CanvasService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.BeginSelectionEvent:
		// Sub-threshold selections are a silent no-op.
		if _, ok := cs.store.BeginSelection(e.Bounds); ok {
			cs.pushStateToUI(nil)
		}
	case eventbus.ConfirmPromptEvent:
		cs.confirmPrompt(e.RegionID, e.Prompt)
	case eventbus.CancelPendingEvent:
		if cs.store.CancelPending(e.RegionID) {
			cs.pushStateToUI(nil)
		}
	case eventbus.DeleteRegionEvent:
		if cs.store.Delete(e.RegionID) {
			cs.pushStateToUI(nil)
		}
	case eventbus.ResizeRegionEvent:
		if cs.store.Resize(e.RegionID, e.Bounds) {
			cs.pushStateToUI(nil)
		}
	case eventbus.UpdateComponentEvent:
		if err := cs.store.UpdateComponent(e.RegionID, e.Component); err != nil {
			cs.pushStateToUI(err)
			return
		}
		cs.pushStateToUI(nil)
		cs.noticeRenderDiagnostics(e.Component)
	case eventbus.RefineRegionEvent:
		cs.refineRegion(e.RegionID, e.Instruction)
	case eventbus.ClearAllEvent:
		cs.store.ClearAll()
		cs.pushStateToUI(nil)
	case eventbus.CanvasResizedEvent:
		cs.store.SetCanvasSize(e.Size)
	}
}

// confirmPrompt commits the pending region and fires generation. The UI
// transition completes immediately; the result lands later by id.
func (cs *CanvasService) confirmPrompt(regionID, prompt string) {
	region, err := cs.store.ConfirmPrompt(regionID, prompt)
	if err != nil {
		cs.pushStateToUI(err)
		return
	}
	cs.pushStateToUI(nil)

	if cs.generator == nil {
		cs.store.ApplyResult(region.ID, nil, errors.New("generation gateway not configured"))
		cs.pushStateToUI(nil)
		return
	}

	genCtx := cs.store.ContextFor(region)
	requestID := newRequestID()
	go func() {
		component, genErr := cs.generator.Generate(cs.ctx, prompt, genCtx)
		cs.landResult(region.ID, requestID, component, genErr)
	}()
}

// refineRegion fires a refinement pass over a region's current tree.
func (cs *CanvasService) refineRegion(regionID, instruction string) {
	region, ok := cs.store.StartGeneration(regionID)
	if !ok {
		return
	}
	cs.pushStateToUI(nil)

	if cs.generator == nil {
		cs.store.ApplyResult(region.ID, nil, errors.New("generation gateway not configured"))
		cs.pushStateToUI(nil)
		return
	}

	requestID := newRequestID()
	component := region.Component
	go func() {
		refined, genErr := cs.generator.Refine(cs.ctx, component, instruction)
		cs.landResult(region.ID, requestID, refined, genErr)
	}()
}

// landResult applies an async gateway outcome. A missing region id means
// the region was deleted mid-flight; the result is discarded with a
// notice instead of recreating anything.
func (cs *CanvasService) landResult(regionID, requestID string, component *models.ComponentNode, genErr error) {
	if !cs.store.ApplyResult(regionID, component, genErr) {
		cs.notify(fmt.Sprintf("discarded result %s for deleted region", requestID))
		return
	}
	cs.pushStateToUI(nil)
	if genErr == nil {
		cs.noticeRenderDiagnostics(component)
	}
}

// noticeRenderDiagnostics surfaces non-fatal render substitutions, like
// unknown tags or dropped handler attributes, on the status line.
func (cs *CanvasService) noticeRenderDiagnostics(component *models.ComponentNode) {
	if component == nil {
		return
	}
	if _, notes := render.Render(component); len(notes) > 0 {
		cs.notify(strings.Join(notes, "; "))
	}
}

func (cs *CanvasService) notify(message string) {
	if err := cs.eventBus.SendToUI(eventbus.NoticeEvent{Message: message}); err != nil {
		log.Printf("Error sending notice to UI: %v", err)
	}
}

func (cs *CanvasService) pushStateToUI(opErr error) {
	regions, pending := cs.store.Snapshot()

	if err := cs.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Regions: regions,
		Pending: pending,
		Busy:    cs.store.AnyLoading(),
		Error:   opErr,
	}); err != nil {
		// If we can't send to UI, log the error and continue
		log.Printf("Error sending state to UI: %v", err)
	}
}

// newRequestID tags an in-flight gateway call for diagnostics.
func newRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/velin-dev/uisketch/internal/eventbus"
	"github.com/velin-dev/uisketch/internal/geometry"
	"github.com/velin-dev/uisketch/internal/models"
)

type fakeResult struct {
	component *models.ComponentNode
	err       error
}

// fakeGenerator blocks each call until the test feeds it a result, so
// tests control exactly when a "network" response lands.
type fakeGenerator struct {
	results chan fakeResult
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{results: make(chan fakeResult)}
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, genCtx models.GenerationContext) (*models.ComponentNode, error) {
	r := <-f.results
	return r.component, r.err
}

func (f *fakeGenerator) Refine(ctx context.Context, component *models.ComponentNode, instruction string) (*models.ComponentNode, error) {
	r := <-f.results
	return r.component, r.err
}

func waitForState(t *testing.T, eb *eventbus.EventBus, match func(eventbus.StateUpdateEvent) bool) eventbus.StateUpdateEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-eb.CoreToUI():
			if state, ok := event.(eventbus.StateUpdateEvent); ok && match(state) {
				return state
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching state update")
		}
	}
}

func waitForNotice(t *testing.T, eb *eventbus.EventBus) eventbus.NoticeEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-eb.CoreToUI():
			if notice, ok := event.(eventbus.NoticeEvent); ok {
				return notice
			}
		case <-deadline:
			t.Fatal("timed out waiting for notice")
		}
	}
}

func startService(t *testing.T, gen Generator) (*CanvasService, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	svc := NewCanvasService(gen, eb)
	svc.Start()
	t.Cleanup(svc.Stop)
	return svc, eb
}

func drawAndConfirm(t *testing.T, eb *eventbus.EventBus, prompt string) models.Region {
	t.Helper()
	if err := eb.SendToCore(eventbus.BeginSelectionEvent{Bounds: geometry.Bounds{X: 0, Y: 0, Width: 300, Height: 120}}); err != nil {
		t.Fatal(err)
	}
	state := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool { return s.Pending != nil })

	if err := eb.SendToCore(eventbus.ConfirmPromptEvent{RegionID: state.Pending.ID, Prompt: prompt}); err != nil {
		t.Fatal(err)
	}
	confirmed := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool {
		return len(s.Regions) == 1 && s.Pending == nil
	})
	return confirmed.Regions[0]
}

func TestGenerationLandsOnRegion(t *testing.T) {
	gen := newFakeGenerator()
	_, eb := startService(t, gen)

	region := drawAndConfirm(t, eb, "navbar")
	if !region.Loading {
		t.Error("region should be loading while the call is in flight")
	}

	gen.results <- fakeResult{component: &models.ComponentNode{
		Element:  "header",
		Children: []*models.ComponentNode{{Element: "span", Content: "Home"}},
	}}
	done := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool {
		return len(s.Regions) == 1 && !s.Regions[0].Loading
	})
	got := done.Regions[0]
	if got.Error != "" || got.Component == nil || got.Component.Element != "header" {
		t.Errorf("landed region = %+v", got)
	}
}

func TestGenerationFailureSurfacesOnRegion(t *testing.T) {
	gen := newFakeGenerator()
	_, eb := startService(t, gen)

	drawAndConfirm(t, eb, "hero")
	gen.results <- fakeResult{err: errors.New("model returned garbage")}

	done := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool {
		return len(s.Regions) == 1 && !s.Regions[0].Loading
	})
	got := done.Regions[0]
	if got.Error != "model returned garbage" || got.Component != nil {
		t.Errorf("failed region = %+v", got)
	}
}

func TestDeleteRacingResponseDropsResult(t *testing.T) {
	gen := newFakeGenerator()
	svc, eb := startService(t, gen)

	region := drawAndConfirm(t, eb, "footer")

	if err := eb.SendToCore(eventbus.DeleteRegionEvent{RegionID: region.ID}); err != nil {
		t.Fatal(err)
	}
	waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool { return len(s.Regions) == 0 })

	gen.results <- fakeResult{component: &models.ComponentNode{Element: "footer"}}
	waitForNotice(t, eb)

	regions, _ := svc.Store().Snapshot()
	if len(regions) != 0 {
		t.Error("late result must not recreate a deleted region")
	}
}

func TestUnconfiguredGatewayFailsTheRegionNotTheApp(t *testing.T) {
	svc, eb := startService(t, nil)
	if svc.IsReady() {
		t.Error("service without generator should not report ready")
	}

	drawAndConfirm(t, eb, "anything")
	done := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool {
		return len(s.Regions) == 1 && !s.Regions[0].Loading
	})
	if done.Regions[0].Error == "" {
		t.Error("region should carry the not-configured error")
	}
}

func TestRefineReplacesComponent(t *testing.T) {
	gen := newFakeGenerator()
	_, eb := startService(t, gen)

	region := drawAndConfirm(t, eb, "nav")
	gen.results <- fakeResult{component: &models.ComponentNode{Element: "nav"}}
	waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool {
		return len(s.Regions) == 1 && !s.Regions[0].Loading
	})

	if err := eb.SendToCore(eventbus.RefineRegionEvent{RegionID: region.ID, Instruction: "make it dark"}); err != nil {
		t.Fatal(err)
	}
	waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool {
		return len(s.Regions) == 1 && s.Regions[0].Loading
	})

	gen.results <- fakeResult{component: &models.ComponentNode{Element: "nav", ClassName: "dark"}}
	done := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool {
		return len(s.Regions) == 1 && !s.Regions[0].Loading
	})
	if done.Regions[0].Component.ClassName != "dark" {
		t.Errorf("refined component = %+v", done.Regions[0].Component)
	}
}

func TestLandedTreeWithUnknownTagSurfacesNotice(t *testing.T) {
	gen := newFakeGenerator()
	_, eb := startService(t, gen)

	drawAndConfirm(t, eb, "widget")
	gen.results <- fakeResult{component: &models.ComponentNode{Element: "blink"}}

	waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool {
		return len(s.Regions) == 1 && !s.Regions[0].Loading
	})
	notice := waitForNotice(t, eb)
	if !strings.Contains(notice.Message, "blink") {
		t.Errorf("notice = %q, want it to name the substituted tag", notice.Message)
	}
}

func TestManualEditWithHandlerAttrSurfacesNotice(t *testing.T) {
	gen := newFakeGenerator()
	svc, eb := startService(t, gen)

	region := drawAndConfirm(t, eb, "button row")
	gen.results <- fakeResult{component: &models.ComponentNode{Element: "div"}}
	waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool {
		return len(s.Regions) == 1 && !s.Regions[0].Loading
	})

	edited := &models.ComponentNode{
		Element: "button",
		Props:   map[string]any{"onClick": "alert(1)"},
		Content: "Go",
	}
	if err := eb.SendToCore(eventbus.UpdateComponentEvent{RegionID: region.ID, Component: edited}); err != nil {
		t.Fatal(err)
	}
	notice := waitForNotice(t, eb)
	if !strings.Contains(notice.Message, "onClick") {
		t.Errorf("notice = %q, want it to name the dropped attribute", notice.Message)
	}

	regions, _ := svc.Store().Snapshot()
	if regions[0].Component.Element != "button" {
		t.Errorf("stored component = %+v, want the edited tree", regions[0].Component)
	}
}

func TestConfirmPromptContractViolationSurfacesError(t *testing.T) {
	_, eb := startService(t, nil)

	if err := eb.SendToCore(eventbus.ConfirmPromptEvent{RegionID: "ghost", Prompt: "x"}); err != nil {
		t.Fatal(err)
	}
	state := waitForState(t, eb, func(s eventbus.StateUpdateEvent) bool { return s.Error != nil })
	if !errors.Is(state.Error, ErrInvalidState) {
		t.Errorf("error = %v, want ErrInvalidState", state.Error)
	}
}

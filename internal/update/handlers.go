package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/velin-dev/uisketch/internal/eventbus"
	"github.com/velin-dev/uisketch/internal/interaction"
	"github.com/velin-dev/uisketch/internal/models"
)

// chromeRows is how many terminal rows the input and status chrome take
// away from the canvas.
const chromeRows = 2

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, ctrl *interaction.Controller, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch appModel.Mode {
	case models.InputPrompt:
		return handlePromptKeys(appModel, keyMsg, eb)
	case models.InputRefine:
		return handleRefineKeys(appModel, keyMsg, eb)
	case models.InputEdit:
		return handleEditKeys(appModel, keyMsg, eb)
	}
	return handleCanvasKeys(appModel, ctrl, keyMsg, eb)
}

func handleCanvasKeys(appModel *models.AppModel, ctrl *interaction.Controller, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		ctrl.Cancel()
		appModel.SelectedID = ""
	case "d":
		if appModel.SelectedID != "" {
			sendToCore(appModel, eb, eventbus.DeleteRegionEvent{RegionID: appModel.SelectedID})
			appModel.SelectedID = ""
		}
	case "e":
		if region, ok := appModel.RegionByID(appModel.SelectedID); ok && region.Component != nil {
			appModel.Mode = models.InputEdit
			appModel.TargetID = region.ID
			appModel.EditBuffer = region.Component.PrettyJSON()
			appModel.InputError = ""
		}
	case "r":
		if region, ok := appModel.RegionByID(appModel.SelectedID); ok && region.Component != nil && !region.Loading {
			appModel.Mode = models.InputRefine
			appModel.TargetID = region.ID
			appModel.Input = ""
		}
	case "ctrl+l":
		sendToCore(appModel, eb, eventbus.ClearAllEvent{})
		appModel.SelectedID = ""
	}
	return nil
}

func handlePromptKeys(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "enter":
		if strings.TrimSpace(appModel.Input) != "" && appModel.Pending != nil {
			sendToCore(appModel, eb, eventbus.ConfirmPromptEvent{
				RegionID: appModel.Pending.ID,
				Prompt:   appModel.Input,
			})
			appModel.Input = ""
			appModel.Mode = models.InputNone
		}
	case "esc":
		if appModel.Pending != nil {
			sendToCore(appModel, eb, eventbus.CancelPendingEvent{RegionID: appModel.Pending.ID})
		}
		appModel.Input = ""
		appModel.Mode = models.InputNone
	case "backspace":
		if len(appModel.Input) > 0 {
			appModel.Input = appModel.Input[:len(appModel.Input)-1]
		}
	default:
		if len(keyMsg.String()) == 1 {
			appModel.Input += keyMsg.String()
		}
	}
	return nil
}

func handleRefineKeys(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "enter":
		if strings.TrimSpace(appModel.Input) != "" {
			sendToCore(appModel, eb, eventbus.RefineRegionEvent{
				RegionID:    appModel.TargetID,
				Instruction: appModel.Input,
			})
			appModel.Input = ""
			appModel.Mode = models.InputNone
			appModel.TargetID = ""
		}
	case "esc":
		appModel.Input = ""
		appModel.Mode = models.InputNone
		appModel.TargetID = ""
	case "backspace":
		if len(appModel.Input) > 0 {
			appModel.Input = appModel.Input[:len(appModel.Input)-1]
		}
	default:
		if len(keyMsg.String()) == 1 {
			appModel.Input += keyMsg.String()
		}
	}
	return nil
}

// handleEditKeys drives the manual edit buffer. Save parses the buffer
// as the exchange format; failures stay inline and never reach the
// store.
func handleEditKeys(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+s":
		component, err := models.ParseComponent([]byte(appModel.EditBuffer))
		if err != nil {
			appModel.InputError = err.Error()
			return nil
		}
		sendToCore(appModel, eb, eventbus.UpdateComponentEvent{
			RegionID:  appModel.TargetID,
			Component: component,
		})
		appModel.Mode = models.InputNone
		appModel.TargetID = ""
		appModel.EditBuffer = ""
		appModel.InputError = ""
	case "esc":
		appModel.Mode = models.InputNone
		appModel.TargetID = ""
		appModel.EditBuffer = ""
		appModel.InputError = ""
	case "enter":
		appModel.EditBuffer += "\n"
	case "backspace":
		if len(appModel.EditBuffer) > 0 {
			appModel.EditBuffer = appModel.EditBuffer[:len(appModel.EditBuffer)-1]
		}
	case "tab":
		appModel.EditBuffer += "  "
	default:
		if len(keyMsg.String()) == 1 {
			appModel.EditBuffer += keyMsg.String()
		}
	}
	return nil
}

// HandleMouseMsg feeds pointer events to the gesture controller and
// forwards finished gestures to the core as single commits. While a text
// surface owns the keyboard the canvas ignores the mouse.
func HandleMouseMsg(appModel *models.AppModel, ctrl *interaction.Controller, mouseMsg tea.MouseMsg, eb *eventbus.EventBus) {
	if appModel.Mode != models.InputNone {
		return
	}

	x := float64(mouseMsg.X) * models.CellUnitWidth
	y := float64(mouseMsg.Y) * models.CellUnitHeight

	switch {
	case mouseMsg.Action == tea.MouseActionPress && mouseMsg.Button == tea.MouseButtonLeft:
		if region, ok := interaction.HitRegion(appModel.Regions, x, y); ok {
			appModel.SelectedID = region.ID
		} else {
			appModel.SelectedID = ""
		}
		ctrl.PointerDown(x, y, appModel.Regions)
	case mouseMsg.Action == tea.MouseActionMotion:
		ctrl.PointerMove(x, y)
	case mouseMsg.Action == tea.MouseActionRelease:
		commit := ctrl.PointerUp(x, y)
		switch commit.Kind {
		case interaction.CommitSelection:
			sendToCore(appModel, eb, eventbus.BeginSelectionEvent{Bounds: commit.Bounds})
		case interaction.CommitBounds:
			sendToCore(appModel, eb, eventbus.ResizeRegionEvent{
				RegionID: commit.RegionID,
				Bounds:   commit.Bounds,
			})
		}
	}
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		appModel.Regions = event.Regions
		appModel.Pending = event.Pending
		appModel.Loading = event.Busy

		// A fresh pending region opens the prompt surface.
		if appModel.Pending != nil && appModel.Mode == models.InputNone {
			appModel.Mode = models.InputPrompt
			appModel.Input = ""
		}
		// The pending region can vanish underneath the prompt (clear all).
		if appModel.Pending == nil && appModel.Mode == models.InputPrompt {
			appModel.Mode = models.InputNone
			appModel.Input = ""
		}

		if event.Error != nil {
			appModel.Status = "Error: " + event.Error.Error()
		} else if event.Busy {
			appModel.Status = "Generating"
		} else {
			appModel.Status = "Ready"
		}
	case eventbus.NoticeEvent:
		appModel.Notice = event.Message
	}

	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg, eb *eventbus.EventBus) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height

	rows := sizeMsg.Height - chromeRows
	if rows < 0 {
		rows = 0
	}
	appModel.Canvas = models.CanvasSize{
		Width:  float64(sizeMsg.Width) * models.CellUnitWidth,
		Height: float64(rows) * models.CellUnitHeight,
	}
	sendToCore(appModel, eb, eventbus.CanvasResizedEvent{Size: appModel.Canvas})
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}

func sendToCore(appModel *models.AppModel, eb *eventbus.EventBus, event eventbus.UIEvent) {
	if err := eb.SendToCore(event); err != nil {
		appModel.Status = "Error sending event: " + err.Error()
	}
}

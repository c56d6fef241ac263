package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/velin-dev/uisketch/internal/eventbus"
	"github.com/velin-dev/uisketch/internal/interaction"
	"github.com/velin-dev/uisketch/internal/models"
)

func HandleUpdateWithEventBus(appModel *models.AppModel, ctrl *interaction.Controller, msg tea.Msg, eb *eventbus.EventBus) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsgWithEventBus(appModel, ctrl, msg, eb)
	case tea.MouseMsg:
		HandleMouseMsg(appModel, ctrl, msg, eb)
		return nil
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg, eb)
		return nil
	case TickMsg:
		return HandleTickMsg(appModel)
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg)
	}
	return nil
}

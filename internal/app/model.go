package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/velin-dev/uisketch/internal/update"
	"github.com/velin-dev/uisketch/ui/components"
)

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForUIEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForUIEvents())
	}

	// Handle other events through the event bus
	eventBus := m.dispatcher.GetEventBus()
	cmd := update.HandleUpdateWithEventBus(&m.appModel, m.controller, msg, eventBus)

	return m, cmd
}

func (m *AppModel) View() string {
	canvasRows := m.appModel.Height - 2
	if canvasRows < 0 {
		canvasRows = 0
	}

	var b strings.Builder
	b.WriteString(components.RenderCanvas(&m.appModel, m.controller, m.appModel.Width, canvasRows))
	b.WriteString("\n")
	b.WriteString(components.RenderInput(&m.appModel, m.appModel.Width))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(&m.appModel, m.appModel.Width))

	return b.String()
}

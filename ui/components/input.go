package components

import (
	"strings"

	"github.com/velin-dev/uisketch/internal/models"
	"github.com/velin-dev/uisketch/ui/styles"
)

// RenderInput draws whichever text surface is active. With no surface
// open it renders a one-line key hint instead, so the chrome height
// stays constant.
func RenderInput(appModel *models.AppModel, width int) string {
	switch appModel.Mode {
	case models.InputPrompt:
		return renderLine("prompt", appModel.Input, width)
	case models.InputRefine:
		return renderLine("refine", appModel.Input, width)
	case models.InputEdit:
		return renderEditor(appModel, width)
	}
	return styles.StatusStyle(width).Render("drag: draw region | d: delete | e: edit | r: refine | ctrl+l: clear | q: quit")
}

func renderLine(label, value string, width int) string {
	prefix := styles.InputLabelStyle().Render(label + "> ")
	return styles.StatusStyle(width).Render(prefix + value)
}

func renderEditor(appModel *models.AppModel, width int) string {
	var b strings.Builder
	b.WriteString(styles.InputLabelStyle().Render("edit (ctrl+s save, esc cancel)"))
	b.WriteByte('\n')
	b.WriteString(styles.InputStyle(width).Render(appModel.EditBuffer))
	if appModel.InputError != "" {
		b.WriteByte('\n')
		b.WriteString(styles.InputErrorStyle().Render(appModel.InputError))
	}
	return b.String()
}

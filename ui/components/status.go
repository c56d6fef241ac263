package components

import (
	"strings"

	"github.com/velin-dev/uisketch/internal/models"
	"github.com/velin-dev/uisketch/ui/styles"
)

func RenderStatus(appModel *models.AppModel, width int) string {
	statusContent := appModel.Status
	if appModel.Loading {
		statusContent += strings.Repeat(".", appModel.LoadingDots)
	}
	if !appModel.ServiceReady {
		statusContent += " | gateway not configured (uisketch profile add)"
	}
	if appModel.Notice != "" {
		statusContent += " | " + styles.NoticeStyle().Render(appModel.Notice)
	}

	return styles.StatusStyle(width).Render(statusContent)
}

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/velin-dev/uisketch/internal/config"
	"github.com/velin-dev/uisketch/internal/core"
	"github.com/velin-dev/uisketch/internal/dispatcher"
	"github.com/velin-dev/uisketch/internal/eventbus"
	"github.com/velin-dev/uisketch/internal/gateway"
	"github.com/velin-dev/uisketch/internal/interaction"
	"github.com/velin-dev/uisketch/internal/models"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.CanvasService
	model      *AppModel
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	controller *interaction.Controller
}

func NewApplication() (*Application, error) {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Create event bus
	eb := eventbus.NewEventBus()

	// Create dispatcher
	disp := dispatcher.NewEventDispatcher(eb)

	// The gateway client is nil without credentials; the canvas still
	// works for pure geometry.
	var gen core.Generator
	if client := gateway.New(cfg); client != nil {
		gen = client
	}
	service := core.NewCanvasService(gen, eb)

	model := &AppModel{
		appModel:   createInitialAppModel(service),
		dispatcher: disp,
		controller: interaction.NewController(),
	}

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
	}, nil
}

func (app *Application) Start() error {
	// Start background services
	app.service.Start()

	// Run UI. Cell motion reporting is what makes drags observable.
	p := tea.NewProgram(app.model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
}

func createInitialAppModel(service *core.CanvasService) models.AppModel {
	// Regions arrive from core as the single source of truth.
	return models.AppModel{
		Regions:      make([]models.Region, 0),
		Status:       "Ready",
		ServiceReady: service.IsReady(),
	}
}

package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/velin-dev/uisketch/internal/geometry"
	"github.com/velin-dev/uisketch/internal/models"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// BeginSelectionEvent - UI finished drawing a selection rectangle
type BeginSelectionEvent struct {
	Bounds geometry.Bounds
}

func (e BeginSelectionEvent) UIEvent() {}

// ConfirmPromptEvent - UI submitted the prompt for the pending region
type ConfirmPromptEvent struct {
	RegionID string
	Prompt   string
}

func (e ConfirmPromptEvent) UIEvent() {}

// CancelPendingEvent - UI dismissed the pending region without a prompt
type CancelPendingEvent struct {
	RegionID string
}

func (e CancelPendingEvent) UIEvent() {}

// DeleteRegionEvent - UI deleted a committed region
type DeleteRegionEvent struct {
	RegionID string
}

func (e DeleteRegionEvent) UIEvent() {}

// ResizeRegionEvent - UI committed a drag or resize gesture
type ResizeRegionEvent struct {
	RegionID string
	Bounds   geometry.Bounds
}

func (e ResizeRegionEvent) UIEvent() {}

// UpdateComponentEvent - UI saved a manually edited component tree
type UpdateComponentEvent struct {
	RegionID  string
	Component *models.ComponentNode
}

func (e UpdateComponentEvent) UIEvent() {}

// RefineRegionEvent - UI requested refinement of an existing tree
type RefineRegionEvent struct {
	RegionID    string
	Instruction string
}

func (e RefineRegionEvent) UIEvent() {}

// ClearAllEvent - UI cleared the whole canvas
type ClearAllEvent struct{}

func (e ClearAllEvent) UIEvent() {}

// CanvasResizedEvent - UI reports a new canvas size
type CanvasResizedEvent struct {
	Size models.CanvasSize
}

func (e CanvasResizedEvent) UIEvent() {}

// StateUpdateEvent - Core pushes state changes to UI
type StateUpdateEvent struct {
	Regions []models.Region
	Pending *models.Region
	Busy    bool // Any generation in flight
	Error   error
}

func (e StateUpdateEvent) CoreEvent() {}

// NoticeEvent - Core surfaces a non-fatal diagnostic for the status line
type NoticeEvent struct {
	Message string
}

func (e NoticeEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

// CircuitBreakerState represents the state of circuit breaker
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker implements circuit breaker pattern. A single instance is
// shared between the UI goroutine, the core event loop, and generation
// goroutines, so every access goes through the mutex.
type CircuitBreaker struct {
	mu              sync.Mutex
	maxFailures     int
	resetTimeout    time.Duration
	failureCount    int
	lastFailureTime time.Time
	state           CircuitBreakerState
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitOpen {
		// Check if we should transition to half-open
		if time.Since(cb.lastFailureTime) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
		}
	}
	return cb.state == CircuitOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	cb.state = CircuitClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.lastFailureTime = time.Now()

	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, 100),
		coreToUI:       make(chan CoreEvent, 100),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}

	eb.circuitBreaker.RecordFailure()

	if eb.errorCallback != nil {
		eb.errorCallback(busError)
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	if eb.circuitBreaker.IsOpen() {
		err := errors.New("circuit breaker is open")
		eb.reportError("SendToCore", err)
		return err
	}

	select {
	case eb.uiToCore <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		err := errors.New("UI to Core channel is full")
		eb.reportError("SendToCore", err)
		return err
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	if eb.circuitBreaker.IsOpen() {
		err := errors.New("circuit breaker is open")
		eb.reportError("SendToUI", err)
		return err
	}

	select {
	case eb.coreToUI <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		err := errors.New("Core to UI channel is full")
		eb.reportError("SendToUI", err)
		return err
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.State()
}

func (eb *EventBus) Close() {
	close(eb.uiToCore)
	close(eb.coreToUI)
}

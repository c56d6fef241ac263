package models

// InputMode says which text surface currently owns the keyboard.
type InputMode int

const (
	InputNone   InputMode = iota
	InputPrompt           // describing a freshly drawn pending region
	InputRefine           // free-text refinement instruction for a region
	InputEdit             // manual edit of a region's structural description
)

// AppModel represents the UI state - only local UI concerns. Committed
// regions and the pending slot arrive as snapshots from the core; the
// rest is keyboard focus, buffers, and chrome.
type AppModel struct {
	Regions []Region // Snapshot of committed regions from core
	Pending *Region  // Snapshot of the pending region, nil if none
	Canvas  CanvasSize

	Status      string // Status bar text
	Notice      string // Last non-fatal diagnostic (tag substitution, dropped result)
	Loading     bool   // Any region has a generation in flight
	LoadingDots int    // Animation counter for loading dots
	Width       int    // Terminal width
	Height      int    // Terminal height

	Mode       InputMode
	Input      string // Single-line buffer for prompt/refine modes
	EditBuffer string // Manual edit buffer (pretty-printed tree)
	InputError string // Inline parse/validation error for the active buffer
	TargetID   string // Region targeted by refine/edit
	SelectedID string // Region selected for keyboard operations

	ServiceReady bool // Whether the gateway is configured
}

// RegionByID finds a region in the current snapshot.
func (m *AppModel) RegionByID(id string) (Region, bool) {
	for _, r := range m.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

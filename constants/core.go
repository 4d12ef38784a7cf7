package constants

// Frame loop
const (
	// DefaultFPS is the display refresh rate the frame scheduler emulates
	DefaultFPS = 60

	// EventQueueSize is the buffered capacity of the terminal event channel
	EventQueueSize = 256
)

// Virtual pixel geometry of a terminal cell
// Keeps every distance constant in canvas pixels regardless of the terminal
const (
	DefaultCellWidthPx  = 8.0
	DefaultCellHeightPx = 16.0
)

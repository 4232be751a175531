package parameter

import "time"

// Frame Loop & Timing
const (
	// TickInterval is the frame loop interval (~60 FPS), one effect/motion evaluation per tick
	TickInterval = 16 * time.Millisecond

	// MaxTickLag is how far the loop may fall behind before the deadline is re-anchored
	MaxTickLag = 2 * TickInterval

	// PostQueueSize is the capacity of the cross-goroutine command queue drained each tick
	PostQueueSize = 256
)

// Catalog Hot Reload
const (
	// CatalogDebounce collapses bursts of writes from editors into one reload
	CatalogDebounce = 100 * time.Millisecond
)

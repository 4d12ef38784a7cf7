package render

// RenderPriority determines composition order. Lower values render first
type RenderPriority int

const (
	PriorityBackground RenderPriority = iota
	PriorityField
	PriorityTrail
	PriorityBurst
	PriorityUI
	PriorityOverlay
)

package render

// Canvas is a 2D drawing surface addressed in virtual pixels
// Implementations drop shapes with non-finite coordinates and clamp alpha to [0,1]
type Canvas interface {
	// Size returns the drawable area in pixels
	Size() (width, height float64)
	// Clear erases everything drawn so far
	Clear()
	// FillCircle draws a filled disc of radius r centered at (x, y)
	FillCircle(x, y, r float64, c RGBA)
	// StrokeLine draws a 1px line segment
	StrokeLine(x0, y0, x1, y1 float64, c RGBA)
}

package gesture

import "math"

// Point is a touch position in screen pixels.
type Point struct {
	X, Y float32
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	x := float64(a.X - b.X)
	y := float64(a.Y - b.Y)
	return math.Sqrt(x*x + y*y)
}

// Package physics wraps the Chipmunk space the game runs on and provides
// distance utilities.
package physics

import "math"

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// RectCircleOverlap checks if an axis-aligned rectangle (top-left x,y) and a
// circle overlap.
func RectCircleOverlap(x, y, w, h, cx, cy, r float64) bool {
	nx := math.Max(x, math.Min(cx, x+w))
	ny := math.Max(y, math.Min(cy, y+h))
	return DistanceSquared(nx, ny, cx, cy) <= r*r
}

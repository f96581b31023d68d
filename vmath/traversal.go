package vmath

import (
	"math"
)

// --- 2D Traversal (Supercover DDA) ---

// Traverse visits every grid cell intersected by the segment (x1, y1) to (x2, y2)
// Coordinates are continuous, cell (i, j) covers [i, i+1) x [j, j+1)
// Callback returning false stops the walk; termination is guaranteed because a step
// is only taken on an axis that has not reached its target cell
func Traverse(x1, y1, x2, y2 float64, callback func(x, y int) bool) {
	ix, iy := int(math.Floor(x1)), int(math.Floor(y1))
	targetX, targetY := int(math.Floor(x2)), int(math.Floor(y2))

	if ix == targetX && iy == targetY {
		callback(ix, iy)
		return
	}

	dx := x2 - x1
	dy := y2 - y1

	stepX, stepY := 1, 1
	if dx < 0 {
		stepX = -1
		dx = -dx
	}
	if dy < 0 {
		stepY = -1
		dy = -dy
	}

	tMaxX, tDeltaX := math.Inf(1), math.Inf(1)
	if dx != 0 {
		tDeltaX = 1.0 / dx
		fracX := x1 - math.Floor(x1)
		if stepX > 0 {
			tMaxX = (1.0 - fracX) * tDeltaX
		} else {
			tMaxX = fracX * tDeltaX
		}
	}

	tMaxY, tDeltaY := math.Inf(1), math.Inf(1)
	if dy != 0 {
		tDeltaY = 1.0 / dy
		fracY := y1 - math.Floor(y1)
		if stepY > 0 {
			tMaxY = (1.0 - fracY) * tDeltaY
		} else {
			tMaxY = fracY * tDeltaY
		}
	}

	if !callback(ix, iy) {
		return
	}

	for ix != targetX || iy != targetY {
		if tMaxX < tMaxY {
			if ix != targetX {
				ix += stepX
				tMaxX += tDeltaX
			} else {
				// X done, forced to step Y
				iy += stepY
				tMaxY += tDeltaY
			}
		} else if tMaxX > tMaxY {
			if iy != targetY {
				iy += stepY
				tMaxY += tDeltaY
			} else {
				ix += stepX
				tMaxX += tDeltaX
			}
		} else {
			// Corner crossing
			if ix != targetX {
				ix += stepX
				tMaxX += tDeltaX
			}
			if iy != targetY {
				iy += stepY
				tMaxY += tDeltaY
			}
		}

		if !callback(ix, iy) {
			break
		}
	}
}

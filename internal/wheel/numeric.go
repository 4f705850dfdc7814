package wheel

import "math"

// Direction is the sign of a horizontal drag.
type Direction int

const (
	Left  Direction = -1
	None  Direction = 0
	Right Direction = 1
)

// DirectionOf returns the sign of x. NaN maps to None.
func DirectionOf(x float64) Direction {
	switch {
	case x > 0:
		return Right
	case x < 0:
		return Left
	default:
		return None
	}
}

func (d Direction) Float() float64 {
	return float64(d)
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Finite reports whether x is neither NaN nor infinite.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Sanitize returns x, or 0 when x is not finite.
func Sanitize(x float64) float64 {
	if !Finite(x) {
		return 0
	}
	return x
}

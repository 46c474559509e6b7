package mathutil

import "math"

// IntMin returns the smaller of two ints (search: int-math).
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints (search: int-math).
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntAbs returns the absolute value of an int (search: int-math).
func IntAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// IntClamp limits x to [lo, hi] (search: int-math).
func IntClamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp limits x to [lo, hi] (search: float-math).
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// FloorInt returns floor(x) as an int, which differs from int(x) for negatives (search: float-math).
func FloorInt(x float64) int {
	return int(math.Floor(x))
}

// Frac returns the fractional part of x in [0, 1) (search: float-math).
func Frac(x float64) float64 {
	return x - math.Floor(x)
}

// NormalizeDegrees wraps an angle into [0, 360) (search: float-math).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

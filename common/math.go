package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Approach moves v toward target by at most step without overshooting.
func Approach(v, target, step float64) float64 {
	if step < 0 {
		step = -step
	}
	if v < target {
		v += step
		if v > target {
			return target
		}
		return v
	}
	if v > target {
		v -= step
		if v < target {
			return target
		}
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

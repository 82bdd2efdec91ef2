package transition

// clamp01 limits a to [0, 1].
func clamp01(a float64) float64 {
	switch {
	case a < 0:
		return 0
	case a > 1:
		return 1
	default:
		return a
	}
}

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// lerp3 is the two-segment fade curve: a→b over the first half, then
// from 2b down to c over the whole range, so the second segment meets the
// first at t=0.5 and lands on c at t=1.
func lerp3(a, b, c, t float64) float64 {
	if t <= 0.5 {
		return lerp(a, b, t*2)
	}
	return lerp(b*2, c, t)
}

// fadeAlpha maps fade progress to overlay opacity. With a peak of 1.25 the
// overlay is fully opaque between 40% and 60% of the fade.
func fadeAlpha(p float64) float64 {
	return clamp01(lerp3(0, fadePeak, 0, p))
}

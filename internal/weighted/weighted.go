// Package weighted implements roulette-wheel sampling over weighted
// choices with an injectable random source.
package weighted

// Source returns a uniform value in [0,1).
type Source func() float64

// Choice pairs an item with its relative weight.
type Choice[T any] struct {
	Item   T
	Weight float64
}

// Pick draws one item with probability proportional to its weight. It
// returns false when there is nothing with positive weight to pick.
func Pick[T any](rnd Source, choices []Choice[T]) (T, bool) {
	var zero T
	total := 0.0
	for _, c := range choices {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total <= 0 {
		return zero, false
	}

	r := rnd() * total
	acc := 0.0
	last := -1
	for i, c := range choices {
		if c.Weight <= 0 {
			continue
		}
		acc += c.Weight
		last = i
		if r < acc {
			return c.Item, true
		}
	}
	// Float rounding can leave r == total
	return choices[last].Item, true
}

// Index returns a uniform index in [0,n). n must be positive.
func Index(rnd Source, n int) int {
	i := int(rnd() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// IntBetween returns a uniform integer in [lo, hi].
func IntBetween(rnd Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + Index(rnd, hi-lo+1)
}

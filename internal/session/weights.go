package session

// rebalance shifts weight away from empty pools. The adjustments are applied
// in a fixed order (weak, then unseen, then mastered) and the result is
// normalized to sum to 1. Weights for empty pools end at zero.
func rebalance(base Weights, sizes map[PlanCategory]int) Weights {
	w := Weights{
		CategoryWeak:     base[CategoryWeak],
		CategoryUnseen:   base[CategoryUnseen],
		CategoryMastered: base[CategoryMastered],
	}
	hasWeak := sizes[CategoryWeak] > 0
	hasUnseen := sizes[CategoryUnseen] > 0
	hasMastered := sizes[CategoryMastered] > 0

	if !hasWeak {
		w[CategoryWeak] = 0
		if hasUnseen {
			w[CategoryUnseen] += 0.3
			w[CategoryMastered] += 0.2
		} else {
			w[CategoryMastered] = 1.0
		}
	}

	if !hasUnseen {
		w[CategoryUnseen] = 0
		if hasWeak {
			w[CategoryWeak] += 0.15
			w[CategoryMastered] += 0.15
		} else {
			w[CategoryMastered] = 1.0 - w[CategoryWeak]
		}
	}

	if !hasMastered {
		w[CategoryMastered] = 0
		remaining := 1.0 - w[CategoryWeak] - w[CategoryUnseen]
		switch {
		case hasWeak && hasUnseen:
			w[CategoryWeak] += remaining / 2
			w[CategoryUnseen] += remaining / 2
		case hasWeak:
			w[CategoryWeak] += remaining
		case hasUnseen:
			w[CategoryUnseen] += remaining
		}
	}

	var total float64
	for _, v := range w {
		total += v
	}
	if total > 0 {
		for k, v := range w {
			w[k] = v / total
		}
	}
	return w
}

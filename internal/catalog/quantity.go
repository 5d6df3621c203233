package catalog

// Range is an inclusive quantity range.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultRange is the range offered by the product screen.
var DefaultRange = Range{Min: 1, Max: 10}

func (r Range) Clamp(q int) int {
	if q < r.Min {
		return r.Min
	}
	if q > r.Max {
		return r.Max
	}
	return q
}

// Increment steps q up by one without leaving the range.
func (r Range) Increment(q int) int {
	return r.Clamp(q + 1)
}

// Decrement steps q down by one without leaving the range.
func (r Range) Decrement(q int) int {
	return r.Clamp(q - 1)
}

// Values lists every quantity in the range.
func (r Range) Values() []int {
	if r.Max < r.Min {
		return nil
	}
	values := make([]int, 0, r.Max-r.Min+1)
	for q := r.Min; q <= r.Max; q++ {
		values = append(values, q)
	}
	return values
}

package domain

// Point is one labelled value of a Series.
type Point struct {
	Label string
	Value float64
}

// Series is an ordered label -> value mapping. Order is insertion order and is
// what every report and workbook renders.
type Series []Point

// Get returns the value stored under label.
func (s Series) Get(label string) (float64, bool) {
	for _, p := range s {
		if p.Label == label {
			return p.Value, true
		}
	}
	return 0, false
}

// Set replaces the value under label or appends a new point.
func (s *Series) Set(label string, v float64) {
	for i := range *s {
		if (*s)[i].Label == label {
			(*s)[i].Value = v
			return
		}
	}
	*s = append(*s, Point{Label: label, Value: v})
}

// Labels returns the labels in order.
func (s Series) Labels() []string {
	out := make([]string, 0, len(s))
	for _, p := range s {
		out = append(out, p.Label)
	}
	return out
}

// Map returns an unordered copy, mostly for tests and lookups.
func (s Series) Map() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, p := range s {
		out[p.Label] = p.Value
	}
	return out
}

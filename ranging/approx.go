package ranging

type number interface {
	float32 | float64
}

// LinearApproximator converts raw ADC counts using y = m*x + b.
type LinearApproximator[T number] struct {
	m T // Slope
	b T // Y-intercept
}

// NewLinearApproximatorFromPoints fits a line through two calibration points
// (raw1, value1) and (raw2, value2).
func NewLinearApproximatorFromPoints[T number](raw1 uint16, value1 T, raw2 uint16, value2 T) LinearApproximator[T] {
	m := (value2 - value1) / (T(raw2) - T(raw1))
	return LinearApproximator[T]{
		m: m,
		b: value1 - m*T(raw1),
	}
}

func NewLinearApproximator[T number](slope, intercept T) LinearApproximator[T] {
	return LinearApproximator[T]{m: slope, b: intercept}
}

func (la LinearApproximator[T]) Convert(raw uint16) T {
	return la.m*T(raw) + la.b
}

package ranging

// History keeps the most recent valid distances in a fixed ring.
// Pushing into a full history evicts the oldest value.
type History struct {
	values []float64
	head   int // index of the most recent value
	n      int
}

func NewHistory(capacity int) (*History, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &History{
		values: make([]float64, capacity),
		head:   capacity - 1,
	}, nil
}

// Push inserts v in front of the older values.
func (h *History) Push(v float64) {
	h.head = (h.head + 1) % len(h.values)
	h.values[h.head] = v
	if h.n < len(h.values) {
		h.n++
	}
}

// Snapshot appends the values to dst, most recent first.
func (h *History) Snapshot(dst []float64) []float64 {
	for i := 0; i < h.n; i++ {
		idx := h.head - i
		if idx < 0 {
			idx += len(h.values)
		}
		dst = append(dst, h.values[idx])
	}
	return dst
}

func (h *History) Len() int {
	return h.n
}

func (h *History) Cap() int {
	return len(h.values)
}

package tui

// sparklineChars maps levels 0..7 to the block elements ▁ to █.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer keeps the most recent samples of a series.
type RingBuffer struct {
	data  []float64
	head  int
	count int
}

// NewRingBuffer creates a ring buffer holding capacity samples.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]float64, max(capacity, 1))}
}

// Push appends a sample, overwriting the oldest when full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	r.count = min(r.count+1, len(r.data))
}

// Len returns the number of samples held.
func (r *RingBuffer) Len() int { return r.count }

// Last returns the newest sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.head-1+len(r.data))%len(r.data)]
}

// Max returns the largest sample held, or 0 when empty.
func (r *RingBuffer) Max() float64 {
	m := 0.0
	for _, v := range r.Slice() {
		m = max(m, v)
	}
	return m
}

// Slice returns the samples oldest first.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	start := (r.head - r.count + len(r.data)) % len(r.data)
	for i := range out {
		out[i] = r.data[(start+i)%len(r.data)]
	}
	return out
}

// Reset drops every sample.
func (r *RingBuffer) Reset() {
	r.head = 0
	r.count = 0
}

// RenderSparkline draws values scaled against ceiling. A non-positive
// ceiling draws the baseline.
func RenderSparkline(values []float64, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		level := 0
		if ceiling > 0 {
			level = int(min(max(v/ceiling, 0), 1) * 7)
		}
		runes[i] = sparklineChars[level]
	}
	return string(runes)
}

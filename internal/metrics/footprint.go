package metrics

import "math"

type node struct {
	x, y, v float64
}

// HalfPeakRadius is the largest horizontal distance from the peak node to any
// node whose magnitude is at least half the peak magnitude. It describes how
// wide the anomaly appears on the layer.
type HalfPeakRadius struct {
	name  string
	nodes []node
}

func NewHalfPeakRadius() *HalfPeakRadius {
	return &HalfPeakRadius{name: "half_peak_radius"}
}

func (h *HalfPeakRadius) Name() string { return h.name }

func (h *HalfPeakRadius) Observe(x, y, v float64) {
	h.nodes = append(h.nodes, node{x, y, v})
}

func (h *HalfPeakRadius) Value() float64 {
	if len(h.nodes) == 0 {
		return 0
	}

	peak := h.nodes[0]
	for _, n := range h.nodes[1:] {
		if math.Abs(n.v) > math.Abs(peak.v) {
			peak = n
		}
	}

	half := math.Abs(peak.v) / 2
	radius := 0.0
	for _, n := range h.nodes {
		if math.Abs(n.v) >= half {
			radius = math.Max(radius, math.Hypot(n.x-peak.x, n.y-peak.y))
		}
	}
	return radius
}

func (h *HalfPeakRadius) Reset() {
	h.nodes = h.nodes[:0]
}

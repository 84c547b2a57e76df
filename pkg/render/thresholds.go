package render

import "github.com/matzehuels/graphscape/pkg/device"

// CullingThresholds bound the render workload for one device. A threshold
// set is derived per optimization pass from the device profile.
type CullingThresholds struct {
	// Margin is the base culling margin in world units; the effective
	// margin also depends on zoom and ZoomSensitivity.
	Margin float64 `json:"margin"`

	// NodeThreshold and LinkThreshold are the element budgets after
	// culling; overflow triggers tighter viewport bounds.
	NodeThreshold int `json:"node_threshold"`
	LinkThreshold int `json:"link_threshold"`

	// ZoomSensitivity scales how strongly zoom widens the margin.
	ZoomSensitivity float64 `json:"zoom_sensitivity"`

	// PerformanceMultiplier scales the clustering-level decision.
	// Below 1 clusters earlier.
	PerformanceMultiplier float64 `json:"performance_multiplier"`
}

// Memory and screen-area cutoffs for threshold adjustment.
const (
	lowMemoryGB  = 2.0
	highMemoryGB = 8.0

	smallScreenArea = 500_000   // phone-sized
	largeScreenArea = 2_000_000 // large desktop
)

// ThresholdsFor derives culling thresholds from a device profile: a tier
// baseline adjusted by memory, GPU tier, and screen area. Unknown fields
// (zero memory, empty GPU tier, zero screen size) leave the baseline
// untouched.
func ThresholdsFor(p device.Profile) CullingThresholds {
	var t CullingThresholds
	switch p.Tier {
	case device.TierMobile:
		t = CullingThresholds{NodeThreshold: 100, LinkThreshold: 150, ZoomSensitivity: 1.5}
	case device.TierTablet:
		t = CullingThresholds{NodeThreshold: 200, LinkThreshold: 300, ZoomSensitivity: 1.2}
	default:
		t = CullingThresholds{NodeThreshold: 500, LinkThreshold: 800, ZoomSensitivity: 1.0}
	}
	t.Margin = p.Margin()
	t.PerformanceMultiplier = p.PerformanceMultiplier()

	switch {
	case p.MemoryGB > 0 && p.MemoryGB < lowMemoryGB:
		t.NodeThreshold = int(float64(t.NodeThreshold) * 0.7)
		t.LinkThreshold = int(float64(t.LinkThreshold) * 0.7)
		t.PerformanceMultiplier *= 0.7
	case p.MemoryGB > highMemoryGB:
		t.NodeThreshold = int(float64(t.NodeThreshold) * 1.3)
		t.LinkThreshold = int(float64(t.LinkThreshold) * 1.3)
		t.PerformanceMultiplier *= 1.2
	}

	switch p.GPU {
	case device.GPULow:
		t.PerformanceMultiplier *= 0.7
		t.ZoomSensitivity *= 1.3
	case device.GPUHigh:
		t.PerformanceMultiplier *= 1.2
		t.ZoomSensitivity *= 0.8
	}

	area := p.ScreenArea()
	switch {
	case area > 0 && area < smallScreenArea:
		t.Margin *= 0.8
	case area > largeScreenArea:
		t.Margin *= 1.2
	}

	return t
}

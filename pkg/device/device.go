// Package device models the rendering device: its tier (mobile, tablet,
// desktop), hardware profile, and the performance multiplier the render
// optimizer derives from them.
package device

// Tier classifies a device by form factor and rendering headroom.
type Tier string

// Device tiers.
const (
	TierMobile  Tier = "mobile"
	TierTablet  Tier = "tablet"
	TierDesktop Tier = "desktop"
)

// ValidTiers is the set of supported device tiers.
var ValidTiers = map[Tier]bool{
	TierMobile:  true,
	TierTablet:  true,
	TierDesktop: true,
}

// GPUTier grades the device's graphics capability.
type GPUTier string

// GPU tiers.
const (
	GPULow    GPUTier = "low"
	GPUMedium GPUTier = "medium"
	GPUHigh   GPUTier = "high"
)

// Profile describes the hardware the graph will be rendered on.
type Profile struct {
	Tier         Tier    `json:"tier"`
	MemoryGB     float64 `json:"memory_gb,omitempty"`
	CPUCores     int     `json:"cpu_cores,omitempty"`
	GPU          GPUTier `json:"gpu,omitempty"`
	ScreenWidth  float64 `json:"screen_width,omitempty"`
	ScreenHeight float64 `json:"screen_height,omitempty"`
	PixelRatio   float64 `json:"pixel_ratio,omitempty"`
}

// ScreenArea returns the screen area in CSS pixels, or 0 when the
// dimensions are unknown.
func (p Profile) ScreenArea() float64 {
	return p.ScreenWidth * p.ScreenHeight
}

// PerformanceMultiplier scales render-optimizer thresholds for the tier.
// Weaker tiers get a multiplier below 1, shrinking node budgets and
// triggering clustering earlier.
func (p Profile) PerformanceMultiplier() float64 {
	switch p.Tier {
	case TierMobile:
		return 0.5
	case TierTablet:
		return 0.75
	default:
		return 1.0
	}
}

// Margin returns the culling margin for the tier in world units. Smaller
// devices cull tighter to the viewport.
func (p Profile) Margin() float64 {
	switch p.Tier {
	case TierMobile:
		return 50
	case TierTablet:
		return 75
	default:
		return 100
	}
}

// Provider reports the profile of the device being rendered to.
type Provider interface {
	Profile() Profile
}

// StaticProvider is a Provider returning a fixed profile, used when the
// host application detects the device once up front.
type StaticProvider struct {
	P Profile
}

// Profile implements Provider.
func (s StaticProvider) Profile() Profile { return s.P }

// Default returns the profile assumed when the host supplies none: a
// desktop-class device with unknown hardware details.
func Default() Profile {
	return Profile{Tier: TierDesktop}
}

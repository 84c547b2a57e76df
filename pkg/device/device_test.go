package device

import "testing"

func TestPerformanceMultiplier(t *testing.T) {
	tests := []struct {
		tier Tier
		want float64
	}{
		{TierMobile, 0.5},
		{TierTablet, 0.75},
		{TierDesktop, 1.0},
		{Tier("unknown"), 1.0},
	}
	for _, tt := range tests {
		p := Profile{Tier: tt.tier}
		if got := p.PerformanceMultiplier(); got != tt.want {
			t.Errorf("PerformanceMultiplier(%s) = %v, want %v", tt.tier, got, tt.want)
		}
	}
}

func TestMargin(t *testing.T) {
	tests := []struct {
		tier Tier
		want float64
	}{
		{TierMobile, 50},
		{TierTablet, 75},
		{TierDesktop, 100},
	}
	for _, tt := range tests {
		p := Profile{Tier: tt.tier}
		if got := p.Margin(); got != tt.want {
			t.Errorf("Margin(%s) = %v, want %v", tt.tier, got, tt.want)
		}
	}
}

func TestScreenArea(t *testing.T) {
	p := Profile{ScreenWidth: 1920, ScreenHeight: 1080}
	if got := p.ScreenArea(); got != 1920*1080 {
		t.Errorf("ScreenArea() = %v, want %v", got, 1920*1080)
	}
}

func TestStaticProvider(t *testing.T) {
	want := Profile{Tier: TierTablet, MemoryGB: 6, CPUCores: 8}
	p := StaticProvider{P: want}
	if got := p.Profile(); got != want {
		t.Errorf("Profile() = %+v, want %+v", got, want)
	}
}

func TestDefaultIsDesktop(t *testing.T) {
	p := Default()
	if p.Tier != TierDesktop {
		t.Errorf("Default().Tier = %s, want desktop", p.Tier)
	}
	if !ValidTiers[p.Tier] {
		t.Error("default tier should be valid")
	}
}

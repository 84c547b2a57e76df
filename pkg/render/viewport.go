package render

import (
	gserrors "github.com/matzehuels/graphscape/pkg/errors"
	"github.com/matzehuels/graphscape/pkg/graph"
)

// Viewport is the visible world-space rectangle plus the zoom factor used
// for culling. X and Y are the world coordinates of the top-left corner.
type Viewport struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Zoom   float64 `json:"zoom"`
}

// Contains reports whether p lies within the viewport expanded by margin
// on every side.
func (v Viewport) Contains(p graph.Position, margin float64) bool {
	return p.X >= v.X-margin &&
		p.X <= v.X+v.Width+margin &&
		p.Y >= v.Y-margin &&
		p.Y <= v.Y+v.Height+margin
}

// shrink returns the viewport scaled by factor about its center. A factor
// below 1 tightens the bounds.
func (v Viewport) shrink(factor float64) Viewport {
	cx := v.X + v.Width/2
	cy := v.Y + v.Height/2
	out := v
	out.Width = v.Width * factor
	out.Height = v.Height * factor
	out.X = cx - out.Width/2
	out.Y = cy - out.Height/2
	return out
}

// CalculateViewport converts canvas geometry, pan offset, and zoom into the
// world-space viewport. Pan is the screen-space translation applied by the
// drawing layer; the visible world origin is its negation divided by zoom.
func CalculateViewport(canvasWidth, canvasHeight float64, pan graph.Position, zoom float64) (Viewport, error) {
	if zoom <= 0 {
		return Viewport{}, gserrors.New(gserrors.ErrCodeInvalidViewport, "zoom must be positive, got %v", zoom)
	}
	if canvasWidth <= 0 || canvasHeight <= 0 {
		return Viewport{}, gserrors.New(gserrors.ErrCodeInvalidViewport,
			"canvas dimensions must be positive, got %vx%v", canvasWidth, canvasHeight)
	}
	return Viewport{
		X:      -pan.X / zoom,
		Y:      -pan.Y / zoom,
		Width:  canvasWidth / zoom,
		Height: canvasHeight / zoom,
		Zoom:   zoom,
	}, nil
}

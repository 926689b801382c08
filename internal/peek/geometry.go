package peek

// Default tunables, in screen pixels
const (
	DefaultWidgetSize = 500
	DefaultHideOffset = 100
	DefaultCornerZone = 300
)

// Params holds the size tunables the geometry is derived from
type Params struct {
	WidgetSize int
	HideOffset int
	CornerZone int
}

// DefaultParams returns the built-in tunables
func DefaultParams() Params {
	return Params{
		WidgetSize: DefaultWidgetSize,
		HideOffset: DefaultHideOffset,
		CornerZone: DefaultCornerZone,
	}
}

// Geometry holds the anchors derived from the primary display size.
// It is computed once per monitoring session and never refreshed.
type Geometry struct {
	ScreenWidth  int
	ScreenHeight int

	HiddenX int
	HiddenY int
	PeekX   int
	PeekY   int

	CornerZone int
}

// NewGeometry derives the hidden and peek anchors for a display
func NewGeometry(screenWidth, screenHeight int, p Params) Geometry {
	tucked := p.WidgetSize - p.HideOffset
	return Geometry{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		HiddenX:      screenWidth - tucked,
		HiddenY:      screenHeight - tucked,
		PeekX:        screenWidth - p.WidgetSize,
		PeekY:        screenHeight - p.WidgetSize,
		CornerZone:   p.CornerZone,
	}
}

// InCorner reports whether a point lies in the bottom-right trigger zone.
// Both axes must independently be inside the zone.
func (g Geometry) InCorner(x, y float64) bool {
	return x >= float64(g.ScreenWidth-g.CornerZone) &&
		y >= float64(g.ScreenHeight-g.CornerZone)
}

// Position returns the window's top-left anchor for a state.
// Both visible states share the peek anchor.
func (g Geometry) Position(s State) (x, y int) {
	if s.Visible() {
		return g.PeekX, g.PeekY
	}
	return g.HiddenX, g.HiddenY
}

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"cornerpeek/internal/peek"
)

// Overlay color palette
var (
	colorBg        = color.RGBA{32, 33, 35, 240}    // Dark background
	colorHidden    = color.RGBA{55, 57, 61, 255}    // Idle accent
	colorPeeking   = color.RGBA{88, 140, 236, 255}  // Blue peek accent
	colorExpanded  = color.RGBA{74, 222, 128, 255}  // Green locked accent
	colorLockMark  = color.RGBA{234, 179, 8, 255}   // Yellow lock marker
	colorWhite     = color.RGBA{237, 237, 237, 255} // Header text
	colorGray      = color.RGBA{156, 163, 175, 255} // Status text
	colorSeparator = color.RGBA{55, 57, 61, 255}    // Divider line
)

func stateColor(s peek.State) color.Color {
	switch s {
	case peek.Peeking:
		return colorPeeking
	case peek.Expanded:
		return colorExpanded
	default:
		return colorHidden
	}
}

// Badge is the tappable face of the widget. Tapping it toggles the lock.
type Badge struct {
	widget.BaseWidget

	state  peek.State
	locked bool
	status string
	onTap  func()
}

// NewBadge creates a badge that calls onTap when clicked
func NewBadge(onTap func()) *Badge {
	b := &Badge{state: peek.Hidden, onTap: onTap}
	b.ExtendBaseWidget(b)
	return b
}

// SetState updates the displayed peek state
func (b *Badge) SetState(s peek.State) {
	b.state = s
	b.Refresh()
}

// SetLocked updates the lock marker
func (b *Badge) SetLocked(locked bool) {
	b.locked = locked
	b.Refresh()
}

// SetStatus shows a short status line (errors, hints)
func (b *Badge) SetStatus(text string) {
	b.status = text
	b.Refresh()
}

// Tapped implements fyne.Tappable
func (b *Badge) Tapped(_ *fyne.PointEvent) {
	if b.onTap != nil {
		b.onTap()
	}
}

func (b *Badge) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(colorBg)
	bg.CornerRadius = 12

	accent := canvas.NewRectangle(stateColor(b.state))
	accent.CornerRadius = 8

	lockMark := canvas.NewCircle(colorLockMark)

	title := canvas.NewText("CornerPeek", colorWhite)
	title.TextSize = 16
	title.TextStyle = fyne.TextStyle{Bold: true}

	stateText := canvas.NewText(b.state.String(), colorGray)
	stateText.TextSize = 13

	statusText := canvas.NewText(b.status, colorGray)
	statusText.TextSize = 11

	return &badgeRenderer{
		badge:      b,
		bg:         bg,
		accent:     accent,
		lockMark:   lockMark,
		title:      title,
		stateText:  stateText,
		statusText: statusText,
	}
}

type badgeRenderer struct {
	badge *Badge

	bg         *canvas.Rectangle
	accent     *canvas.Rectangle
	lockMark   *canvas.Circle
	title      *canvas.Text
	stateText  *canvas.Text
	statusText *canvas.Text
}

func (r *badgeRenderer) Layout(size fyne.Size) {
	const pad = 16

	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	r.accent.Resize(fyne.NewSize(size.Width-2*pad, 6))
	r.accent.Move(fyne.NewPos(pad, pad))

	r.title.Move(fyne.NewPos(pad, pad+16))
	r.stateText.Move(fyne.NewPos(pad, pad+40))
	r.statusText.Move(fyne.NewPos(pad, pad+60))

	r.lockMark.Resize(fyne.NewSize(12, 12))
	r.lockMark.Move(fyne.NewPos(size.Width-pad-12, pad+20))
}

func (r *badgeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(160, 100)
}

func (r *badgeRenderer) Refresh() {
	r.accent.FillColor = stateColor(r.badge.state)
	r.stateText.Text = r.badge.state.String()
	r.statusText.Text = r.badge.status
	if r.badge.locked {
		r.lockMark.FillColor = colorLockMark
	} else {
		r.lockMark.FillColor = color.Transparent
	}

	r.accent.Refresh()
	r.stateText.Refresh()
	r.statusText.Refresh()
	r.lockMark.Refresh()
}

func (r *badgeRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.accent, r.title, r.stateText, r.statusText, r.lockMark}
}

func (r *badgeRenderer) Destroy() {}

// SectionHeader creates a bold section header
func SectionHeader(text string) *widget.Label {
	l := widget.NewLabel(text)
	l.TextStyle = fyne.TextStyle{Bold: true}
	return l
}

// Separator creates a thin divider line
func Separator() *canvas.Rectangle {
	sep := canvas.NewRectangle(colorSeparator)
	sep.SetMinSize(fyne.NewSize(0, 1))
	return sep
}

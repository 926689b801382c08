package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"cornerpeek/internal/config"
)

// SettingsWindow edits the tunables and overlay options
type SettingsWindow struct {
	app    fyne.App
	config *config.Config
	onSave func(*config.Config)
}

// NewSettingsWindow creates a settings window for cfg
func NewSettingsWindow(app fyne.App, cfg *config.Config) *SettingsWindow {
	return &SettingsWindow{app: app, config: cfg}
}

// SetOnSave sets the callback run after a successful save
func (s *SettingsWindow) SetOnSave(onSave func(*config.Config)) {
	s.onSave = onSave
}

// Show displays the settings window
func (s *SettingsWindow) Show() {
	window := s.app.NewWindow("CornerPeek Settings")
	window.Resize(fyne.NewSize(360, 420))

	// --- Geometry ---
	sizeEntry := intEntry(s.config.WidgetSize)
	offsetEntry := intEntry(s.config.HideOffset)
	zoneEntry := intEntry(s.config.CornerZone)
	intervalEntry := intEntry(s.config.PollIntervalMs)

	geometryForm := widget.NewForm(
		widget.NewFormItem("Widget size (px)", sizeEntry),
		widget.NewFormItem("Hide offset (px)", offsetEntry),
		widget.NewFormItem("Corner zone (px)", zoneEntry),
		widget.NewFormItem("Poll interval (ms)", intervalEntry),
	)

	// --- Display ---
	opacityBinding := binding.NewFloat()
	opacityBinding.Set(s.config.OverlayOpacity)
	opacitySlider := widget.NewSliderWithData(0.1, 1.0, opacityBinding)
	opacitySlider.Step = 0.05
	opacityValueLabel := widget.NewLabel(fmt.Sprintf("%.0f%%", s.config.OverlayOpacity*100))
	opacityBinding.AddListener(binding.NewDataListener(func() {
		v, _ := opacityBinding.Get()
		opacityValueLabel.SetText(fmt.Sprintf("%.0f%%", v*100))
	}))

	onTopCheck := widget.NewCheck("Always on top", nil)
	onTopCheck.SetChecked(s.config.AlwaysOnTop)
	startLockedCheck := widget.NewCheck("Start locked open", nil)
	startLockedCheck.SetChecked(s.config.StartLocked)
	journalCheck := widget.NewCheck("Keep transition journal", nil)
	journalCheck.SetChecked(s.config.JournalEnabled)

	displaySection := container.NewVBox(
		SectionHeader("Display"),
		container.NewHBox(widget.NewLabel("Opacity"), layout.NewSpacer(), opacityValueLabel),
		opacitySlider,
		onTopCheck,
		startLockedCheck,
		journalCheck,
	)

	// --- Buttons ---
	saveBtn := widget.NewButton("Save", func() {
		next := s.config.Clone()
		var err error
		if next.WidgetSize, err = parseField("widget size", sizeEntry.Text); err != nil {
			dialog.ShowError(err, window)
			return
		}
		if next.HideOffset, err = parseField("hide offset", offsetEntry.Text); err != nil {
			dialog.ShowError(err, window)
			return
		}
		if next.CornerZone, err = parseField("corner zone", zoneEntry.Text); err != nil {
			dialog.ShowError(err, window)
			return
		}
		if next.PollIntervalMs, err = parseField("poll interval", intervalEntry.Text); err != nil {
			dialog.ShowError(err, window)
			return
		}
		next.OverlayOpacity, _ = opacityBinding.Get()
		next.AlwaysOnTop = onTopCheck.Checked
		next.StartLocked = startLockedCheck.Checked
		next.JournalEnabled = journalCheck.Checked

		if err := next.Validate(); err != nil {
			dialog.ShowError(err, window)
			return
		}

		s.config.Apply(next)
		if err := s.config.Save(); err != nil {
			dialog.ShowError(err, window)
			return
		}

		if s.onSave != nil {
			s.onSave(s.config)
		}
		dialog.ShowInformation("Saved", "Settings saved", window)
	})
	saveBtn.Importance = widget.HighImportance

	closeBtn := widget.NewButton("Close", func() {
		window.Close()
	})

	buttons := container.NewHBox(layout.NewSpacer(), saveBtn, closeBtn, layout.NewSpacer())

	content := container.NewVBox(
		SectionHeader("Geometry"),
		geometryForm,
		Separator(),
		displaySection,
		Separator(),
		buttons,
	)

	window.SetContent(container.NewPadded(content))
	window.Show()
}

func intEntry(v int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(v))
	return e
}

func parseField(name, text string) (int, error) {
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", name)
	}
	return v, nil
}

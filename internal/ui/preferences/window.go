package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"ideabreak/internal/notify"
	"ideabreak/internal/storage"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  storage.Settings
	onSave    func(storage.Settings) error
	work      *widget.Entry
	breakTime *widget.Entry
	timeout   *widget.Entry
	deadline  *widget.Entry
	ideas     *widget.Entry
	notifiers *widget.CheckGroup
	status    *widget.Label
}

// New creates a preferences window. onSave receives validated settings; an
// error it returns is shown and keeps the window open.
func New(app fyne.App, settings storage.Settings, onSave func(storage.Settings) error) *Window {
	window := app.NewWindow("ideabreak Preferences")

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		work:      widget.NewEntry(),
		breakTime: widget.NewEntry(),
		timeout:   widget.NewEntry(),
		deadline:  widget.NewEntry(),
		ideas:     widget.NewMultiLineEntry(),
		notifiers: widget.NewCheckGroup(notify.BackendNames(), nil),
		status:    widget.NewLabel(""),
	}
	prefs.ideas.SetMinRowsVisible(5)
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Cycle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work for"), prefs.work, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break for"), prefs.breakTime, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Show for"), prefs.timeout, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Give up after"), prefs.deadline, widget.NewLabel("sec")),
		prefs.notifiers,
		widget.NewLabel("Break ideas (one per line)"),
		prefs.ideas,
		prefs.status,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(480, 520))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings storage.Settings) {
	prefs.settings = settings
	form := FormFromSettings(settings)
	prefs.work.SetText(form.WorkMinutes)
	prefs.breakTime.SetText(form.BreakMinutes)
	prefs.timeout.SetText(form.TimeoutSeconds)
	prefs.deadline.SetText(form.DeadlineSeconds)
	prefs.ideas.SetText(form.Ideas)
	prefs.notifiers.SetSelected(form.Notifiers)
	prefs.status.SetText("")
}

func (prefs *Window) form() Form {
	return Form{
		WorkMinutes:     prefs.work.Text,
		BreakMinutes:    prefs.breakTime.Text,
		TimeoutSeconds:  prefs.timeout.Text,
		DeadlineSeconds: prefs.deadline.Text,
		Ideas:           prefs.ideas.Text,
		Notifiers:       orderedSelection(prefs.notifiers),
	}
}

func (prefs *Window) handleSave() {
	settings, err := prefs.form().Apply(prefs.settings)
	if err != nil {
		prefs.status.SetText(err.Error())
		return
	}
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			prefs.status.SetText(err.Error())
			return
		}
	}
	prefs.settings = settings
	prefs.status.SetText("")
	prefs.window.Hide()
}

// orderedSelection returns the checked backends in option order, which is
// the order the chain tries them.
func orderedSelection(group *widget.CheckGroup) []string {
	checked := make(map[string]bool, len(group.Selected))
	for _, name := range group.Selected {
		checked[name] = true
	}
	var selected []string
	for _, name := range group.Options {
		if checked[name] {
			selected = append(selected, name)
		}
	}
	return selected
}

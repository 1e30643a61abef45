package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mp3get/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog

	// UI components
	saveDirEntry  *widget.Entry
	reEncodeCheck *widget.Check
	bitrateSelect *widget.Select
	debugCheck    *widget.Check
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Save directory selection
	sd.saveDirEntry = widget.NewEntry()
	sd.saveDirEntry.SetPlaceHolder("Initial save directory")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	saveDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.saveDirEntry)

	// Re-encode toggle with dependent bitrate selection
	sd.reEncodeCheck = widget.NewCheck("Re-encode through ffmpeg", func(checked bool) {
		sd.updateBitrateState(checked)
	})
	sd.bitrateSelect = widget.NewSelect(config.BitrateOptions, nil)

	// Debug logging toggle
	sd.debugCheck = widget.NewCheck("Debug logging", nil)

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Save Directory:"),
		saveDirRow,

		sd.reEncodeCheck,

		widget.NewLabel("Bitrate:"),
		sd.bitrateSelect,

		widget.NewSeparator(),
		sd.debugCheck,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(420, 340))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.saveDirEntry.SetText(sd.settings.GetSaveDirectory())
	sd.reEncodeCheck.SetChecked(sd.settings.GetReEncode())
	sd.bitrateSelect.SetSelected(sd.settings.GetBitrate())
	sd.debugCheck.SetChecked(sd.settings.GetDebugLogging())
	sd.updateBitrateState(sd.settings.GetReEncode())
}

// updateBitrateState enables the bitrate selection only when re-encoding
func (sd *SettingsDialog) updateBitrateState(enabled bool) {
	if enabled {
		sd.bitrateSelect.Enable()
	} else {
		sd.bitrateSelect.Disable()
	}
}

// onBrowseDirectory opens a folder picker for the save directory
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.saveDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave persists the dialog values into preferences
func (sd *SettingsDialog) onSave(save bool) {
	if !save {
		return
	}

	if dir := sd.saveDirEntry.Text; dir != "" {
		sd.settings.SetSaveDirectory(dir)
	}
	sd.settings.SetReEncode(sd.reEncodeCheck.Checked)
	if sd.bitrateSelect.Selected != "" {
		sd.settings.SetBitrate(sd.bitrateSelect.Selected)
	}
	sd.settings.SetDebugLogging(sd.debugCheck.Checked)
}

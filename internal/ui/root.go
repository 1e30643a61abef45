package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/mp3get/internal/config"
	"github.com/ytget/mp3get/internal/download"
	"github.com/ytget/mp3get/internal/logging"
	"github.com/ytget/mp3get/internal/model"
	"github.com/ytget/mp3get/internal/platform"
)

// UI constants
const (
	RootWindowWidth   = 560
	RootWindowHeight  = 240
	RootProbeTimeout  = 15 * time.Second
	RootURLPlaceHold  = "Paste a YouTube video link"
	RootDownloadLabel = "Download MP3"
	RootCancelLabel   = "Cancel"
	RootSettingsLabel = "Settings"
)

// TitleProber fetches the video title ahead of the save dialog so the
// dialog can suggest a file name.
type TitleProber interface {
	Probe(ctx context.Context, url string) (string, error)
}

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window

	urlEntry    *widget.Entry
	downloadBtn *widget.Button
	cancelBtn   *widget.Button
	progressBar *widget.ProgressBar
	statusLabel *widget.Label
	titleLabel  *widget.Label

	downloadSvc download.Downloader
	prober      TitleProber
	settings    *config.Settings

	taskMutex    sync.Mutex
	activeTaskID string

	log zerolog.Logger
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloadSvc download.Downloader, prober TitleProber) *RootUI {
	settings := config.NewSettings(app)

	ui := &RootUI{
		window:      window,
		downloadSvc: downloadSvc,
		prober:      prober,
		settings:    settings,
		log:         logging.Component("ui"),
	}

	window.Resize(fyne.NewSize(RootWindowWidth, RootWindowHeight))

	// Set up callback for download updates
	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create URL entry
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(RootURLPlaceHold)
	ui.urlEntry.Validator = ui.validateURL
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	// Create download and cancel buttons
	ui.downloadBtn = widget.NewButton(RootDownloadLabel, ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.cancelBtn = widget.NewButton(RootCancelLabel, ui.onCancelClick)
	ui.cancelBtn.Disable()

	// Create settings button
	settingsBtn := widget.NewButton(RootSettingsLabel, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	// Create progress area
	ui.titleLabel = widget.NewLabel("")
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.titleLabel.Truncation = fyne.TextTruncateEllipsis

	ui.progressBar = widget.NewProgressBar()

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	topPanel := container.NewBorder(nil, nil, settingsBtn, ui.downloadBtn, ui.urlEntry)

	content := container.NewVBox(
		topPanel,
		ui.titleLabel,
		ui.progressBar,
		container.NewBorder(nil, nil, ui.statusLabel, ui.cancelBtn),
	)

	ui.window.SetContent(content)
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}
	if !platform.IsVideoURL(input) {
		return fmt.Errorf("not a recognized YouTube video link")
	}
	return nil
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.showMessage("Please enter a YouTube video link")
		return
	}

	if err := ui.validateURL(urlText); err != nil {
		ui.showMessage("Invalid link: " + err.Error())
		return
	}

	ui.taskMutex.Lock()
	busy := ui.activeTaskID != ""
	ui.taskMutex.Unlock()
	if busy {
		ui.showMessage("A download is already running")
		return
	}

	ui.downloadBtn.Disable()
	ui.statusLabel.SetText("Fetching video title...")
	ui.log.Debug().Str("url", urlText).Msg("Probing video title")

	// Fetch the title in the background, then open the save dialog
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RootProbeTimeout)
		defer cancel()

		title, err := ui.prober.Probe(ctx, urlText)
		if err != nil {
			ui.log.Warn().Err(err).Msg("Title probe failed, using default file name")
			title = ""
		}

		fyne.Do(func() {
			ui.statusLabel.SetText("")
			ui.showSaveDialog(urlText, title)
		})
	}()
}

// showSaveDialog asks the user where to save the MP3 file
func (ui *RootUI) showSaveDialog(urlText, title string) {
	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			ui.downloadBtn.Enable()
			dialog.ShowError(err, ui.window)
			return
		}
		if writer == nil {
			// User dismissed the dialog
			ui.downloadBtn.Enable()
			return
		}

		destPath := writer.URI().Path()
		writer.Close()

		ui.settings.SetSaveDirectory(filepath.Dir(destPath))
		ui.startDownload(urlText, destPath)
	}, ui.window)

	saveDialog.SetFileName(platform.SuggestedFilename(title))
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{platform.MP3Extension}))

	if listable, err := storage.ListerForURI(storage.NewFileURI(ui.settings.GetSaveDirectory())); err == nil {
		saveDialog.SetLocation(listable)
	}

	saveDialog.Show()
}

// startDownload hands the request to the download service
func (ui *RootUI) startDownload(urlText, destPath string) {
	task, err := ui.downloadSvc.Start(model.DownloadRequest{
		SourceURL:       urlText,
		DestinationPath: destPath,
	})
	if err != nil {
		ui.log.Error().Err(err).Msg("Failed to start download")
		ui.downloadBtn.Enable()
		dialog.ShowError(err, ui.window)
		return
	}

	ui.taskMutex.Lock()
	ui.activeTaskID = task.ID
	ui.taskMutex.Unlock()

	ui.log.Info().Str("task", task.ID).Str("dest", destPath).Msg("Download started")

	ui.titleLabel.SetText(task.GetDisplayTitle())
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText(StatusText(task))
	ui.cancelBtn.Enable()
	ui.urlEntry.SetText("")
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window).Show()
}

// onCancelClick handles the cancel button click
func (ui *RootUI) onCancelClick() {
	ui.taskMutex.Lock()
	taskID := ui.activeTaskID
	ui.taskMutex.Unlock()
	if taskID == "" {
		return
	}

	if err := ui.downloadSvc.Cancel(taskID); err != nil {
		ui.log.Warn().Err(err).Str("task", taskID).Msg("Cancel request rejected")
		return
	}
	ui.cancelBtn.Disable()
	ui.statusLabel.SetText("Cancelling...")
}

// onTaskUpdate handles task updates from the download service
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	ui.taskMutex.Lock()
	active := ui.activeTaskID
	if active == "" {
		// The first update can arrive before Start returns the task ID
		ui.activeTaskID = task.ID
		active = task.ID
	}
	if task.State.IsTerminal() && task.ID == active {
		ui.activeTaskID = ""
	}
	ui.taskMutex.Unlock()

	if task.ID != active {
		return
	}

	fyne.Do(func() {
		if task.Title != "" {
			ui.titleLabel.SetText(task.Title)
		}
		ui.progressBar.SetValue(task.Snapshot().Fraction())
		ui.statusLabel.SetText(StatusText(task))

		if task.State.IsTerminal() {
			if task.State == model.TaskStateCompleted {
				ui.progressBar.SetValue(1)
				ui.sendCompletionNotification(task)
			}
			ui.cancelBtn.Disable()
			ui.downloadBtn.Enable()
		}
	})
}

// sendCompletionNotification sends a system notification for completed downloads
func (ui *RootUI) sendCompletionNotification(task *model.DownloadTask) {
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   "Download completed",
		Content: task.GetDisplayTitle(),
	})
}

// showMessage shows a transient in-window popup
func (ui *RootUI) showMessage(message string) {
	widget.ShowPopUp(widget.NewLabel(message), ui.window.Canvas())
}

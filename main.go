package main

import (
	"fmt"

	"fyne.io/fyne/v2/app"

	"github.com/ytget/mp3get/internal/config"
	"github.com/ytget/mp3get/internal/download"
	"github.com/ytget/mp3get/internal/encode"
	"github.com/ytget/mp3get/internal/logging"
	"github.com/ytget/mp3get/internal/platform"
	"github.com/ytget/mp3get/internal/resolve"
	"github.com/ytget/mp3get/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.mp3get"
	AppName = "mp3get"
)

func main() {
	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Initialize services
	settings := config.NewSettings(myApp)
	logging.Init(settings.GetDebugLogging())

	saveDir := settings.GetSaveDirectory()
	if err := platform.CreateDirectoryIfNotExists(saveDir); err != nil {
		fmt.Printf("failed to ensure save dir: %v\n", err)
	}

	source := resolve.NewSource(resolve.NewClient(resolve.Config{}))
	encoder := &encode.Selector{
		ReEncode: settings.GetReEncode,
		Bitrate:  settings.GetBitrate,
	}
	downloadSvc := download.NewService(source, encoder)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, downloadSvc, source)

	// Show and run
	myWindow.ShowAndRun()
}

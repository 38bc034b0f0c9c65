package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/silk-installer/internal/config"
	"github.com/ytget/silk-installer/internal/download"
	"github.com/ytget/silk-installer/internal/extract"
	"github.com/ytget/silk-installer/internal/logging"
	"github.com/ytget/silk-installer/internal/platform"
	"github.com/ytget/silk-installer/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.silk-installer"
	AppName = "Tan Silking The Song"
)

func main() {
	logging.Init(version == "dev")
	log := logging.Get("main")
	log.Info().Str("version", version).Msg("silk installer starting")

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewNeonTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))
	myWindow.SetFixedSize(true)
	myWindow.CenterOnScreen()

	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure download directory")
	}

	downloadSvc := download.NewService(download.NewHTTPClient(download.ClientConfig{}))
	extractSvc := extract.NewService()

	installer := ui.NewInstallerUI(myWindow, myApp, settings, downloadSvc, extractSvc)

	myWindow.Show()
	installer.StartAnimations()
	myApp.Run()
	log.Info().Msg("silk installer exited")
}

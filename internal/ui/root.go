package ui

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/silk-installer/internal/config"
	"github.com/ytget/silk-installer/internal/download"
	"github.com/ytget/silk-installer/internal/extract"
	"github.com/ytget/silk-installer/internal/logging"
	"github.com/ytget/silk-installer/internal/model"
	"github.com/ytget/silk-installer/internal/platform"
)

// InstallerUI is the installer window: one action per stage, animated
// presentation, and the glue between the flow and the worker services.
type InstallerUI struct {
	app          fyne.App
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	downloadSvc  download.Downloader
	extractSvc   extract.Extractor
	notifier     Notifier
	log          zerolog.Logger

	flow *model.Flow
	glow *GlowState

	// Replaceable in tests
	runOnMain     func(func())
	after         func(time.Duration, func())
	pickDirectory func(onChosen func(dir string))
	openFolder    func(dir string) error

	background  *canvas.LinearGradient
	border      *canvas.Rectangle
	title       *canvas.Text
	fadeOverlay *canvas.Rectangle
	actions     *fyne.Container
	progressBar *widget.ProgressBar
	statusLabel *widget.Label

	getStartedBtn *GlowButton
	downloadBtn   *GlowButton
	extractBtn    *GlowButton
	openFolderBtn *GlowButton

	titleAnim *fyne.Animation
	stopGlow  chan struct{}
	stopOnce  sync.Once
}

// NewInstallerUI builds the installer window content and wires the services.
func NewInstallerUI(window fyne.Window, app fyne.App, settings *config.Settings, downloadSvc download.Downloader, extractSvc extract.Extractor) *InstallerUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &InstallerUI{
		app:          app,
		window:       window,
		settings:     settings,
		localization: localization,
		downloadSvc:  downloadSvc,
		extractSvc:   extractSvc,
		notifier:     NewDialogNotifier(window),
		log:          logging.Get("ui"),
		flow:         model.NewFlow(),
		glow:         NewGlowState(),
		runOnMain:    fyne.Do,
		openFolder:   platform.OpenFolder,
		stopGlow:     make(chan struct{}),
	}
	ui.after = func(d time.Duration, f func()) {
		time.AfterFunc(d, func() { ui.runOnMain(f) })
	}
	ui.pickDirectory = ui.showFolderDialog

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.downloadSvc.SetUpdateCallback(ui.onDownloadUpdate)
	ui.extractSvc.SetUpdateCallback(ui.onExtractionUpdate)

	ui.setupUI()
	window.SetOnClosed(ui.Stop)
	return ui
}

// setupUI creates and arranges all UI components
func (ui *InstallerUI) setupUI() {
	ui.createMenu()
	t := ui.localization.GetText

	ui.background = canvas.NewVerticalGradient(ColorBackgroundTop, ColorBackgroundBottom)
	ui.border = newGlowBorder(ui.glow)

	ui.title = canvas.NewText(t(KeyAppTitle), ColorNeon)
	ui.title.TextSize = TitleTextSize
	ui.title.TextStyle = fyne.TextStyle{Bold: true}
	ui.title.Alignment = fyne.TextAlignCenter

	ui.getStartedBtn = NewGlowButton(t(KeyGetStarted), ui.onGetStarted)
	ui.downloadBtn = NewGlowButton(t(KeyDownload), ui.onDownloadClick)
	ui.extractBtn = NewGlowButton(t(KeyExtract), ui.onExtractClick)
	ui.openFolderBtn = NewGlowButton(t(KeyOpenFolder), ui.onOpenFolderClick)
	ui.actions = container.NewVBox(ui.getStartedBtn)

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Hide()
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Alignment = fyne.TextAlignCenter
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	footer := canvas.NewText(FooterText, ColorFooter)
	footer.TextSize = FooterTextSize
	footer.Alignment = fyne.TextAlignCenter

	content := container.NewVBox(
		layout.NewSpacer(),
		ui.title,
		layout.NewSpacer(),
		ui.actions,
		ui.progressBar,
		ui.statusLabel,
		layout.NewSpacer(),
		footer,
	)

	ui.fadeOverlay = canvas.NewRectangle(ColorBackgroundTop)

	ui.window.SetContent(container.NewStack(
		ui.background,
		container.New(layout.NewCustomPaddedLayout(BorderInset, BorderInset, BorderInset, BorderInset), ui.border),
		container.NewPadded(content),
		ui.fadeOverlay,
	))
}

// StartAnimations runs the window fade-in, the title pulse, the first
// button's fade and the border glow ticker. Call once the window is shown.
func (ui *InstallerUI) StartAnimations() {
	fadeIn := canvas.NewColorRGBAAnimation(ColorBackgroundTop, ColorTransparent, WindowFadeInDuration, func(c color.Color) {
		ui.fadeOverlay.FillColor = c
		ui.fadeOverlay.Refresh()
	})
	fadeIn.Curve = fyne.AnimationEaseInOut
	fadeIn.Start()

	ui.titleAnim = canvas.NewColorRGBAAnimation(ColorTitleDim, ColorNeon, TitlePulseDuration, func(c color.Color) {
		ui.title.Color = c
		ui.title.Refresh()
	})
	ui.titleAnim.Curve = fyne.AnimationEaseInOut
	ui.titleAnim.AutoReverse = true
	ui.titleAnim.RepeatCount = fyne.AnimationRepeatForever
	ui.titleAnim.Start()

	ui.getStartedBtn.FadeIn()

	go ui.runGlowTicker()
}

// Stop halts the border ticker and running animations. Safe to call twice.
func (ui *InstallerUI) Stop() {
	ui.stopOnce.Do(func() {
		close(ui.stopGlow)
		if ui.titleAnim != nil {
			ui.titleAnim.Stop()
		}
		for _, b := range []*GlowButton{ui.getStartedBtn, ui.downloadBtn, ui.extractBtn, ui.openFolderBtn} {
			b.StopAnimations()
		}
	})
}

func (ui *InstallerUI) runGlowTicker() {
	ticker := time.NewTicker(GlowTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ui.stopGlow:
			return
		case <-ticker.C:
			ui.runOnMain(ui.tickGlow)
		}
	}
}

// tickGlow advances the border glow by one step; UI goroutine only.
func (ui *InstallerUI) tickGlow() {
	ui.glow.Step()
	ui.border.StrokeColor = ui.glow.BorderColor()
	ui.border.Refresh()
}

// showAction replaces the visible action control with next and fades it in.
func (ui *InstallerUI) showAction(next *GlowButton) {
	for _, obj := range ui.actions.Objects {
		if b, ok := obj.(*GlowButton); ok && b != next {
			b.Disable()
			b.StopAnimations()
		}
	}
	ui.actions.Objects = []fyne.CanvasObject{next}
	ui.actions.Refresh()
	next.Enable()
	next.FadeIn()
}

func (ui *InstallerUI) onGetStarted() {
	if err := ui.flow.Start(); err != nil {
		ui.log.Debug().Err(err).Msg("ignoring get started")
		return
	}
	ui.getStartedBtn.Disable()
	ui.actions.Objects = nil
	ui.actions.Refresh()

	ui.after(NextStepDelay, func() { ui.showAction(ui.downloadBtn) })
}

func (ui *InstallerUI) onDownloadClick() {
	if err := ui.flow.BeginDownload(); err != nil {
		ui.log.Debug().Err(err).Msg("ignoring download click")
		return
	}
	ui.downloadBtn.Disable()

	url := ui.settings.GetArchiveURL()
	dest := ui.settings.GetArchivePath()
	ui.showProgress(0, ui.localization.GetText(KeyDownloading))

	if _, err := ui.downloadSvc.Start(url, dest); err != nil {
		ui.log.Error().Err(err).Str("url", url).Msg("download did not start")
		ui.failDownload(err)
		return
	}
	ui.log.Info().Str("url", url).Str("dest", dest).Msg("download started")
}

// onDownloadUpdate is the download service callback; it may run on a worker goroutine.
func (ui *InstallerUI) onDownloadUpdate(task *model.DownloadTask) {
	ui.runOnMain(func() { ui.applyDownloadUpdate(task) })
}

func (ui *InstallerUI) applyDownloadUpdate(task *model.DownloadTask) {
	if ui.flow.Stage() != model.StageDownload || !ui.flow.Busy() {
		return
	}

	switch task.Status {
	case model.TaskStatusStarting, model.TaskStatusDownloading:
		status := fmt.Sprintf("%s %s", ui.localization.GetText(KeyDownloading), task.GetSizeString())
		if task.Speed != "" {
			status += "  " + task.Speed
		}
		if task.ETASec > 0 {
			status += "  " + task.GetETAString()
		}
		ui.showProgress(task.Progress, status)

	case model.TaskStatusCompleted:
		if err := ui.flow.DownloadSucceeded(task.OutputPath); err != nil {
			ui.log.Error().Err(err).Msg("download completion rejected")
			ui.failDownload(err)
			return
		}
		ui.progressBar.Hide()
		ui.statusLabel.SetText(fmt.Sprintf("%s %s", ui.localization.GetText(KeyDownloadedTo), task.OutputPath))
		ui.showAction(ui.extractBtn)

	case model.TaskStatusError:
		ui.failDownload(errors.New(task.LastError))
	}
}

// failDownload reports err and re-arms the same download for a retry.
func (ui *InstallerUI) failDownload(err error) {
	ui.flow.DownloadFailed()
	ui.progressBar.Hide()
	ui.statusLabel.SetText("")
	ui.downloadBtn.Enable()
	ui.notifier.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyDownloadFailed), err))
}

func (ui *InstallerUI) onExtractClick() {
	if ui.flow.Stage() != model.StageExtract || ui.flow.Busy() {
		return
	}
	ui.pickDirectory(func(dir string) {
		if dir == "" {
			return
		}
		ui.startExtraction(dir)
	})
}

func (ui *InstallerUI) startExtraction(dir string) {
	if err := ui.flow.BeginExtract(dir); err != nil {
		ui.log.Debug().Err(err).Msg("ignoring extract request")
		return
	}
	ui.extractBtn.Disable()
	ui.showProgress(0, ui.localization.GetText(KeyExtracting))

	if _, err := ui.extractSvc.StartExtraction(ui.flow.DownloadPath(), dir); err != nil {
		ui.log.Error().Err(err).Str("target", dir).Msg("extraction did not start")
		ui.failExtraction(err)
		return
	}
	ui.log.Info().Str("archive", ui.flow.DownloadPath()).Str("target", dir).Msg("extraction started")
}

// onExtractionUpdate is the extraction service callback; it may run on a worker goroutine.
func (ui *InstallerUI) onExtractionUpdate(task *model.ExtractionTask) {
	ui.runOnMain(func() { ui.applyExtractionUpdate(task) })
}

func (ui *InstallerUI) applyExtractionUpdate(task *model.ExtractionTask) {
	if ui.flow.Stage() != model.StageExtract || !ui.flow.Busy() {
		return
	}

	switch task.Status {
	case model.TaskStatusStarting, model.TaskStatusExtracting:
		ui.showProgress(task.Progress, fmt.Sprintf("%s %d / %d", ui.localization.GetText(KeyExtracting), task.FilesDone, task.FilesTotal))

	case model.TaskStatusCompleted:
		if err := ui.flow.ExtractSucceeded(); err != nil {
			ui.log.Error().Err(err).Msg("extraction completion rejected")
			return
		}
		ui.progressBar.Hide()
		ui.statusLabel.SetText(fmt.Sprintf("%s %s", ui.localization.GetText(KeyExtractedTo), task.TargetDir))
		ui.showAction(ui.openFolderBtn)
		ui.notifier.ShowSuccess(ui.localization.GetText(KeyCongratulations), ui.localization.GetText(KeySuccessMessage))

	case model.TaskStatusError:
		ui.failExtraction(errors.New(task.LastError))
	}
}

// failExtraction reports err and leaves the extract control in place.
func (ui *InstallerUI) failExtraction(err error) {
	ui.flow.ExtractFailed()
	ui.progressBar.Hide()
	ui.statusLabel.SetText("")
	ui.extractBtn.Enable()
	ui.notifier.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyExtractionFailed), err))
}

func (ui *InstallerUI) onOpenFolderClick() {
	dir := ui.flow.TargetDir()
	if err := ui.openFolder(dir); err != nil {
		ui.log.Error().Err(err).Str("dir", dir).Msg("open folder failed")
		ui.notifier.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningDir), err))
	}
}

func (ui *InstallerUI) showProgress(value float64, status string) {
	ui.progressBar.SetValue(value)
	ui.progressBar.Show()
	ui.statusLabel.SetText(status)
}

func (ui *InstallerUI) showFolderDialog(onChosen func(string)) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.notifier.ShowError(err)
			return
		}
		if uri == nil {
			return
		}
		onChosen(uri.Path())
	}, ui.window)
}

// createMenu creates the application menu
func (ui *InstallerUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *InstallerUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *InstallerUI) refreshUITexts() {
	t := ui.localization.GetText
	ui.window.SetTitle(t(KeyAppTitle))
	ui.title.Text = t(KeyAppTitle)
	ui.title.Refresh()
	ui.getStartedBtn.SetText(t(KeyGetStarted))
	ui.downloadBtn.SetText(t(KeyDownload))
	ui.extractBtn.SetText(t(KeyExtract))
	ui.openFolderBtn.SetText(t(KeyOpenFolder))
}

// onShowSettings shows the settings dialog
func (ui *InstallerUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
}

package ui

import (
	"errors"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/silk-installer/internal/config"
	"github.com/ytget/silk-installer/internal/model"
)

type startCall struct {
	source string
	dest   string
}

type fakeDownloader struct {
	mu       sync.Mutex
	onUpdate func(*model.DownloadTask)
	starts   []startCall
	startErr error
}

func (f *fakeDownloader) SetUpdateCallback(cb func(*model.DownloadTask)) {
	f.onUpdate = cb
}

func (f *fakeDownloader) Start(url, dest string) (*model.DownloadTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts = append(f.starts, startCall{source: url, dest: dest})
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &model.DownloadTask{ID: "download-test", URL: url, OutputPath: dest, Status: model.TaskStatusStarting}, nil
}

func (f *fakeDownloader) GetTask(string) (*model.DownloadTask, bool) {
	return nil, false
}

func (f *fakeDownloader) emit(task *model.DownloadTask) {
	f.onUpdate(task)
}

type fakeExtractor struct {
	mu       sync.Mutex
	onUpdate func(*model.ExtractionTask)
	starts   []startCall
	startErr error
}

func (f *fakeExtractor) SetUpdateCallback(cb func(*model.ExtractionTask)) {
	f.onUpdate = cb
}

func (f *fakeExtractor) StartExtraction(archivePath, targetDir string) (*model.ExtractionTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts = append(f.starts, startCall{source: archivePath, dest: targetDir})
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &model.ExtractionTask{ID: "extract-test", ArchivePath: archivePath, TargetDir: targetDir, Status: model.TaskStatusStarting}, nil
}

func (f *fakeExtractor) GetTask(string) (*model.ExtractionTask, bool) {
	return nil, false
}

func (f *fakeExtractor) emit(task *model.ExtractionTask) {
	f.onUpdate(task)
}

type recordingNotifier struct {
	errors    []error
	successes []string
}

func (n *recordingNotifier) ShowError(err error) {
	n.errors = append(n.errors, err)
}

func (n *recordingNotifier) ShowSuccess(title, message string) {
	n.successes = append(n.successes, title+": "+message)
}

type harness struct {
	ui        *InstallerUI
	settings  *config.Settings
	dl        *fakeDownloader
	ex        *fakeExtractor
	notifier  *recordingNotifier
	pickedDir string
	opened    []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	a := test.NewApp()
	t.Cleanup(a.Quit)
	w := test.NewWindow(nil)

	settings := config.NewSettings(a)
	settings.SetLanguage("en")
	settings.SetDownloadDirectory(t.TempDir())

	h := &harness{
		settings:  settings,
		dl:        &fakeDownloader{},
		ex:        &fakeExtractor{},
		notifier:  &recordingNotifier{},
		pickedDir: t.TempDir(),
	}
	h.ui = NewInstallerUI(w, a, settings, h.dl, h.ex)
	h.ui.runOnMain = func(f func()) { f() }
	h.ui.after = func(_ time.Duration, f func()) { f() }
	h.ui.notifier = h.notifier
	h.ui.pickDirectory = func(onChosen func(string)) { onChosen(h.pickedDir) }
	h.ui.openFolder = func(dir string) error {
		h.opened = append(h.opened, dir)
		return nil
	}
	t.Cleanup(w.Close)
	return h
}

func (h *harness) visibleActions() []fyne.CanvasObject {
	return h.ui.actions.Objects
}

func (h *harness) toExtractStage(t *testing.T) {
	t.Helper()
	test.Tap(h.ui.getStartedBtn.button)
	test.Tap(h.ui.downloadBtn.button)
	h.dl.emit(&model.DownloadTask{Status: model.TaskStatusCompleted, OutputPath: h.settings.GetArchivePath(), Progress: 1})
	require.Equal(t, model.StageExtract, h.ui.flow.Stage())
}

func TestInstallerUI_InitialState(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, model.StageWelcome, h.ui.flow.Stage())
	assert.Equal(t, []fyne.CanvasObject{h.ui.getStartedBtn}, h.visibleActions())
	assert.Equal(t, "Get Started", h.ui.getStartedBtn.Text())
	assert.Equal(t, "Tan Silking The Song", h.ui.title.Text)
	assert.False(t, h.ui.progressBar.Visible())
}

func TestInstallerUI_FullFlow(t *testing.T) {
	h := newHarness(t)

	test.Tap(h.ui.getStartedBtn.button)
	assert.Equal(t, model.StageDownload, h.ui.flow.Stage())
	assert.True(t, h.ui.getStartedBtn.Disabled())
	assert.Equal(t, []fyne.CanvasObject{h.ui.downloadBtn}, h.visibleActions())

	test.Tap(h.ui.downloadBtn.button)
	require.Len(t, h.dl.starts, 1)
	assert.Equal(t, h.settings.GetArchiveURL(), h.dl.starts[0].source)
	assert.Equal(t, h.settings.GetArchivePath(), h.dl.starts[0].dest)
	assert.True(t, h.ui.downloadBtn.Disabled())

	h.dl.emit(&model.DownloadTask{Status: model.TaskStatusDownloading, BytesDone: 512, TotalBytes: 1024, Progress: 0.5})
	assert.True(t, h.ui.progressBar.Visible())
	assert.InDelta(t, 0.5, h.ui.progressBar.Value, 1e-9)
	assert.Contains(t, h.ui.statusLabel.Text, "Downloading")

	archive := h.settings.GetArchivePath()
	h.dl.emit(&model.DownloadTask{Status: model.TaskStatusCompleted, OutputPath: archive, Progress: 1})
	assert.Equal(t, model.StageExtract, h.ui.flow.Stage())
	assert.Equal(t, archive, h.ui.flow.DownloadPath())
	assert.Equal(t, []fyne.CanvasObject{h.ui.extractBtn}, h.visibleActions())
	assert.True(t, h.ui.downloadBtn.Disabled())
	assert.False(t, h.ui.extractBtn.Disabled())

	test.Tap(h.ui.extractBtn.button)
	require.Len(t, h.ex.starts, 1)
	assert.Equal(t, archive, h.ex.starts[0].source)
	assert.Equal(t, h.pickedDir, h.ex.starts[0].dest)
	assert.True(t, h.ui.extractBtn.Disabled())

	h.ex.emit(&model.ExtractionTask{Status: model.TaskStatusExtracting, FilesDone: 2, FilesTotal: 5, Progress: 0.4})
	assert.Contains(t, h.ui.statusLabel.Text, "2 / 5")

	h.ex.emit(&model.ExtractionTask{Status: model.TaskStatusCompleted, TargetDir: h.pickedDir, FilesDone: 5, FilesTotal: 5, Progress: 1})
	assert.Equal(t, model.StageDone, h.ui.flow.Stage())
	assert.Equal(t, []fyne.CanvasObject{h.ui.openFolderBtn}, h.visibleActions())
	require.Len(t, h.notifier.successes, 1)
	assert.Contains(t, h.notifier.successes[0], "Congratulations! You just downloaded BepInEx5")
	assert.Empty(t, h.notifier.errors)

	// A duplicate completion must not produce a second success dialog
	h.ex.emit(&model.ExtractionTask{Status: model.TaskStatusCompleted, TargetDir: h.pickedDir})
	assert.Len(t, h.notifier.successes, 1)

	// Earlier controls stay inert
	test.Tap(h.ui.getStartedBtn.button)
	test.Tap(h.ui.downloadBtn.button)
	test.Tap(h.ui.extractBtn.button)
	assert.Len(t, h.dl.starts, 1)
	assert.Len(t, h.ex.starts, 1)
	assert.True(t, h.ui.getStartedBtn.Disabled())
	assert.True(t, h.ui.downloadBtn.Disabled())
	assert.True(t, h.ui.extractBtn.Disabled())

	test.Tap(h.ui.openFolderBtn.button)
	assert.Equal(t, []string{h.pickedDir}, h.opened)
}

func TestInstallerUI_DownloadStatusWithoutETA(t *testing.T) {
	h := newHarness(t)
	test.Tap(h.ui.getStartedBtn.button)
	test.Tap(h.ui.downloadBtn.button)

	// Chunked response: total and ETA unknown
	h.dl.emit(&model.DownloadTask{Status: model.TaskStatusDownloading, BytesDone: 2048, TotalBytes: -1, ETASec: -1, Speed: "1.0MB/s"})
	assert.Equal(t, "Downloading 2.0 KB  1.0MB/s", h.ui.statusLabel.Text)
	assert.NotContains(t, h.ui.statusLabel.Text, "—")

	h.dl.emit(&model.DownloadTask{Status: model.TaskStatusDownloading, BytesDone: 512, TotalBytes: 1024, ETASec: 65, Speed: "1.0MB/s"})
	assert.Contains(t, h.ui.statusLabel.Text, "01:05")
}

func TestInstallerUI_DownloadFailureAllowsRetry(t *testing.T) {
	h := newHarness(t)
	test.Tap(h.ui.getStartedBtn.button)
	test.Tap(h.ui.downloadBtn.button)

	h.dl.emit(&model.DownloadTask{Status: model.TaskStatusError, LastError: "HTTP 404 Not Found"})
	require.Len(t, h.notifier.errors, 1)
	assert.Equal(t, "Download failed: HTTP 404 Not Found", h.notifier.errors[0].Error())
	assert.Equal(t, model.StageDownload, h.ui.flow.Stage())
	assert.False(t, h.ui.flow.Busy())
	assert.False(t, h.ui.downloadBtn.Disabled())
	assert.False(t, h.ui.progressBar.Visible())

	test.Tap(h.ui.downloadBtn.button)
	require.Len(t, h.dl.starts, 2)
	assert.Equal(t, h.dl.starts[0], h.dl.starts[1])
}

func TestInstallerUI_DownloadStartError(t *testing.T) {
	h := newHarness(t)
	h.dl.startErr = errors.New("download already in progress")
	test.Tap(h.ui.getStartedBtn.button)
	test.Tap(h.ui.downloadBtn.button)

	require.Len(t, h.notifier.errors, 1)
	assert.Contains(t, h.notifier.errors[0].Error(), "Download failed")
	assert.False(t, h.ui.downloadBtn.Disabled())
	assert.False(t, h.ui.flow.Busy())
}

func TestInstallerUI_DownloadClickWhileBusyIsIgnored(t *testing.T) {
	h := newHarness(t)
	test.Tap(h.ui.getStartedBtn.button)

	h.ui.onDownloadClick()
	h.ui.onDownloadClick()
	assert.Len(t, h.dl.starts, 1)
}

func TestInstallerUI_StaleDownloadUpdatesIgnored(t *testing.T) {
	h := newHarness(t)

	h.dl.emit(&model.DownloadTask{Status: model.TaskStatusCompleted, OutputPath: "/tmp/a.zip"})
	assert.Equal(t, model.StageWelcome, h.ui.flow.Stage())
	assert.Empty(t, h.notifier.errors)
}

func TestInstallerUI_ExtractionFailureLeavesControl(t *testing.T) {
	h := newHarness(t)
	h.toExtractStage(t)

	test.Tap(h.ui.extractBtn.button)
	h.ex.emit(&model.ExtractionTask{Status: model.TaskStatusError, LastError: "zip: not a valid zip file"})

	require.Len(t, h.notifier.errors, 1)
	assert.Equal(t, "Extraction failed: zip: not a valid zip file", h.notifier.errors[0].Error())
	assert.Equal(t, model.StageExtract, h.ui.flow.Stage())
	assert.Equal(t, []fyne.CanvasObject{h.ui.extractBtn}, h.visibleActions())
	assert.False(t, h.ui.extractBtn.Disabled())
	assert.Empty(t, h.notifier.successes)

	test.Tap(h.ui.extractBtn.button)
	assert.Len(t, h.ex.starts, 2)
}

func TestInstallerUI_ExtractionStartError(t *testing.T) {
	h := newHarness(t)
	h.toExtractStage(t)
	h.ex.startErr = errors.New("archive not found")

	test.Tap(h.ui.extractBtn.button)
	require.Len(t, h.notifier.errors, 1)
	assert.Contains(t, h.notifier.errors[0].Error(), "archive not found")
	assert.False(t, h.ui.extractBtn.Disabled())
}

func TestInstallerUI_PickerCancelled(t *testing.T) {
	h := newHarness(t)
	h.toExtractStage(t)
	h.pickedDir = ""

	test.Tap(h.ui.extractBtn.button)
	assert.Empty(t, h.ex.starts)
	assert.False(t, h.ui.flow.Busy())
}

func TestInstallerUI_OpenFolderError(t *testing.T) {
	h := newHarness(t)
	h.ui.openFolder = func(string) error { return errors.New("no file manager") }

	h.ui.onOpenFolderClick()
	require.Len(t, h.notifier.errors, 1)
	assert.Contains(t, h.notifier.errors[0].Error(), "no file manager")
}

func TestInstallerUI_TickGlow(t *testing.T) {
	h := newHarness(t)
	before := h.ui.border.StrokeColor

	h.ui.tickGlow()
	assert.NotEqual(t, before, h.ui.border.StrokeColor)
	assert.InDelta(t, GlowMin+GlowStep, h.ui.glow.Intensity, 1e-9)
}

func TestInstallerUI_LanguageChange(t *testing.T) {
	h := newHarness(t)

	h.ui.onLanguageChange("ru")
	assert.Equal(t, "ru", h.settings.GetLanguage())
	assert.Equal(t, "Начать", h.ui.getStartedBtn.Text())
	assert.Equal(t, "Скачать BepInEx5 с Config Manager", h.ui.downloadBtn.Text())
}

func TestInstallerUI_StopIsIdempotent(t *testing.T) {
	h := newHarness(t)

	assert.NotPanics(t, func() {
		h.ui.Stop()
		h.ui.Stop()
	})
}

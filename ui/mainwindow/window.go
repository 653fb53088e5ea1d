// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"path/filepath"

	"microalgae-counter/internal/app"
	"microalgae-counter/internal/export"
	algaeimage "microalgae-counter/internal/image"
	"microalgae-counter/internal/version"
	"microalgae-counter/ui/canvas"
	"microalgae-counter/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	appTitle       = "Microalgae Counter"
	prefKeyLastDir = "lastDirectory"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	session *app.Session

	original    *canvas.ImagePreview
	annotated   *canvas.ImagePreview
	paramsPanel *panels.ParamsPanel
	statsPanel  *panels.StatsPanel
	statusBar   *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, session *app.Session) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: session,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	mw.Resize(fyne.NewSize(1300, 800))

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.original = canvas.NewImagePreview("Original Image", algaeimage.DefaultPreviewSize)
	mw.annotated = canvas.NewImagePreview("Microalgae Count", algaeimage.DefaultPreviewSize)
	mw.paramsPanel = panels.NewParamsPanel(mw.session)
	mw.statsPanel = panels.NewStatsPanel()
	mw.statusBar = widget.NewLabel("Ready")

	header := mw.createHeader()

	views := container.NewGridWithColumns(2,
		mw.original.Container(),
		mw.annotated.Container(),
	)

	split := container.NewHSplit(
		container.NewVScroll(mw.paramsPanel.Container()),
		views,
	)
	split.SetOffset(0.22)

	content := container.NewBorder(
		header, // top
		container.NewVBox(mw.statsPanel.Container(), container.NewPadded(mw.statusBar)), // bottom
		nil,   // left
		nil,   // right
		split, // center
	)

	mw.SetContent(content)
}

// createHeader creates the title row with the three main actions.
func (mw *MainWindow) createHeader() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(appTitle, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	loadBtn := widget.NewButtonWithIcon("Load Image", theme.FolderOpenIcon(), mw.onLoadImage)
	loadBtn.Importance = widget.HighImportance

	countBtn := widget.NewButtonWithIcon("Count Microalgae", theme.SearchIcon(), mw.onDetect)
	countBtn.Importance = widget.SuccessImportance

	exportBtn := widget.NewButtonWithIcon("Export Results", theme.DocumentSaveIcon(), mw.onExport)
	exportBtn.Importance = widget.HighImportance

	return container.NewBorder(nil, nil, title,
		container.NewHBox(loadBtn, countBtn, exportBtn))
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Load Image...", mw.onLoadImage),
		fyne.NewMenuItem("Export Results", mw.onExport),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Settings", mw.onSaveSettings),
	)

	analysisMenu := fyne.NewMenu("Analysis",
		fyne.NewMenuItem("Count Microalgae", mw.onDetect),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, analysisMenu, helpMenu))
}

// setupEventHandlers registers for session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(app.EventImageLoaded, func(data interface{}) {
		raster, ok := data.(*algaeimage.Raster)
		if !ok {
			return
		}
		mw.original.SetImage(raster.Image)
		mw.annotated.SetImage(nil)
		mw.statsPanel.Reset()
		mw.SetTitle(appTitle + " - " + raster.Name())
		mw.updateStatus(fmt.Sprintf("Loaded %s (%dx%d)", raster.Name(), raster.Width(), raster.Height()))
	})

	mw.session.On(app.EventDetectionComplete, func(data interface{}) {
		out, ok := data.(app.Outcome)
		if !ok {
			return
		}
		mw.annotated.SetImage(out.Annotated)
		mw.statsPanel.Update(out.Summary)
		mw.updateStatus(fmt.Sprintf("%d microalgae detected", out.Summary.Count))
	})

	mw.session.On(app.EventResultsExported, func(data interface{}) {
		if paths, ok := data.(*export.Paths); ok {
			mw.updateStatus("Results exported to " + paths.Dir)
		}
	})

	mw.session.On(app.EventSettingsSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Settings saved to " + path)
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.app.Preferences().SetString(prefKeyLastDir, dir)
}

// OpenImage loads path into the session, reporting failures in a dialog.
func (mw *MainWindow) OpenImage(path string) {
	if err := mw.session.LoadImage(path); err != nil {
		mw.showError(err)
		return
	}
	mw.saveLastDir(path)
}

// Menu and button handlers

func (mw *MainWindow) onLoadImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		mw.OpenImage(reader.URI().Path())
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(algaeimage.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onDetect() {
	out, err := mw.session.Detect()
	if err != nil {
		mw.showError(err)
		return
	}
	if out.NoneDetected() {
		dialog.ShowInformation("Result",
			"No microalgae detected with the current parameters", mw.Window)
	}
}

func (mw *MainWindow) onExport() {
	paths, err := mw.session.Export()
	if err != nil {
		mw.showError(err)
		return
	}
	dialog.ShowInformation("Success",
		fmt.Sprintf("Results exported to:\n%s", paths.Dir), mw.Window)
}

func (mw *MainWindow) onSaveSettings() {
	if err := mw.session.SaveSettings(); err != nil {
		mw.showError(err)
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"Counts microalgae cells in microscopy images\n"+
			"using Hough circle detection.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// showError presents err with a message matched to the failure kind.
func (mw *MainWindow) showError(err error) {
	dialog.ShowError(errors.New(userMessage(err)), mw.Window)
	mw.updateStatus(userMessage(err))
}

// userMessage maps session errors to the text shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrUnreadable):
		return "Could not load the image"
	case errors.Is(err, app.ErrNoImage):
		return "Please load an image first"
	case errors.Is(err, app.ErrNoResults):
		return "There are no results to export"
	default:
		return err.Error()
	}
}

// Package gui implements the desktop explorer window: a directory tree and
// an icon-mode file grid bound to one shared filesystem model, a toolbar of
// standard-location shortcuts and a slider controlling the grid's icon size.
package gui

import (
	"fmt"

	"xplor/internal/config"
	"xplor/internal/fsmodel"
	"xplor/internal/locations"
	"xplor/internal/log"
	"xplor/internal/watch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dustin/go-humanize"
)

const (
	appID       = "io.github.xplor"
	windowTitle = "xplor"
)

// App is the explorer application: one window owning the toolbar, the
// tree, the grid and the slider, all bound to a shared filesystem model.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	cfgPath    string

	model    *fsmodel.Model
	resolver *locations.Resolver
	watcher  *watch.Watcher

	tree      *widget.Tree
	grid      *fileGrid
	slider    *widget.Slider
	status    *widget.Label
	pathLabel *widget.Label

	treeRoot fsmodel.Index
	assets   []string

	// Path of the entry currently selected in the tree
	selectedPath string

	// Set while the tree selection is driven by a grid click, so the
	// selection callback doesn't navigate the grid as a side effect.
	syncingSelection bool
}

// Options adjust application startup.
type Options struct {
	// ConfigPath is where settings changes are persisted. Empty means the
	// default location.
	ConfigPath string
	// AssetsDir is an explicit asset directory, searched before the
	// defaults.
	AssetsDir string
	// StylePath names a stylesheet to load instead of discovering one in
	// the asset directories. Loading failures, including a missing file,
	// abort startup.
	StylePath string
	// Root is the directory the model is rooted at. Empty means the
	// filesystem root.
	Root string
}

// NewApp creates the explorer application.
func NewApp(cfg *config.Config, opts Options) (*App, error) {
	return newApp(app.NewWithID(appID), cfg, opts)
}

func newApp(fyneApp fyne.App, cfg *config.Config, opts Options) (*App, error) {
	dirs := assetDirs(opts.AssetsDir)

	// A stylesheet that exists but cannot be used aborts startup; when
	// none is shipped the built-in palette applies.
	style := DefaultStyle()
	stylePath := opts.StylePath
	if stylePath == "" {
		stylePath = findAsset(dirs, StyleFileName)
	}
	if stylePath != "" {
		loaded, err := LoadStyle(stylePath)
		if err != nil {
			return nil, err
		}
		style = loaded
		log.Debugf("stylesheet loaded from %s", stylePath)
	} else {
		log.Debug("no stylesheet asset found, using built-in style")
	}
	fyneApp.Settings().SetTheme(style)

	appIcon := loadIcon(dirs, appIconFileName)
	if appIcon != nil {
		fyneApp.SetIcon(appIcon)
	} else {
		log.Warnf("Could not load app icon %s from asset directories", appIconFileName)
	}

	model, err := fsmodel.New(opts.Root, fsmodel.Options{
		ShowHidden:  cfg.View.ShowHidden,
		NameFilters: cfg.View.NameFilters,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		fyneApp:  fyneApp,
		cfg:      cfg,
		cfgPath:  opts.ConfigPath,
		model:    model,
		resolver: locations.NewResolver(cfg.Locations),
		assets:   dirs,
	}

	// Watching is best-effort; the explorer works without it
	if w, err := watch.New(); err != nil {
		log.Errorf("Failed to create filesystem watcher: %v", err)
	} else {
		a.watcher = w
	}

	a.mainWindow = fyneApp.NewWindow(windowTitle)
	if appIcon != nil {
		a.mainWindow.SetIcon(appIcon)
	}

	a.setupMainWindow()

	if a.watcher != nil {
		a.model.OnChange(a.directoryChanged)
		a.model.Watch(a.watcher)
		if err := a.watcher.Start(); err != nil {
			log.Errorf("Failed to start filesystem watcher: %v", err)
		}
	}

	return a, nil
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run starts the GUI application and blocks until the window closes.
func (a *App) Run() {
	a.mainWindow.Show()
	a.fyneApp.Run()
	a.shutdown()
}

func (a *App) shutdown() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	a.buildTree()
	a.buildGrid()
	a.buildSlider()

	a.status = widget.NewLabel("")
	a.pathLabel = widget.NewLabel(a.model.Root())
	a.pathLabel.Truncation = fyne.TextTruncateEllipsis

	split := container.NewHSplit(a.tree, a.grid.Widget())
	split.SetOffset(0.35)

	content := container.NewBorder(
		a.buildToolbar(),
		a.createStatusBar(),
		nil,
		container.NewPadded(a.slider),
		split,
	)

	a.mainWindow.SetContent(content)
	a.mainWindow.Resize(fyne.NewSize(float32(a.cfg.Window.Width), float32(a.cfg.Window.Height)))

	// Both views start at the model root
	a.setRoots(a.model.RootIndex())
}

// buildToolbar creates the location shortcut actions plus the utility
// actions on the right.
func (a *App) buildToolbar() *widget.Toolbar {
	toolbar := widget.NewToolbar()
	for _, loc := range locations.All() {
		loc := loc
		toolbar.Append(widget.NewToolbarAction(locationIcon(a.assets, loc), func() {
			a.onLocationAction(loc)
		}))
	}
	toolbar.Append(widget.NewToolbarSeparator())
	toolbar.Append(widget.NewToolbarAction(theme.ViewRefreshIcon(), a.refreshContent))
	toolbar.Append(widget.NewToolbarSpacer())
	toolbar.Append(widget.NewToolbarAction(theme.SettingsIcon(), a.showSettings))
	toolbar.Append(widget.NewToolbarAction(theme.HelpIcon(), func() {
		dialog.ShowInformation("About xplor",
			"xplor is a small desktop file explorer: a directory tree,\n"+
				"an icon grid and shortcuts to the standard locations.",
			a.mainWindow)
	}))
	return toolbar
}

func (a *App) buildTree() {
	a.tree = widget.NewTree(
		func(uid widget.TreeNodeID) []widget.TreeNodeID {
			children := a.model.Children(a.indexForUID(uid))
			uids := make([]widget.TreeNodeID, len(children))
			for i, c := range children {
				uids[i] = widget.TreeNodeID(a.model.Path(c))
			}
			return uids
		},
		func(uid widget.TreeNodeID) bool {
			return a.model.IsDir(a.indexForUID(uid))
		},
		func(bool) fyne.CanvasObject {
			size := widget.NewLabel("")
			size.Importance = widget.LowImportance
			modified := widget.NewLabel("")
			modified.Importance = widget.LowImportance
			return container.NewHBox(widget.NewFileIcon(nil), widget.NewLabel("entry"), layout.NewSpacer(), size, modified)
		},
		func(uid widget.TreeNodeID, _ bool, o fyne.CanvasObject) {
			box := o.(*fyne.Container)
			ix := a.indexForUID(uid)
			box.Objects[0].(*widget.FileIcon).SetURI(storage.NewFileURI(string(uid)))
			box.Objects[1].(*widget.Label).SetText(a.model.Name(ix))
			sizeLabel := box.Objects[3].(*widget.Label)
			modLabel := box.Objects[4].(*widget.Label)
			entry, ok := a.model.Entry(ix)
			if !ok {
				sizeLabel.SetText("")
				modLabel.SetText("")
				return
			}
			if entry.IsDir {
				sizeLabel.SetText("")
			} else {
				sizeLabel.SetText(humanize.Bytes(uint64(entry.Size)))
			}
			modLabel.SetText(entry.ModTime.Format("2006-01-02 15:04"))
		},
	)
	a.tree.OnSelected = func(uid widget.TreeNodeID) {
		a.selectedPath = string(uid)
		if a.syncingSelection {
			return
		}
		a.onTreeClicked(a.model.Index(string(uid)))
	}
}

func (a *App) indexForUID(uid widget.TreeNodeID) fsmodel.Index {
	if uid == "" {
		return a.treeRoot
	}
	return a.model.Index(string(uid))
}

func (a *App) buildGrid() {
	a.grid = newFileGrid(a.model, a.cfg.View.IconSize)
	a.grid.onTapped = a.onListClicked
	a.grid.onDoubleTapped = a.onListDoubleClicked
}

func (a *App) buildSlider() {
	a.slider = widget.NewSlider(float64(config.IconSizeMin), float64(config.IconSizeMax))
	a.slider.Step = 1
	a.slider.Orientation = widget.Vertical
	a.slider.Value = float64(a.cfg.View.IconSize)
	a.slider.OnChanged = func(v float64) {
		a.onIconSizeChanged(int(v))
	}
}

// createStatusBar creates the footer with the grid's directory on the left
// and transient notices on the right.
func (a *App) createStatusBar() fyne.CanvasObject {
	return container.NewHBox(a.pathLabel, layout.NewSpacer(), a.status)
}

// onLocationAction points both views at a shortcut location. A location
// that resolves to nothing leaves the current roots unchanged.
func (a *App) onLocationAction(loc locations.Location) {
	path, ok := a.resolver.First(loc)
	if !ok {
		log.LogWithFields(log.F("location", string(loc))).Warn("location did not resolve to an existing directory")
		a.setStatus(fmt.Sprintf("%s is not available on this system", loc.Title()))
		return
	}

	ix := a.model.Index(path)
	if !ix.Valid() {
		log.LogWithFields(log.F("location", string(loc)), log.F("path", path)).Warn("location is outside the explorer root")
		a.setStatus(fmt.Sprintf("%s is outside the current root", loc.Title()))
		return
	}

	a.setRoots(ix)
}

// onTreeClicked keeps the grid rooted at a directory: a directory opens
// itself, a file opens its parent.
func (a *App) onTreeClicked(ix fsmodel.Index) {
	if !ix.Valid() {
		return
	}
	if a.model.IsDir(ix) {
		a.setListRoot(ix)
		return
	}
	a.setListRoot(a.model.Parent(ix))
}

// onListClicked mirrors the grid selection into the tree, replacing any
// previous selection.
func (a *App) onListClicked(ix fsmodel.Index) {
	if !ix.Valid() {
		return
	}

	uid := widget.TreeNodeID(a.model.Path(ix))
	a.syncingSelection = true
	a.tree.ScrollTo(uid)
	a.tree.Select(uid)
	a.syncingSelection = false

	if entry, ok := a.model.Entry(ix); ok && !entry.IsDir {
		a.setStatus(fmt.Sprintf("%s (%s)", entry.Name, humanize.Bytes(uint64(entry.Size))))
	}
}

// onListDoubleClicked roots the grid at the tapped entry without a
// directory check; a file yields an empty listing.
func (a *App) onListDoubleClicked(ix fsmodel.Index) {
	if !ix.Valid() {
		return
	}
	a.setListRoot(ix)
}

// onIconSizeChanged applies the slider value as the icon edge length for
// the grid cells.
func (a *App) onIconSizeChanged(size int) {
	if size < config.IconSizeMin {
		size = config.IconSizeMin
	}
	if size > config.IconSizeMax {
		size = config.IconSizeMax
	}
	a.cfg.View.IconSize = size
	a.grid.SetIconSize(size)
}

// setRoots points the tree and the grid at the same directory.
func (a *App) setRoots(ix fsmodel.Index) {
	a.treeRoot = ix
	a.tree.Root = widget.TreeNodeID(a.model.Path(ix))
	a.tree.Refresh()
	a.setListRoot(ix)
}

// setListRoot points the grid at a directory and updates the footer.
func (a *App) setListRoot(ix fsmodel.Index) {
	if !ix.Valid() {
		return
	}
	a.grid.SetRoot(ix)
	a.pathLabel.SetText(a.model.Path(ix))
	a.updateListingStatus(ix)
}

func (a *App) updateListingStatus(ix fsmodel.Index) {
	if err := a.model.LastError(ix); err != nil {
		a.setStatus("directory is not readable")
		return
	}
	count := a.model.ChildCount(ix)
	if count == 1 {
		a.setStatus("1 item")
		return
	}
	a.setStatus(fmt.Sprintf("%s items", humanize.Comma(int64(count))))
}

func (a *App) setStatus(text string) {
	a.status.SetText(text)
}

// refreshContent re-reads both views from disk.
func (a *App) refreshContent() {
	a.model.Refresh(a.treeRoot)
	a.model.Refresh(a.grid.Root())
	a.tree.Refresh()
	a.grid.Reload()
	a.updateListingStatus(a.grid.Root())
}

// directoryChanged refreshes the affected view after an external change.
// It runs on the watcher goroutine.
func (a *App) directoryChanged(dir string) {
	log.Debugf("directory changed: %s", dir)
	if root := a.grid.Root(); root.Valid() && a.model.Path(root) == dir {
		a.grid.Reload()
		a.updateListingStatus(root)
	}
	a.tree.Refresh()
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.LogError(err, title)
	dialog.ShowError(err, a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.mainWindow)
}

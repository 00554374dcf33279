package gui

import (
	"strings"

	"xplor/internal/config"
	"xplor/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showSettings opens the view options dialog. Changes apply to the running
// model and are persisted on save.
func (a *App) showSettings() {
	hiddenCheck := widget.NewCheck("Show hidden files", nil)
	hiddenCheck.SetChecked(a.cfg.View.ShowHidden)

	filtersEntry := widget.NewEntry()
	filtersEntry.SetPlaceHolder("*.png, *.jpg")
	filtersEntry.SetText(strings.Join(a.cfg.View.NameFilters, ", "))

	debugCheck := widget.NewCheck("Debug logging", nil)
	debugCheck.SetChecked(a.cfg.Log.Debug)

	form := dialog.NewForm("Settings", "Save", "Cancel", []*widget.FormItem{
		widget.NewFormItem("Hidden files", hiddenCheck),
		widget.NewFormItem("Name filters", filtersEntry),
		widget.NewFormItem("Logging", debugCheck),
	}, func(save bool) {
		if !save {
			return
		}
		a.applySettings(hiddenCheck.Checked, parseFilters(filtersEntry.Text), debugCheck.Checked)
	}, a.mainWindow)

	form.Resize(fyne.NewSize(420, form.MinSize().Height))
	form.Show()
}

// parseFilters splits a comma-separated pattern list, dropping empties.
func parseFilters(text string) []string {
	var filters []string
	for _, part := range strings.Split(text, ",") {
		if pattern := strings.TrimSpace(part); pattern != "" {
			filters = append(filters, pattern)
		}
	}
	return filters
}

func (a *App) applySettings(showHidden bool, filters []string, debug bool) {
	if err := a.model.SetNameFilters(filters); err != nil {
		a.ShowError("Invalid name filters", err)
		return
	}

	a.model.SetShowHidden(showHidden)
	a.cfg.View.ShowHidden = showHidden
	a.cfg.View.NameFilters = filters
	a.cfg.Log.Debug = debug
	log.SetDebug(debug)

	a.tree.Refresh()
	a.grid.Reload()
	a.updateListingStatus(a.grid.Root())

	a.saveConfig()
}

// saveConfig saves the current configuration
func (a *App) saveConfig() {
	path := a.cfgPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			log.Errorf("Cannot determine config path: %v", err)
			return
		}
	}
	if err := config.SaveConfig(a.cfg, path); err != nil {
		a.ShowError("Failed to save configuration", err)
		return
	}
	a.setStatus("settings saved")
}

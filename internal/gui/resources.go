package gui

import (
	"os"
	"path/filepath"

	"xplor/internal/locations"
	"xplor/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// StyleFileName is the stylesheet looked up in the asset directories.
const StyleFileName = "style.yaml"

// appIconFileName is the application icon looked up in the asset directories.
const appIconFileName = "xplor.svg"

// assetDirs returns the directories searched for bundled resources, in
// priority order. An explicit directory always wins over the defaults.
func assetDirs(explicit string) []string {
	var dirs []string
	if explicit != "" {
		dirs = append(dirs, explicit)
	}
	dirs = append(dirs, "assets")
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "xplor", "assets"))
	}
	return dirs
}

// findAsset returns the first existing path for name across the asset
// directories, or "" when the asset is not shipped.
func findAsset(dirs []string, name string) string {
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadIcon loads a named icon resource from the asset directories.
// Returns nil when the icon is missing or unreadable.
func loadIcon(dirs []string, name string) fyne.Resource {
	path := findAsset(dirs, name)
	if path == "" {
		return nil
	}
	res, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		log.Warnf("Could not load icon from %s: %v", path, err)
		return nil
	}
	return res
}

// locationIcon returns the toolbar icon for a location, falling back to a
// stock theme icon when no asset is shipped for it.
func locationIcon(dirs []string, loc locations.Location) fyne.Resource {
	if res := loadIcon(dirs, loc.IconName()); res != nil {
		return res
	}

	log.Debugf("no icon asset for location %s, using theme icon", loc)
	switch loc {
	case locations.Home:
		return theme.HomeIcon()
	case locations.Desktop:
		return theme.ComputerIcon()
	case locations.Documents:
		return theme.DocumentIcon()
	case locations.Movies:
		return theme.MediaVideoIcon()
	case locations.Pictures:
		return theme.MediaPhotoIcon()
	case locations.Music:
		return theme.MediaMusicIcon()
	}
	return theme.FolderIcon()
}

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"xplor/internal/fsmodel"
)

// fileGrid is the icon-mode file listing: a wrapped grid of fileCells
// showing the children of one directory of the shared model.
type fileGrid struct {
	wrap  *widget.GridWrap
	model *fsmodel.Model

	root     fsmodel.Index
	children []fsmodel.Index

	iconSize float32
	selected string

	onTapped       func(fsmodel.Index)
	onDoubleTapped func(fsmodel.Index)
}

func newFileGrid(model *fsmodel.Model, iconSize int) *fileGrid {
	g := &fileGrid{
		model:    model,
		iconSize: float32(iconSize),
	}
	g.wrap = widget.NewGridWrap(
		func() int {
			return len(g.children)
		},
		func() fyne.CanvasObject {
			return newFileCell(g)
		},
		func(id widget.GridWrapItemID, o fyne.CanvasObject) {
			if int(id) >= len(g.children) {
				return
			}
			entry, ok := g.model.Entry(g.children[id])
			if !ok {
				return
			}
			o.(*fileCell).setEntry(entry.Path, entry.Name, entry.Path == g.selected)
		},
	)
	return g
}

// Widget returns the canvas object to place in a layout.
func (g *fileGrid) Widget() fyne.CanvasObject {
	return g.wrap
}

// Root returns the directory the grid currently displays.
func (g *fileGrid) Root() fsmodel.Index {
	return g.root
}

// SetRoot points the grid at a directory and reloads its children.
// The selection does not carry over to the new listing.
func (g *fileGrid) SetRoot(ix fsmodel.Index) {
	g.root = ix
	g.selected = ""
	g.Reload()
}

// Reload re-reads the children of the current root from the model.
func (g *fileGrid) Reload() {
	g.children = g.model.Children(g.root)
	g.wrap.Refresh()
}

// IconSize returns the current icon edge length.
func (g *fileGrid) IconSize() float32 {
	return g.iconSize
}

// SetIconSize applies a new icon edge length to every cell.
func (g *fileGrid) SetIconSize(size int) {
	g.iconSize = float32(size)
	g.wrap.Refresh()
}

func (g *fileGrid) cellTapped(path string) {
	g.selected = path
	g.wrap.Refresh()
	if g.onTapped != nil {
		g.onTapped(g.model.Index(path))
	}
}

func (g *fileGrid) cellDoubleTapped(path string) {
	if g.onDoubleTapped != nil {
		g.onDoubleTapped(g.model.Index(path))
	}
}

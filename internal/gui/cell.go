package gui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// fileCell is one icon-mode item in the file grid: an icon above a caption.
// A single tap selects the entry, a second tap within the double-tap delay
// activates it.
type fileCell struct {
	widget.BaseWidget
	grid *fileGrid

	path string

	icon  *widget.FileIcon
	label *widget.Label
	bg    *canvas.Rectangle

	lastTap time.Time
}

func newFileCell(g *fileGrid) *fileCell {
	c := &fileCell{
		grid:  g,
		icon:  widget.NewFileIcon(nil),
		label: widget.NewLabel(""),
		bg:    canvas.NewRectangle(theme.SelectionColor()),
	}
	c.bg.Hide()
	c.label.Alignment = fyne.TextAlignCenter
	c.label.Truncation = fyne.TextTruncateEllipsis
	c.ExtendBaseWidget(c)
	return c
}

func (c *fileCell) setEntry(path, name string, selected bool) {
	if c.path != path {
		c.path = path
		c.icon.SetURI(storage.NewFileURI(path))
		c.label.SetText(name)
	}
	c.setSelected(selected)
}

func (c *fileCell) setSelected(selected bool) {
	if selected == c.bg.Visible() {
		return
	}
	if selected {
		c.bg.Show()
	} else {
		c.bg.Hide()
	}
	c.Refresh()
}

func (c *fileCell) Tapped(_ *fyne.PointEvent) {
	now := time.Now()
	double := now.Sub(c.lastTap) < fyne.CurrentApp().Driver().DoubleTapDelay()
	c.lastTap = now

	if double {
		c.grid.cellDoubleTapped(c.path)
		return
	}
	c.grid.cellTapped(c.path)
}

func (c *fileCell) CreateRenderer() fyne.WidgetRenderer {
	return &fileCellRenderer{cell: c}
}

type fileCellRenderer struct {
	cell *fileCell
}

func (r *fileCellRenderer) Layout(size fyne.Size) {
	r.cell.bg.Resize(size)

	iconSize := fyne.NewSquareSize(r.cell.grid.IconSize())
	r.cell.icon.Resize(iconSize)
	r.cell.icon.Move(fyne.NewPos((size.Width-iconSize.Width)/2, theme.Padding()))

	labelHeight := r.cell.label.MinSize().Height
	r.cell.label.Resize(fyne.NewSize(size.Width, labelHeight))
	r.cell.label.Move(fyne.NewPos(0, iconSize.Height+theme.Padding()*1.5))
}

func (r *fileCellRenderer) MinSize() fyne.Size {
	edge := r.cell.grid.IconSize()
	labelHeight := r.cell.label.MinSize().Height
	return fyne.NewSize(edge+theme.Padding()*4, edge+labelHeight+theme.Padding()*3)
}

func (r *fileCellRenderer) Refresh() {
	r.cell.bg.FillColor = theme.SelectionColor()
	r.cell.bg.Refresh()
	r.cell.icon.Refresh()
	r.cell.label.Refresh()
}

func (r *fileCellRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.cell.bg, r.cell.icon, r.cell.label}
}

func (r *fileCellRenderer) Destroy() {}

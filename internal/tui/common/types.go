package common

// Row is one visible line in the directory tree pane.
type Row struct {
	Path     string
	Name     string
	Depth    int
	IsDir    bool
	Expanded bool
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	TreePane() string
	EntryPane() string
	StatusPane() string
	HelpPane() string
}

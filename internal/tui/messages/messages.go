package messages

import (
	"xplor/pkg/types"
)

// ListingMsg delivers one directory listing after a load command finishes.
type ListingMsg struct {
	Dir     string
	Entries []types.Entry
	Err     error
}

// WatchMsg reports an externally changed directory.
type WatchMsg struct {
	Dir string
}

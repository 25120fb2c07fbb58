// Package link carries messages between the render window and the status
// window over a gob encoded connection.
package link

import "encoding/gob"

func init() {
	gob.Register(Snapshot{})
	gob.Register(NewGame{})
	gob.Register(SaveImage{})
}

// Snapshot is the state the status window shows.
type Snapshot struct {
	Session   string
	Program   string
	Status    string
	Score     int
	Alive     int
	Total     int
	Crossings int
	Over      bool
}

// NewGame asks the render window to start the named program from scratch.
type NewGame struct {
	Program string
}

// SaveImage asks the render window to write the current frame to Name as a
// PNG.
type SaveImage struct {
	Name      string
	Antialias float32
}

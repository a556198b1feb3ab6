package library

import "fmt"

// Episode represents a single numbered video file inside the library directory.
type Episode struct {
	// Number is the positive integer parsed from the file's base name.
	Number int `json:"number"`

	// Path is the location of the backing file.
	Path string `json:"path"`
}

func (e Episode) String() string {
	return fmt.Sprintf("Episode %d", e.Number)
}

package model

import "time"

// FileInfo describes one entry of the upload directory listing.
// This is a pure domain model with no storage-specific dependencies or tags;
// it can be used across layers (HTTP, service, storage) without coupling.
type FileInfo struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	IsDir   bool      `json:"is_dir"`
}

// Preview is the view-page DTO: the displayable text of a stored file plus
// servable paths of any images extracted from it.
type Preview struct {
	Filename string   `json:"filename"`
	Content  string   `json:"content"`
	Images   []string `json:"images"`
}

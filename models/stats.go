package models

// DirectoryStats is a point-in-time summary of the directory.
type DirectoryStats struct {
	Users int `json:"users"`
}

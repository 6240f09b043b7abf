package store

import "github.com/MKhiriev/go-secmsg-directory/internal/logger"

// Storages groups the shared state owned by the server process.
type Storages struct {
	Directory Directory
}

// NewStorages creates empty process-lifetime storages.
func NewStorages(logger *logger.Logger) *Storages {
	return &Storages{
		Directory: NewDirectory(logger),
	}
}

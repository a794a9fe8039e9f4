// Package pipeline wires the accident loader into the two analysis paths:
// multi-year monthly summaries and single-year state maps.
package pipeline

import (
	"path/filepath"

	"github.com/couchcryptid/fars-accidents/internal/domain"
)

// Loader reads one yearly accident file.
type Loader interface {
	Load(path string) (domain.AccidentTable, error)
}

// MapRenderer draws a state map. DrawBaseMap is called once per map, before
// DrawPoints; Flush writes the finished map.
type MapRenderer interface {
	DrawBaseMap(bounds domain.Bounds) error
	DrawPoints(points []domain.Point) error
	Flush() error
}

// yearPath resolves the archive for year inside dataDir.
func yearPath(dataDir string, year any) (string, error) {
	name, err := domain.MakeFilename(year)
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}

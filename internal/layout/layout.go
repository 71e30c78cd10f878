package layout

import (
	"path/filepath"

	"mercedes/internal/artifact"
)

const (
	// StatusFileName is the daemon-wide status record under the root.
	StatusFileName = "mercedes.properties"
	// ArtifactInfoFileName is the daemon-maintained per-artifact record.
	ArtifactInfoFileName = "mercedes.artifactInfo"
	// UpdateInfoFileName is the self-maintained per-artifact check record.
	UpdateInfoFileName = "mercedes.updateInfo"
)

// Layout resolves mercedes file locations beneath a repository root
// (conventionally ~/.m2).
type Layout struct {
	Root string
}

// StatusPath returns the location of the daemon status record.
func (l Layout) StatusPath() string {
	return filepath.Join(l.Root, StatusFileName)
}

// ArtifactDir returns the repository directory for the given key, built from
// the group id segments followed by the artifact id.
func (l Layout) ArtifactDir(key artifact.Key) string {
	parts := append([]string{l.Root, "repository"}, key.GroupSegments()...)
	parts = append(parts, key.ArtifactID)
	return filepath.Join(parts...)
}

// ArtifactInfoPath returns the daemon-maintained freshness record path.
func (l Layout) ArtifactInfoPath(key artifact.Key) string {
	return filepath.Join(l.ArtifactDir(key), ArtifactInfoFileName)
}

// UpdateInfoPath returns the self-maintained check record path. When the key
// carries a version the record nests one level deeper, so checks for
// different versions of an artifact do not overwrite each other.
func (l Layout) UpdateInfoPath(key artifact.Key) string {
	dir := l.ArtifactDir(key)
	if key.Version != "" {
		dir = filepath.Join(dir, key.Version)
	}
	return filepath.Join(dir, UpdateInfoFileName)
}

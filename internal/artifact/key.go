package artifact

import "strings"

// Key identifies an artifact in a Maven-style repository. Version may be
// empty; group and artifact ids must be present for the key to be usable.
type Key struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// Complete reports whether the key carries enough identity to resolve
// per-artifact records. A key without group or artifact id cannot be mapped
// to a repository directory.
func (k Key) Complete() bool {
	return k.GroupID != "" && k.ArtifactID != ""
}

// GroupSegments splits the group id on dots into path segments.
func (k Key) GroupSegments() []string {
	return strings.Split(k.GroupID, ".")
}

// Coordinates renders the key as group:artifact[:version] for logs and
// command output.
func (k Key) Coordinates() string {
	coords := k.GroupID + ":" + k.ArtifactID
	if k.Version != "" {
		coords += ":" + k.Version
	}
	return coords
}

// Package artifact defines the coordinates that identify a resolvable
// artifact: group id, artifact id, and an optional version.
package artifact

// Package layout maps artifact coordinates to the on-disk locations of the
// mercedes record files inside a user-scoped repository root.
//
// Three files matter:
//
//	<root>/mercedes.properties                              daemon status
//	<root>/repository/<group>/<artifact>/mercedes.artifactInfo   daemon record
//	<root>/repository/<group>/<artifact>[/<version>]/mercedes.updateInfo  self record
//
// The daemon owns the first two; the update checker writes only the third.
package layout

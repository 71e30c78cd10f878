// Package updatecheck decides whether a remote metadata freshness check can
// be skipped because the background daemon already answered it more recently.
//
// The checker combines three inputs: the daemon-wide status loaded once at
// startup, the daemon-maintained per-artifact freshness record, and the check
// record this package itself maintains. Reads fail open: any record that
// cannot be trusted yields "perform the real check". The one hard failure is
// the unconditional closing write of the self check record, because losing
// that bookkeeping would silently corrupt every later decision.
package updatecheck

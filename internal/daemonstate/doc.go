// Package daemonstate loads and classifies the daemon-wide status record.
//
// The record is read once at startup and the resulting Status is passed by
// value into whatever needs it; there is no hidden singleton and no re-read.
// A missing or unreadable record degrades to the invalid zero Status, which
// makes every downstream decision fall back to the real remote check.
package daemonstate

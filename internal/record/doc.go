// Package record reads and writes single-timestamp freshness records.
//
// A record is a Java-style properties file holding one key, lastUpdateTime,
// as decimal epoch milliseconds. Loads never fail hard: every way a record
// can be missing or untrustworthy maps to a distinct Status so the decision
// policy can branch on what actually happened. Writes replace the record
// wholesale via a temp file in the target directory followed by a rename, so
// a concurrent reader only ever observes a complete old or new value.
package record

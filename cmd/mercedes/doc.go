// Command mercedes inspects and exercises the update-skip decision engine.
//
// It reads the same on-disk records the embedding resolver consults: the
// daemon status file, the daemon-maintained artifact records, and the
// self-maintained check records. The status and records commands are
// read-only; check runs one real decision including its bookkeeping write.
package main

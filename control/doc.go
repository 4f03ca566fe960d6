// Package control holds runtime counters and debug probes for the command
// line tools.
//
// Both registries are safe for concurrent use. Snapshots are copies, so
// callers may keep or modify them freely.
package control

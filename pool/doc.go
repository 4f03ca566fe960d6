// Package pool
// License: Apache-2.0
//
// Reusable buffers for reads from kernel descriptors.
//
// An inotify read must be large enough for at least one full event record,
// and a busy watcher reads constantly, so read buffers are recycled through
// a sync.Pool instead of being allocated per read. Callers must copy out
// anything they keep before putting a buffer back.
package pool

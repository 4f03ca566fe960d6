// Package fd
// License: Apache-2.0
//
// Ownership wrapper for a single kernel file descriptor.
//
// A Guard is created from a descriptor that some allocation call just
// returned and guarantees the descriptor is given back exactly once: by
// Close, by Release (which hands it to the caller without closing), or by a
// finalizer if the Guard becomes unreachable while still owning it.
//
// Close failures from the finalizer path are swallowed. Retrying close on a
// descriptor number the kernel may already have handed out again would close
// an unrelated resource.
package fd

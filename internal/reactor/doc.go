// Copyright (c) 2025
// License: Apache-2.0

// Package reactor is a small epoll(7) loop used by the command line tools to
// wait on an inotify descriptor and a shutdown wakeup at the same time.
//
// Callbacks run on the goroutine calling Poll. A panicking callback is
// logged and does not stop the loop.
package reactor

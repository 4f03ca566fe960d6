// File: internal/reactor/reactor_linux.go
// License: Apache-2.0
//
// epoll implementation.

package reactor

import (
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/cactorium/nix/api"
	"github.com/cactorium/nix/fd"
)

const maxEvents = 128

// Reactor dispatches epoll readiness to callbacks.
type Reactor struct {
	ep        *fd.Guard
	mu        sync.RWMutex
	callbacks map[int]Callback
}

// New creates an epoll instance.
func New() (*Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, api.Check("epoll_create1", err)
	}
	return &Reactor{
		ep:        fd.New(epfd),
		callbacks: make(map[int]Callback),
	}, nil
}

func (r *Reactor) epfd(op string) (int, error) {
	raw := r.ep.Fd()
	if raw < 0 {
		return -1, api.ErrClosed.WithContext("op", op)
	}
	return raw, nil
}

// Register adds a descriptor to the watch list. Readiness is level
// triggered.
func (r *Reactor) Register(fd int, events EventType, cb Callback) error {
	epfd, err := r.epfd("epoll_ctl")
	if err != nil {
		return err
	}
	var ev unix.EpollEvent
	if events&EventRead != 0 {
		ev.Events |= unix.EPOLLIN
	}
	if events&EventWrite != 0 {
		ev.Events |= unix.EPOLLOUT
	}
	ev.Fd = int32(fd)

	r.mu.Lock()
	defer r.mu.Unlock()
	err = unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, fd, &ev)
	runtime.KeepAlive(r.ep)
	if err != nil {
		return api.Check("epoll_ctl(ADD)", err)
	}
	r.callbacks[fd] = cb
	return nil
}

// Unregister removes a descriptor from the watch list.
func (r *Reactor) Unregister(fd int) error {
	epfd, err := r.epfd("epoll_ctl")
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	err = unix.EpollCtl(epfd, unix.EPOLL_CTL_DEL, fd, nil)
	runtime.KeepAlive(r.ep)
	if err != nil {
		return api.Check("epoll_ctl(DEL)", err)
	}
	delete(r.callbacks, fd)
	return nil
}

// Poll waits for readiness and runs the callbacks. A negative timeout
// blocks until something is ready. It returns the number of callbacks run;
// a wait interrupted by a signal counts as zero events.
func (r *Reactor) Poll(timeout time.Duration) (int, error) {
	epfd, err := r.epfd("epoll_wait")
	if err != nil {
		return 0, err
	}
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}

	var events [maxEvents]unix.EpollEvent
	n, err := unix.EpollWait(epfd, events[:], ms)
	runtime.KeepAlive(r.ep)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, api.Check("epoll_wait", err)
	}

	ran := 0
	for i := 0; i < n; i++ {
		ev := events[i]
		fd := int(ev.Fd)

		r.mu.RLock()
		cb, ok := r.callbacks[fd]
		r.mu.RUnlock()
		if !ok {
			continue
		}

		var kind EventType
		if ev.Events&unix.EPOLLIN != 0 {
			kind |= EventRead
		}
		if ev.Events&unix.EPOLLOUT != 0 {
			kind |= EventWrite
		}
		if ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			kind |= EventError
		}
		dispatch(cb, fd, kind)
		ran++
	}
	return ran, nil
}

func dispatch(cb Callback, fd int, kind EventType) {
	defer func() {
		if p := recover(); p != nil {
			logrus.WithFields(logrus.Fields{"fd": fd, "event": kind}).Errorf("reactor callback panic: %v", p)
		}
	}()
	cb(fd, kind)
}

// Close releases the epoll descriptor. Registered descriptors stay open.
func (r *Reactor) Close() error { return r.ep.Close() }

package main

import (
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/cactorium/nix/control"
	"github.com/cactorium/nix/inotify"
	"github.com/cactorium/nix/internal/reactor"
)

// run writes one line per event to out until every watch is gone or a
// signal arrives. The inotify descriptor and a wakeup pipe share one epoll
// loop.
func run(out io.Writer, specs []watchSpec, bufSize int, metrics *control.MetricsRegistry, probes *control.DebugProbes) error {
	in, err := inotify.New(inotify.NonBlock | inotify.CloseOnExec)
	if err != nil {
		return errors.Wrap(err, "cannot create inotify instance")
	}
	defer in.Close()

	roots := make(map[inotify.Watch]string, len(specs))
	for _, s := range specs {
		w, err := in.Add(s.path, s.mask)
		if err != nil {
			return errors.Wrapf(err, "cannot watch %s", s.path)
		}
		log.Debugf("watching %s (%s) as %s", s.path, s.mask, w)
		roots[w] = s.path
	}
	metrics.Set("watches", len(roots))

	r, err := reactor.New()
	if err != nil {
		return err
	}
	defer r.Close()
	wake, err := reactor.NewWaker()
	if err != nil {
		return err
	}
	defer wake.Close()

	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, unix.SIGINT, unix.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case s := <-sigs:
			log.Debugf("received %s", s)
			_ = wake.Wake()
		case <-done:
		}
	}()
	defer close(done)

	rd := inotify.NewReader(in, inotify.WithBufferSize(bufSize))
	probes.RegisterProbe("reader.reads", func() any { return rd.Reads() })

	var (
		stop    bool
		loopErr error
	)
	if err := r.Register(wake.Fd(), reactor.EventRead, func(int, reactor.EventType) {
		wake.Drain()
		stop = true
	}); err != nil {
		return err
	}
	if err := r.Register(in.Fd(), reactor.EventRead, func(int, reactor.EventType) {
		for {
			ev, err := rd.Next()
			if errors.Is(err, unix.EAGAIN) {
				return
			}
			if err != nil {
				loopErr, stop = err, true
				return
			}
			if ev.Overflow() {
				log.Warn("event queue overflowed, events were lost")
				metrics.Inc("events.overflow")
				continue
			}
			report(out, ev, roots[ev.Watch], metrics)
			if ev.Has(inotify.Ignored) {
				delete(roots, ev.Watch)
				if len(roots) == 0 {
					stop = true
				}
			}
		}
	}); err != nil {
		return err
	}

	for !stop {
		if _, err := r.Poll(-1); err != nil {
			return err
		}
	}
	return loopErr
}

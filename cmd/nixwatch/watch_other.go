//go:build !linux

package main

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/cactorium/nix/control"
	"github.com/cactorium/nix/inotify"
)

// opMask maps fsnotify operations onto the nearest inotify events so the
// output matches the Linux build.
func opMask(op fsnotify.Op) inotify.EventMask {
	var m inotify.EventMask
	if op.Has(fsnotify.Create) {
		m |= inotify.Create
	}
	if op.Has(fsnotify.Write) {
		m |= inotify.Modify
	}
	if op.Has(fsnotify.Remove) {
		m |= inotify.Delete
	}
	if op.Has(fsnotify.Rename) {
		m |= inotify.MovedFrom
	}
	if op.Has(fsnotify.Chmod) {
		m |= inotify.Attrib
	}
	return m
}

// run writes one line per fsnotify event to out until a signal arrives.
func run(out io.Writer, specs []watchSpec, bufSize int, metrics *control.MetricsRegistry, probes *control.DebugProbes) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "cannot create watcher")
	}
	defer w.Close()

	byPath := make(map[string]int, len(specs))
	for i, s := range specs {
		p := filepath.Clean(s.path)
		if err := w.Add(p); err != nil {
			return errors.Wrapf(err, "cannot watch %s", s.path)
		}
		byPath[p] = i
	}
	metrics.Set("watches", len(byPath))
	probes.RegisterProbe("backend", func() any { return "fsnotify" })

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	for {
		select {
		case s := <-sigs:
			log.Debugf("received %s", s)
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "watcher")
		case fe, ok := <-w.Events:
			if !ok {
				return nil
			}
			idx, name, found := locate(byPath, fe.Name)
			if !found {
				continue
			}
			m := opMask(fe.Op).Intersect(specs[idx].mask)
			if m == 0 {
				continue
			}
			ev := inotify.Event{Watch: inotify.Watch(idx + 1), Mask: m, Name: name}
			report(out, ev, specs[idx].path, metrics)
		}
	}
}

// locate finds the watch an fsnotify path belongs to: the path itself or
// its parent directory.
func locate(byPath map[string]int, name string) (int, string, bool) {
	name = filepath.Clean(name)
	if i, ok := byPath[name]; ok {
		return i, "", true
	}
	if i, ok := byPath[filepath.Dir(name)]; ok {
		return i, filepath.Base(name), true
	}
	return 0, "", false
}

//go:build linux || darwin

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	creackpty "github.com/creack/pty"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/cactorium/nix/pty"
)

// slaveName runs posix_openpt, grantpt, unlockpt and ptsname in order.
func slaveName(reentrant bool) (string, error) {
	m, err := pty.OpenMaster(pty.ReadWrite | pty.NoCtty | pty.CloseOnExec)
	if err != nil {
		return "", err
	}
	defer m.Close()

	if err := pty.Grant(m); err != nil {
		return "", err
	}
	if err := pty.Unlock(m); err != nil {
		return "", err
	}
	if reentrant {
		return ptsnameR(m)
	}
	return pty.Ptsname(m)
}

func probe(out io.Writer) error {
	res, err := pty.Openpty(&pty.Winsize{Row: 24, Col: 80}, nil)
	if err != nil {
		return errors.Wrap(err, "openpty")
	}
	master, slave := res.Files()
	defer master.Close()
	defer slave.Close()

	steps := []struct {
		from, to *os.File
		send     string
		want     string
	}{
		{master, slave, "foofoofoo\n", "foofoofoo\n"},
		// Echo of the first line.
		{nil, master, "", "foofoofoo\r\n"},
		{slave, master, "barbarbarbar\n", "barbarbarbar\r\n"},
	}
	for _, s := range steps {
		if s.from != nil {
			if _, err := s.from.Write([]byte(s.send)); err != nil {
				return errors.Wrapf(err, "write %s", s.from.Name())
			}
		}
		got := make([]byte, len(s.want))
		if _, err := io.ReadFull(s.to, got); err != nil {
			return errors.Wrapf(err, "read %s", s.to.Name())
		}
		if !bytes.Equal(got, []byte(s.want)) {
			return errors.Errorf("%s: got %q, want %q", s.to.Name(), got, s.want)
		}
		log.Debugf("%s -> %q", s.to.Name(), got)
	}
	fmt.Fprintln(out, "ok")
	return nil
}

// shell starts args[0] on a fresh pair, relays the terminal and waits.
func shell(args []string) error {
	var ws *pty.Winsize
	if sz, err := creackpty.GetsizeFull(os.Stdin); err == nil {
		ws = &pty.Winsize{Row: sz.Rows, Col: sz.Cols, Xpixel: sz.X, Ypixel: sz.Y}
	}
	res, err := pty.Openpty(ws, nil)
	if err != nil {
		return errors.Wrap(err, "openpty")
	}
	master, slave := res.Files()
	defer master.Close()

	c := exec.Command(args[0], args[1:]...)
	c.Stdin, c.Stdout, c.Stderr = slave, slave, slave
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true, Ctty: 0}
	if err := c.Start(); err != nil {
		slave.Close()
		return errors.Wrapf(err, "cannot start %s", args[0])
	}
	slave.Close()

	var sid pty.SessionID = c.Process.Pid
	log.Infof("session %d on %s", sid, args[0])

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, unix.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			if sz, err := creackpty.GetsizeFull(os.Stdin); err == nil {
				_ = creackpty.Setsize(master, sz)
			}
		}
	}()

	stdin := int(os.Stdin.Fd())
	if term.IsTerminal(stdin) {
		old, err := term.MakeRaw(stdin)
		if err != nil {
			return errors.Wrap(err, "raw mode")
		}
		defer term.Restore(stdin, old)
	}

	go func() { _, _ = io.Copy(master, os.Stdin) }()
	// The master reads EIO once the last slave descriptor is closed.
	if _, err := io.Copy(os.Stdout, master); err != nil && !errors.Is(err, syscall.EIO) {
		log.Debugf("relay: %v", err)
	}
	return c.Wait()
}

//go:build !linux && !darwin

// File: pty/pty_stub.go
// License: Apache-2.0
//
// Stub implementation for unsupported platforms.

package pty

import (
	"os"

	"github.com/cactorium/nix/api"
)

// Master is the master side of a PTY pair. It cannot be created on this
// platform.
type Master struct{}

// Slave is an opened slave device.
type Slave struct{}

// OpenptyResult is a freshly allocated pair.
type OpenptyResult struct {
	Master int
	Slave  int
	Name   string
}

// Winsize stands in for the kernel window size structure.
type Winsize struct {
	Row, Col, Xpixel, Ypixel uint16
}

// Termios stands in for the kernel terminal attribute structure.
type Termios struct{}

// SessionID identifies a session by the process id of its leader.
type SessionID = int

func (m *Master) Fd() int        { return -1 }
func (m *Master) Close() error   { return api.ErrClosed }
func (m *Master) Release() int   { return -1 }
func (m *Master) File() *os.File { return nil }
func (s *Slave) Fd() int         { return -1 }
func (s *Slave) Close() error    { return api.ErrClosed }
func (s *Slave) Release() int    { return -1 }
func (s *Slave) File() *os.File  { return nil }
func (s *Slave) Name() string    { return "" }

func (r *OpenptyResult) Close() error                    { return nil }
func (r *OpenptyResult) Files() (master, slave *os.File) { return nil, nil }

func OpenMaster(flags OpenFlags) (*Master, error)            { return nil, api.ErrNotSupported }
func Grant(m *Master) error                                  { return api.ErrNotSupported }
func Unlock(m *Master) error                                 { return api.ErrNotSupported }
func Ptsname(m *Master) (string, error)                      { return "", api.ErrNotSupported }
func OpenSlave(name string, flags OpenFlags) (*Slave, error) { return nil, api.ErrNotSupported }

func Openpty(ws *Winsize, t *Termios) (OpenptyResult, error) {
	return OpenptyResult{Master: -1, Slave: -1}, api.ErrNotSupported
}

package main

import "github.com/cactorium/nix/pty"

// ptsname_r is not offered here; Ptsname is safe in this single-threaded
// command.
func ptsnameR(m *pty.Master) (string, error) { return pty.Ptsname(m) }

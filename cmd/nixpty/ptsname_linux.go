package main

import "github.com/cactorium/nix/pty"

func ptsnameR(m *pty.Master) (string, error) { return pty.PtsnameR(m, nil) }

// Copyright (c) 2025
// License: Apache-2.0

// Package pty allocates pseudo-terminal pairs.
//
// Two ways in are offered. The manual protocol mirrors posix_openpt(3):
//
//	m, err := pty.OpenMaster(pty.ReadWrite | pty.NoCtty | pty.CloseOnExec)
//	if err != nil { ... }
//	defer m.Close()
//	if err := pty.Grant(m); err != nil { ... }
//	if err := pty.Unlock(m); err != nil { ... }
//	name, err := pty.Ptsname(m)
//	if err != nil { ... }
//	s, err := pty.OpenSlave(name, pty.ReadWrite|pty.NoCtty)
//
// Grant, Unlock and Ptsname only accept a *Master, and a *Master can only be
// obtained from OpenMaster, so the steps cannot be applied to an arbitrary
// descriptor. Grant and Unlock must both succeed before the slave is opened;
// on Linux opening a still-locked slave fails with EIO.
//
// Openpty performs the whole sequence at once and returns both descriptors,
// already open and owned by the caller, with optional window size and
// terminal settings applied to the slave.
//
// Ptsname formats the name into one package-level buffer, exactly like the C
// library, and is therefore not safe for concurrent use. Callers must
// serialize it themselves or use PtsnameR (Linux only).
//
// Linux and macOS are supported. PtsnameR exists only on Linux. On other
// platforms every operation returns api.ErrNotSupported.
package pty

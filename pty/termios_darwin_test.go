package pty_test

import "golang.org/x/sys/unix"

const termiosGet = unix.TIOCGETA

//go:build !linux && !darwin

package main

import (
	"io"

	"github.com/cactorium/nix/api"
)

func slaveName(bool) (string, error) { return "", api.ErrNotSupported }
func probe(io.Writer) error          { return api.ErrNotSupported }
func shell([]string) error           { return api.ErrNotSupported }

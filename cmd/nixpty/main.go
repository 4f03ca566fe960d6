// Command nixpty allocates pseudo-terminals and exercises them.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cactorium/nix/internal/logging"
)

func newCmd() *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:               "nixpty",
		Short:             "Pseudo-terminal allocation tools",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(logLevel, cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (error, warn, info, debug)")

	cmd.AddCommand(nameCmd(), probeCmd(), shellCmd())
	return cmd
}

func nameCmd() *cobra.Command {
	var reentrant bool
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Allocate a master and print the path of its slave",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := slaveName(reentrant)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&reentrant, "reentrant", "r", false, "use ptsname_r where available")
	return cmd
}

func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Allocate a pair and pass a line each way through it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return probe(cmd.OutOrStdout())
		},
	}
}

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell [PROGRAM [ARGS...]]",
		Short: "Run a program (default $SHELL) as a session leader on a new pseudo-terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				sh := os.Getenv("SHELL")
				if sh == "" {
					sh = "/bin/sh"
				}
				args = []string{sh}
			}
			return shell(args)
		},
	}
}

func main() {
	if err := newCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// Command nixwatch prints one line per filesystem event on the given paths.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cactorium/nix/control"
	"github.com/cactorium/nix/inotify"
	"github.com/cactorium/nix/internal/config"
	"github.com/cactorium/nix/internal/logging"
)

// watchSpec is one path and the events wanted for it.
type watchSpec struct {
	path string
	mask inotify.EventMask
}

func newCmd() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		log.Warnf("ignoring environment: %v", err)
		cfg = config.Default()
	}

	cmd := &cobra.Command{
		Use:               "nixwatch [flags] PATH...",
		Short:             "Watch paths with inotify and print every event",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(cfg.LogLevel, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			specs, err := collect(cfg, args)
			if err != nil {
				return err
			}
			if len(specs) == 0 {
				return errors.New("nothing to watch: give at least one PATH or --config")
			}

			metrics := control.NewMetricsRegistry()
			probes := control.NewDebugProbes()
			control.RegisterPlatformProbes(probes)

			err = run(cmd.OutOrStdout(), specs, cfg.Buffer, metrics, probes)
			printSnapshot(cmd.OutOrStdout(), metrics, probes)
			return err
		},
	}
	cmd.Flags().StringVarP(&cfg.Mask, "mask", "m", cfg.Mask, "comma separated events for PATH arguments")
	cmd.Flags().StringVarP(&cfg.File, "config", "c", cfg.File, "YAML file with a list of watches")
	cmd.Flags().IntVar(&cfg.Buffer, "buffer", cfg.Buffer, "read buffer size in bytes")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (error, warn, info, debug)")
	return cmd
}

// collect merges the watch file with the command line paths.
func collect(cfg *config.Config, args []string) ([]watchSpec, error) {
	def, err := inotify.ParseMask(cfg.Mask)
	if err != nil {
		return nil, errors.Wrap(err, "--mask")
	}
	var specs []watchSpec
	if cfg.File != "" {
		wf, err := config.LoadWatchFile(cfg.File)
		if err != nil {
			return nil, err
		}
		for _, w := range wf.Watches {
			m, err := w.Mask(def)
			if err != nil {
				return nil, err
			}
			specs = append(specs, watchSpec{path: w.Path, mask: m})
		}
	}
	for _, p := range args {
		specs = append(specs, watchSpec{path: p, mask: def})
	}
	return specs, nil
}

// report writes one line for ev to w and counts each event bit it carries.
// IsDir is shown as a trailing slash on the path.
func report(w io.Writer, ev inotify.Event, root string, metrics *control.MetricsRegistry) {
	path := root
	if ev.Name != "" {
		path = filepath.Join(root, ev.Name)
	}
	if ev.IsDir() {
		path += "/"
	}
	fmt.Fprintf(w, "%s %s\n", ev.Mask.Without(inotify.IsDir), path)
	log.WithFields(log.Fields{"wd": int32(ev.Watch), "cookie": ev.Cookie}).Debugf("event %s", ev)

	for bit := inotify.EventMask(1); bit != 0 && bit <= inotify.Ignored; bit <<= 1 {
		if ev.Mask.Has(bit) {
			metrics.Inc("events." + bit.String())
		}
	}
	metrics.Inc("events.total")
}

func printSnapshot(w io.Writer, metrics *control.MetricsRegistry, probes *control.DebugProbes) {
	snap := metrics.GetSnapshot()
	for _, k := range metrics.Keys() {
		fmt.Fprintf(w, "%-24s %v\n", k, snap[k])
	}
	state := probes.DumpState()
	for _, k := range probes.Names() {
		if v, ok := state[k]; ok {
			log.Debugf("%s=%v", k, v)
		}
	}
}

func main() {
	if err := newCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mondrian/pkg/app"
	"mondrian/pkg/config"
	"mondrian/pkg/text"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		watch   bool
	)
	cmd := &cobra.Command{
		Use:   "mview <scene>",
		Short: "Open a scene in a window",
		Long: `mview loads a scene (a local file or an http(s) URL) and shows the
rendered result in a window. Taps are hit-tested against the layout
tree and logged. With --watch, a local scene file is reloaded whenever
it changes on disk.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := config.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer log.Sync()

			fonts := text.NewCollection()
			if cfg.FontDir != "" {
				if err := fonts.LoadDir(cfg.FontDir); err != nil {
					return fmt.Errorf("loading fonts: %w", err)
				}
			}

			a, err := app.New(log, fonts)
			if err != nil {
				return err
			}
			w, err := a.OpenWindow(args[0], cfg.Width, cfg.Height)
			if err != nil {
				return err
			}
			if watch {
				if err := w.Watch(); err != nil {
					return err
				}
			}
			w.ShowAndRun()
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./mondrian.yaml)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the scene file changes")
	cmd.Flags().Int("width", 800, "viewport width in pixels")
	cmd.Flags().Int("height", 600, "viewport height in pixels")
	cmd.Flags().String("font-dir", "", "directory of .ttf fonts to load")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().String("log-format", "console", "log format (console or json)")
	return cmd
}

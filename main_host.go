//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"linkscope/app"
	"linkscope/hal"
	"linkscope/internal/buildinfo"
	"linkscope/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:   "linkscope",
		Short: "Network telemetry display, simulated on the desktop",
		Long: `Runs the linkscope firmware against a simulated board.

Telemetry datagrams are read from UDP (--listen). In a window the space bar
or M presses the mode button; headless runs can press it on a timer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML config file")

	f := root.Flags()
	f.String("listen", config.Default().Listen, "UDP address for telemetry (empty disables the link)")
	f.Int("width", config.Default().Display.Width, "display width in pixels")
	f.Int("height", config.Default().Display.Height, "display height in pixels")
	f.Int("scale", config.Default().Window.Scale, "window pixel scale")
	f.Bool("headless", false, "run without a window")
	f.Int("hz", config.Default().Headless.Hz, "step rate in headless mode")
	f.Uint64("ticks", 0, "stop after N steps in headless mode (0 = run forever)")
	f.Duration("press-every", 0, "press the mode button at this interval in headless mode")

	root.AddCommand(newConfigCmd(&cfgPath), newVersionCmd())
	return root
}

func run(ctx context.Context, cfg *config.Config) error {
	hcfg := hal.HostConfig{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Listen: cfg.Listen,
	}
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, app.Config{})
	}

	if !cfg.Headless.Enabled {
		return hal.RunWindow(hcfg, cfg.Window.Scale, newApp)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	err := hal.RunHeadless(ctx, hcfg, hal.HeadlessConfig{
		Hz:         cfg.Headless.Hz,
		Ticks:      cfg.Headless.Ticks,
		PressEvery: cfg.Headless.PressEvery,
	}, newApp)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newConfigCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath, nil)
			if err != nil {
				return err
			}
			b, err := config.YAML(cfg)
			if err != nil {
				return err
			}
			src := "defaults + environment"
			if *cfgPath != "" {
				src = *cfgPath
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, mutedStyle.Render("# linkscope config ("+src+")"))
			_, err = out.Write(b)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("linkscope"), buildinfo.Long())
		},
	}
}

// Command feeder runs on the access point and sends one telemetry datagram
// per interval to the display.
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkscope/internal/hoststats"
	"linkscope/monitor/telemetry"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	destStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	rateStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type options struct {
	ap       string
	uplink   string
	dest     string
	interval time.Duration
	count    int
	quiet    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "feeder",
		Short: "Broadcast access point telemetry to a linkscope display",
		Long: `Samples the uplink byte counters, the associated stations of the AP
interface, CPU temperature, free memory and uplink signal level, and sends
one JSON datagram per interval over UDP.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			conn, err := net.Dial("udp", opts.dest)
			if err != nil {
				return fmt.Errorf("feeder: dial %s: %w", opts.dest, err)
			}
			defer conn.Close()

			r := hoststats.NewReader(afero.NewOsFs(), nil)
			s := hoststats.NewSampler(r, hoststats.Interfaces{AP: opts.ap, Uplink: opts.uplink})
			return broadcast(ctx, s, conn, cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.ap, "ap", "wlan0", "access point interface (client list)")
	f.StringVar(&opts.uplink, "uplink", "wlan1", "uplink interface (traffic, signal)")
	f.StringVar(&opts.dest, "dest", "192.168.4.110:4000", "display address")
	f.DurationVar(&opts.interval, "interval", time.Second, "sample interval")
	f.IntVar(&opts.count, "count", 0, "stop after N datagrams (0 = run until interrupted)")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print a line per datagram")
	return cmd
}

// broadcast primes the sampler, then sends one report per tick until ctx
// ends or opts.count datagrams are out.
func broadcast(ctx context.Context, s *hoststats.Sampler, w io.Writer, log io.Writer, opts options) error {
	if opts.interval <= 0 {
		return fmt.Errorf("feeder: interval must be positive, got %s", opts.interval)
	}
	if _, err := s.Next(ctx, time.Now()); err != nil {
		return err
	}

	t := time.NewTicker(opts.interval)
	defer t.Stop()

	sent := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			rep, err := s.Next(ctx, now)
			if err != nil {
				fmt.Fprintln(log, warnStyle.Render("skip: "+err.Error()))
				continue
			}
			b, err := telemetry.Encode(rep)
			if err != nil {
				return err
			}
			if _, err := w.Write(b); err != nil {
				fmt.Fprintln(log, warnStyle.Render("send: "+err.Error()))
				continue
			}
			if !opts.quiet {
				fmt.Fprintln(log, statusLine(opts.dest, rep, len(b)))
			}
			sent++
			if opts.count > 0 && sent >= opts.count {
				return nil
			}
		}
	}
}

func statusLine(dest string, rep telemetry.Report, size int) string {
	return fmt.Sprintf("%s %s %s %s",
		destStyle.Render("→ "+dest),
		rateStyle.Render("rx "+humanize.SIWithDigits(float64(rep.RX), 1, "bps")),
		rateStyle.Render("tx "+humanize.SIWithDigits(float64(rep.TX), 1, "bps")),
		mutedStyle.Render(fmt.Sprintf("%d clients, %s", len(rep.Clients), humanize.Bytes(uint64(size)))),
	)
}

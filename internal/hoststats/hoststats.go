// Package hoststats reads the access point's link statistics from procfs,
// sysfs and iw, and turns them into telemetry reports.
package hoststats

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Runner executes an external command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

const (
	sysNet      = "/sys/class/net"
	procARP     = "/proc/net/arp"
	procMeminfo = "/proc/meminfo"
	procWLAN    = "/proc/net/wireless"
	thermalZone = "/sys/class/thermal/thermal_zone0/temp"
)

// Reader reads host statistics through fs so tests can use an in-memory
// tree.
type Reader struct {
	fs  afero.Fs
	run Runner
}

func NewReader(fs afero.Fs, run Runner) *Reader {
	if run == nil {
		run = execRunner
	}
	return &Reader{fs: fs, run: run}
}

// Counters returns the interface byte counters.
func (r *Reader) Counters(iface string) (rx, tx uint64, err error) {
	base := path.Join(sysNet, iface, "statistics")
	if rx, err = r.readUint(path.Join(base, "rx_bytes")); err != nil {
		return 0, 0, err
	}
	if tx, err = r.readUint(path.Join(base, "tx_bytes")); err != nil {
		return 0, 0, err
	}
	return rx, tx, nil
}

func (r *Reader) readUint(name string) (uint64, error) {
	b, err := afero.ReadFile(r.fs, name)
	if err != nil {
		return 0, fmt.Errorf("hoststats: %w", err)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("hoststats: %s: %w", name, err)
	}
	return v, nil
}

// Stations lists the MAC addresses associated with the AP interface.
func (r *Reader) Stations(ctx context.Context, iface string) ([]string, error) {
	out, err := r.run(ctx, "iw", "dev", iface, "station", "dump")
	if err != nil {
		return nil, fmt.Errorf("hoststats: iw station dump: %w", err)
	}
	return ParseStationDump(bytes.NewReader(out)), nil
}

// ParseStationDump extracts the MAC of every "Station" line of
// `iw dev <if> station dump`.
func ParseStationDump(rd io.Reader) []string {
	var macs []string
	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "Station") {
			continue
		}
		if f := strings.Fields(line); len(f) >= 2 {
			macs = append(macs, strings.ToLower(f[1]))
		}
	}
	return macs
}

// ARP maps MAC to IP for entries on iface.
func (r *Reader) ARP(iface string) (map[string]string, error) {
	f, err := r.fs.Open(procARP)
	if err != nil {
		return nil, fmt.Errorf("hoststats: %w", err)
	}
	defer f.Close()

	m := make(map[string]string)
	sc := bufio.NewScanner(f)
	sc.Scan() // header
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 6 || fields[5] != iface {
			continue
		}
		m[strings.ToLower(fields[3])] = fields[0]
	}
	return m, sc.Err()
}

// TempC returns the SoC temperature, or nil when the sensor is unreadable.
func (r *Reader) TempC() *float32 {
	milli, err := r.readUint(thermalZone)
	if err != nil {
		return nil
	}
	c := float32(milli) / 1000
	return &c
}

// MemAvailableMB returns MemAvailable from /proc/meminfo in MiB.
func (r *Reader) MemAvailableMB() (uint32, error) {
	f, err := r.fs.Open(procMeminfo)
	if err != nil {
		return 0, fmt.Errorf("hoststats: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] != "MemAvailable:" {
			continue
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("hoststats: MemAvailable: %w", err)
		}
		return uint32(kb / 1024), nil
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("hoststats: %w", err)
	}
	return 0, fmt.Errorf("hoststats: MemAvailable not in %s", procMeminfo)
}

// UplinkRSSI returns the signal level of iface in dBm from
// /proc/net/wireless.
func (r *Reader) UplinkRSSI(iface string) (float32, error) {
	f, err := r.fs.Open(procWLAN)
	if err != nil {
		return 0, fmt.Errorf("hoststats: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		// iface: status link level noise ...
		if len(fields) < 4 || strings.TrimSuffix(fields[0], ":") != iface || !strings.HasSuffix(fields[0], ":") {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(fields[3], "."), 32)
		if err != nil {
			return 0, fmt.Errorf("hoststats: %s level: %w", iface, err)
		}
		return float32(v), nil
	}
	return 0, fmt.Errorf("hoststats: %s not in %s", iface, procWLAN)
}

package hoststats

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stationDump = `Station AA:BB:CC:DD:EE:01 (on wlan0)
	inactive time:	1200 ms
	rx bytes:	123456
	signal:  	-48 dBm
Station aa:bb:cc:dd:ee:02 (on wlan0)
	inactive time:	40 ms
`

const arpTable = `IP address       HW type     Flags       HW address            Mask     Device
192.168.4.2      0x1         0x2         aa:bb:cc:dd:ee:01     *        wlan0
192.168.1.1      0x1         0x2         aa:bb:cc:dd:ee:02     *        wlan1
`

const meminfo = `MemTotal:        3884512 kB
MemFree:          912340 kB
MemAvailable:    2621440 kB
Buffers:           81236 kB
`

const wireless = `Inter-| sta-|   Quality        |   Discarded packets               | Missed | WE
 face | tus | link level noise |  nwid  crypt   frag  retry   misc | beacon | 22
 wlan1: 0000   52.  -58.  -256        0      0      0      0      0        0
`

func writeFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
}

func newHost(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/sys/class/net/wlan1/statistics/rx_bytes", "1000\n")
	writeFile(t, fs, "/sys/class/net/wlan1/statistics/tx_bytes", "500\n")
	writeFile(t, fs, "/proc/net/arp", arpTable)
	writeFile(t, fs, "/proc/meminfo", meminfo)
	writeFile(t, fs, "/proc/net/wireless", wireless)
	writeFile(t, fs, "/sys/class/thermal/thermal_zone0/temp", "47250\n")
	return fs
}

func fakeIW(out string, err error) Runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if name != "iw" || strings.Join(args, " ") != "dev wlan0 station dump" {
			return nil, errors.New("unexpected command")
		}
		return []byte(out), err
	}
}

func TestParseStationDump(t *testing.T) {
	macs := ParseStationDump(strings.NewReader(stationDump))
	assert.Equal(t, []string{"aa:bb:cc:dd:ee:01", "aa:bb:cc:dd:ee:02"}, macs)
	assert.Empty(t, ParseStationDump(strings.NewReader("")))
}

func TestReaderSources(t *testing.T) {
	r := NewReader(newHost(t), fakeIW(stationDump, nil))

	rx, tx, err := r.Counters("wlan1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), rx)
	assert.Equal(t, uint64(500), tx)

	_, _, err = r.Counters("eth9")
	assert.Error(t, err)

	arp, err := r.ARP("wlan0")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"aa:bb:cc:dd:ee:01": "192.168.4.2"}, arp)

	mem, err := r.MemAvailableMB()
	require.NoError(t, err)
	assert.Equal(t, uint32(2560), mem)

	rssi, err := r.UplinkRSSI("wlan1")
	require.NoError(t, err)
	assert.Equal(t, float32(-58), rssi)
	_, err = r.UplinkRSSI("wlan0")
	assert.Error(t, err)

	temp := r.TempC()
	require.NotNil(t, temp)
	assert.InDelta(t, 47.25, *temp, 1e-4)
}

func TestReaderMissingSources(t *testing.T) {
	r := NewReader(afero.NewMemMapFs(), fakeIW("", errors.New("iw: not found")))
	assert.Nil(t, r.TempC())
	_, err := r.MemAvailableMB()
	assert.Error(t, err)
	_, err = r.ARP("wlan0")
	assert.Error(t, err)
	_, err = r.Stations(context.Background(), "wlan0")
	assert.Error(t, err)
}

func TestRate(t *testing.T) {
	assert.Equal(t, uint32(8000), Rate(0, 1000, time.Second))
	assert.Equal(t, uint32(16000), Rate(0, 1000, 500*time.Millisecond))
	assert.Zero(t, Rate(5000, 10, time.Second))
	assert.Equal(t, uint32(math.MaxUint32), Rate(0, 1<<40, time.Second))
	assert.Equal(t, uint32(8_000_000), Rate(0, 1000, 0))
}

func TestSampler(t *testing.T) {
	fs := newHost(t)
	s := NewSampler(NewReader(fs, fakeIW(stationDump, nil)), Interfaces{AP: "wlan0", Uplink: "wlan1"})

	t0 := time.Unix(1716123456, 0)
	rep, err := s.Next(context.Background(), t0)
	require.NoError(t, err)
	assert.Zero(t, rep.RX)
	assert.Zero(t, rep.TX)
	assert.Equal(t, int64(1716123456), rep.Time)

	writeFile(t, fs, "/sys/class/net/wlan1/statistics/rx_bytes", "126000\n")
	writeFile(t, fs, "/sys/class/net/wlan1/statistics/tx_bytes", "13000\n")

	rep, err = s.Next(context.Background(), t0.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, uint32(1_000_000), rep.RX)
	assert.Equal(t, uint32(100_000), rep.TX)

	require.Len(t, rep.Clients, 2)
	assert.Equal(t, "192.168.4.2", rep.Clients[0].Addr)
	assert.Equal(t, "unknown", rep.Clients[1].Addr)
	assert.Equal(t, "aa:bb:cc:dd:ee:02", rep.Clients[1].HWAddr)

	require.NotNil(t, rep.TempC)
	assert.Equal(t, uint32(2560), rep.FreeMemMB)
	assert.Equal(t, float32(-58), rep.UplinkRSSI)
}

func TestSamplerDegrades(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/sys/class/net/wlan1/statistics/rx_bytes", "0")
	writeFile(t, fs, "/sys/class/net/wlan1/statistics/tx_bytes", "0")
	s := NewSampler(NewReader(fs, fakeIW("", errors.New("exit status 237"))), Interfaces{AP: "wlan0", Uplink: "wlan1"})

	rep, err := s.Next(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, rep.Clients)
	assert.Nil(t, rep.TempC)
	assert.Zero(t, rep.FreeMemMB)

	require.NoError(t, fs.Remove("/sys/class/net/wlan1/statistics/tx_bytes"))
	_, err = s.Next(context.Background(), time.Now())
	assert.Error(t, err)
}

package hoststats

import (
	"context"
	"math"
	"time"

	"linkscope/monitor/telemetry"
)

// Interfaces names the AP (clients) and uplink (traffic, signal) sides.
type Interfaces struct {
	AP     string
	Uplink string
}

// Sampler turns successive counter readings into reports.
type Sampler struct {
	r   *Reader
	ifs Interfaces

	primed         bool
	prevRX, prevTX uint64
	prevT          time.Time
}

func NewSampler(r *Reader, ifs Interfaces) *Sampler {
	return &Sampler{r: r, ifs: ifs}
}

// Rate converts a byte-counter delta over dt to bits per second. A counter
// that went backwards (interface reset) yields 0.
func Rate(prev, now uint64, dt time.Duration) uint32 {
	if now < prev {
		return 0
	}
	if dt <= 0 {
		dt = time.Millisecond
	}
	bps := float64(now-prev) * 8 / dt.Seconds()
	if bps > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(bps)
}

// Next reads every source at time now. Traffic counters are required; the
// first call only primes them and reports zero rates. Station, ARP, memory
// and signal failures degrade to empty values.
func (s *Sampler) Next(ctx context.Context, now time.Time) (telemetry.Report, error) {
	rx, tx, err := s.r.Counters(s.ifs.Uplink)
	if err != nil {
		return telemetry.Report{}, err
	}

	rep := telemetry.Report{Time: now.Unix()}
	if s.primed {
		dt := now.Sub(s.prevT)
		rep.RX = Rate(s.prevRX, rx, dt)
		rep.TX = Rate(s.prevTX, tx, dt)
	}
	s.prevRX, s.prevTX, s.prevT, s.primed = rx, tx, now, true

	macs, err := s.r.Stations(ctx, s.ifs.AP)
	if err == nil {
		arp, _ := s.r.ARP(s.ifs.AP)
		rep.Clients = make([]telemetry.Client, 0, len(macs))
		for _, mac := range macs {
			ip, ok := arp[mac]
			if !ok {
				ip = "unknown"
			}
			rep.Clients = append(rep.Clients, telemetry.Client{Addr: ip, HWAddr: mac})
		}
	}

	rep.TempC = s.r.TempC()
	rep.FreeMemMB, _ = s.r.MemAvailableMB()
	rep.UplinkRSSI, _ = s.r.UplinkRSSI(s.ifs.Uplink)
	return rep, nil
}

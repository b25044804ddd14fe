// Package telemetry defines the datagram the host broadcasts once per
// interval and its validation.
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxClients is the roster capacity; extra clients are ignored.
const MaxClients = 4

var (
	// ErrMalformed means the datagram is not a decodable record.
	ErrMalformed = errors.New("telemetry: malformed record")
	// ErrRosterMismatch means the address and hardware-address lists differ
	// in length.
	ErrRosterMismatch = errors.New("telemetry: client/mac count mismatch")
)

// Client is one associated station.
type Client struct {
	Addr   string // IP address, or "unknown"
	HWAddr string // MAC address
}

// Roster is a fixed-capacity client list.
type Roster struct {
	entries [MaxClients]Client
	n       int
}

func (r *Roster) Len() int { return r.n }

// At returns entry i; it panics if i >= Len().
func (r *Roster) At(i int) Client {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("telemetry: roster index %d out of range [0,%d)", i, r.n))
	}
	return r.entries[i]
}

// Record is one decoded telemetry datagram.
type Record struct {
	RX uint32 // bits/s received on the uplink
	TX uint32 // bits/s sent on the uplink

	// HasClients is false when the datagram carried no client list; the
	// previous roster then stays in place.
	HasClients bool
	Clients    Roster

	TempC      float32 // host CPU temperature
	UplinkRSSI float32 // dBm
	FreeMemMB  uint32
}

// wire is the JSON layout on the link. Clients and MACs are parallel arrays.
type wire struct {
	Time       int64     `json:"t,omitempty"`
	RX         uint32    `json:"rx"`
	TX         uint32    `json:"tx"`
	Clients    *[]string `json:"clients,omitempty"`
	MACs       *[]string `json:"macs,omitempty"`
	Temp       *float32  `json:"temp"`
	UplinkRSSI float32   `json:"uplink_rssi"`
	MemAvailMB uint32    `json:"mem_avail_MB"`
}

// Decode parses one datagram. Any error means the record must be skipped
// without touching state.
func Decode(b []byte) (Record, error) {
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	rec := Record{
		RX:         w.RX,
		TX:         w.TX,
		UplinkRSSI: w.UplinkRSSI,
		FreeMemMB:  w.MemAvailMB,
	}
	if w.Temp != nil {
		rec.TempC = *w.Temp
	}

	var addrs, macs []string
	if w.Clients != nil {
		addrs = *w.Clients
	}
	if w.MACs != nil {
		macs = *w.MACs
	}
	if len(addrs) != len(macs) {
		return Record{}, fmt.Errorf("%w: %d clients, %d macs", ErrRosterMismatch, len(addrs), len(macs))
	}
	if w.Clients != nil || w.MACs != nil {
		rec.HasClients = true
		n := len(addrs)
		if n > MaxClients {
			n = MaxClients
		}
		for i := 0; i < n; i++ {
			rec.Clients.entries[i] = Client{Addr: addrs[i], HWAddr: macs[i]}
		}
		rec.Clients.n = n
	}
	return rec, nil
}

// Report is what the broadcaster sends; it encodes to the wire layout.
type Report struct {
	Time int64
	RX   uint32
	TX   uint32
	// Clients nil omits the client list, so the receiver keeps its roster.
	Clients    []Client
	TempC      *float32 // nil when the sensor could not be read
	UplinkRSSI float32
	FreeMemMB  uint32
}

// Encode renders r as one datagram. Only the first MaxClients clients are
// sent, which keeps the datagram within the receiver's buffer.
func Encode(r Report) ([]byte, error) {
	w := wire{
		Time:       r.Time,
		RX:         r.RX,
		TX:         r.TX,
		Temp:       r.TempC,
		UplinkRSSI: r.UplinkRSSI,
		MemAvailMB: r.FreeMemMB,
	}
	if r.Clients != nil {
		clients := r.Clients
		if len(clients) > MaxClients {
			clients = clients[:MaxClients]
		}
		addrs := make([]string, len(clients))
		macs := make([]string, len(clients))
		for i, c := range clients {
			addrs[i] = c.Addr
			macs[i] = c.HWAddr
		}
		w.Clients, w.MACs = &addrs, &macs
	}
	return json.Marshal(w)
}

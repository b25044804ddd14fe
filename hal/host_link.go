//go:build !tinygo

package hal

import (
	"fmt"
	"net"
)

type udpLink struct {
	conn *net.UDPConn
}

func listenUDP(addr string) (*udpLink, error) {
	ua, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("hal: link: resolve %q: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", ua)
	if err != nil {
		return nil, fmt.Errorf("hal: link: listen %q: %w", addr, err)
	}
	return &udpLink{conn: conn}, nil
}

func (l *udpLink) Recv(pkt []byte) (int, error) {
	n, _, err := l.conn.ReadFromUDP(pkt)
	return n, err
}

func (l *udpLink) Close() error { return l.conn.Close() }

package hal

type nullLink struct{}

func (nullLink) Recv(pkt []byte) (int, error) {
	_ = pkt
	return 0, ErrNotImplemented
}

package hal

// Framebuffers store RGB565 little-endian: low byte first.

func packRGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// unpackRGB565 widens each channel to 8 bits, mapping full scale to 0xFF.
func unpackRGB565(p uint16) (r, g, b uint8) {
	r = uint8(uint32(p>>11&0x1F) * 255 / 31)
	g = uint8(uint32(p>>5&0x3F) * 255 / 63)
	b = uint8(uint32(p&0x1F) * 255 / 31)
	return r, g, b
}

// fillRGB565 sets every pixel of buf.
func fillRGB565(buf []byte, r, g, b uint8) {
	pixel := packRGB565(r, g, b)
	lo, hi := byte(pixel), byte(pixel>>8)
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = lo
		buf[i+1] = hi
	}
}

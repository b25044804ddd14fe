//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/st7735"
)

// 1.8" ST7735 panel in landscape.
const (
	tftWidth  = 160
	tftHeight = 128
)

type tftFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
	row    []byte

	lcd st7735.Device
}

func newTFTFramebuffer() (*tftFramebuffer, error) {
	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{
		SCK:       machine.GPIO14,
		SDO:       machine.GPIO13,
		SDI:       machine.GPIO12,
		Frequency: 26_000_000,
	}); err != nil {
		return nil, err
	}

	lcd := st7735.New(spi, machine.GPIO4, machine.GPIO2, machine.GPIO15, machine.NoPin)
	lcd.Configure(st7735.Config{
		Width:    128,
		Height:   160,
		Rotation: drivers.Rotation90,
		Model:    st7735.GREENTAB,
	})
	w, h := lcd.Size()
	if int(w) != tftWidth || int(h) != tftHeight {
		return nil, errors.New("st7735: unexpected geometry")
	}

	return &tftFramebuffer{
		w:      tftWidth,
		h:      tftHeight,
		stride: tftWidth * 2,
		buf:    make([]byte, tftWidth*tftHeight*2),
		row:    make([]byte, tftWidth*2),
		lcd:    lcd,
	}, nil
}

func (f *tftFramebuffer) Width() int          { return f.w }
func (f *tftFramebuffer) Height() int         { return f.h }
func (f *tftFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *tftFramebuffer) StrideBytes() int    { return f.stride }
func (f *tftFramebuffer) Buffer() []byte      { return f.buf }

func (f *tftFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, r, g, b)
}

// Present streams the frame one row at a time. The framebuffer is
// little-endian RGB565; the panel expects big-endian.
func (f *tftFramebuffer) Present() error {
	for y := 0; y < f.h; y++ {
		src := f.buf[y*f.stride : (y+1)*f.stride]
		for i := 0; i < len(src); i += 2 {
			f.row[i] = src[i+1]
			f.row[i+1] = src[i]
		}
		if err := f.lcd.DrawRGBBitmap8(0, int16(y), f.row, int16(f.w), 1); err != nil {
			return err
		}
	}
	return nil
}

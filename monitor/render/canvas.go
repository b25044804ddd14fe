// Package render draws the three monitor views onto a framebuffer.
package render

import "image/color"

// Color is an RGB565 pixel value.
type Color uint16

// Palette.
const (
	Black       Color = 0x0000
	White       Color = 0xFFFF
	Navy        Color = 0x0013
	DarkCyan    Color = 0x03EF
	Cyan        Color = 0x07FF
	Green       Color = 0x07E0
	Orange      Color = 0xFD20
	Red         Color = 0xF800
	Silver      Color = 0xC618
	Brown       Color = 0x9A60
	GreenYellow Color = 0xB7E0
	Grid        Color = 0x34B2
)

// RGBA expands c to 8 bits per channel.
func (c Color) RGBA() color.RGBA {
	r := uint8((uint32(c>>11) & 0x1F) * 255 / 31)
	g := uint8((uint32(c>>5) & 0x3F) * 255 / 63)
	b := uint8((uint32(c) & 0x1F) * 255 / 31)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func colorFromRGBA(c color.RGBA) Color {
	return Color(uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3))
}

// Datum selects which corner of a text box (x, y) refers to.
type Datum uint8

const (
	TopLeft Datum = iota
	TopRight
	MiddleCenter
)

// Ink is a text colour, optionally painted over a solid background.
type Ink struct {
	FG     Color
	BG     Color
	Opaque bool
}

// Plain draws glyphs only.
func Plain(fg Color) Ink { return Ink{FG: fg} }

// On draws glyphs over a bg box.
func On(fg, bg Color) Ink { return Ink{FG: fg, BG: bg, Opaque: true} }

// Canvas is the drawing surface the views need. Coordinates outside the
// surface are clipped.
type Canvas interface {
	Size() (w, h int)
	Fill(c Color)
	Line(x0, y0, x1, y1 int, c Color)
	Rect(x, y, w, h int, c Color)
	HLine(x, y, w int, c Color)
	VLine(x, y, h int, c Color)
	Text(x, y int, d Datum, s string, ink Ink)
	Present() error
}

package render

import (
	"fmt"

	"tinygo.org/x/tinyterm"
)

// Console is a scrolling text screen used before the first record and for
// fatal errors.
type Console struct {
	term *tinyterm.Terminal
	c    *FrameCanvas
}

// NewConsole clears the canvas and attaches a terminal to it. The terminal
// paints on black.
func NewConsole(c *FrameCanvas) *Console {
	c.Fill(Black)
	t := tinyterm.NewTerminal(c.Displayer())
	t.Configure(&tinyterm.Config{
		Font:              Font,
		FontHeight:        FontHeight,
		FontOffset:        FontOffset,
		UseSoftwareScroll: true,
	})
	return &Console{term: t, c: c}
}

func (k *Console) Println(s string) {
	_, _ = k.term.Write([]byte(s))
	_, _ = k.term.Write([]byte{'\r', '\n'})
}

func (k *Console) Printf(format string, args ...any) {
	k.Println(fmt.Sprintf(format, args...))
}

// Flush presents whatever has been printed.
func (k *Console) Flush() error {
	return k.c.Present()
}

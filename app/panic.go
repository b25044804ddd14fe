package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"linkscope/monitor/render"

	"tinygo.org/x/tinyfont"
)

// showPanic logs v and paints it on a white screen. The monitor does not
// resume afterwards.
func (s *system) showPanic(v any) {
	lines := []string{
		"linkscope panic:",
		fmt.Sprintf("panic: %v", v),
		fmt.Sprintf("mode: %s", s.sel.Mode()),
		fmt.Sprintf("records: %d", s.mon.Stats().Applied),
	}
	for _, line := range lines {
		s.logf("%s", line)
	}

	if s.canvas == nil {
		return
	}
	c := s.canvas
	c.Fill(render.White)

	_, outboxWidth := tinyfont.LineWidth(render.Font, "0")
	fontWidth := int(outboxWidth)
	if fontWidth <= 0 {
		_ = c.Present()
		return
	}
	w, h := c.Size()
	cols := w / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := 0
	ink := render.Plain(render.Black)
	for _, line := range lines {
		for len(line) > 0 {
			if y+render.FontHeight > h {
				_ = c.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			c.Text(0, y, render.TopLeft, chunk, ink)
			y += render.FontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = c.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}

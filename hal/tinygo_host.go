//go:build tinygo && !baremetal

package hal

import "time"

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	fb     *tinyGoHostFramebuffer
	regs   *SimRegisters
	t0     time.Time
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping: registers are simulated and there is no telemetry link.
func New() HAL {
	regs := NewSimRegisters()
	regs.DriveInput(PinButton, true)
	return &tinyGoHostHAL{
		logger: &tinyGoHostLogger{},
		fb:     newTinyGoHostFramebuffer(160, 128),
		regs:   regs,
		t0:     time.Now(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger       { return h.logger }
func (h *tinyGoHostHAL) Display() Display     { return tinyGoHostDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Registers() Registers { return h.regs }
func (h *tinyGoHostHAL) Button() Button       { return nullButton{} }
func (h *tinyGoHostHAL) Clock() Clock         { return h }
func (h *tinyGoHostHAL) Link() Link           { return nullLink{} }

func (h *tinyGoHostHAL) Millis() uint32 {
	return uint32(time.Since(h.t0) / time.Millisecond)
}

type tinyGoHostDisplay struct {
	fb Framebuffer
}

func (d tinyGoHostDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type nullButton struct{}

func (nullButton) OnFalling(fn func()) error {
	_ = fn
	return ErrNotImplemented
}

type tinyGoHostFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
}

func newTinyGoHostFramebuffer(w, h int) *tinyGoHostFramebuffer {
	stride := w * 2
	return &tinyGoHostFramebuffer{
		w:      w,
		h:      h,
		stride: stride,
		buf:    make([]byte, stride*h),
	}
}

func (f *tinyGoHostFramebuffer) Width() int          { return f.w }
func (f *tinyGoHostFramebuffer) Height() int         { return f.h }
func (f *tinyGoHostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *tinyGoHostFramebuffer) StrideBytes() int    { return f.stride }
func (f *tinyGoHostFramebuffer) Buffer() []byte      { return f.buf }

func (f *tinyGoHostFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, r, g, b)
}

// Present is a no-op: there is no panel on tinygo host targets.
func (f *tinyGoHostFramebuffer) Present() error { return nil }

package app

import (
	"errors"
	"fmt"
	"time"

	"linkscope/hal"
	"linkscope/internal/buildinfo"
	"linkscope/internal/mailbox"
	"linkscope/monitor"
	"linkscope/monitor/mode"
	"linkscope/monitor/periph"
	"linkscope/monitor/render"
)

const linkRetryDelay = 100 * time.Millisecond

type Config struct {
	// Banner is the first console line; defaults to the build identifier.
	Banner string
}

type system struct {
	h   hal.HAL
	log hal.Logger

	sel      *mode.Selector
	pwm      *periph.PWM
	canvas   *render.FrameCanvas
	renderer *render.Renderer
	mon      *monitor.Monitor
	box      *mailbox.Mailbox

	dg     mailbox.Datagram
	halted error
}

// New initializes the monitor with default config and returns its step
// function. Each step ingests every datagram queued since the last one.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// Run starts the monitor and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, Config{})
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s, err := newSystem(h, cfg)
	if err != nil {
		logLine(h, fmt.Sprintf("app: %v", err))
		return func() error { return err }
	}
	return s.step
}

func RunWithConfig(h hal.HAL, cfg Config) {
	s, err := newSystem(h, cfg)
	if err != nil {
		logLine(h, fmt.Sprintf("app: %v", err))
		select {}
	}
	for {
		s.box.Recv(&s.dg)
		if err := s.ingest(); err != nil {
			select {}
		}
	}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	if h == nil {
		return nil, errors.New("nil HAL")
	}
	bootDiagStart(h)

	s := &system{
		h:   h,
		log: h.Logger(),
		sel: new(mode.Selector),
		box: mailbox.New(),
	}

	bootStep("gpio")
	regs := h.Registers()
	gpio := periph.NewGPIO(regs)
	for _, pin := range []periph.Pin{periph.Pin(hal.PinLEDG), periph.Pin(hal.PinLEDB)} {
		gpio.EnableOutput(pin)
		gpio.SetLow(pin)
	}
	gpio.ConfigureInput(periph.Pin(hal.PinButton))

	bootStep("pwm")
	s.pwm = periph.NewPWM(regs)
	s.pwm.Configure(periph.Pin(hal.PinLEDR), periph.PWMFrequencyHz, periph.PWMResolution)

	bootStep("display")
	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, errors.New("no framebuffer")
	}
	s.canvas = render.NewFrameCanvas(disp.Framebuffer())
	s.renderer = render.NewRenderer(s.canvas)
	s.mon = monitor.New(s.log, s.sel, s.renderer, s.pwm)

	banner := cfg.Banner
	if banner == "" {
		banner = "linkscope " + buildinfo.Short()
	}
	con := render.NewConsole(s.canvas)
	con.Println(banner)
	con.Printf("pwm: %d Hz, div %d", periph.PWMFrequencyHz, s.pwm.Prescaler())

	bootStep("button")
	clock := h.Clock()
	if err := h.Button().OnFalling(func() { s.sel.Press(clock.Millis()) }); err != nil {
		s.logf("button: %v", err)
		con.Println("button: unavailable")
	}

	bootStep("link")
	go s.readLink(h.Link())

	con.Println("waiting for telemetry...")
	if err := con.Flush(); err != nil {
		s.logf("display: %v", err)
	}
	s.logf("app: %s ready", banner)
	bootStep("ready")
	return s, nil
}

func (s *system) step() error {
	if s.halted != nil {
		return s.halted
	}
	for s.box.TryRecv(&s.dg) {
		if err := s.ingest(); err != nil {
			return err
		}
	}
	return nil
}

// ingest feeds the current datagram to the monitor. Decode failures are
// already logged by the monitor; only a panic stops the loop.
func (s *system) ingest() (err error) {
	defer func() {
		if v := recover(); v != nil {
			s.halted = fmt.Errorf("app: halted: %v", v)
			s.showPanic(v)
			err = s.halted
		}
	}()
	_ = s.mon.HandleDatagram(s.dg.Bytes())
	return nil
}

func (s *system) readLink(link hal.Link) {
	if link == nil {
		s.logf("link: unavailable")
		return
	}
	var buf [mailbox.MaxDatagramBytes]byte
	var dropped uint32
	for {
		n, err := link.Recv(buf[:])
		if err != nil {
			if errors.Is(err, hal.ErrNotImplemented) {
				s.logf("link: unavailable")
				return
			}
			s.logf("link: recv: %v", err)
			time.Sleep(linkRetryDelay)
			continue
		}
		if !s.box.TrySend(buf[:n]) {
			dropped++
			if dropped&(dropped-1) == 0 {
				s.logf("link: mailbox full, dropped %d", s.box.Dropped())
			}
		}
	}
}

func (s *system) logf(format string, args ...any) {
	if s.log != nil {
		s.log.WriteLineString(fmt.Sprintf(format, args...))
	}
}

func logLine(h hal.HAL, s string) {
	if h == nil {
		return
	}
	if l := h.Logger(); l != nil {
		l.WriteLineString(s)
	}
}

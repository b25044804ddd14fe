//go:build !tinygo && cgo

package hal

import (
	"image"
	"image/color"

	"linkscope/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ledStripHeight is the band under the display showing the LED brightness.
const ledStripHeight = 8

// RunWindow starts a desktop window that displays the framebuffer and the
// LED, and maps the space bar (or M) to the mode button.
// It blocks until the window closes.
func RunWindow(cfg HostConfig, scale int, newApp func(HAL) func() error) error {
	hh, err := New(cfg)
	if err != nil {
		return err
	}
	h := hh.(*hostHAL)
	step := newApp(h)
	if scale <= 0 {
		scale = 1
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("linkscope (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*scale, (h.fb.height+ledStripHeight)*scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	seq     uint64
	step    func() error
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.h.button.press()
	}
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) || inpututil.IsKeyJustReleased(ebiten.KeyM) {
		g.h.button.release()
	}
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	if seq := fb.snapshotRGB565(g.scratch); seq != g.seq {
		g.seq = seq
		src := g.scratch
		dst := g.img.Pix
		for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
			r, gg, b := unpackRGB565(uint16(src[i]) | uint16(src[i+1])<<8)
			j := (i / 2) * 4
			dst[j+0] = r
			dst[j+1] = gg
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)

	duty, on := g.h.regs.LEDC()
	if !on {
		duty = 0
	}
	strip := image.Rect(0, fb.height, fb.width, fb.height+ledStripHeight)
	screen.SubImage(strip).(*ebiten.Image).Fill(color.RGBA{R: duty, A: 0xFF})
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height + ledStripHeight
}

package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// hudScale is the integer upscale applied to the key legend.
const hudScale = 2

// bannerScale is the upscale applied to the round banner.
const bannerScale = 4

// HUD holds the text overlay state. It implements scene.HUD.
type HUD struct {
	state  string
	toast  string
	banner string
	score  int

	buf       *ebiten.Image // legend, drawn at 1x then scaled by hudScale
	bannerBuf *ebiten.Image
	width     int
	height    int
}

// NewHUD creates a HUD for a w×h screen.
func NewHUD(w, h int) *HUD {
	return &HUD{
		buf:       ebiten.NewImage(w/hudScale, h/hudScale),
		bannerBuf: ebiten.NewImage(w/bannerScale, 24),
		width:     w,
		height:    h,
	}
}

func (h *HUD) SetState(label string) { h.state = label }
func (h *HUD) SetToast(s string)     { h.toast = s }
func (h *HUD) SetBanner(s string)    { h.banner = s }
func (h *HUD) SetScore(n int)        { h.score = n }

// Lines is the legend text for the current frame.
func (h *HUD) Lines(speed float64, camera string, audioOn, autoplay bool) []string {
	speedStr := "1x"
	switch {
	case speed == 0:
		speedStr = "FROZEN"
	case speed != 1:
		speedStr = fmt.Sprintf("%.1fx", speed)
	}
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	return []string{
		fmt.Sprintf("%s  GOALS %d", h.state, h.score),
		fmt.Sprintf("SIM %s  P=freeze ,/.=speed", speedStr),
		fmt.Sprintf("V camera [%s]  A autoplay [%s]", camera, onOff(autoplay)),
		fmt.Sprintf("M sound [%s]  C copy report", onOff(audioOn)),
		"R reset  L labels  H hide",
		"drag from ball = pass/shot",
	}
}

// Draw renders the state panel, the toast and the banner. The legend is
// skipped when showLegend is false; state and score always show.
func (h *HUD) Draw(screen *ebiten.Image, lines []string, showLegend bool, playW, offX, offY int) {
	if !showLegend {
		lines = lines[:1]
	}
	const lineH = 12 // debug font line height at 1x
	const charW = 6
	const padX, padY = 5, 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(offX/hudScale + 4)
	by := float32(offY/hudScale + 4)

	h.buf.Clear()
	vector.FillRect(h.buf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 8, B: 14, A: 210}, false)
	vector.StrokeRect(h.buf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 80, B: 120, A: 180}, false)
	vector.StrokeLine(h.buf, bx+1, by+1, bx+boxW-1, by+1, 1.0, color.RGBA{R: 90, G: 120, B: 180, A: 80}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(h.buf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(h.buf, op)

	if h.toast != "" {
		w := text.BoundString(basicfont.Face7x13, h.toast).Dx()
		x := offX + playW/2 - w/2
		y := h.height - offY - 30
		vector.FillRect(screen, float32(x-8), float32(y-14), float32(w+16), 20, color.RGBA{A: 170}, false)
		text.Draw(screen, h.toast, basicfont.Face7x13, x, y, color.RGBA{R: 255, G: 240, B: 200, A: 255})
	}

	if h.banner != "" {
		h.bannerBuf.Clear()
		w := text.BoundString(basicfont.Face7x13, h.banner).Dx()
		bw := h.bannerBuf.Bounds().Dx()
		text.Draw(h.bannerBuf, h.banner, basicfont.Face7x13, bw/2-w/2, 16, color.RGBA{R: 255, G: 220, B: 60, A: 255})
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(bannerScale, bannerScale)
		op.GeoM.Translate(float64(offX+playW/2-bw*bannerScale/2), float64(h.height/3))
		screen.DrawImage(h.bannerBuf, op)
	}
}

package reward

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxTextRunes 文字槽显示的最大字符数
const maxTextRunes = 20

// textSpinSpeed 文字旋转角速度（弧度/秒）
const textSpinSpeed = 0.6

// textSlot 旋转文字槽
//
// 字体可用时绘制带"挤出"深度的立体文字；字体缺失时退化为
// 平面文字面板 —— 表面永远不会留白。
type textSlot struct {
	baseSlot
	face  *text.GoTextFace
	text  string
	angle float64
}

func newTextSlot(ledger *ResourceLedger, caps RenderCapability, raw string) *textSlot {
	return &textSlot{
		baseSlot: newBaseSlot(ledger),
		face:     caps.Font,
		text:     truncateRunes(raw, maxTextRunes),
	}
}

func (s *textSlot) Update(deltaTime float64) {
	if s.disposed {
		return
	}
	s.angle += textSpinSpeed * deltaTime
}

func (s *textSlot) Draw(dst *ebiten.Image) {
	if s.disposed {
		return
	}

	cx, cy := surfaceCenter(dst)

	if s.face == nil {
		s.drawFlatFallback(dst, cx, cy)
		return
	}

	textW, textH := text.Measure(s.text, s.face, s.face.Size*1.2)
	facing := math.Abs(math.Cos(s.angle))
	if facing < 0.05 {
		facing = 0.05
	}

	// 挤出效果：从深到浅绘制多层偏移副本
	const depthLayers = 5
	for layer := depthLayers; layer >= 0; layer-- {
		op := &text.DrawOptions{}
		op.GeoM.Scale(facing, 1)
		offset := float64(layer) * 1.5
		op.GeoM.Translate(cx-textW*facing/2+offset*facing, cy-textH/2-offset)
		if layer > 0 {
			op.ColorScale.ScaleWithColor(color.RGBA{R: 0x5a, G: 0x7a, B: 0x9a, A: 0xff})
		} else {
			op.ColorScale.ScaleWithColor(color.White)
		}
		text.Draw(dst, s.text, s.face, op)
	}
}

// drawFlatFallback 平面面板退化路径（字体加载失败时）
func (s *textSlot) drawFlatFallback(dst *ebiten.Image, cx, cy float64) {
	bounds := dst.Bounds()
	base := math.Min(float64(bounds.Dx()), float64(bounds.Dy())) * 0.7
	panelW, panelH := fitAspect(3.0, base)
	facing := math.Abs(math.Cos(s.angle))
	width := math.Max(panelW*facing, 1)

	vector.DrawFilledRect(dst,
		float32(cx-width/2), float32(cy-panelH/2),
		float32(width), float32(panelH), panelBack, true)
	drawSurfaceMessage(dst, s.text)
}

func (s *textSlot) Dispose() {
	s.dispose()
}

package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 界面配色
var (
	uiBackground  = color.RGBA{24, 26, 38, 255}
	uiPanel       = color.RGBA{38, 41, 58, 255}
	uiPrimary     = color.RGBA{88, 101, 242, 255}
	uiSecondary   = color.RGBA{70, 74, 96, 255}
	uiAccent      = color.RGBA{234, 179, 8, 255}
	uiSuccess     = color.RGBA{34, 160, 84, 255}
	uiDanger      = color.RGBA{220, 68, 68, 255}
	uiText        = color.RGBA{235, 236, 240, 255}
	uiTextMuted   = color.RGBA{160, 164, 180, 255}
	uiFieldActive = color.RGBA{52, 58, 86, 255}
)

// Button 矩形按钮
type Button struct {
	X, Y, W, H float64
	Label      string
	Color      color.RGBA
	Disabled   bool
}

// Hit 判断屏幕坐标是否落在按钮上（禁用按钮不命中）
func (b *Button) Hit(x, y int) bool {
	if b.Disabled {
		return false
	}
	fx, fy := float64(x), float64(y)
	return fx >= b.X && fx < b.X+b.W && fy >= b.Y && fy < b.Y+b.H
}

// Draw 绘制按钮底色与居中文字
func (b *Button) Draw(screen *ebiten.Image, face *text.GoTextFace) {
	c := b.Color
	if b.Disabled {
		c = uiSecondary
		c.A = 140
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
	drawCentered(screen, b.Label, face, b.X+b.W/2, b.Y+b.H/2, uiText)
}

// drawCentered 以 (cx, cy) 为中心绘制单行文字，无字体时退化为调试字体
func drawCentered(screen *ebiten.Image, str string, face *text.GoTextFace, cx, cy float64, clr color.RGBA) {
	if str == "" {
		return
	}
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(cx)-len(str)*3, int(cy)-8)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawLeft 以 (x, y) 为左侧基准绘制单行文字（垂直居中）
func drawLeft(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.RGBA) {
	if str == "" {
		return
	}
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(x), int(y)-8)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// appendTextInput 把本帧键盘输入合并进缓冲区（字符追加、退格删除）
func appendTextInput(buf string) string {
	for _, r := range ebiten.AppendInputChars(nil) {
		if r >= ' ' {
			buf += string(r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(buf) > 0 {
		runes := []rune(buf)
		buf = string(runes[:len(runes)-1])
	}
	return buf
}

package reward

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// randFloat 可替换的随机源（测试里换成确定性序列）
var randFloat = rand.Float64

// fitAspect 在 baseSize 内按宽高比适配面板尺寸
// aspect >= 1 时宽取 baseSize，否则高取 baseSize。
func fitAspect(aspect, baseSize float64) (width, height float64) {
	if aspect <= 0 {
		return baseSize, baseSize
	}
	if aspect >= 1 {
		return baseSize, baseSize / aspect
	}
	return baseSize * aspect, baseSize
}

// truncateRunes 截断到最多 n 个字符（按 rune 计）
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// drawSpinningImage 以"绕 Y 轴旋转"的视觉效果绘制双面面板
//
// 用水平缩放 cos(angle) 模拟透视：cos 为负时显示镜像的背面，
// 保证旋转过程中画面始终可见（双面）。
func drawSpinningImage(dst, img *ebiten.Image, cx, cy, panelW, panelH, angle float64) {
	facing := math.Cos(angle)
	width := panelW * math.Abs(facing)
	if width < 1 {
		width = 1
	}

	bounds := img.Bounds()
	sx := width / float64(bounds.Dx())
	sy := panelH / float64(bounds.Dy())

	op := &ebiten.DrawImageOptions{}
	if facing < 0 {
		// 背面：水平镜像
		op.GeoM.Scale(-sx, sy)
		op.GeoM.Translate(width, 0)
	} else {
		op.GeoM.Scale(sx, sy)
	}
	op.GeoM.Translate(cx-width/2, cy-panelH/2)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

// drawSurfaceMessage 在表面内绘制降级提示文字（资源加载失败时）
// 表面可能是 SubImage，坐标按其 Min 偏移。
func drawSurfaceMessage(dst *ebiten.Image, msg string) {
	bounds := dst.Bounds()
	ebitenutil.DebugPrintAt(dst, msg, bounds.Min.X+8, bounds.Min.Y+8)
}

// surfaceCenter 返回表面中心点（SubImage 安全）
func surfaceCenter(dst *ebiten.Image) (cx, cy float64) {
	bounds := dst.Bounds()
	return float64(bounds.Min.X) + float64(bounds.Dx())/2,
		float64(bounds.Min.Y) + float64(bounds.Dy())/2
}

// messageSlot 只显示一行提示文字的降级槽
type messageSlot struct {
	baseSlot
	message string
}

func newMessageSlot(ledger *ResourceLedger, message string) *messageSlot {
	return &messageSlot{baseSlot: newBaseSlot(ledger), message: message}
}

func (s *messageSlot) Update(deltaTime float64) {}

func (s *messageSlot) Draw(dst *ebiten.Image) {
	if s.disposed {
		return
	}
	drawSurfaceMessage(dst, s.message)
}

func (s *messageSlot) Dispose() {
	s.dispose()
}

// panelBack 半透明底板颜色
var panelBack = color.RGBA{R: 255, G: 255, B: 255, A: 230}

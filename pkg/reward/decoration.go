package reward

import (
	"math"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/JR-amirez/juegos-ar/pkg/utils"
)

// DefaultSymbols 默认的装饰符号集（数学符号，与旧版一致）
var DefaultSymbols = []string{"×", "+", "÷", "-", "=", "1", "2", "3"}

// floatingSymbol 一个漂浮符号的随机参数（挂载时确定）
type floatingSymbol struct {
	glyph    *ebiten.Image
	size     float64 // 20~50 像素
	duration float64 // 5~10 秒一个往返
	left     float64 // 0.10~0.90（相对宽度）
	top      float64 // 0.10~0.90（相对高度）
	dx       float64 // -15~15 像素
	dy       float64 // -15~15 像素
	phase    float64
}

// DecorationLayer 装饰层：覆盖层背景里漂浮的装饰符号
//
// attach -> disposer 契约：每次呈现创建一个新图层，图层 ID 每次
// 唯一（避免快速连续呈现之间的状态串扰），关闭时整体移除并释放
// 符号纹理。纯装饰，不参与内容布局。
type DecorationLayer struct {
	id       string
	symbols  []floatingSymbol
	elapsed  float64
	detached bool
}

// NewDecorationLayer 创建装饰层，符号位置与动画参数随机
func NewDecorationLayer(glyphs []string) *DecorationLayer {
	if len(glyphs) == 0 {
		glyphs = DefaultSymbols
	}
	layer := &DecorationLayer{
		id:      uuid.NewString(),
		symbols: make([]floatingSymbol, len(glyphs)),
	}
	for i, glyph := range glyphs {
		// 符号纹理挂载时烘焙一次，Detach 时释放
		tile := ebiten.NewImage(16, 16)
		ebitenutil.DebugPrint(tile, glyph)
		layer.symbols[i] = floatingSymbol{
			glyph:    tile,
			size:     randFloat()*30 + 20,
			duration: randFloat()*5 + 5,
			left:     randFloat()*0.8 + 0.1,
			top:      randFloat()*0.8 + 0.1,
			dx:       randFloat()*30 - 15,
			dy:       randFloat()*30 - 15,
			phase:    randFloat(),
		}
	}
	return layer
}

// ID 返回本次呈现的唯一图层标识
func (l *DecorationLayer) ID() string {
	return l.id
}

// Update 推进符号动画
func (l *DecorationLayer) Update(deltaTime float64) {
	if l.detached {
		return
	}
	l.elapsed += deltaTime
}

// Draw 绘制全部符号
//
// 每个符号在原位与 (dx, dy) 偏移之间做缓入缓出往返，周期为
// 各自的 duration。
func (l *DecorationLayer) Draw(dst *ebiten.Image) {
	if l.detached {
		return
	}

	bounds := dst.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	for _, s := range l.symbols {
		cycle := math.Mod(l.elapsed/s.duration+s.phase, 1)
		// 往返：前半程去，后半程回
		t := cycle * 2
		if t > 1 {
			t = 2 - t
		}
		eased := utils.EaseInOutCubic(t)

		x := s.left*w + utils.Lerp(0, s.dx, eased)
		y := s.top*h + utils.Lerp(0, s.dy, eased)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s.size/20, s.size/20)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleAlpha(0.2)
		dst.DrawImage(s.glyph, op)
	}
}

// Detach 移除图层并释放符号纹理（之后 Update/Draw 均为空操作），幂等
func (l *DecorationLayer) Detach() {
	if l.detached {
		return
	}
	l.detached = true
	for i := range l.symbols {
		if l.symbols[i].glyph != nil {
			l.symbols[i].glyph.Deallocate()
			l.symbols[i].glyph = nil
		}
	}
}

package reward

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// pulseSmoothing 音符脉动的指数平滑权重（每帧）
// 直接用原始能量会抖动，固定小权重平滑后再驱动缩放。
const pulseSmoothing = 0.15

type audioOpenResult struct {
	src AudioSource
	err error
}

// audioSlot 音符脉动槽
//
// 音频异步加载，就绪后循环播放；音符随平滑后的频率能量
// 缩放/上浮。点击表面切换播放/暂停。
type audioSlot struct {
	baseSlot
	surface Surface
	result  chan audioOpenResult
	src     AudioSource
	failed  bool
	pulse   float64
	elapsed float64
}

func newAudioSlot(ledger *ResourceLedger, caps RenderCapability, surface Surface, ref string) *audioSlot {
	s := &audioSlot{
		baseSlot: newBaseSlot(ledger),
		surface:  surface,
		result:   make(chan audioOpenResult, 1),
	}
	go func() {
		src, err := caps.Audios.Open(ref)
		s.result <- audioOpenResult{src: src, err: err}
		// 打开晚于 Dispose 完成时，释放方已经排干过通道，
		// 这里把结果收回并关闭，来源不悬挂
		if s.wasAbandoned() {
			s.drainResult()
		}
	}()
	return s
}

// drainResult 非阻塞取走未消费的加载结果并关闭其来源
func (s *audioSlot) drainResult() {
	select {
	case res := <-s.result:
		if res.src != nil {
			res.src.Close()
		}
	default:
	}
}

func (s *audioSlot) Update(deltaTime float64) {
	if s.disposed {
		return
	}

	select {
	case res := <-s.result:
		if res.err != nil {
			s.failed = true
		} else {
			s.src = res.src
			s.src.Play()
		}
	default:
	}

	s.elapsed += deltaTime

	if s.src == nil {
		return
	}

	raw := 0.0
	if s.src.Playing() {
		raw = s.src.Energy()
	}
	s.pulse += (raw - s.pulse) * pulseSmoothing

	if s.surface.Clicked() && s.src.Ready() {
		if s.src.Playing() {
			s.src.Pause()
		} else {
			s.src.Play()
		}
	}
}

func (s *audioSlot) Draw(dst *ebiten.Image) {
	if s.disposed {
		return
	}
	if s.failed {
		drawSurfaceMessage(dst, "No se pudo cargar el audio.")
		return
	}

	bounds := dst.Bounds()
	base := math.Min(float64(bounds.Dx()), float64(bounds.Dy()))
	scale := 1 + s.pulse*0.5
	cx, baseCY := surfaceCenter(dst)
	cy := baseCY - s.pulse*base*0.12

	s.drawNote(dst, cx, cy, base*0.22*scale)
}

// drawNote 程式化音符：符头 + 符干 + 符尾
func (s *audioSlot) drawNote(dst *ebiten.Image, cx, cy, size float64) {
	noteFill := color.RGBA{R: 0xff, G: 0xd1, B: 0x66, A: 0xff}
	noteEdge := color.RGBA{R: 0xff, G: 0xb7, B: 0x03, A: 0xff}

	headR := size * 0.45
	stemW := size * 0.14
	stemH := size * 1.55

	// 符头（略微向左下偏移）
	headX := cx - size*0.3
	headY := cy + size*0.55
	vector.DrawFilledCircle(dst, float32(headX), float32(headY), float32(headR), noteEdge, true)
	vector.DrawFilledCircle(dst, float32(headX), float32(headY), float32(headR*0.85), noteFill, true)

	// 符干
	stemX := headX + headR - stemW/2
	vector.DrawFilledRect(dst, float32(stemX), float32(headY-stemH),
		float32(stemW), float32(stemH), noteFill, true)

	// 符尾（倾斜的小块）
	flagW := size * 0.8
	flagH := size * 0.28
	vector.DrawFilledRect(dst, float32(stemX+stemW), float32(headY-stemH+flagH*0.3),
		float32(flagW), float32(flagH), noteFill, true)
}

func (s *audioSlot) Dispose() {
	if !s.dispose() {
		return
	}
	s.drainResult()
	if s.src != nil {
		s.src.Close()
		s.src = nil
	}
}

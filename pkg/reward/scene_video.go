package reward

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// portalParticleCount 传送门粒子环的粒子数量
const portalParticleCount = 160

// defaultVideoAspect 元数据就绪前假定的宽高比
const defaultVideoAspect = 16.0 / 9.0

// portalParticle 粒子环上的一个粒子（角度/半径比/深度为挂载时随机）
type portalParticle struct {
	angle  float64
	radius float64
	depth  float64
}

type videoOpenResult struct {
	src VideoSource
	err error
}

// videoSlot 视频传送门槽
//
// 视频静音循环播放，嵌在发光边框 + 粒子环的"传送门"里，
// 整体缓慢漂浮/摆动而不是自旋。点击表面切换播放/暂停，
// 恢复播放时取消静音。真实宽高比在元数据就绪后才重新适配，
// 之前一律按 16:9。
type videoSlot struct {
	baseSlot
	surface   Surface
	result    chan videoOpenResult
	src       VideoSource
	failed    bool
	aspect    float64
	refitted  bool
	elapsed   float64
	particles []portalParticle
	spin      float64
}

func newVideoSlot(ledger *ResourceLedger, caps RenderCapability, surface Surface, ref string) *videoSlot {
	s := &videoSlot{
		baseSlot: newBaseSlot(ledger),
		surface:  surface,
		result:   make(chan videoOpenResult, 1),
		aspect:   defaultVideoAspect,
	}

	s.particles = make([]portalParticle, portalParticleCount)
	for i := range s.particles {
		s.particles[i] = portalParticle{
			angle:  randFloat() * 2 * math.Pi,
			radius: 0.85 + randFloat()*0.35,
			depth:  randFloat() - 0.5,
		}
	}

	go func() {
		src, err := caps.Videos.Open(ref)
		s.result <- videoOpenResult{src: src, err: err}
		// 打开晚于 Dispose 完成时由加载方收回结果并关闭来源
		if s.wasAbandoned() {
			s.drainResult()
		}
	}()
	return s
}

// drainResult 非阻塞取走未消费的加载结果并关闭其来源
func (s *videoSlot) drainResult() {
	select {
	case res := <-s.result:
		if res.src != nil {
			res.src.Close()
		}
	default:
	}
}

func (s *videoSlot) Update(deltaTime float64) {
	if s.disposed {
		return
	}

	select {
	case res := <-s.result:
		if res.err != nil {
			s.failed = true
		} else {
			s.src = res.src
			s.src.SetMuted(true)
			s.src.Play()
		}
	default:
	}

	s.elapsed += deltaTime
	s.spin += 0.12 * deltaTime

	if s.src == nil {
		return
	}

	// 元数据就绪后适配真实宽高比（只做一次）
	if !s.refitted {
		if w, h, ok := s.src.IntrinsicSize(); ok && h > 0 {
			s.aspect = float64(w) / float64(h)
			s.refitted = true
		}
	}

	if s.surface.Clicked() {
		if s.src.Paused() {
			s.src.SetMuted(false)
			s.src.Play()
		} else {
			s.src.Pause()
		}
	}
}

func (s *videoSlot) Draw(dst *ebiten.Image) {
	if s.disposed {
		return
	}
	if s.failed {
		drawSurfaceMessage(dst, "No se pudo cargar el video.")
		return
	}

	bounds := dst.Bounds()
	base := math.Min(float64(bounds.Dx()), float64(bounds.Dy())) * 0.7
	panelW, panelH := fitAspect(s.aspect, base)

	// 漂浮偏移：轻微的平移摆动，而非旋转
	baseCX, baseCY := surfaceCenter(dst)
	cx := baseCX + math.Cos(s.elapsed*0.9)*base*0.012
	cy := baseCY + math.Sin(s.elapsed*1.1)*base*0.035

	s.drawGlow(dst, cx, cy, panelW, panelH)
	s.drawFrame(dst, cx, cy, panelW, panelH)
	s.drawParticles(dst, cx, cy, panelW, panelH)

	if s.src != nil {
		if frame := s.src.Frame(); frame != nil {
			drawSpinningImage(dst, frame, cx, cy, panelW, panelH, 0)
		}
	}
}

// drawGlow 面板后方的径向辉光
func (s *videoSlot) drawGlow(dst *ebiten.Image, cx, cy, panelW, panelH float64) {
	radius := math.Hypot(panelW, panelH) * 0.62
	for i := 3; i >= 1; i-- {
		alpha := uint8(18 * i)
		glow := color.RGBA{R: 0x00, G: 0xc8, B: 0xff, A: alpha}
		vector.DrawFilledCircle(dst, float32(cx), float32(cy),
			float32(radius*(1.4-0.25*float64(i))), glow, true)
	}
}

// drawFrame 四条发光边框
func (s *videoSlot) drawFrame(dst *ebiten.Image, cx, cy, panelW, panelH float64) {
	frame := color.RGBA{R: 0x83, G: 0xf3, B: 0xff, A: 0xf2}
	thickness := math.Max(panelW*0.05, 3)
	halfW := panelW / 2
	halfH := panelH / 2

	vector.DrawFilledRect(dst, float32(cx-halfW-thickness), float32(cy-halfH-thickness),
		float32(panelW+thickness*2), float32(thickness), frame, true)
	vector.DrawFilledRect(dst, float32(cx-halfW-thickness), float32(cy+halfH),
		float32(panelW+thickness*2), float32(thickness), frame, true)
	vector.DrawFilledRect(dst, float32(cx-halfW-thickness), float32(cy-halfH),
		float32(thickness), float32(panelH), frame, true)
	vector.DrawFilledRect(dst, float32(cx+halfW), float32(cy-halfH),
		float32(thickness), float32(panelH), frame, true)
}

// drawParticles 围绕边框的粒子环，缓慢自转
func (s *videoSlot) drawParticles(dst *ebiten.Image, cx, cy, panelW, panelH float64) {
	baseRadius := math.Hypot(panelW/2, panelH/2) * 1.08
	dot := color.RGBA{R: 0x7d, G: 0xf9, B: 0xff, A: 0xcc}
	size := math.Max(baseRadius*0.015, 1.5)

	for _, p := range s.particles {
		angle := p.angle + s.spin
		r := baseRadius * p.radius
		x := cx + math.Cos(angle)*r
		y := cy + math.Sin(angle)*r*0.92 + p.depth*baseRadius*0.05
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(size), dot, true)
	}
}

func (s *videoSlot) Dispose() {
	if !s.dispose() {
		return
	}
	s.drainResult()
	if s.src != nil {
		s.src.Close()
		s.src = nil
	}
}

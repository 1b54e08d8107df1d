package reward

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// imageSpinSpeed 图片旋转角速度（弧度/秒）
const imageSpinSpeed = 0.5

// imageLoadResult 异步加载结果
type imageLoadResult struct {
	img *ebiten.Image
	err error
}

// imageSlot 旋转图片槽
//
// 图片异步加载：加载中表面保持空白；成功后按图片宽高比适配
// 双面面板并持续旋转；失败则在表面内显示文字错误。
type imageSlot struct {
	baseSlot
	surface Surface
	result  chan imageLoadResult
	img     *ebiten.Image
	failed  bool
	angle   float64
}

func newImageSlot(ledger *ResourceLedger, caps RenderCapability, surface Surface, ref string) *imageSlot {
	s := &imageSlot{
		baseSlot: newBaseSlot(ledger),
		surface:  surface,
		result:   make(chan imageLoadResult, 1),
	}
	go func() {
		img, err := caps.Images.Load(ref)
		s.result <- imageLoadResult{img: img, err: err}
		// 加载晚于 Dispose 完成时由加载方收回结果并释放纹理
		if s.wasAbandoned() {
			s.drainResult()
		}
	}()
	return s
}

// drainResult 非阻塞取走未消费的加载结果并释放其纹理
func (s *imageSlot) drainResult() {
	select {
	case res := <-s.result:
		if res.img != nil {
			res.img.Deallocate()
		}
	default:
	}
}

func (s *imageSlot) Update(deltaTime float64) {
	if s.disposed {
		return
	}

	// 轮询在途加载；实例已释放时结果由加载协程收回释放
	select {
	case res := <-s.result:
		if res.err != nil {
			s.failed = true
		} else {
			s.img = res.img
		}
	default:
	}

	s.angle += imageSpinSpeed * deltaTime
}

func (s *imageSlot) Draw(dst *ebiten.Image) {
	if s.disposed {
		return
	}
	if s.failed {
		drawSurfaceMessage(dst, "No se pudo cargar la imagen.")
		return
	}
	if s.img == nil {
		// 加载中：表面保持空白
		return
	}

	bounds := dst.Bounds()
	base := math.Min(float64(bounds.Dx()), float64(bounds.Dy())) * 0.8
	imgBounds := s.img.Bounds()
	aspect := float64(imgBounds.Dx()) / float64(imgBounds.Dy())
	panelW, panelH := fitAspect(aspect, base)

	cx, cy := surfaceCenter(dst)
	drawSpinningImage(dst, s.img, cx, cy, panelW, panelH, s.angle)
}

func (s *imageSlot) Dispose() {
	if !s.dispose() {
		return
	}
	s.drainResult()
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}

package reward

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// Presenter 覆盖层呈现器
//
// 职责：
//   - 组合装饰片段：可选的相机背景、漂浮装饰符号、内容槽
//   - 按 layout.go 的策略摆放多内容槽并挂载渲染器
//   - 通过对话框协作者展示，保证关闭时清理恰好执行一次
//     （无论用户确认、取消还是程序性关闭）
type Presenter struct {
	dialog   DialogService
	camera   CameraCapture
	renderer Renderer
	symbols  []string
	logger   zerolog.Logger
}

// NewPresenter 创建呈现器
//
// camera 可为 nil（无相机采集能力的平台），相机背景整体退化。
func NewPresenter(dialog DialogService, camera CameraCapture, renderer Renderer, symbols []string, logger zerolog.Logger) *Presenter {
	return &Presenter{
		dialog:   dialog,
		camera:   camera,
		renderer: renderer,
		symbols:  symbols,
		logger:   logger.With().Str("component", "reward.Presenter").Logger(),
	}
}

// Present 展示一个阶段的内容，返回用户是否主动确认
//
// StageSuccess 阶段带相机背景（把奖励与现实画面合成）。
func (p *Presenter) Present(stage StageName, content NormalizedContent, overrides DialogOverrides) bool {
	session := newOverlaySession(p, content, stage == StageSuccess)

	opts := DialogOptions{
		Title:       overrides.Title,
		Icon:        overrides.Icon,
		TopBanner:   overrides.TopBanner,
		ConfirmText: overrides.ConfirmText,
		CancelText:  overrides.CancelText,
		ShowCancel:  overrides.ShowCancel,
		Content:     session,
		OnClose:     session.Close,
	}
	if opts.ConfirmText == "" {
		opts.ConfirmText = "Continuar"
	}

	res := p.dialog.Fire(opts)
	return res.Confirmed
}

// slotSurface 单个内容槽的表面实现
type slotSurface struct {
	rect    image.Rectangle
	clicked bool
}

func (s *slotSurface) Size() (int, int) {
	return s.rect.Dx(), s.rect.Dy()
}

// Clicked 返回并清除本帧的点击标志
func (s *slotSurface) Clicked() bool {
	c := s.clicked
	s.clicked = false
	return c
}

// overlaySession 一次呈现的覆盖层会话
//
// 生命周期：首次 Resize 触发打开（启动相机、挂载装饰层与各槽
// 渲染器——三者一起发起，完成顺序不约定）；Close 由对话框的关闭
// 钩子同步调用，单次生效。
type overlaySession struct {
	presenter    *Presenter
	content      NormalizedContent
	cameraBacked bool

	width, height int
	opened        bool
	closed        bool

	decoration   *DecorationLayer
	cameraStream CameraStream
	placements   []SlotPlacement
	surfaces     []*slotSurface
	slots        []SlotRenderer
	hiddenAudio  SlotRenderer
}

func newOverlaySession(p *Presenter, content NormalizedContent, cameraBacked bool) *overlaySession {
	return &overlaySession{
		presenter:    p,
		content:      content,
		cameraBacked: cameraBacked,
	}
}

// Resize 观察内容区尺寸；首次调用执行打开，其后尺寸变化时重排槽位
func (s *overlaySession) Resize(width, height int) {
	if s.closed || (width == s.width && height == s.height && s.opened) {
		return
	}
	s.width, s.height = width, height

	if !s.opened {
		s.opened = true
		s.open()
		return
	}

	// 尺寸变化：按新尺寸重算槽区域，渲染器按表面新尺寸自行重适配
	s.placements = PlaceSlots(s.content, width, height)
	for i := range s.surfaces {
		if i < len(s.placements) {
			s.surfaces[i].rect = s.placements[i].Rect
		}
	}
}

// open 启动相机、装饰层与槽渲染器
func (s *overlaySession) open() {
	logger := s.presenter.logger

	if s.cameraBacked && s.presenter.camera != nil {
		stream, err := s.presenter.camera.Start()
		if err != nil {
			// 权限被拒/无设备：继续以无相机背景展示
			logger.Warn().Err(err).Msg("camera unavailable, showing overlay without live background")
		} else {
			s.cameraStream = stream
		}
	}

	s.decoration = NewDecorationLayer(s.presenter.symbols)

	s.placements = PlaceSlots(s.content, s.width, s.height)
	s.surfaces = make([]*slotSurface, len(s.placements))
	s.slots = make([]SlotRenderer, len(s.placements))
	for i, placement := range s.placements {
		surface := &slotSurface{rect: placement.Rect}
		s.surfaces[i] = surface

		forced := s.content
		forced.Kind = placement.Kind
		s.slots[i] = s.presenter.renderer.Mount(surface, forced)
	}

	// 有可视元素时音频作为隐藏的自动播放元素挂载（不占槽位）
	if ChooseAudioMode(s.content) == AudioHidden {
		forced := s.content
		forced.Kind = KindAudio
		s.hiddenAudio = s.presenter.renderer.Mount(&slotSurface{}, forced)
	}
}

// Update 推进装饰层与各槽动画
func (s *overlaySession) Update(deltaTime float64) {
	if !s.opened || s.closed {
		return
	}
	s.decoration.Update(deltaTime)
	for _, slot := range s.slots {
		slot.Update(deltaTime)
	}
	if s.hiddenAudio != nil {
		s.hiddenAudio.Update(deltaTime)
	}
}

// Draw 绘制相机背景、装饰层与各槽
func (s *overlaySession) Draw(dst *ebiten.Image) {
	if !s.opened || s.closed {
		return
	}

	if s.cameraStream != nil {
		if frame := s.cameraStream.Frame(); frame != nil {
			s.drawCameraBackground(dst, frame)
		}
	}

	s.decoration.Draw(dst)

	for i, slot := range s.slots {
		rect := s.surfaces[i].rect.Add(dst.Bounds().Min)
		sub := dst.SubImage(rect).(*ebiten.Image)
		slot.Draw(sub)
	}
}

// drawCameraBackground 把相机帧拉伸铺满内容区
func (s *overlaySession) drawCameraBackground(dst *ebiten.Image, frame *ebiten.Image) {
	bounds := dst.Bounds()
	fb := frame.Bounds()
	if fb.Dx() == 0 || fb.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(bounds.Dx())/float64(fb.Dx()), float64(bounds.Dy())/float64(fb.Dy()))
	op.GeoM.Translate(float64(bounds.Min.X), float64(bounds.Min.Y))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(frame, op)
}

// HandleClick 把落在槽区域内的点击路由给对应表面
func (s *overlaySession) HandleClick(x, y int) {
	if !s.opened || s.closed {
		return
	}
	pt := image.Pt(x, y)
	for _, surface := range s.surfaces {
		if pt.In(surface.rect) {
			surface.clicked = true
		}
	}
}

// Close 释放会话资源：相机流、全部槽渲染器、装饰层
//
// 单次生效，与关闭路径无关（确认/取消/程序性关闭都走这里），
// 在对话框关闭钩子内同步执行。
func (s *overlaySession) Close() {
	if s.closed {
		return
	}
	s.closed = true

	if s.cameraStream != nil {
		s.cameraStream.Stop()
		s.cameraStream = nil
	}
	for _, slot := range s.slots {
		slot.Dispose()
	}
	if s.hiddenAudio != nil {
		s.hiddenAudio.Dispose()
	}
	if s.decoration != nil {
		s.decoration.Detach()
	}
}

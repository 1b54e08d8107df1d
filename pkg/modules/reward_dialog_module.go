package modules

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/JR-amirez/juegos-ar/pkg/game"
	"github.com/JR-amirez/juegos-ar/pkg/reward"
	"github.com/JR-amirez/juegos-ar/pkg/utils"
)

// DialogModule 模态对话框模块
//
// 职责：
//   - 实现 reward.DialogService：Fire 阻塞调用方直到用户关闭对话框
//   - 在游戏循环内每帧被 Update/Draw 驱动（泵模型）
//   - 驱动内容区（reward.OverlayContent）：Resize / Update / Draw / HandleClick
//   - 保证每个打开周期恰好调用一次 OnClose
//
// 线程模型：Fire 必须从游戏循环以外的 goroutine 调用（场景用
// go flow.Submit(...) 发起），游戏循环继续跑并泵动对话框帧；
// 用户确认/取消后 Fire 返回。
type DialogModule struct {
	logger zerolog.Logger

	titleFace  *text.GoTextFace
	bodyFace   *text.GoTextFace
	buttonFace *text.GoTextFace

	mu      sync.Mutex
	session *dialogSession

	winW, winH int
	ready      bool
}

// dialogSession 一次打开/关闭周期的状态
type dialogSession struct {
	opts    reward.DialogOptions
	result  chan reward.DialogResult
	closed  bool
	elapsed float64

	panel       image.Rectangle
	contentRect image.Rectangle
	confirmRect image.Rectangle
	cancelRect  image.Rectangle
	sizedW      int
	sizedH      int
}

// 对话框配色
var (
	dialogOverlayColor = color.RGBA{0, 0, 0, 150}
	dialogPanelColor   = color.RGBA{250, 250, 252, 255}
	dialogBorderColor  = color.RGBA{88, 101, 242, 255}
	dialogTitleColor   = color.RGBA{40, 44, 52, 255}
	dialogBannerColor  = color.RGBA{234, 179, 8, 255}
	dialogConfirmColor = color.RGBA{34, 160, 84, 255}
	dialogCancelColor  = color.RGBA{120, 124, 136, 255}
	dialogButtonText   = color.RGBA{255, 255, 255, 255}

	iconSuccessColor = color.RGBA{34, 160, 84, 255}
	iconErrorColor   = color.RGBA{220, 68, 68, 255}
	iconInfoColor    = color.RGBA{59, 130, 246, 255}
	iconWarningColor = color.RGBA{234, 179, 8, 255}
)

// NewDialogModule 创建对话框模块
//
// 字体加载失败不是致命错误：文本渲染降级为调试字体。
func NewDialogModule(rm *game.ResourceManager, logger zerolog.Logger) *DialogModule {
	m := &DialogModule{
		logger: logger.With().Str("component", "modules.DialogModule").Logger(),
		ready:  true,
	}

	const fontPath = "assets/fonts/Quicksand-Regular.ttf"
	var err error
	if m.titleFace, err = rm.LoadFontFace(fontPath, 30); err != nil {
		m.logger.Warn().Err(err).Msg("title font unavailable, falling back to debug text")
	}
	m.bodyFace, _ = rm.LoadFontFace(fontPath, 20)
	m.buttonFace, _ = rm.LoadFontFace(fontPath, 18)

	return m
}

// Available 报告对话框服务是否可用
func (m *DialogModule) Available() bool {
	return m != nil && m.ready
}

// Fire 显示对话框并阻塞到关闭，返回用户决定
//
// 同一时刻只支持一个对话框：嵌套调用立即按未确认关闭。
func (m *DialogModule) Fire(opts reward.DialogOptions) reward.DialogResult {
	m.mu.Lock()
	if m.session != nil {
		m.mu.Unlock()
		m.logger.Error().Str("title", opts.Title).Msg("nested dialog rejected")
		if opts.OnClose != nil {
			opts.OnClose()
		}
		return reward.DialogResult{Confirmed: false}
	}

	session := &dialogSession{
		opts:   opts,
		result: make(chan reward.DialogResult, 1),
	}
	m.session = session
	m.mu.Unlock()

	return <-session.result
}

// IsActive 报告当前是否有对话框在显示（场景据此屏蔽底层输入）
func (m *DialogModule) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}

// SetScreenSize 告知模块当前屏幕尺寸（App 每帧调用）
func (m *DialogModule) SetScreenSize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.winW, m.winH = width, height
}

// CloseActive 程序性关闭当前对话框（应用退出、场景销毁时使用）
func (m *DialogModule) CloseActive(confirmed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		m.resolveLocked(m.session, confirmed)
	}
}

// Update 泵动当前对话框：布局、内容区动画、输入
func (m *DialogModule) Update(deltaTime float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil || m.winW == 0 || m.winH == 0 {
		return
	}
	s.elapsed += deltaTime

	m.layoutLocked(s)

	if s.opts.Content != nil {
		s.opts.Content.Update(deltaTime)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		m.resolveLocked(s, true)
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		m.resolveLocked(s, false)
		return
	}

	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		pt := image.Pt(x, y)
		switch {
		case pt.In(s.confirmRect):
			m.resolveLocked(s, true)
		case s.opts.ShowCancel && pt.In(s.cancelRect):
			m.resolveLocked(s, false)
		case s.opts.Content != nil && pt.In(s.contentRect):
			s.opts.Content.HandleClick(x-s.contentRect.Min.X, y-s.contentRect.Min.Y)
		}
	}
}

// layoutLocked 根据屏幕尺寸摆放面板、内容区和按钮
//
// 内容区尺寸变化时向内容驱动器报告 Resize（首次报告即打开信号）。
func (m *DialogModule) layoutLocked(s *dialogSession) {
	if m.winW == s.sizedW && m.winH == s.sizedH {
		return
	}
	s.sizedW, s.sizedH = m.winW, m.winH

	panelW := m.winW - 80
	panelH := m.winH - 80
	maxW, maxH := 760, 560
	if s.opts.Content == nil {
		maxH = 360
	}
	if panelW > maxW {
		panelW = maxW
	}
	if panelH > maxH {
		panelH = maxH
	}
	px := (m.winW - panelW) / 2
	py := (m.winH - panelH) / 2
	s.panel = image.Rect(px, py, px+panelW, py+panelH)

	const pad = 24
	top := py + pad
	if s.opts.Icon != "" {
		top += 56
	}
	if s.opts.Title != "" {
		top += 40
	}
	if s.opts.TopBanner != "" {
		top += 32
	}

	const buttonH = 44
	bottom := py + panelH - pad - buttonH - 12
	s.contentRect = image.Rect(px+pad, top, px+panelW-pad, bottom)

	buttonW := 170
	buttonY := py + panelH - pad - buttonH
	if s.opts.ShowCancel {
		gap := 20
		cx := px + panelW/2
		s.confirmRect = image.Rect(cx-buttonW-gap/2, buttonY, cx-gap/2, buttonY+buttonH)
		s.cancelRect = image.Rect(cx+gap/2, buttonY, cx+buttonW+gap/2, buttonY+buttonH)
	} else {
		bx := px + (panelW-buttonW)/2
		s.confirmRect = image.Rect(bx, buttonY, bx+buttonW, buttonY+buttonH)
		s.cancelRect = image.Rectangle{}
	}

	if s.opts.Content != nil {
		s.opts.Content.Resize(s.contentRect.Dx(), s.contentRect.Dy())
	}
}

// resolveLocked 关闭对话框：触发 OnClose（恰好一次）并回送结果
func (m *DialogModule) resolveLocked(s *dialogSession, confirmed bool) {
	if s.closed {
		return
	}
	s.closed = true
	m.session = nil

	if s.opts.OnClose != nil {
		s.opts.OnClose()
	}
	s.result <- reward.DialogResult{Confirmed: confirmed}
}

// Draw 绘制遮罩、面板、头部、内容区与按钮
func (m *DialogModule) Draw(screen *ebiten.Image) {
	m.mu.Lock()
	s := m.session
	m.mu.Unlock()
	if s == nil || s.sizedW == 0 {
		return
	}

	// 遮罩淡入
	fade := s.elapsed / 0.15
	if fade > 1 {
		fade = 1
	}
	alpha := uint8(float64(dialogOverlayColor.A) * utils.EaseOutQuad(fade))
	sw, sh := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	vector.DrawFilledRect(screen, 0, 0, sw, sh, color.RGBA{0, 0, 0, alpha}, false)

	p := s.panel
	vector.DrawFilledRect(screen, float32(p.Min.X), float32(p.Min.Y), float32(p.Dx()), float32(p.Dy()), dialogPanelColor, false)
	vector.StrokeRect(screen, float32(p.Min.X), float32(p.Min.Y), float32(p.Dx()), float32(p.Dy()), 3, dialogBorderColor, false)

	y := p.Min.Y + 24
	if s.opts.Icon != "" {
		m.drawIcon(screen, s.opts.Icon, p.Min.X+p.Dx()/2, y+24)
		y += 56
	}
	if s.opts.Title != "" {
		m.drawCenteredText(screen, s.opts.Title, m.titleFace, p.Min.X+p.Dx()/2, y+16, dialogTitleColor)
		y += 40
	}
	if s.opts.TopBanner != "" {
		m.drawCenteredText(screen, s.opts.TopBanner, m.bodyFace, p.Min.X+p.Dx()/2, y+12, dialogBannerColor)
		y += 32
	}

	if s.opts.Content != nil {
		sub := screen.SubImage(s.contentRect).(*ebiten.Image)
		s.opts.Content.Draw(sub)
	} else if s.opts.Text != "" {
		m.drawBodyText(screen, s)
	}

	m.drawButton(screen, s.confirmRect, s.opts.ConfirmText, dialogConfirmColor)
	if s.opts.ShowCancel {
		m.drawButton(screen, s.cancelRect, s.opts.CancelText, dialogCancelColor)
	}
}

// drawBodyText 在内容区绘制自动换行的正文
func (m *DialogModule) drawBodyText(screen *ebiten.Image, s *dialogSession) {
	lines := utils.WrapText(s.opts.Text, m.bodyFace, float64(s.contentRect.Dx()))
	lineH := 28
	y := s.contentRect.Min.Y + (s.contentRect.Dy()-len(lines)*lineH)/2
	for i, line := range lines {
		m.drawCenteredText(screen, line, m.bodyFace, s.contentRect.Min.X+s.contentRect.Dx()/2, y+i*lineH+lineH/2, dialogTitleColor)
	}
}

// drawButton 绘制按钮底色与居中文字
func (m *DialogModule) drawButton(screen *ebiten.Image, rect image.Rectangle, label string, bg color.RGBA) {
	if rect.Empty() {
		return
	}
	vector.DrawFilledRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)
	m.drawCenteredText(screen, label, m.buttonFace, rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2, dialogButtonText)
}

// drawCenteredText 以 (cx, cy) 为中心绘制单行文字，无字体时退化为调试字体
func (m *DialogModule) drawCenteredText(screen *ebiten.Image, str string, face *text.GoTextFace, cx, cy int, clr color.RGBA) {
	if str == "" {
		return
	}
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, cx-len(str)*3, cy-8)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(cx), float64(cy))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawIcon 绘制语义图标（圆底 + 符号线条）
func (m *DialogModule) drawIcon(screen *ebiten.Image, icon string, cx, cy int) {
	fx, fy := float32(cx), float32(cy)
	const r = 22

	switch icon {
	case "success":
		vector.DrawFilledCircle(screen, fx, fy, r, iconSuccessColor, true)
		vector.StrokeLine(screen, fx-10, fy, fx-3, fy+8, 4, dialogButtonText, true)
		vector.StrokeLine(screen, fx-3, fy+8, fx+11, fy-7, 4, dialogButtonText, true)
	case "error":
		vector.DrawFilledCircle(screen, fx, fy, r, iconErrorColor, true)
		vector.StrokeLine(screen, fx-8, fy-8, fx+8, fy+8, 4, dialogButtonText, true)
		vector.StrokeLine(screen, fx-8, fy+8, fx+8, fy-8, 4, dialogButtonText, true)
	case "warning":
		vector.DrawFilledCircle(screen, fx, fy, r, iconWarningColor, true)
		vector.StrokeLine(screen, fx, fy-10, fx, fy+4, 4, dialogButtonText, true)
		vector.DrawFilledCircle(screen, fx, fy+10, 2.5, dialogButtonText, true)
	default: // "info" 及未知值
		vector.DrawFilledCircle(screen, fx, fy, r, iconInfoColor, true)
		vector.DrawFilledCircle(screen, fx, fy-10, 2.5, dialogButtonText, true)
		vector.StrokeLine(screen, fx, fy-4, fx, fy+10, 4, dialogButtonText, true)
	}
}

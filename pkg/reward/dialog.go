package reward

import "github.com/hajimehoshi/ebiten/v2"

// OverlayContent 对话框内容区的驱动接口
//
// 对话框协作者负责调用：每帧先 Resize（报告内容区当前尺寸，
// 首次调用即"打开"信号），再 Update / Draw；点击落在内容区时
// 调用 HandleClick。关闭时机由对话框决定，清理走 OnClose。
type OverlayContent interface {
	Resize(width, height int)
	Update(deltaTime float64)
	Draw(dst *ebiten.Image)
	HandleClick(x, y int)
}

// DialogOptions 模态对话框选项
//
// 对应外部对话框协作者的 fire(options) 参数子集。Content 与
// OnClose 由呈现器注入，用于挂载渲染器和保证清理。
type DialogOptions struct {
	Title       string
	Icon        string // "success" / "error" / "info" / "warning"
	TopBanner   string // 内容区上方的横幅文字（如 "10 Puntos"）
	Text        string // 纯文字正文（无 Content 时使用）
	ConfirmText string
	CancelText  string
	ShowCancel  bool

	// Content 内容区驱动器，可为 nil（纯文字对话框）
	Content OverlayContent
	// OnClose 在对话框关闭（任何路径）时同步调用；对话框协作者
	// 保证每个打开/关闭周期恰好调用一次
	OnClose func()
}

// DialogResult 对话框结果
type DialogResult struct {
	// Confirmed 仅当用户主动点击确认按钮时为 true
	Confirmed bool
}

// DialogService 模态对话框外部协作者
//
// 核心从不假设对话框服务已经就绪：编排器先检查 Available()，
// 不可用时按"无法确认"处理（返回 false 给调用方）。
type DialogService interface {
	// Available 报告对话框服务是否已加载可用
	Available() bool
	// Fire 显示对话框并阻塞到关闭，返回用户决定
	Fire(opts DialogOptions) DialogResult
}

// DialogOverrides 单次播放的对话框覆盖项（按钮文案等）
//
// 零值字段不覆盖呈现器的默认值。
type DialogOverrides struct {
	Title       string
	Icon        string
	TopBanner   string
	ConfirmText string
	CancelText  string
	ShowCancel  bool
}

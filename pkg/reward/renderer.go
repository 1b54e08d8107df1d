package reward

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
)

// Surface 渲染器的挂载表面
//
// 尺寸每帧观察一次（持续观察，而非只在挂载时），尺寸变化时
// 渲染器重新适配投影。Clicked 报告本帧表面是否被点击。
type Surface interface {
	Size() (width, height int)
	Clicked() bool
}

// SlotRenderer 挂载在一个内容槽上的渲染器实例
//
// 生命周期契约：
//   - Update/Draw 在 Dispose 之后必须是空操作（每帧开头检查 disposed 标志）
//   - Dispose 幂等，可多次调用或不调用（呈现器保证恰好调用一次）
//   - 挂载后在途的资源加载，完成时若实例已释放则由加载方关闭
//     来源再丢弃，媒体资源不悬挂
type SlotRenderer interface {
	Update(deltaTime float64)
	Draw(dst *ebiten.Image)
	Dispose()
}

// ImageProvider 图片纹理加载协作者
type ImageProvider interface {
	Load(ref string) (*ebiten.Image, error)
}

// VideoSource 视频源协作者
//
// IntrinsicSize 在元数据就绪前返回 ok=false，此时渲染器按 16:9 适配，
// 就绪后重新适配真实宽高比。
type VideoSource interface {
	Play()
	Pause()
	Paused() bool
	SetMuted(muted bool)
	Frame() *ebiten.Image
	IntrinsicSize() (width, height int, ok bool)
	Close()
}

// VideoProvider 视频源打开协作者
type VideoProvider interface {
	Open(ref string) (VideoSource, error)
}

// AudioSource 音频源协作者
//
// Energy 返回当前帧的原始频率能量（0~1），渲染器自行做指数平滑。
type AudioSource interface {
	Play()
	Pause()
	Playing() bool
	Ready() bool
	Energy() float64
	Close()
}

// AudioProvider 音频源打开协作者
type AudioProvider interface {
	Open(ref string) (AudioSource, error)
}

// RenderCapability 惰性加载的渲染能力集合
//
// Font 可为 nil：文字渲染退化为平面面板（见 scene_text.go），
// 表面永远不会留白。
type RenderCapability struct {
	Font   *text.GoTextFace
	Images ImageProvider
	Videos VideoProvider
	Audios AudioProvider
}

// ResourceLedger 挂载/释放计数账本
//
// 每次成功挂载对应恰好一次释放；测试用它验证清理完整性。
type ResourceLedger struct {
	mounts   int
	disposes int
}

// OnMount 登记一次挂载
func (l *ResourceLedger) OnMount() { l.mounts++ }

// OnDispose 登记一次释放
func (l *ResourceLedger) OnDispose() { l.disposes++ }

// Mounts 返回累计挂载次数
func (l *ResourceLedger) Mounts() int { return l.mounts }

// Disposes 返回累计释放次数
func (l *ResourceLedger) Disposes() int { return l.disposes }

// Outstanding 返回仍未释放的挂载数量
func (l *ResourceLedger) Outstanding() int { return l.mounts - l.disposes }

// Renderer 场景渲染适配器接口
//
// Mount 把一份归一化内容渲染到表面上，返回的实例由调用方负责
// 恰好释放一次。Mount 自身从不失败：能力缺失或资源错误退化为
// 表面内的文字提示。
type Renderer interface {
	Mount(surface Surface, content NormalizedContent) SlotRenderer
}

// Adapter 基于 Ebitengine 的场景渲染适配器
type Adapter struct {
	caps   *CapabilityLoader[RenderCapability]
	ledger *ResourceLedger
	logger zerolog.Logger
}

// NewAdapter 创建适配器
//
// caps 是记忆化的渲染能力加载器：重复 Mount 不会重复加载字体等
// 资源，进行中的加载被等待而不是重启。
func NewAdapter(caps *CapabilityLoader[RenderCapability], logger zerolog.Logger) *Adapter {
	return &Adapter{
		caps:   caps,
		ledger: &ResourceLedger{},
		logger: logger.With().Str("component", "reward.Adapter").Logger(),
	}
}

// Ledger 返回挂载/释放账本
func (a *Adapter) Ledger() *ResourceLedger {
	return a.ledger
}

// Mount 按内容类型挂载对应的槽渲染器
func (a *Adapter) Mount(surface Surface, content NormalizedContent) SlotRenderer {
	caps, err := a.caps.Get()
	if err != nil {
		a.logger.Warn().Err(err).Msg("render capability unavailable, degrading to message slot")
		return newMessageSlot(a.ledger, "No se pudo inicializar el render 3D.")
	}

	switch content.Kind {
	case KindText:
		return newTextSlot(a.ledger, caps, content.Text)
	case KindImage:
		return newImageSlot(a.ledger, caps, surface, content.ImageRef)
	case KindVideo:
		return newVideoSlot(a.ledger, caps, surface, content.VideoRef)
	case KindAudio:
		return newAudioSlot(a.ledger, caps, surface, content.AudioRef)
	default:
		return newMessageSlot(a.ledger, "Sin tipo configurado.")
	}
}

// baseSlot 槽渲染器公共部分：释放标志与账本登记
//
// disposed 只在游戏循环协程上读写；abandoned 是同一事实面向
// 加载协程的信号（dispose 时关闭），加载在 Dispose 之后才完成
// 时据此自行收尾。
type baseSlot struct {
	ledger    *ResourceLedger
	disposed  bool
	abandoned chan struct{}
}

func newBaseSlot(ledger *ResourceLedger) baseSlot {
	ledger.OnMount()
	return baseSlot{ledger: ledger, abandoned: make(chan struct{})}
}

// dispose 置位释放标志并登记，幂等
func (b *baseSlot) dispose() bool {
	if b.disposed {
		return false
	}
	b.disposed = true
	close(b.abandoned)
	b.ledger.OnDispose()
	return true
}

// wasAbandoned 供加载协程在投递结果之后检查：实例是否已释放
func (b *baseSlot) wasAbandoned() bool {
	select {
	case <-b.abandoned:
		return true
	default:
		return false
	}
}

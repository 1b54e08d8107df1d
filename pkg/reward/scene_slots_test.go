package reward

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// quietSurface 固定尺寸、从不被点击的挂载表面
type quietSurface struct{}

func (quietSurface) Size() (int, int) { return 200, 150 }
func (quietSurface) Clicked() bool    { return false }

// countingAudioSource 记录关闭状态的音频源
type countingAudioSource struct {
	closed  atomic.Bool
	playing bool
}

func (s *countingAudioSource) Play()           { s.playing = true }
func (s *countingAudioSource) Pause()          { s.playing = false }
func (s *countingAudioSource) Playing() bool   { return s.playing }
func (s *countingAudioSource) Ready() bool     { return true }
func (s *countingAudioSource) Energy() float64 { return 0 }
func (s *countingAudioSource) Close()          { s.closed.Store(true) }

// gatedAudioProvider 在 release 关闭前阻塞 Open 的音频协作者
type gatedAudioProvider struct {
	release chan struct{}
	src     *countingAudioSource
}

func (p *gatedAudioProvider) Open(ref string) (AudioSource, error) {
	<-p.release
	return p.src, nil
}

// countingVideoSource 记录关闭状态的视频源
type countingVideoSource struct {
	closed atomic.Bool
	paused bool
}

func (s *countingVideoSource) Play()                           { s.paused = false }
func (s *countingVideoSource) Pause()                          { s.paused = true }
func (s *countingVideoSource) Paused() bool                    { return s.paused }
func (s *countingVideoSource) SetMuted(muted bool)             {}
func (s *countingVideoSource) Frame() *ebiten.Image            { return nil }
func (s *countingVideoSource) IntrinsicSize() (int, int, bool) { return 0, 0, false }
func (s *countingVideoSource) Close()                          { s.closed.Store(true) }

// gatedVideoProvider 在 release 关闭前阻塞 Open 的视频协作者
type gatedVideoProvider struct {
	release chan struct{}
	src     *countingVideoSource
}

func (p *gatedVideoProvider) Open(ref string) (VideoSource, error) {
	<-p.release
	return p.src, nil
}

// failingImageProvider 在 release 关闭前阻塞、然后返回错误的图片协作者
type failingImageProvider struct {
	release chan struct{}
}

func (p *failingImageProvider) Load(ref string) (*ebiten.Image, error) {
	<-p.release
	return nil, errors.New("no se pudo leer la imagen")
}

// waitCondition 轮询直到条件成立，超时则判失败
func waitCondition(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("条件在超时前未满足")
}

// TestAudioSlotLateOpenClosesSource 测试打开晚于释放完成时来源仍被关闭
//
// Dispose 先于 Open 完成：释放时通道为空，迟到的结果必须由
// 加载协程收回并关闭，音频播放器不悬挂。
func TestAudioSlotLateOpenClosesSource(t *testing.T) {
	provider := &gatedAudioProvider{release: make(chan struct{}), src: &countingAudioSource{}}
	ledger := &ResourceLedger{}

	slot := newAudioSlot(ledger, RenderCapability{Audios: provider}, quietSurface{}, "lento.mp3")
	slot.Update(1.0 / 60)
	slot.Dispose()
	if got := ledger.Outstanding(); got != 0 {
		t.Fatalf("释放后账本未清零: %d", got)
	}

	close(provider.release)
	waitCondition(t, func() bool { return provider.src.closed.Load() })
	if len(slot.result) != 0 {
		t.Error("迟到的加载结果不应该留在通道里")
	}

	// 释放后的帧推进必须是空操作
	slot.Update(1.0 / 60)
	if slot.src != nil {
		t.Error("已释放的槽不应该再持有来源")
	}
}

// TestVideoSlotLateOpenClosesSource 测试视频槽的同一竞态路径
func TestVideoSlotLateOpenClosesSource(t *testing.T) {
	provider := &gatedVideoProvider{release: make(chan struct{}), src: &countingVideoSource{}}

	slot := newVideoSlot(&ResourceLedger{}, RenderCapability{Videos: provider}, quietSurface{}, "lento.mp4")
	slot.Dispose()
	slot.Dispose() // 幂等

	close(provider.release)
	waitCondition(t, func() bool { return provider.src.closed.Load() })
	if len(slot.result) != 0 {
		t.Error("迟到的加载结果不应该留在通道里")
	}
}

// TestAudioSlotOpenBeforeDispose 测试正常路径：来源在释放时被关闭
func TestAudioSlotOpenBeforeDispose(t *testing.T) {
	provider := &gatedAudioProvider{release: make(chan struct{}), src: &countingAudioSource{}}
	close(provider.release)

	slot := newAudioSlot(&ResourceLedger{}, RenderCapability{Audios: provider}, quietSurface{}, "listo.mp3")
	waitCondition(t, func() bool {
		slot.Update(1.0 / 60)
		return slot.src != nil
	})
	if !provider.src.playing {
		t.Error("就绪后应该自动开始播放")
	}

	slot.Dispose()
	if !provider.src.closed.Load() {
		t.Error("释放时应该关闭来源")
	}
}

// TestImageSlotLoadFailureAfterDispose 测试图片槽释放后收到失败结果不改状态
func TestImageSlotLoadFailureAfterDispose(t *testing.T) {
	provider := &failingImageProvider{release: make(chan struct{})}

	slot := newImageSlot(&ResourceLedger{}, RenderCapability{Images: provider}, quietSurface{}, "lenta.png")
	slot.Dispose()
	close(provider.release)

	// 已释放：帧推进不读通道、不置失败标志
	for i := 0; i < 3; i++ {
		slot.Update(1.0 / 60)
	}
	if slot.failed {
		t.Error("已释放的槽不应该再更新失败标志")
	}
}

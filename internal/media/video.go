package media

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/JR-amirez/juegos-ar/pkg/reward"
)

// OpenVideo 实现 reward.VideoProvider
//
// 桌面端的"视频"用 GIF 动画承载（内容编辑器导出的短循环）。
// 帧在打开时全部预合成（GIF 的增量帧叠在前一帧上），播放只做
// 时间轴推进。GIF 无音轨，静音开关是空操作。
func (l *Library) OpenVideo(ref string) (reward.VideoSource, error) {
	data, err := l.open(ref)
	if err != nil {
		return nil, err
	}

	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decodificar video %q: %w", ref, err)
	}
	if len(anim.Image) == 0 {
		return nil, fmt.Errorf("video %q sin fotogramas", ref)
	}

	bounds := image.Rect(0, 0, anim.Config.Width, anim.Config.Height)
	if bounds.Empty() {
		bounds = anim.Image[0].Bounds()
	}

	src := &gifVideoSource{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		paused: true,
	}

	// 预合成：每帧叠在累积画布上，延迟单位从 1/100 秒换算成秒
	canvas := image.NewRGBA(bounds)
	for i, frame := range anim.Image {
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		delay := float64(anim.Delay[i]) / 100
		if delay <= 0 {
			delay = 0.1
		}
		src.frames = append(src.frames, ebiten.NewImageFromImage(canvas))
		src.delays = append(src.delays, delay)
		src.total += delay
	}

	return src, nil
}

// gifVideoSource 基于预合成 GIF 帧的 reward.VideoSource 实现
//
// 没有独立的播放 goroutine：像视频元素一样按墙钟自走，Frame
// 在每次调用时把 [上次取帧, 现在] 的间隔累积进播放时钟。
type gifVideoSource struct {
	width, height int
	frames        []*ebiten.Image
	delays        []float64
	total         float64

	mu       sync.Mutex
	paused   bool
	clock    float64
	lastTick time.Time
}

func (s *gifVideoSource) Play() {
	s.mu.Lock()
	if s.paused {
		s.paused = false
		s.lastTick = time.Now()
	}
	s.mu.Unlock()
}

func (s *gifVideoSource) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

func (s *gifVideoSource) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// SetMuted GIF 无音轨，静音开关无效果
func (s *gifVideoSource) SetMuted(muted bool) {}

// Frame 返回当前时刻的帧
func (s *gifVideoSource) Frame() *ebiten.Image {
	s.mu.Lock()
	if !s.paused {
		now := time.Now()
		s.clock += now.Sub(s.lastTick).Seconds()
		s.lastTick = now
	}
	pos := s.clock
	s.mu.Unlock()

	if s.total <= 0 {
		return s.frames[0]
	}
	for pos >= s.total {
		pos -= s.total
	}
	for i, delay := range s.delays {
		if pos < delay {
			return s.frames[i]
		}
		pos -= delay
	}
	return s.frames[len(s.frames)-1]
}

func (s *gifVideoSource) IntrinsicSize() (int, int, bool) {
	return s.width, s.height, true
}

func (s *gifVideoSource) Close() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
	for _, frame := range s.frames {
		frame.Deallocate()
	}
	s.frames = nil
}

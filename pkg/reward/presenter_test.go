package reward

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// fakeCameraStream 记录停止次数的相机流
type fakeCameraStream struct {
	stops int
}

func (s *fakeCameraStream) Frame() *ebiten.Image { return nil }
func (s *fakeCameraStream) Stop()                { s.stops++ }

// fakeCamera 可编程的相机采集协作者
type fakeCamera struct {
	starts int
	err    error
	stream *fakeCameraStream
}

func (c *fakeCamera) Start() (CameraStream, error) {
	c.starts++
	if c.err != nil {
		return nil, c.err
	}
	c.stream = &fakeCameraStream{}
	return c.stream, nil
}

// drivingDialog 模拟真实对话框周期：Resize -> Update 若干帧 -> 关闭
func drivingDialog(frames int, width, height int, confirmed bool) *fakeDialog {
	return &fakeDialog{
		available: true,
		drive: func(opts DialogOptions) DialogResult {
			opts.Content.Resize(width, height)
			for i := 0; i < frames; i++ {
				opts.Content.Update(1.0 / 60)
			}
			if opts.OnClose != nil {
				opts.OnClose()
			}
			return DialogResult{Confirmed: confirmed}
		},
	}
}

// TestPresentMountsSlotsPerLayout 测试按布局策略为每个槽挂载渲染器
func TestPresentMountsSlotsPerLayout(t *testing.T) {
	renderer := &fakeRenderer{}
	dialog := drivingDialog(3, 800, 600, true)
	p := NewPresenter(dialog, nil, renderer, nil, zerolog.Nop())

	content := Normalize(StageContent{Text: "hola", ImageRef: "i.png", VideoRef: "v.mp4"})
	if !p.Present(StageStart, content, DialogOverrides{}) {
		t.Error("Present() = false, want true")
	}

	if len(renderer.mounted) != 3 {
		t.Fatalf("mounted %d slots, want 3", len(renderer.mounted))
	}
	wantKinds := []ContentKind{KindText, KindImage, KindVideo}
	for i, slot := range renderer.mounted {
		if slot.kind != wantKinds[i] {
			t.Errorf("slot %d kind = %v, want %v", i, slot.kind, wantKinds[i])
		}
		if slot.updates == 0 {
			t.Errorf("slot %d never updated", i)
		}
	}
}

// TestPresentHiddenAudio 测试有可视元素时音频作为隐藏元素额外挂载
func TestPresentHiddenAudio(t *testing.T) {
	renderer := &fakeRenderer{}
	dialog := drivingDialog(1, 800, 600, true)
	p := NewPresenter(dialog, nil, renderer, nil, zerolog.Nop())

	content := Normalize(StageContent{Text: "hola", AudioRef: "a.mp3"})
	p.Present(StageStart, content, DialogOverrides{})

	// 文本占一个槽，音频隐藏挂载
	if len(renderer.mounted) != 2 {
		t.Fatalf("mounted %d renderers, want 2 (slot + hidden audio)", len(renderer.mounted))
	}
	if renderer.mounted[0].kind != KindText {
		t.Errorf("slot kind = %v, want KindText", renderer.mounted[0].kind)
	}
	if renderer.mounted[1].kind != KindAudio {
		t.Errorf("hidden renderer kind = %v, want KindAudio", renderer.mounted[1].kind)
	}
}

// TestPresentCleanupExactlyOnce 测试关闭钩子重复触发时清理只执行一次
func TestPresentCleanupExactlyOnce(t *testing.T) {
	renderer := &fakeRenderer{}
	dialog := &fakeDialog{
		available: true,
		drive: func(opts DialogOptions) DialogResult {
			opts.Content.Resize(640, 480)
			opts.Content.Update(1.0 / 60)
			// 双重关闭：清理必须幂等
			opts.OnClose()
			opts.OnClose()
			// 关闭后的驱动调用必须是空操作
			opts.Content.Update(1.0 / 60)
			opts.Content.HandleClick(10, 10)
			return DialogResult{Confirmed: false}
		},
	}
	p := NewPresenter(dialog, nil, renderer, nil, zerolog.Nop())

	content := Normalize(StageContent{Text: "hola", AudioRef: "a.mp3"})
	if p.Present(StageStart, content, DialogOverrides{}) {
		t.Error("Present() = true, want false (dialog dismissed)")
	}

	for i, slot := range renderer.mounted {
		if slot.disposes != 1 {
			t.Errorf("renderer %d disposed %d times, want exactly 1", i, slot.disposes)
		}
		// 关闭后不再推进动画
		updatesAtClose := slot.updates
		if updatesAtClose != 1 {
			t.Errorf("renderer %d updated %d times, want 1 (post-close updates must be no-ops)", i, updatesAtClose)
		}
	}
}

// TestPresentCameraOnlyOnSuccess 测试相机背景只在 Acierto 阶段启动
func TestPresentCameraOnlyOnSuccess(t *testing.T) {
	content := Normalize(StageContent{Text: "hola"})

	for _, tt := range []struct {
		stage      StageName
		wantStarts int
	}{
		{StageStart, 0},
		{StageSuccess, 1},
		{StageEnd, 0},
	} {
		camera := &fakeCamera{}
		p := NewPresenter(drivingDialog(1, 640, 480, true), camera, &fakeRenderer{}, nil, zerolog.Nop())
		p.Present(tt.stage, content, DialogOverrides{})
		if camera.starts != tt.wantStarts {
			t.Errorf("stage %s: camera started %d times, want %d", tt.stage, camera.starts, tt.wantStarts)
		}
	}
}

// TestPresentCameraStoppedOnClose 测试关闭时停止相机流
func TestPresentCameraStoppedOnClose(t *testing.T) {
	camera := &fakeCamera{}
	p := NewPresenter(drivingDialog(1, 640, 480, true), camera, &fakeRenderer{}, nil, zerolog.Nop())
	p.Present(StageSuccess, Normalize(StageContent{Text: "hola"}), DialogOverrides{})

	if camera.stream == nil {
		t.Fatal("camera stream never started")
	}
	if camera.stream.stops != 1 {
		t.Errorf("camera stream stopped %d times, want exactly 1", camera.stream.stops)
	}
}

// TestPresentCameraFailureDegrades 测试相机不可用时继续无背景展示
func TestPresentCameraFailureDegrades(t *testing.T) {
	camera := &fakeCamera{err: errors.New("permission denied")}
	renderer := &fakeRenderer{}
	p := NewPresenter(drivingDialog(1, 640, 480, true), camera, renderer, nil, zerolog.Nop())

	if !p.Present(StageSuccess, Normalize(StageContent{Text: "hola"}), DialogOverrides{}) {
		t.Error("Present() with failing camera = false, want true")
	}
	if len(renderer.mounted) != 1 {
		t.Errorf("mounted %d slots despite camera failure, want 1", len(renderer.mounted))
	}
}

// TestPresentClickRouting 测试点击只路由给命中的槽表面
func TestPresentClickRouting(t *testing.T) {
	renderer := &fakeRenderer{}
	dialog := &fakeDialog{
		available: true,
		drive: func(opts DialogOptions) DialogResult {
			opts.Content.Resize(800, 600)
			// 图片槽在左半边，视频槽在右半边（LayoutRow）
			opts.Content.HandleClick(100, 300)
			opts.OnClose()
			return DialogResult{Confirmed: true}
		},
	}
	p := NewPresenter(dialog, nil, renderer, nil, zerolog.Nop())

	content := Normalize(StageContent{ImageRef: "i.png", VideoRef: "v.mp4"})
	p.Present(StageStart, content, DialogOverrides{})

	if len(renderer.mounted) != 2 {
		t.Fatalf("mounted %d slots, want 2", len(renderer.mounted))
	}
	if !renderer.mounted[0].surface.Clicked() {
		t.Error("left slot surface should report the click")
	}
	if renderer.mounted[1].surface.Clicked() {
		t.Error("right slot surface should not report the click")
	}
}

// TestPresentResizeRecomputesSlots 测试尺寸变化时重排槽区域
func TestPresentResizeRecomputesSlots(t *testing.T) {
	renderer := &fakeRenderer{}
	dialog := &fakeDialog{
		available: true,
		drive: func(opts DialogOptions) DialogResult {
			opts.Content.Resize(800, 600)
			opts.Content.Resize(400, 300)
			// 重排后点击新区域的右半边
			opts.Content.HandleClick(300, 150)
			opts.OnClose()
			return DialogResult{Confirmed: true}
		},
	}
	p := NewPresenter(dialog, nil, renderer, nil, zerolog.Nop())

	content := Normalize(StageContent{ImageRef: "i.png", VideoRef: "v.mp4"})
	p.Present(StageStart, content, DialogOverrides{})

	if len(renderer.mounted) != 2 {
		t.Fatalf("mounted %d slots, want 2 (resize must not remount)", len(renderer.mounted))
	}
	w, h := renderer.mounted[1].surface.Size()
	if w >= 400 || h >= 300 {
		t.Errorf("right slot surface %dx%d not shrunk after resize", w, h)
	}
	if !renderer.mounted[1].surface.Clicked() {
		t.Error("click in resized right slot region should reach its surface")
	}
}

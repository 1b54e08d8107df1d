package arithmetic

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/JR-amirez/juegos-ar/pkg/reward"
)

// fakeDialog 可编程的对话框协作者
type fakeDialog struct {
	available bool
	confirmed bool
	fired     []reward.DialogOptions
}

func (d *fakeDialog) Available() bool { return d.available }

func (d *fakeDialog) Fire(opts reward.DialogOptions) reward.DialogResult {
	d.fired = append(d.fired, opts)
	if opts.OnClose != nil {
		opts.OnClose()
	}
	return reward.DialogResult{Confirmed: d.confirmed}
}

// nullSlot / nullRenderer 不做任何渲染的适配器
type nullSlot struct{}

func (nullSlot) Update(deltaTime float64) {}
func (nullSlot) Draw(dst *ebiten.Image)   {}
func (nullSlot) Dispose()                 {}

type nullRenderer struct{}

func (nullRenderer) Mount(surface reward.Surface, content reward.NormalizedContent) reward.SlotRenderer {
	return nullSlot{}
}

func testBank() *Bank {
	return &Bank{Levels: map[string][]Exercise{
		LevelBasic: {
			{Operation: "3,+2,-1,+4,-2", Options: []int{6, 5, 8}},
			{Operation: "2,×3,+4", Options: []int{10, 12, 9}},
		},
	}}
}

func newTestFlow(t *testing.T, dialog *fakeDialog, count int) (*Flow, *reward.Store) {
	t.Helper()

	store := reward.NewStore(nil, "ar_calculo", reward.AllStages, zerolog.Nop())
	presenter := reward.NewPresenter(dialog, nil, nullRenderer{}, nil, zerolog.Nop())
	orchestrator := reward.NewOrchestrator(store, presenter, dialog, zerolog.Nop())

	f, err := NewFlow(testBank(), LevelBasic, count, orchestrator, dialog, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFlow() error: %v", err)
	}
	// 确定性顺序，测试不关心乱序
	f.shuffle = func(n int, swap func(i, j int)) {}
	f.exercises = testBank().Levels[LevelBasic]
	if count > 0 && count < len(f.exercises) {
		f.exercises = f.exercises[:count]
	}
	f.prepareOptions()
	return f, store
}

// TestFlowCountClamped 测试练习数量收缩到题库容量
func TestFlowCountClamped(t *testing.T) {
	f, _ := newTestFlow(t, &fakeDialog{available: true}, 99)
	if f.Total() != 2 {
		t.Errorf("Total() = %d, want 2 (clamped)", f.Total())
	}
}

// TestFlowCorrectAnswerScores 测试答对 +10 并推进
func TestFlowCorrectAnswerScores(t *testing.T) {
	dialog := &fakeDialog{available: true, confirmed: true}
	f, store := newTestFlow(t, dialog, 2)

	// 启用 Acierto 阶段并配置内容：答对时应触发一次播放
	store.ToggleStage(reward.StageSuccess)
	store.SetField(reward.StageSuccess, reward.FieldText, "¡Muy bien!")

	out := f.Submit(6)
	if !out.Correct || !out.Advance {
		t.Fatalf("Submit(correct) = %+v, want Correct+Advance", out)
	}
	if f.Score() != PointsPerCorrect {
		t.Errorf("Score() = %d, want %d", f.Score(), PointsPerCorrect)
	}
	if f.Index() != 1 {
		t.Errorf("Index() = %d, want 1", f.Index())
	}
	if len(dialog.fired) != 1 {
		t.Fatalf("dialog fired %d times, want 1 (Acierto overlay)", len(dialog.fired))
	}
	if dialog.fired[0].TopBanner != "10 Puntos" {
		t.Errorf("TopBanner = %q, want %q", dialog.fired[0].TopBanner, "10 Puntos")
	}
}

// TestFlowSkippedStagesStillScore 测试阶段未启用时照样计分（播放被放行）
func TestFlowSkippedStagesStillScore(t *testing.T) {
	dialog := &fakeDialog{available: true, confirmed: true}
	f, _ := newTestFlow(t, dialog, 2)

	out := f.Submit(6)
	if !out.Correct {
		t.Fatal("correct answer not recognized")
	}
	if f.Score() != PointsPerCorrect {
		t.Errorf("Score() = %d, want %d", f.Score(), PointsPerCorrect)
	}
	if len(dialog.fired) != 0 {
		t.Errorf("dialog fired %d times with all stages disabled, want 0", len(dialog.fired))
	}
}

// TestFlowWrongAnswerRetry 测试答错选择重试时不推进
func TestFlowWrongAnswerRetry(t *testing.T) {
	dialog := &fakeDialog{available: true, confirmed: true} // 确认 = 重试
	f, _ := newTestFlow(t, dialog, 2)

	out := f.Submit(999)
	if out.Correct || out.Advance {
		t.Errorf("Submit(wrong)+retry = %+v, want neither Correct nor Advance", out)
	}
	if f.Score() != 0 {
		t.Errorf("Score() = %d, want 0", f.Score())
	}
	if f.Index() != 0 {
		t.Errorf("Index() = %d, want 0 (stay on same exercise)", f.Index())
	}
}

// TestFlowWrongAnswerQuit 测试答错选择放弃时结束本局
func TestFlowWrongAnswerQuit(t *testing.T) {
	dialog := &fakeDialog{available: true, confirmed: false} // 取消 = 放弃
	f, _ := newTestFlow(t, dialog, 2)

	out := f.Submit(999)
	if !out.Advance {
		t.Errorf("Submit(wrong)+quit = %+v, want Advance (game over)", out)
	}
	if !f.Finished() {
		t.Error("Finished() = false after quitting, want true")
	}
}

// TestFlowLastExerciseFinishes 测试最后一题答对后本局结束
func TestFlowLastExerciseFinishes(t *testing.T) {
	dialog := &fakeDialog{available: true, confirmed: true}
	f, _ := newTestFlow(t, dialog, 1)

	f.Submit(6)
	if !f.Finished() {
		t.Error("Finished() = false after last exercise, want true")
	}
}

// TestFlowReveal 测试片段逐个展示
func TestFlowReveal(t *testing.T) {
	f, _ := newTestFlow(t, &fakeDialog{available: true}, 1)

	parts := f.Parts()
	if len(parts) != 5 {
		t.Fatalf("Parts() = %v, want 5 parts", parts)
	}
	for i := 0; i < len(parts); i++ {
		if f.AllRevealed() {
			t.Fatalf("AllRevealed() = true after %d reveals", i)
		}
		if !f.RevealNext() {
			t.Fatalf("RevealNext() = false at part %d", i)
		}
	}
	if !f.AllRevealed() {
		t.Error("AllRevealed() = false after revealing everything")
	}
	if f.RevealNext() {
		t.Error("RevealNext() past the end = true, want false")
	}
}

// TestFlowStartGate 测试开始阶段被拒绝时返回 false
func TestFlowStartGate(t *testing.T) {
	dialog := &fakeDialog{available: true, confirmed: false}
	f, store := newTestFlow(t, dialog, 1)

	store.ToggleStage(reward.StageStart)
	store.SetField(reward.StageStart, reward.FieldText, "bienvenida")

	if f.Start() {
		t.Error("Start() = true when the welcome overlay was dismissed, want false")
	}
}

package cipher

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/JR-amirez/juegos-ar/pkg/reward"
)

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

type nullSlot struct{}

func (nullSlot) Update(deltaTime float64) {}
func (nullSlot) Draw(dst *ebiten.Image)   {}
func (nullSlot) Dispose()                 {}

type nullRenderer struct{}

func (nullRenderer) Mount(surface reward.Surface, content reward.NormalizedContent) reward.SlotRenderer {
	return nullSlot{}
}

func newTestFlow(t *testing.T, dialog *fakeDialog) (*Flow, *reward.Store) {
	t.Helper()

	store := reward.NewStore(nil, "ar_cifrado", reward.AllStages, zerolog.Nop())
	presenter := reward.NewPresenter(dialog, nil, nullRenderer{}, nil, zerolog.Nop())
	orchestrator := reward.NewOrchestrator(store, presenter, dialog, zerolog.Nop())

	bank := &Bank{Phrases: []Phrase{{Text: "HOLA"}, {Text: "LA PAZ"}}}
	f, err := NewFlow(bank, 0, orchestrator, dialog, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFlow() error: %v", err)
	}
	f.shuffle = func(n int, swap func(i, j int)) {}
	f.phrases = bank.Phrases
	return f, store
}

// TestFlowCorrectAnswer 测试答对 +10、触发 Acierto 并推进
func TestFlowCorrectAnswer(t *testing.T) {
	dialog := &fakeDialog{available: true, confirmed: true}
	f, store := newTestFlow(t, dialog)

	store.ToggleStage(reward.StageSuccess)
	store.SetField(reward.StageSuccess, reward.FieldText, "premio")

	out := f.Submit("hola") // 大小写不敏感
	if !out.Correct || !out.Advance {
		t.Fatalf("Submit(correct) = %+v", out)
	}
	if f.Score() != PointsPerCorrect {
		t.Errorf("Score() = %d, want %d", f.Score(), PointsPerCorrect)
	}
	if f.Index() != 1 {
		t.Errorf("Index() = %d, want 1", f.Index())
	}
	if len(dialog.fired) != 1 || dialog.fired[0].TopBanner != "10 Puntos" {
		t.Errorf("Acierto overlay not fired as expected: %+v", dialog.fired)
	}
}

// TestFlowWrongAnswerQuit 测试答错后放弃结束本局
func TestFlowWrongAnswerQuit(t *testing.T) {
	dialog := &fakeDialog{available: true, confirmed: false}
	f, _ := newTestFlow(t, dialog)

	out := f.Submit("ADIOS")
	if out.Correct {
		t.Error("wrong answer judged correct")
	}
	if !f.Finished() {
		t.Error("Finished() = false after quitting")
	}
	if f.Score() != 0 {
		t.Errorf("Score() = %d, want 0", f.Score())
	}
}

// TestFlowFinishBanner 测试结束阶段带总分横幅
func TestFlowFinishBanner(t *testing.T) {
	dialog := &fakeDialog{available: true, confirmed: true}
	f, store := newTestFlow(t, dialog)

	store.ToggleStage(reward.StageEnd)
	store.SetField(reward.StageEnd, reward.FieldText, "fin")

	f.Submit("HOLA")
	f.Submit("la paz")
	if !f.Finished() {
		t.Fatal("Finished() = false after all phrases")
	}

	f.Finish()
	last := dialog.fired[len(dialog.fired)-1]
	if last.TopBanner != "Puntaje final: 20" {
		t.Errorf("final banner = %q, want %q", last.TopBanner, "Puntaje final: 20")
	}
}

package cipher

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/JR-amirez/juegos-ar/pkg/reward"
)

// PointsPerCorrect 每解出一条短语的得分
const PointsPerCorrect = 10

// Flow 一局解密游戏的状态机（无界面，由场景驱动）
//
// 里程碑与心算游戏一致：Inicio 门禁、每答对 Play(Acierto)、
// 结束时 Play(Final) 展示总分。
type Flow struct {
	phrases      []Phrase
	orchestrator *reward.Orchestrator
	dialog       reward.DialogService
	logger       zerolog.Logger

	index    int
	score    int
	finished bool

	shuffle func(n int, swap func(i, j int))
}

// NewFlow 创建一局游戏，短语随机排序，count 收缩到库容量
func NewFlow(bank *Bank, count int, orchestrator *reward.Orchestrator, dialog reward.DialogService, logger zerolog.Logger) (*Flow, error) {
	if len(bank.Phrases) == 0 {
		return nil, fmt.Errorf("banco de frases vacío")
	}
	if count <= 0 || count > len(bank.Phrases) {
		count = len(bank.Phrases)
	}

	f := &Flow{
		orchestrator: orchestrator,
		dialog:       dialog,
		logger:       logger.With().Str("component", "cipher.Flow").Logger(),
		shuffle:      rand.Shuffle,
	}

	picked := make([]Phrase, len(bank.Phrases))
	copy(picked, bank.Phrases)
	f.shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	f.phrases = picked[:count]
	return f, nil
}

// Start 播放开始阶段，返回是否继续进入游戏
func (f *Flow) Start() bool {
	return f.orchestrator.Play(reward.StageStart, reward.DialogOverrides{
		Title:       "¡Bienvenido a Encriptación!",
		Icon:        "info",
		ConfirmText: "¡A descifrar!",
	})
}

// Total 返回本局短语总数
func (f *Flow) Total() int { return len(f.phrases) }

// Index 返回当前短语序号（从 0 开始）
func (f *Flow) Index() int { return f.index }

// Score 返回当前得分
func (f *Flow) Score() int { return f.score }

// Finished 报告本局是否已结束
func (f *Flow) Finished() bool { return f.finished }

// Current 返回当前短语
func (f *Flow) Current() Phrase {
	return f.phrases[f.index]
}

// Outcome 一次作答的结果
type Outcome struct {
	Correct bool
	Advance bool
}

// Submit 提交玩家的解密答案
//
// 判定大小写不敏感。答对 +10 并播放 Acierto；答错弹出重试/放弃
// 决定，放弃则结束本局。
func (f *Flow) Submit(answer string) Outcome {
	if Judge(answer, f.Current().Text) {
		f.score += PointsPerCorrect
		f.orchestrator.Play(reward.StageSuccess, reward.DialogOverrides{
			Title:     "¡Descifrado!",
			Icon:      "success",
			TopBanner: fmt.Sprintf("%d Puntos", PointsPerCorrect),
		})
		f.advance()
		return Outcome{Correct: true, Advance: true}
	}

	retry := true
	if f.dialog != nil && f.dialog.Available() {
		res := f.dialog.Fire(reward.DialogOptions{
			Title:       "Respuesta incorrecta",
			Icon:        "error",
			Text:        "¿Quieres intentarlo de nuevo?",
			ConfirmText: "Reintentar",
			CancelText:  "Finalizar",
			ShowCancel:  true,
		})
		retry = res.Confirmed
	}
	if !retry {
		f.finished = true
		return Outcome{Advance: true}
	}
	return Outcome{}
}

// Finish 播放结束阶段（展示总分），返回用户是否确认
func (f *Flow) Finish() bool {
	f.finished = true
	return f.orchestrator.Play(reward.StageEnd, reward.DialogOverrides{
		Title:     "¡Juego terminado!",
		Icon:      "success",
		TopBanner: fmt.Sprintf("Puntaje final: %d", f.score),
	})
}

func (f *Flow) advance() {
	if f.index+1 >= len(f.phrases) {
		f.finished = true
		return
	}
	f.index++
}

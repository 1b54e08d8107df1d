package arithmetic

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/JR-amirez/juegos-ar/pkg/reward"
)

// PointsPerCorrect 每答对一题的得分
const PointsPerCorrect = 10

// Flow 一局心算游戏的状态机（无界面，由场景驱动）
//
// 里程碑与奖励的关系：
//   - 开始前 Play(Inicio)，取消则不开始
//   - 每答对一题 +10 分并 Play(Acierto)（带相机背景与得分横幅）
//   - 最后一题结束后 Play(Final) 展示总分
type Flow struct {
	exercises    []Exercise
	orchestrator *reward.Orchestrator
	dialog       reward.DialogService
	logger       zerolog.Logger

	index    int
	score    int
	revealed int
	options  []int
	finished bool

	shuffle func(n int, swap func(i, j int))
}

// NewFlow 创建一局游戏
//
// count 超出题库容量时收缩到可用数量；练习从该难度随机抽取。
func NewFlow(bank *Bank, level string, count int, orchestrator *reward.Orchestrator, dialog reward.DialogService, logger zerolog.Logger) (*Flow, error) {
	pool := bank.Exercises(level)
	if len(pool) == 0 {
		return nil, fmt.Errorf("nivel desconocido o vacío: %q", level)
	}
	if count <= 0 || count > len(pool) {
		count = len(pool)
	}

	f := &Flow{
		orchestrator: orchestrator,
		dialog:       dialog,
		logger:       logger.With().Str("component", "arithmetic.Flow").Logger(),
		shuffle:      rand.Shuffle,
	}

	picked := make([]Exercise, len(pool))
	copy(picked, pool)
	f.shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	f.exercises = picked[:count]
	f.prepareOptions()
	return f, nil
}

// Start 播放开始阶段，返回是否继续进入游戏
func (f *Flow) Start() bool {
	return f.orchestrator.Play(reward.StageStart, reward.DialogOverrides{
		Title:       "¡Bienvenido a Cálculo Mental!",
		Icon:        "info",
		ConfirmText: "¡A jugar!",
	})
}

// Total 返回本局练习总数
func (f *Flow) Total() int { return len(f.exercises) }

// Index 返回当前练习序号（从 0 开始）
func (f *Flow) Index() int { return f.index }

// Score 返回当前得分
func (f *Flow) Score() int { return f.score }

// Finished 报告本局是否已结束
func (f *Flow) Finished() bool { return f.finished }

// Current 返回当前练习
func (f *Flow) Current() Exercise {
	return f.exercises[f.index]
}

// Parts 返回当前练习的全部运算片段
func (f *Flow) Parts() []string {
	return SequenceParts(f.Current().Operation)
}

// Revealed 返回已展示的片段数量
func (f *Flow) Revealed() int { return f.revealed }

// RevealNext 展示下一个片段，全部展示完时返回 false
//
// 片段按节奏逐个出现（节奏由场景的计时器控制），全部出现后
// 才显示备选答案。
func (f *Flow) RevealNext() bool {
	if f.revealed >= len(f.Parts()) {
		return false
	}
	f.revealed++
	return true
}

// AllRevealed 报告当前练习的片段是否全部展示完
func (f *Flow) AllRevealed() bool {
	return f.revealed >= len(f.Parts())
}

// Options 返回当前练习乱序后的备选答案
func (f *Flow) Options() []int { return f.options }

// Outcome 一次作答的结果
type Outcome struct {
	// Correct 答案是否正确
	Correct bool
	// Advance 是否推进（答对确认后进入下一题；答错选择放弃时结束）
	Advance bool
}

// Submit 提交一个备选答案
//
// 答对：+10 分，播放 Acierto 阶段（得分横幅），推进到下一题。
// 答错：弹出重试/放弃决定；选择放弃则直接结束本局。
func (f *Flow) Submit(option int) Outcome {
	answer, err := f.Current().Answer()
	if err != nil {
		// 题库加载时已校验，这里不应发生
		f.logger.Error().Err(err).Str("operation", f.Current().Operation).Msg("unevaluable exercise at play time")
		return Outcome{}
	}

	if option == answer {
		f.score += PointsPerCorrect
		f.orchestrator.Play(reward.StageSuccess, reward.DialogOverrides{
			Title:     "¡Correcto!",
			Icon:      "success",
			TopBanner: fmt.Sprintf("%d Puntos", PointsPerCorrect),
		})
		f.advance()
		return Outcome{Correct: true, Advance: true}
	}

	// 答错：重试还是放弃
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

// advance 进入下一题，最后一题之后标记结束
func (f *Flow) advance() {
	if f.index+1 >= len(f.exercises) {
		f.finished = true
		return
	}
	f.index++
	f.prepareOptions()
}

// prepareOptions 为当前练习乱序备选答案并重置片段进度
func (f *Flow) prepareOptions() {
	f.revealed = 0
	opts := make([]int, len(f.exercises[f.index].Options))
	copy(opts, f.exercises[f.index].Options)
	f.shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	f.options = opts
}

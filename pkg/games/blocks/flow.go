package blocks

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/JR-amirez/juegos-ar/pkg/reward"
)

// PointsPerSolved 每解出一个挑战的得分
const PointsPerSolved = 10

// DefaultTimeLimit 一局的默认倒计时（秒）
const DefaultTimeLimit = 600.0

// Flow 一局积木编程的状态机（无界面，由场景驱动）
//
// 与其它两个游戏不同：本游戏只使用 Acierto 阶段（解出挑战时），
// 没有开场/结束播放；一局带倒计时，时间到或玩家提前确认结束。
type Flow struct {
	challenges   []Challenge
	orchestrator *reward.Orchestrator
	dialog       reward.DialogService
	logger       zerolog.Logger

	index     int
	score     int
	remaining float64
	finished  bool
}

// NewFlow 创建一局游戏
func NewFlow(bank *Bank, timeLimit float64, orchestrator *reward.Orchestrator, dialog reward.DialogService, logger zerolog.Logger) (*Flow, error) {
	if len(bank.Challenges) == 0 {
		return nil, fmt.Errorf("banco de desafíos vacío")
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	return &Flow{
		challenges:   bank.Challenges,
		orchestrator: orchestrator,
		dialog:       dialog,
		logger:       logger.With().Str("component", "blocks.Flow").Logger(),
		remaining:    timeLimit,
	}, nil
}

// Total 返回挑战总数
func (f *Flow) Total() int { return len(f.challenges) }

// Index 返回当前挑战序号（从 0 开始）
func (f *Flow) Index() int { return f.index }

// Score 返回当前得分
func (f *Flow) Score() int { return f.score }

// Remaining 返回剩余时间（秒）
func (f *Flow) Remaining() float64 { return f.remaining }

// Finished 报告本局是否已结束
func (f *Flow) Finished() bool { return f.finished }

// Current 返回当前挑战
func (f *Flow) Current() Challenge {
	return f.challenges[f.index]
}

// Tick 推进倒计时，时间耗尽时结束本局
func (f *Flow) Tick(deltaTime float64) {
	if f.finished {
		return
	}
	f.remaining -= deltaTime
	if f.remaining <= 0 {
		f.remaining = 0
		f.finished = true
		f.logger.Info().Int("score", f.score).Msg("time expired")
	}
}

// Submit 用玩家的解法验证当前挑战
//
// 通过：+10 分，播放 Acierto 阶段并推进；最后一个挑战解出后
// 本局结束。未通过：返回包含期望/实际值的结论，不推进。
func (f *Flow) Submit(solution Solution) Verdict {
	verdict := Run(f.Current(), solution)
	if !verdict.Passed {
		return verdict
	}

	f.score += PointsPerSolved
	f.orchestrator.Play(reward.StageSuccess, reward.DialogOverrides{
		Title:     "¡Desafío superado!",
		Icon:      "success",
		TopBanner: fmt.Sprintf("%d Puntos", PointsPerSolved),
	})

	if f.index+1 >= len(f.challenges) {
		f.finished = true
	} else {
		f.index++
	}
	return verdict
}

// RequestFinish 玩家想提前结束：弹确认对话框，确认后结束本局
func (f *Flow) RequestFinish() bool {
	confirm := true
	if f.dialog != nil && f.dialog.Available() {
		res := f.dialog.Fire(reward.DialogOptions{
			Title:       "¿Terminar la partida?",
			Icon:        "warning",
			Text:        fmt.Sprintf("Llevas %d puntos. ¿Seguro que quieres terminar?", f.score),
			ConfirmText: "Terminar",
			CancelText:  "Seguir jugando",
			ShowCancel:  true,
		})
		confirm = res.Confirmed
	}
	if confirm {
		f.finished = true
	}
	return confirm
}

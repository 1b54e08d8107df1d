package reward

import "github.com/rs/zerolog"

// Orchestrator 阶段播放编排器 —— 本包的公共入口
//
// 每次播放的状态机：
//
//	Idle → (阶段未启用或无内容) → Skipped(resolved=true)
//	Idle → Opening → Open → Closing → Closed(resolved=confirmed)
//
// 终态为 Skipped 和 Closed，不做重试：播放失败/被拒绝对本次调用
// 是终局的，后续动作（重试整个里程碑、中止、继续）由调用方的
// 游戏流程决定。
//
// 游戏严格串行调用 Play（等待上一次返回才发起下一次），因此不
// 需要并发守卫；但清理依然无条件在关闭路径执行（见 presenter）。
type Orchestrator struct {
	store     *Store
	presenter *Presenter
	dialog    DialogService
	logger    zerolog.Logger
}

// NewOrchestrator 创建编排器
func NewOrchestrator(store *Store, presenter *Presenter, dialog DialogService, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		presenter: presenter,
		dialog:    dialog,
		logger:    logger.With().Str("component", "reward.Orchestrator").Logger(),
	}
}

// Play 播放一个阶段，返回"是否确认继续"
//
// 规则：
//   - 阶段未启用：直接返回 true（视作透传，不是错误），不触碰对话框
//   - 阶段启用但无内容：同样直接返回 true
//   - 对话框协作者不可用：返回 false（调用方按"无法确认"处理）
//   - 其余情况委托呈现器，透传其确认结果
func (o *Orchestrator) Play(stage StageName, overrides DialogOverrides) bool {
	st := o.store.Stage(stage)
	if !st.Enabled {
		return true
	}
	if !HasContent(st.Content) {
		return true
	}

	if o.dialog == nil || !o.dialog.Available() {
		o.logger.Warn().Str("stage", string(stage)).Msg("dialog service unavailable, cannot confirm stage playback")
		return false
	}

	content := Normalize(st.Content)
	confirmed := o.presenter.Present(stage, content, overrides)
	o.logger.Debug().Str("stage", string(stage)).Bool("confirmed", confirmed).Msg("stage playback closed")
	return confirmed
}

// Store 返回底层阶段配置存储（配置场景使用）
func (o *Orchestrator) Store() *Store {
	return o.store
}

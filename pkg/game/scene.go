package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个顶层界面（主菜单、某个小游戏、阶段配置界面）
// 每个场景自带更新与绘制逻辑。
type Scene interface {
	// Update 按帧推进场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到目标画面
	Draw(screen *ebiten.Image)
}

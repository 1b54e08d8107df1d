// Package scenes 实现各个界面场景：主菜单、设置、阶段配置与三个小游戏
package scenes

import (
	"github.com/rs/zerolog"

	"github.com/JR-amirez/juegos-ar/pkg/game"
	"github.com/JR-amirez/juegos-ar/pkg/games/arithmetic"
	"github.com/JR-amirez/juegos-ar/pkg/games/blocks"
	"github.com/JR-amirez/juegos-ar/pkg/games/cipher"
	"github.com/JR-amirez/juegos-ar/pkg/modules"
	"github.com/JR-amirez/juegos-ar/pkg/reward"
)

// 界面字体（磁盘路径，缺失时所有文字降级为调试字体）
const uiFontPath = "assets/fonts/Quicksand-Regular.ttf"

// GameInfo 单个小游戏的装配信息
type GameInfo struct {
	SceneID   game.SceneID
	Namespace string // gdata 命名空间，如 "ar_calculo"
	Title     string // 展示名，如 "Cálculo Mental"

	Orchestrator *reward.Orchestrator
	Registry     *reward.BlobRegistry
}

// Context 场景共享的装配上下文，由 App 构建并注入场景工厂
type Context struct {
	SceneManager *game.SceneManager
	Resources    *game.ResourceManager
	Audio        *game.AudioManager
	Settings     *game.SettingsManager
	Dialog       *modules.DialogModule
	Logger       zerolog.Logger

	// Games 按菜单顺序排列
	Games []*GameInfo

	ArithmeticBank *arithmetic.Bank
	CipherBank     *cipher.Bank
	BlocksBank     *blocks.Bank

	ScreenWidth  int
	ScreenHeight int

	// RequestQuit 请求退出应用（菜单的"Salir"按钮）
	RequestQuit func()
}

// GameByNamespace 按命名空间查找游戏装配信息，未找到返回 nil
func (c *Context) GameByNamespace(namespace string) *GameInfo {
	for _, g := range c.Games {
		if g.Namespace == namespace {
			return g
		}
	}
	return nil
}

// GameBySceneID 按场景标识查找游戏装配信息，未找到返回 nil
func (c *Context) GameBySceneID(id game.SceneID) *GameInfo {
	for _, g := range c.Games {
		if g.SceneID == id {
			return g
		}
	}
	return nil
}

// inputLocked 报告场景此刻是否应该忽略输入（对话框正在显示）
func (c *Context) inputLocked() bool {
	return c.Dialog != nil && c.Dialog.IsActive()
}

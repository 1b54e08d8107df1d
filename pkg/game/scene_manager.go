package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// SceneID 场景标识
type SceneID string

const (
	// SceneMenu 主菜单
	SceneMenu SceneID = "menu"
	// SceneArithmetic 心算游戏
	SceneArithmetic SceneID = "calculo"
	// SceneCipher 解密游戏
	SceneCipher SceneID = "cifrado"
	// SceneBlocks 积木编程
	SceneBlocks SceneID = "bloques"
	// SceneStageConfig 阶段配置界面（参数为游戏命名空间）
	SceneStageConfig SceneID = "config"
	// SceneSettings 应用设置界面
	SceneSettings SceneID = "ajustes"
)

// SceneFactory 场景工厂函数
// 按标识创建场景，param 携带附加参数（如配置界面的目标游戏），
// 由装配方注入以避免循环依赖。
type SceneFactory func(id SceneID, param string) Scene

// SceneManager 管理当前活动场景，保证同一时刻只有一个场景在跑
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	logger       zerolog.Logger
}

// NewSceneManager 创建场景管理器（初始无活动场景）
func NewSceneManager(logger zerolog.Logger) *SceneManager {
	return &SceneManager{
		logger: logger.With().Str("component", "game.SceneManager").Logger(),
	}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换到给定场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动场景，无则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Open 按标识创建并切换场景
func (sm *SceneManager) Open(id SceneID, param string) {
	if sm.sceneFactory == nil {
		sm.logger.Error().Str("scene", string(id)).Msg("scene factory not set")
		return
	}

	scene := sm.sceneFactory(id, param)
	if scene == nil {
		sm.logger.Error().Str("scene", string(id)).Str("param", param).Msg("scene factory returned nil")
		return
	}
	sm.SwitchTo(scene)
	sm.logger.Debug().Str("scene", string(id)).Str("param", param).Msg("scene switched")
}

// Update 推进当前场景，无活动场景时不做任何事
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景，无活动场景时不做任何事
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

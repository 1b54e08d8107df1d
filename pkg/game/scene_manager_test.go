package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// stubScene 记录调用的场景替身
type stubScene struct {
	id      SceneID
	updates int
}

func (s *stubScene) Update(deltaTime float64) { s.updates++ }
func (s *stubScene) Draw(screen *ebiten.Image) {}

// TestSceneManagerSwitch 测试场景切换与更新转发
func TestSceneManagerSwitch(t *testing.T) {
	sm := NewSceneManager(zerolog.Nop())

	if sm.GetCurrentScene() != nil {
		t.Error("new manager should have no active scene")
	}

	// 无活动场景时 Update 不崩
	sm.Update(0.016)

	scene := &stubScene{id: SceneMenu}
	sm.SwitchTo(scene)
	if sm.GetCurrentScene() != scene {
		t.Fatal("SwitchTo did not activate the scene")
	}

	sm.Update(0.016)
	sm.Update(0.016)
	if scene.updates != 2 {
		t.Errorf("scene updated %d times, want 2", scene.updates)
	}
}

// TestSceneManagerOpen 测试按标识创建并切换
func TestSceneManagerOpen(t *testing.T) {
	sm := NewSceneManager(zerolog.Nop())

	var gotID SceneID
	var gotParam string
	sm.SetSceneFactory(func(id SceneID, param string) Scene {
		gotID, gotParam = id, param
		return &stubScene{id: id}
	})

	sm.Open(SceneStageConfig, "ar_calculo")
	if gotID != SceneStageConfig || gotParam != "ar_calculo" {
		t.Errorf("factory called with (%s, %s), want (config, ar_calculo)", gotID, gotParam)
	}
	if sm.GetCurrentScene() == nil {
		t.Error("Open did not activate the created scene")
	}

	// 工厂返回 nil 时保持原场景
	current := sm.GetCurrentScene()
	sm.SetSceneFactory(func(id SceneID, param string) Scene { return nil })
	sm.Open(SceneMenu, "")
	if sm.GetCurrentScene() != current {
		t.Error("nil scene from factory must not replace the active scene")
	}
}

// TestSceneManagerOpenWithoutFactory 测试未设置工厂时 Open 不崩
func TestSceneManagerOpenWithoutFactory(t *testing.T) {
	sm := NewSceneManager(zerolog.Nop())
	sm.Open(SceneMenu, "")
	if sm.GetCurrentScene() != nil {
		t.Error("Open without factory should leave no active scene")
	}
}

package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/JR-amirez/juegos-ar/pkg/game"
	"github.com/JR-amirez/juegos-ar/pkg/utils"
)

// menuEntry 菜单中的一个可点击项
type menuEntry struct {
	button Button
	action func()
}

// MenuScene 主菜单：三个小游戏入口、每个游戏的 RA 配置入口、设置与退出
type MenuScene struct {
	ctx     *Context
	entries []menuEntry

	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace
}

// NewMenuScene 创建主菜单场景
func NewMenuScene(ctx *Context) *MenuScene {
	s := &MenuScene{ctx: ctx}
	s.titleFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 40)
	s.bodyFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 20)
	s.buildEntries()
	return s
}

// buildEntries 生成按钮布局：每个游戏一行（入口 + RA 配置），底部设置/退出
func (s *MenuScene) buildEntries() {
	cx := float64(s.ctx.ScreenWidth) / 2
	y := 220.0
	const rowH = 64.0
	const playW = 360.0
	const cfgW = 64.0

	for _, info := range s.ctx.Games {
		info := info
		s.entries = append(s.entries, menuEntry{
			button: Button{X: cx - (playW+cfgW+12)/2, Y: y, W: playW, H: 52, Label: info.Title, Color: uiPrimary},
			action: func() { s.ctx.SceneManager.Open(info.SceneID, "") },
		})
		s.entries = append(s.entries, menuEntry{
			button: Button{X: cx + (playW+cfgW+12)/2 - cfgW, Y: y, W: cfgW, H: 52, Label: "RA", Color: uiAccent},
			action: func() { s.ctx.SceneManager.Open(game.SceneStageConfig, info.Namespace) },
		})
		y += rowH
	}

	y += 24
	s.entries = append(s.entries, menuEntry{
		button: Button{X: cx - 180, Y: y, W: 170, H: 48, Label: "Ajustes", Color: uiSecondary},
		action: func() { s.ctx.SceneManager.Open(game.SceneSettings, "") },
	})
	s.entries = append(s.entries, menuEntry{
		button: Button{X: cx + 10, Y: y, W: 170, H: 48, Label: "Salir", Color: uiDanger},
		action: func() {
			if s.ctx.RequestQuit != nil {
				s.ctx.RequestQuit()
			}
		},
	})
}

// Update 处理按钮点击
func (s *MenuScene) Update(deltaTime float64) {
	if s.ctx.inputLocked() {
		return
	}
	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		for i := range s.entries {
			if s.entries[i].button.Hit(x, y) {
				s.ctx.Audio.PlaySound("assets/audio/click.wav")
				s.entries[i].action()
				return
			}
		}
	}
}

// Draw 绘制标题与菜单项
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(uiBackground)

	cx := float64(s.ctx.ScreenWidth) / 2
	drawCentered(screen, "Juegos RA", s.titleFace, cx, 110, uiText)
	drawCentered(screen, "Aprende jugando con recompensas de realidad aumentada", s.bodyFace, cx, 160, uiTextMuted)

	for i := range s.entries {
		s.entries[i].button.Draw(screen, s.bodyFace)
	}
}

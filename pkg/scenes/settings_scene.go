package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/JR-amirez/juegos-ar/pkg/game"
	"github.com/JR-amirez/juegos-ar/pkg/utils"
)

// SettingsScene 应用设置界面：音量、全屏与相机背景开关
type SettingsScene struct {
	ctx *Context

	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace

	musicToggle  Button
	musicDown    Button
	musicUp      Button
	soundToggle  Button
	soundDown    Button
	soundUp      Button
	fullToggle   Button
	cameraToggle Button
	backButton   Button
}

// NewSettingsScene 创建设置场景
func NewSettingsScene(ctx *Context) *SettingsScene {
	s := &SettingsScene{ctx: ctx}
	s.titleFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 32)
	s.bodyFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 20)

	cx := float64(ctx.ScreenWidth) / 2
	y := 180.0
	const rowH = 70.0

	s.musicToggle = Button{X: cx + 40, Y: y, W: 90, H: 44, Color: uiSecondary}
	s.musicDown = Button{X: cx + 150, Y: y, W: 44, H: 44, Label: "-", Color: uiSecondary}
	s.musicUp = Button{X: cx + 204, Y: y, W: 44, H: 44, Label: "+", Color: uiSecondary}
	y += rowH
	s.soundToggle = Button{X: cx + 40, Y: y, W: 90, H: 44, Color: uiSecondary}
	s.soundDown = Button{X: cx + 150, Y: y, W: 44, H: 44, Label: "-", Color: uiSecondary}
	s.soundUp = Button{X: cx + 204, Y: y, W: 44, H: 44, Label: "+", Color: uiSecondary}
	y += rowH
	s.fullToggle = Button{X: cx + 40, Y: y, W: 90, H: 44, Color: uiSecondary}
	y += rowH
	s.cameraToggle = Button{X: cx + 40, Y: y, W: 90, H: 44, Color: uiSecondary}
	y += rowH + 20
	s.backButton = Button{X: cx - 85, Y: y, W: 170, H: 48, Label: "Volver", Color: uiPrimary}

	return s
}

// Update 处理设置变更
func (s *SettingsScene) Update(deltaTime float64) {
	if s.ctx.inputLocked() {
		return
	}
	pressed, x, y := utils.IsPointerJustPressed()
	if !pressed {
		return
	}

	settings := s.ctx.Settings.GetSettings()
	const volumeStep = 0.1

	switch {
	case s.musicToggle.Hit(x, y):
		s.ctx.Settings.SetMusicEnabled(!settings.MusicEnabled)
		s.ctx.Audio.ApplyVolumes()
	case s.musicDown.Hit(x, y):
		s.ctx.Settings.SetMusicVolume(settings.MusicVolume - volumeStep)
		s.ctx.Audio.ApplyVolumes()
	case s.musicUp.Hit(x, y):
		s.ctx.Settings.SetMusicVolume(settings.MusicVolume + volumeStep)
		s.ctx.Audio.ApplyVolumes()
	case s.soundToggle.Hit(x, y):
		s.ctx.Settings.SetSoundEnabled(!settings.SoundEnabled)
	case s.soundDown.Hit(x, y):
		s.ctx.Settings.SetSoundVolume(settings.SoundVolume - volumeStep)
	case s.soundUp.Hit(x, y):
		s.ctx.Settings.SetSoundVolume(settings.SoundVolume + volumeStep)
	case s.fullToggle.Hit(x, y):
		target := !settings.Fullscreen
		s.ctx.Settings.SetFullscreen(target)
		ebiten.SetFullscreen(target)
	case s.cameraToggle.Hit(x, y):
		s.ctx.Settings.SetCameraEnabled(!settings.CameraEnabled)
	case s.backButton.Hit(x, y):
		s.ctx.SceneManager.Open(game.SceneMenu, "")
	}
}

// Draw 绘制设置行
func (s *SettingsScene) Draw(screen *ebiten.Image) {
	screen.Fill(uiBackground)

	settings := s.ctx.Settings.GetSettings()
	cx := float64(s.ctx.ScreenWidth) / 2
	drawCentered(screen, "Ajustes", s.titleFace, cx, 100, uiText)

	s.syncToggleLabels()

	labelX := cx - 260
	drawLeft(screen, fmt.Sprintf("Música  (%d%%)", int(settings.MusicVolume*100+0.5)), s.bodyFace, labelX, s.musicToggle.Y+22, uiText)
	drawVolumeBar(screen, cx-260, s.musicToggle.Y+40, settings.MusicVolume)
	drawLeft(screen, fmt.Sprintf("Sonido  (%d%%)", int(settings.SoundVolume*100+0.5)), s.bodyFace, labelX, s.soundToggle.Y+22, uiText)
	drawVolumeBar(screen, cx-260, s.soundToggle.Y+40, settings.SoundVolume)
	drawLeft(screen, "Pantalla completa", s.bodyFace, labelX, s.fullToggle.Y+22, uiText)
	drawLeft(screen, "Cámara en recompensas", s.bodyFace, labelX, s.cameraToggle.Y+22, uiText)

	for _, b := range []*Button{
		&s.musicToggle, &s.musicDown, &s.musicUp,
		&s.soundToggle, &s.soundDown, &s.soundUp,
		&s.fullToggle, &s.cameraToggle, &s.backButton,
	} {
		b.Draw(screen, s.bodyFace)
	}
}

// syncToggleLabels 按当前设置刷新开关按钮的文字与颜色
func (s *SettingsScene) syncToggleLabels() {
	settings := s.ctx.Settings.GetSettings()
	apply := func(b *Button, on bool) {
		if on {
			b.Label, b.Color = "Sí", uiSuccess
		} else {
			b.Label, b.Color = "No", uiSecondary
		}
	}
	apply(&s.musicToggle, settings.MusicEnabled)
	apply(&s.soundToggle, settings.SoundEnabled)
	apply(&s.fullToggle, settings.Fullscreen)
	apply(&s.cameraToggle, settings.CameraEnabled)
}

// drawVolumeBar 绘制音量条（背景 + 按比例填充）
func drawVolumeBar(screen *ebiten.Image, x, y, level float64) {
	const w, h = 220.0, 8.0
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), uiPanel, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w*level), float32(h), uiAccent, false)
}

package scenes

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/JR-amirez/juegos-ar/pkg/game"
	"github.com/JR-amirez/juegos-ar/pkg/reward"
	"github.com/JR-amirez/juegos-ar/pkg/utils"
)

// configField 配置界面的一个内容字段行
type configField struct {
	label string
	field reward.ContentField
	media bool // 媒体字段通过 BlobRegistry 铸造引用
}

var configFields = []configField{
	{"Texto", reward.FieldText, false},
	{"Imagen", reward.FieldImage, true},
	{"Audio", reward.FieldAudio, true},
	{"Video", reward.FieldVideo, true},
}

// StageConfigScene 某个游戏的 RA 阶段配置界面
//
// 每个阶段可独立启用并配置文本/图片/音频/视频内容。媒体字段
// 输入本地文件路径，提交时经 BlobRegistry 铸造为本地引用（替换
// 旧引用时恰好释放一次）。Guardar 走 Store.Validate 的严格校验。
type StageConfigScene struct {
	ctx      *Context
	info     *GameInfo
	store    *reward.Store
	registry *reward.BlobRegistry

	stageIndex   int
	editingField reward.ContentField
	editBuffer   string

	status      string
	statusColor color.RGBA
	statusTime  float64

	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace

	stageTabs   []Button
	enabledBtn  Button
	editBtns    []Button
	clearBtns   []Button
	saveBtn     Button
	resetBtn    Button
	backBtn     Button
	fieldBoxes  []Button // 只用作命中区域与绘制底框
}

// NewStageConfigScene 创建阶段配置场景
//
// namespace 指定目标游戏；未知命名空间返回 nil（工厂据此拒绝切换）。
func NewStageConfigScene(ctx *Context, namespace string) *StageConfigScene {
	info := ctx.GameByNamespace(namespace)
	if info == nil {
		ctx.Logger.Error().Str("namespace", namespace).Msg("stage config for unknown game")
		return nil
	}

	s := &StageConfigScene{
		ctx:      ctx,
		info:     info,
		store:    info.Orchestrator.Store(),
		registry: info.Registry,
	}
	s.titleFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 28)
	s.bodyFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 18)
	s.buildLayout()
	return s
}

func (s *StageConfigScene) buildLayout() {
	w := float64(s.ctx.ScreenWidth)

	x := 60.0
	for _, stage := range s.store.Stages() {
		s.stageTabs = append(s.stageTabs, Button{X: x, Y: 110, W: 150, H: 42, Label: string(stage), Color: uiSecondary})
		x += 162
	}
	s.enabledBtn = Button{X: w - 210, Y: 110, W: 150, H: 42, Color: uiSecondary}

	y := 200.0
	for range configFields {
		s.fieldBoxes = append(s.fieldBoxes, Button{X: 180, Y: y, W: w - 420, H: 40, Color: uiPanel})
		s.editBtns = append(s.editBtns, Button{X: w - 220, Y: y, W: 90, H: 40, Label: "Editar", Color: uiPrimary})
		s.clearBtns = append(s.clearBtns, Button{X: w - 120, Y: y, W: 70, H: 40, Label: "Quitar", Color: uiDanger})
		y += 58
	}

	by := float64(s.ctx.ScreenHeight) - 90
	s.saveBtn = Button{X: 60, Y: by, W: 170, H: 48, Label: "Guardar", Color: uiSuccess}
	s.resetBtn = Button{X: 250, Y: by, W: 190, H: 48, Label: "Restablecer", Color: uiDanger}
	s.backBtn = Button{X: w - 230, Y: by, W: 170, H: 48, Label: "Volver", Color: uiSecondary}
}

// currentStage 返回当前选中的阶段名
func (s *StageConfigScene) currentStage() reward.StageName {
	return s.store.Stages()[s.stageIndex]
}

// setStatus 设置状态行文字（数秒后消失）
func (s *StageConfigScene) setStatus(msg string, clr color.RGBA) {
	s.status, s.statusColor, s.statusTime = msg, clr, 4
}

// Update 处理编辑、开关与保存
func (s *StageConfigScene) Update(deltaTime float64) {
	if s.statusTime > 0 {
		s.statusTime -= deltaTime
		if s.statusTime <= 0 {
			s.status = ""
		}
	}
	if s.ctx.inputLocked() {
		return
	}

	if s.editingField != "" {
		s.editBuffer = appendTextInput(s.editBuffer)
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.commitField()
			return
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			s.editingField = ""
			return
		}
	}

	pressed, x, y := utils.IsPointerJustPressed()
	if !pressed {
		return
	}

	for i := range s.stageTabs {
		if s.stageTabs[i].Hit(x, y) {
			s.stageIndex = i
			s.editingField = ""
			return
		}
	}
	if s.enabledBtn.Hit(x, y) {
		s.store.ToggleStage(s.currentStage())
		return
	}

	for i, cf := range configFields {
		if s.editBtns[i].Hit(x, y) {
			if s.editingField == cf.field {
				s.commitField()
			} else {
				s.editingField = cf.field
				s.editBuffer = s.fieldValue(cf.field)
			}
			return
		}
		if s.clearBtns[i].Hit(x, y) {
			s.clearField(cf)
			return
		}
	}

	switch {
	case s.saveBtn.Hit(x, y):
		if err := s.store.Validate(); err != nil {
			s.setStatus(err.Error(), uiDanger)
		} else {
			s.store.Save()
			s.setStatus("Configuración guardada", uiSuccess)
		}
	case s.resetBtn.Hit(x, y):
		s.registry.ReleaseAll()
		s.store.Reset()
		s.editingField = ""
		s.setStatus("Configuración restablecida", uiAccent)
	case s.backBtn.Hit(x, y):
		s.ctx.SceneManager.Open(game.SceneMenu, "")
	}
}

// fieldValue 返回当前阶段某字段的已存值
func (s *StageConfigScene) fieldValue(field reward.ContentField) string {
	content := s.store.Stage(s.currentStage()).Content
	switch field {
	case reward.FieldText:
		return content.Text
	case reward.FieldImage:
		return content.ImageRef
	case reward.FieldAudio:
		return content.AudioRef
	case reward.FieldVideo:
		return content.VideoRef
	}
	return ""
}

// commitField 提交正在编辑的字段
//
// 文本直接入库；媒体路径先铸造为 blob 引用（失败时保留编辑状态）。
func (s *StageConfigScene) commitField() {
	stage := s.currentStage()
	value := strings.TrimSpace(s.editBuffer)

	var cf configField
	for _, c := range configFields {
		if c.field == s.editingField {
			cf = c
		}
	}

	if cf.media {
		ref, err := s.registry.Assign(stage, cf.field, value)
		if err != nil {
			s.setStatus(fmt.Sprintf("No se pudo usar el archivo: %v", err), uiDanger)
			return
		}
		s.store.SetField(stage, cf.field, ref)
	} else {
		s.store.SetField(stage, cf.field, value)
	}
	s.editingField = ""
	s.setStatus("Campo actualizado", uiSuccess)
}

// clearField 清空字段（媒体字段同时释放 blob 引用）
func (s *StageConfigScene) clearField(cf configField) {
	stage := s.currentStage()
	if cf.media {
		if _, err := s.registry.Assign(stage, cf.field, ""); err != nil {
			s.ctx.Logger.Warn().Err(err).Msg("release on clear failed")
		}
	}
	s.store.SetField(stage, cf.field, "")
	if s.editingField == cf.field {
		s.editingField = ""
	}
}

// Draw 绘制阶段页签、字段行与操作按钮
func (s *StageConfigScene) Draw(screen *ebiten.Image) {
	screen.Fill(uiBackground)

	drawLeft(screen, fmt.Sprintf("Recompensas RA — %s", s.info.Title), s.titleFace, 60, 60, uiText)

	for i := range s.stageTabs {
		tab := s.stageTabs[i]
		if i == s.stageIndex {
			tab.Color = uiPrimary
		}
		tab.Draw(screen, s.bodyFace)
	}

	st := s.store.Stage(s.currentStage())
	enabled := s.enabledBtn
	if st.Enabled {
		enabled.Label, enabled.Color = "Activada", uiSuccess
	} else {
		enabled.Label, enabled.Color = "Desactivada", uiSecondary
	}
	enabled.Draw(screen, s.bodyFace)

	for i, cf := range configFields {
		box := s.fieldBoxes[i]
		drawLeft(screen, cf.label, s.bodyFace, 60, box.Y+20, uiText)

		value := s.fieldValue(cf.field)
		editing := s.editingField == cf.field
		if editing {
			box.Color = uiFieldActive
			value = s.editBuffer + "_"
		}
		vector.DrawFilledRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), box.Color, false)
		drawLeft(screen, truncateMiddle(value, 46), s.bodyFace, box.X+10, box.Y+20, uiText)

		edit := s.editBtns[i]
		if editing {
			edit.Label, edit.Color = "OK", uiSuccess
		}
		edit.Draw(screen, s.bodyFace)
		s.clearBtns[i].Draw(screen, s.bodyFace)
	}

	hint := "Las rutas de imagen/audio/video se copian a un archivo temporal propio."
	drawLeft(screen, hint, s.bodyFace, 60, float64(s.ctx.ScreenHeight)-130, uiTextMuted)

	s.saveBtn.Draw(screen, s.bodyFace)
	s.resetBtn.Draw(screen, s.bodyFace)
	s.backBtn.Draw(screen, s.bodyFace)

	if s.status != "" {
		drawCentered(screen, s.status, s.bodyFace, float64(s.ctx.ScreenWidth)/2, float64(s.ctx.ScreenHeight)-20, s.statusColor)
	}
}

// truncateMiddle 超长路径取头尾（中间省略）
func truncateMiddle(str string, max int) string {
	runes := []rune(str)
	if len(runes) <= max {
		return str
	}
	half := (max - 3) / 2
	return string(runes[:half]) + "..." + string(runes[len(runes)-half:])
}

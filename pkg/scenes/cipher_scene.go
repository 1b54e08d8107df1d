package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/JR-amirez/juegos-ar/pkg/game"
	"github.com/JR-amirez/juegos-ar/pkg/games/cipher"
	"github.com/JR-amirez/juegos-ar/pkg/utils"
)

// 解密场景的阶段
const (
	cipherPhaseIntro = iota
	cipherPhasePlay
	cipherPhaseDone
)

// 每局短语数量
const phrasesPerRound = 3

// CipherScene 解密游戏场景
//
// 每个短语以两位数字编码展示（字母 → 西语 27 字母表序号），玩家
// 键入原文；判定忽略大小写与首尾空白。
type CipherScene struct {
	ctx    *Context
	info   *GameInfo
	flow   *cipher.Flow
	runner *asyncRunner

	phase    int
	answer   string
	showHint bool
	status   string

	startBtn Button
	checkBtn Button
	hintBtn  Button
	againBtn Button
	backBtn  Button

	titleFace *text.GoTextFace
	bigFace   *text.GoTextFace
	bodyFace  *text.GoTextFace
}

// NewCipherScene 创建解密场景
func NewCipherScene(ctx *Context) *CipherScene {
	s := &CipherScene{
		ctx:    ctx,
		info:   ctx.GameBySceneID(game.SceneCipher),
		runner: newAsyncRunner(),
	}
	s.titleFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 32)
	s.bigFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 30)
	s.bodyFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 20)

	cx := float64(ctx.ScreenWidth) / 2
	s.startBtn = Button{X: cx - 130, Y: 300, W: 260, H: 54, Label: "Comenzar", Color: uiPrimary}
	s.checkBtn = Button{X: cx + 170, Y: 420, W: 150, H: 46, Label: "Comprobar", Color: uiSuccess}
	s.hintBtn = Button{X: cx - 320, Y: 420, W: 130, H: 46, Label: "Pista", Color: uiAccent}
	s.againBtn = Button{X: cx - 110, Y: 380, W: 220, H: 52, Label: "Jugar otra vez", Color: uiPrimary}
	s.backBtn = Button{X: 40, Y: float64(ctx.ScreenHeight) - 80, W: 150, H: 46, Label: "Volver", Color: uiSecondary}
	return s
}

// startRound 创建流程并经 Inicio 奖励门进入游戏
func (s *CipherScene) startRound() {
	flow, err := cipher.NewFlow(s.ctx.CipherBank, phrasesPerRound, s.info.Orchestrator, s.ctx.Dialog, s.ctx.Logger)
	if err != nil {
		s.status = err.Error()
		return
	}
	s.flow = flow
	s.runner.run(func() func() {
		ok := flow.Start()
		return func() {
			if ok {
				s.phase = cipherPhasePlay
				s.answer = ""
				s.showHint = false
				s.status = ""
			} else {
				s.status = "Inicio cancelado"
			}
		}
	})
}

// submit 提交当前输入
func (s *CipherScene) submit() {
	flow := s.flow
	answer := s.answer
	s.runner.run(func() func() {
		out := flow.Submit(answer)
		return func() {
			if out.Correct {
				s.answer = ""
				s.showHint = false
				s.status = ""
			} else if !flow.Finished() {
				s.status = "Aún no: revisa los códigos"
			}
			if flow.Finished() {
				s.runner.run(func() func() {
					flow.Finish()
					return func() { s.phase = cipherPhaseDone }
				})
			}
		}
	})
}

// Update 处理键入与作答
func (s *CipherScene) Update(deltaTime float64) {
	s.runner.pump()
	if s.runner.busy || s.ctx.inputLocked() {
		return
	}

	if s.phase == cipherPhasePlay {
		s.answer = appendTextInput(s.answer)
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.submit()
			return
		}
	}

	pressed, x, y := utils.IsPointerJustPressed()
	if !pressed {
		return
	}
	if s.backBtn.Hit(x, y) {
		s.ctx.SceneManager.Open(game.SceneMenu, "")
		return
	}

	switch s.phase {
	case cipherPhaseIntro:
		if s.startBtn.Hit(x, y) {
			s.ctx.Audio.PlaySound("assets/audio/click.wav")
			s.startRound()
		}
	case cipherPhasePlay:
		switch {
		case s.checkBtn.Hit(x, y):
			s.submit()
		case s.hintBtn.Hit(x, y):
			s.showHint = !s.showHint
		}
	case cipherPhaseDone:
		if s.againBtn.Hit(x, y) {
			s.phase = cipherPhaseIntro
			s.flow = nil
		}
	}
}

// Draw 绘制编码短语、输入框与提示
func (s *CipherScene) Draw(screen *ebiten.Image) {
	screen.Fill(uiBackground)
	cx := float64(s.ctx.ScreenWidth) / 2

	drawCentered(screen, "Encriptación", s.titleFace, cx, 90, uiText)

	switch s.phase {
	case cipherPhaseIntro:
		drawCentered(screen, "Cada letra se codifica con su posición en el alfabeto (A=00 ... Z=26, con Ñ).", s.bodyFace, cx, 180, uiTextMuted)
		drawCentered(screen, "Descifra la frase y escríbela.", s.bodyFace, cx, 210, uiTextMuted)
		s.startBtn.Draw(screen, s.bodyFace)

	case cipherPhasePlay:
		header := fmt.Sprintf("Frase %d de %d      Puntaje: %d", s.flow.Index()+1, s.flow.Total(), s.flow.Score())
		drawCentered(screen, header, s.bodyFace, cx, 150, uiTextMuted)

		// 编码短语（可能超宽，自动换行）
		encoded := s.flow.Current().Encrypted()
		lines := utils.WrapText(encoded, s.bigFace, float64(s.ctx.ScreenWidth)-160)
		y := 220.0
		for _, line := range lines {
			drawCentered(screen, line, s.bigFace, cx, y, uiAccent)
			y += 40
		}

		// 输入框
		boxW := float64(s.ctx.ScreenWidth) - 500
		vector.DrawFilledRect(screen, float32(cx-boxW/2), 420, float32(boxW), 46, uiFieldActive, false)
		drawLeft(screen, s.answer+"_", s.bodyFace, cx-boxW/2+12, 443, uiText)

		if s.showHint {
			drawCentered(screen, "Pista: "+s.flow.Current().Hint, s.bodyFace, cx, 510, uiTextMuted)
		}

		s.hintBtn.Draw(screen, s.bodyFace)
		s.checkBtn.Draw(screen, s.bodyFace)

	case cipherPhaseDone:
		drawCentered(screen, "¡Juego terminado!", s.titleFace, cx, 240, uiText)
		drawCentered(screen, fmt.Sprintf("Puntaje final: %d", s.flow.Score()), s.bigFace, cx, 310, uiAccent)
		s.againBtn.Draw(screen, s.bodyFace)
	}

	if s.status != "" {
		drawCentered(screen, s.status, s.bodyFace, cx, float64(s.ctx.ScreenHeight)-110, uiDanger)
	}
	s.backBtn.Draw(screen, s.bodyFace)
}

package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/JR-amirez/juegos-ar/pkg/game"
	"github.com/JR-amirez/juegos-ar/pkg/games/arithmetic"
	"github.com/JR-amirez/juegos-ar/pkg/utils"
)

// 心算场景的阶段
const (
	arithPhaseLevel = iota // 选择难度
	arithPhasePlay         // 答题中
	arithPhaseDone         // 本局结束
)

// 片段逐个出现的节奏（秒）
const revealInterval = 1.1

// 每局练习数量
const exercisesPerRound = 5

// ArithmeticScene 心算游戏场景
//
// 界面节奏：选择难度 → Inicio 奖励门 → 运算片段逐个出现 →
// 三个乱序选项 → 答对播放 Acierto → 最后一题后播放 Final。
type ArithmeticScene struct {
	ctx    *Context
	info   *GameInfo
	flow   *arithmetic.Flow
	runner *asyncRunner

	phase       int
	revealTimer float64
	status      string

	levelButtons []Button
	levels       []string
	backBtn      Button
	againBtn     Button

	titleFace *text.GoTextFace
	bigFace   *text.GoTextFace
	bodyFace  *text.GoTextFace
}

// NewArithmeticScene 创建心算场景
func NewArithmeticScene(ctx *Context) *ArithmeticScene {
	s := &ArithmeticScene{
		ctx:    ctx,
		info:   ctx.GameBySceneID(game.SceneArithmetic),
		runner: newAsyncRunner(),
		levels: []string{arithmetic.LevelBasic, arithmetic.LevelIntermediate, arithmetic.LevelAdvanced},
	}
	s.titleFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 32)
	s.bigFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 48)
	s.bodyFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 20)

	cx := float64(ctx.ScreenWidth) / 2
	labels := []string{"Básico", "Intermedio", "Avanzado"}
	y := 240.0
	for _, label := range labels {
		s.levelButtons = append(s.levelButtons, Button{X: cx - 150, Y: y, W: 300, H: 54, Label: label, Color: uiPrimary})
		y += 70
	}
	s.backBtn = Button{X: 40, Y: float64(ctx.ScreenHeight) - 80, W: 150, H: 46, Label: "Volver", Color: uiSecondary}
	s.againBtn = Button{X: cx - 110, Y: 380, W: 220, H: 52, Label: "Jugar otra vez", Color: uiPrimary}
	return s
}

// startRound 创建流程并经 Inicio 奖励门进入游戏
func (s *ArithmeticScene) startRound(level string) {
	flow, err := arithmetic.NewFlow(s.ctx.ArithmeticBank, level, exercisesPerRound, s.info.Orchestrator, s.ctx.Dialog, s.ctx.Logger)
	if err != nil {
		s.status = err.Error()
		return
	}
	s.flow = flow
	s.runner.run(func() func() {
		ok := flow.Start()
		return func() {
			if ok {
				s.phase = arithPhasePlay
				s.revealTimer = 0
				s.status = ""
			} else {
				s.status = "Inicio cancelado"
			}
		}
	})
}

// optionButtons 当前练习的选项按钮（几何与标签每帧重算）
func (s *ArithmeticScene) optionButtons() []Button {
	opts := s.flow.Options()
	buttons := make([]Button, len(opts))
	total := float64(len(opts))*140 - 20
	x := (float64(s.ctx.ScreenWidth) - total) / 2
	for i, opt := range opts {
		buttons[i] = Button{X: x, Y: 400, W: 120, H: 56, Label: strconv.Itoa(opt), Color: uiPrimary}
		x += 140
	}
	return buttons
}

// Update 推进片段节奏并处理作答
func (s *ArithmeticScene) Update(deltaTime float64) {
	s.runner.pump()
	if s.runner.busy || s.ctx.inputLocked() {
		return
	}

	if s.phase == arithPhasePlay && !s.flow.AllRevealed() {
		s.revealTimer += deltaTime
		if s.revealTimer >= revealInterval {
			s.revealTimer = 0
			s.flow.RevealNext()
		}
	}

	pressed, x, y := utils.IsPointerJustPressed()
	if !pressed {
		return
	}

	switch s.phase {
	case arithPhaseLevel:
		for i := range s.levelButtons {
			if s.levelButtons[i].Hit(x, y) {
				s.ctx.Audio.PlaySound("assets/audio/click.wav")
				s.startRound(s.levels[i])
				return
			}
		}
		if s.backBtn.Hit(x, y) {
			s.ctx.SceneManager.Open(game.SceneMenu, "")
		}

	case arithPhasePlay:
		if s.backBtn.Hit(x, y) {
			s.ctx.SceneManager.Open(game.SceneMenu, "")
			return
		}
		if !s.flow.AllRevealed() {
			return
		}
		for _, b := range s.optionButtons() {
			if b.Hit(x, y) {
				option, _ := strconv.Atoi(b.Label)
				s.submit(option)
				return
			}
		}

	case arithPhaseDone:
		if s.againBtn.Hit(x, y) {
			s.phase = arithPhaseLevel
			s.flow = nil
			return
		}
		if s.backBtn.Hit(x, y) {
			s.ctx.SceneManager.Open(game.SceneMenu, "")
		}
	}
}

// submit 提交答案；答对/放弃后流程结束时播放 Final
func (s *ArithmeticScene) submit(option int) {
	flow := s.flow
	s.runner.run(func() func() {
		out := flow.Submit(option)
		return func() {
			if !flow.Finished() {
				if !out.Correct {
					s.status = "Inténtalo otra vez"
				} else {
					s.status = ""
				}
				return
			}
			s.runner.run(func() func() {
				flow.Finish()
				return func() { s.phase = arithPhaseDone }
			})
		}
	})
}

// Draw 绘制当前阶段的界面
func (s *ArithmeticScene) Draw(screen *ebiten.Image) {
	screen.Fill(uiBackground)
	cx := float64(s.ctx.ScreenWidth) / 2

	drawCentered(screen, "Cálculo Mental", s.titleFace, cx, 90, uiText)

	switch s.phase {
	case arithPhaseLevel:
		drawCentered(screen, "Elige la dificultad", s.bodyFace, cx, 180, uiTextMuted)
		for i := range s.levelButtons {
			s.levelButtons[i].Draw(screen, s.bodyFace)
		}

	case arithPhasePlay:
		header := fmt.Sprintf("Ejercicio %d de %d      Puntaje: %d", s.flow.Index()+1, s.flow.Total(), s.flow.Score())
		drawCentered(screen, header, s.bodyFace, cx, 150, uiTextMuted)

		parts := s.flow.Parts()
		shown := strings.Join(parts[:s.flow.Revealed()], "   ")
		if s.flow.AllRevealed() {
			shown += "   = ?"
			drawCentered(screen, "¿Cuál es el resultado?", s.bodyFace, cx, 350, uiTextMuted)
			for _, b := range s.optionButtons() {
				b.Draw(screen, s.bodyFace)
			}
		} else {
			drawCentered(screen, "Memoriza la secuencia...", s.bodyFace, cx, 350, uiTextMuted)
		}
		drawCentered(screen, shown, s.bigFace, cx, 260, uiText)

	case arithPhaseDone:
		drawCentered(screen, "¡Juego terminado!", s.titleFace, cx, 240, uiText)
		drawCentered(screen, fmt.Sprintf("Puntaje final: %d", s.flow.Score()), s.bigFace, cx, 310, uiAccent)
		s.againBtn.Draw(screen, s.bodyFace)
	}

	if s.status != "" {
		drawCentered(screen, s.status, s.bodyFace, cx, float64(s.ctx.ScreenHeight)-110, uiDanger)
	}
	s.backBtn.Draw(screen, s.bodyFace)
}

package scenes

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/JR-amirez/juegos-ar/pkg/game"
	"github.com/JR-amirez/juegos-ar/pkg/games/blocks"
	"github.com/JR-amirez/juegos-ar/pkg/utils"
)

// 积木场景的阶段
const (
	blocksPhaseIntro = iota
	blocksPhasePlay
	blocksPhaseDone
)

// 积木面板顺序
var paletteKinds = []blocks.BlockKind{
	blocks.BlockTake, blocks.BlockAdd, blocks.BlockSub,
	blocks.BlockMul, blocks.BlockDiv, blocks.BlockNegate, blocks.BlockDouble,
}

// BlocksScene 积木编程场景
//
// 玩家从面板拼出积木程序（选定输入槽 + 操作），Probar 把编译后的
// 程序交给运行器逐用例验证；通过播放 Acierto 并推进。倒计时归零
// 或手动 Terminar 结束本局。
type BlocksScene struct {
	ctx    *Context
	info   *GameInfo
	flow   *blocks.Flow
	runner *asyncRunner

	phase         int
	program       blocks.Program
	selectedInput int
	status        string
	statusOK      bool

	startBtn  Button
	tryBtn    Button
	undoBtn   Button
	clearBtn  Button
	finishBtn Button
	againBtn  Button
	backBtn   Button

	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace
	smallFace *text.GoTextFace
}

// NewBlocksScene 创建积木场景
func NewBlocksScene(ctx *Context) *BlocksScene {
	s := &BlocksScene{
		ctx:    ctx,
		info:   ctx.GameBySceneID(game.SceneBlocks),
		runner: newAsyncRunner(),
	}
	s.titleFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 32)
	s.bodyFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 20)
	s.smallFace, _ = ctx.Resources.LoadFontFace(uiFontPath, 16)

	w := float64(ctx.ScreenWidth)
	h := float64(ctx.ScreenHeight)
	cx := w / 2
	s.startBtn = Button{X: cx - 130, Y: 320, W: 260, H: 54, Label: "Comenzar", Color: uiPrimary}
	s.tryBtn = Button{X: w - 380, Y: h - 80, W: 140, H: 46, Label: "Probar", Color: uiSuccess}
	s.undoBtn = Button{X: w - 230, Y: h - 80, W: 90, H: 46, Label: "Quitar", Color: uiSecondary}
	s.clearBtn = Button{X: w - 130, Y: h - 80, W: 90, H: 46, Label: "Borrar", Color: uiDanger}
	s.finishBtn = Button{X: 210, Y: h - 80, W: 150, H: 46, Label: "Terminar", Color: uiAccent}
	s.againBtn = Button{X: cx - 110, Y: 380, W: 220, H: 52, Label: "Jugar otra vez", Color: uiPrimary}
	s.backBtn = Button{X: 40, Y: h - 80, W: 150, H: 46, Label: "Volver", Color: uiSecondary}
	return s
}

// startRound 创建流程并进入游戏（Bloques 只用 Acierto 阶段，无开始门）
func (s *BlocksScene) startRound() {
	flow, err := blocks.NewFlow(s.ctx.BlocksBank, blocks.DefaultTimeLimit, s.info.Orchestrator, s.ctx.Dialog, s.ctx.Logger)
	if err != nil {
		s.status = err.Error()
		return
	}
	s.flow = flow
	s.phase = blocksPhasePlay
	s.program.Clear()
	s.selectedInput = 0
	s.status = ""
}

// inputCount 当前挑战的输入槽数量（以首个用例为准）
func (s *BlocksScene) inputCount() int {
	cases := s.flow.Current().Cases
	if len(cases) == 0 {
		return 0
	}
	return len(cases[0].Inputs)
}

// paletteButtons 输入槽选择与操作积木的按钮（几何每帧重算）
func (s *BlocksScene) paletteButtons() (inputs []Button, kinds []Button) {
	y := float64(s.ctx.ScreenHeight) - 220
	x := 40.0
	for i := 0; i < s.inputCount(); i++ {
		c := uiSecondary
		if i == s.selectedInput {
			c = uiPrimary
		}
		inputs = append(inputs, Button{X: x, Y: y, W: 110, H: 40, Label: fmt.Sprintf("Entrada %d", i+1), Color: c})
		x += 120
	}

	y += 52
	x = 40.0
	for _, kind := range paletteKinds {
		kinds = append(kinds, Button{X: x, Y: y, W: 116, H: 40, Label: string(kind), Color: uiPanel})
		x += 126
	}
	return inputs, kinds
}

// submit 编译并提交当前程序
func (s *BlocksScene) submit() {
	flow := s.flow
	solution := s.program.Compile()
	s.runner.run(func() func() {
		verdict := flow.Submit(solution)
		return func() {
			if verdict.Passed {
				s.program.Clear()
				s.selectedInput = 0
				s.status, s.statusOK = "¡Desafío superado!", true
			} else {
				s.statusOK = false
				if verdict.Detail != "" {
					s.status = verdict.Detail
				} else {
					s.status = fmt.Sprintf("Caso %d: esperado %s, obtenido %s", verdict.FailedCase+1, verdict.Expected, verdict.Actual)
				}
			}
			if flow.Finished() {
				s.phase = blocksPhaseDone
			}
		}
	})
}

// Update 推进倒计时并处理拼装与提交
func (s *BlocksScene) Update(deltaTime float64) {
	s.runner.pump()
	if s.runner.busy || s.ctx.inputLocked() {
		return
	}

	if s.phase == blocksPhasePlay {
		s.flow.Tick(deltaTime)
		if s.flow.Finished() {
			s.phase = blocksPhaseDone
			return
		}
	}

	pressed, x, y := utils.IsPointerJustPressed()
	if !pressed {
		return
	}

	switch s.phase {
	case blocksPhaseIntro:
		if s.startBtn.Hit(x, y) {
			s.ctx.Audio.PlaySound("assets/audio/click.wav")
			s.startRound()
			return
		}
		if s.backBtn.Hit(x, y) {
			s.ctx.SceneManager.Open(game.SceneMenu, "")
		}

	case blocksPhasePlay:
		inputs, kinds := s.paletteButtons()
		for i := range inputs {
			if inputs[i].Hit(x, y) {
				s.selectedInput = i
				return
			}
		}
		for i := range kinds {
			if kinds[i].Hit(x, y) {
				s.program.Append(blocks.Block{Kind: paletteKinds[i], Input: s.selectedInput})
				return
			}
		}
		switch {
		case s.tryBtn.Hit(x, y):
			if s.program.Empty() {
				s.status, s.statusOK = "Agrega al menos un bloque", false
			} else {
				s.submit()
			}
		case s.undoBtn.Hit(x, y):
			s.program.RemoveLast()
		case s.clearBtn.Hit(x, y):
			s.program.Clear()
		case s.finishBtn.Hit(x, y):
			flow := s.flow
			s.runner.run(func() func() {
				ended := flow.RequestFinish()
				return func() {
					if ended {
						s.phase = blocksPhaseDone
					}
				}
			})
		case s.backBtn.Hit(x, y):
			s.ctx.SceneManager.Open(game.SceneMenu, "")
		}

	case blocksPhaseDone:
		if s.againBtn.Hit(x, y) {
			s.phase = blocksPhaseIntro
			s.flow = nil
			return
		}
		if s.backBtn.Hit(x, y) {
			s.ctx.SceneManager.Open(game.SceneMenu, "")
		}
	}
}

// Draw 绘制挑战说明、程序与积木面板
func (s *BlocksScene) Draw(screen *ebiten.Image) {
	screen.Fill(uiBackground)
	cx := float64(s.ctx.ScreenWidth) / 2

	drawCentered(screen, "Bloques", s.titleFace, cx, 70, uiText)

	switch s.phase {
	case blocksPhaseIntro:
		drawCentered(screen, "Arma un programa con bloques que resuelva cada desafío.", s.bodyFace, cx, 180, uiTextMuted)
		drawCentered(screen, "Tienes 10 minutos. Cada desafío superado vale 10 puntos.", s.bodyFace, cx, 210, uiTextMuted)
		s.startBtn.Draw(screen, s.bodyFace)

	case blocksPhasePlay:
		s.drawPlay(screen)

	case blocksPhaseDone:
		drawCentered(screen, "¡Partida terminada!", s.titleFace, cx, 240, uiText)
		score := 0
		if s.flow != nil {
			score = s.flow.Score()
		}
		drawCentered(screen, fmt.Sprintf("Puntaje final: %d", score), s.titleFace, cx, 310, uiAccent)
		s.againBtn.Draw(screen, s.bodyFace)
	}

	s.backBtn.Draw(screen, s.bodyFace)
}

// drawPlay 绘制答题界面：左侧挑战说明，右侧程序，底部面板
func (s *BlocksScene) drawPlay(screen *ebiten.Image) {
	w := float64(s.ctx.ScreenWidth)
	ch := s.flow.Current()

	remaining := int(s.flow.Remaining())
	header := fmt.Sprintf("Desafío %d de %d      Puntaje: %d      Tiempo: %d:%02d",
		s.flow.Index()+1, s.flow.Total(), s.flow.Score(), remaining/60, remaining%60)
	drawCentered(screen, header, s.bodyFace, w/2, 110, uiTextMuted)

	// 挑战说明
	y := 150.0
	drawLeft(screen, fmt.Sprintf("%s  (%s)", ch.Title, ch.Difficulty), s.bodyFace, 40, y, uiText)
	y += 30
	for _, line := range utils.WrapText(ch.Description, s.smallFace, w/2-80) {
		drawLeft(screen, line, s.smallFace, 40, y, uiTextMuted)
		y += 22
	}
	for _, line := range utils.WrapText(ch.Instructions, s.smallFace, w/2-80) {
		drawLeft(screen, line, s.smallFace, 40, y, uiTextMuted)
		y += 22
	}
	y += 8
	if len(ch.Cases) > 0 {
		example := fmt.Sprintf("Ejemplo: %s(%s) → %v", ch.FunctionName, formatInputs(ch.Cases[0].Inputs), ch.Cases[0].Expected)
		drawLeft(screen, example, s.smallFace, 40, y, uiAccent)
	}

	// 程序列表
	px := w/2 + 40
	vector.DrawFilledRect(screen, float32(px-10), 140, float32(w/2-60), float32(float64(s.ctx.ScreenHeight)-380), uiPanel, false)
	drawLeft(screen, "Tu programa:", s.bodyFace, px, 160, uiText)
	py := 190.0
	if s.program.Empty() {
		drawLeft(screen, "(vacío)", s.smallFace, px, py, uiTextMuted)
	}
	for i, b := range s.program.Blocks {
		drawLeft(screen, fmt.Sprintf("%d. %s", i+1, b.Label()), s.smallFace, px, py, uiText)
		py += 22
	}

	inputs, kinds := s.paletteButtons()
	for i := range inputs {
		inputs[i].Draw(screen, s.smallFace)
	}
	for i := range kinds {
		kinds[i].Draw(screen, s.smallFace)
	}

	if s.status != "" {
		clr := uiDanger
		if s.statusOK {
			clr = uiSuccess
		}
		drawCentered(screen, s.status, s.smallFace, w/2, float64(s.ctx.ScreenHeight)-110, clr)
	}

	s.tryBtn.Draw(screen, s.bodyFace)
	s.undoBtn.Draw(screen, s.bodyFace)
	s.clearBtn.Draw(screen, s.bodyFace)
	s.finishBtn.Draw(screen, s.bodyFace)
}

// formatInputs 把测试用例输入渲染成参数列表
func formatInputs(inputs []interface{}) string {
	parts := make([]string, len(inputs))
	for i, in := range inputs {
		parts[i] = fmt.Sprintf("%v", in)
	}
	return strings.Join(parts, ", ")
}

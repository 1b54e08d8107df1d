// Package app 提供应用的核心包装器
//
// 该包把装配逻辑从 main 包提取出来：创建管理器、奖励核心的
// 每游戏装配（存储/呈现器/编排器/blob 注册表）、场景工厂，并实现
// ebiten.Game 接口驱动整个界面。
package app

import (
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"

	"github.com/JR-amirez/juegos-ar/internal/media"
	"github.com/JR-amirez/juegos-ar/pkg/game"
	"github.com/JR-amirez/juegos-ar/pkg/games/arithmetic"
	"github.com/JR-amirez/juegos-ar/pkg/games/blocks"
	"github.com/JR-amirez/juegos-ar/pkg/games/cipher"
	"github.com/JR-amirez/juegos-ar/pkg/infra"
	"github.com/JR-amirez/juegos-ar/pkg/modules"
	"github.com/JR-amirez/juegos-ar/pkg/reward"
	"github.com/JR-amirez/juegos-ar/pkg/scenes"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 960
	ScreenHeight = 640
)

// 覆盖层的漂浮装饰符号
var decorationSymbols = []string{"✶", "♪", "◆", "✿"}

// Config 应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// AssetsFS 内嵌的界面资源（可为 nil，全部走磁盘路径）
	AssetsFS fs.FS
	// DataFS 内嵌的题库数据
	DataFS fs.FS
}

// App 应用核心包装器，实现 ebiten.Game 接口
type App struct {
	logger zerolog.Logger

	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	audioManager *game.AudioManager
	dialog       *modules.DialogModule

	minter     *media.FileMinter
	registries []*reward.BlobRegistry

	quit bool
}

// New 创建并装配应用
func New(cfg Config) (*App, error) {
	logger := infra.NewLogger(cfg.Verbose)

	gdataManager, err := gdata.Open(gdata.Config{AppName: "juegos_ar"})
	if err != nil {
		// 持久化降级：内存配置照常工作，重启后丢失
		logger.Warn().Err(err).Msg("persistence unavailable, running in memory")
		gdataManager = nil
	}

	settings, err := game.NewSettingsManager(gdataManager, logger)
	if err != nil {
		return nil, fmt.Errorf("inicializar ajustes: %w", err)
	}

	audioContext := audio.NewContext(44100)
	resources := game.NewResourceManager(cfg.AssetsFS, audioContext, logger)
	audioManager := game.NewAudioManager(resources, settings, logger)
	sceneManager := game.NewSceneManager(logger)
	dialog := modules.NewDialogModule(resources, logger)

	app := &App{
		logger:       logger.With().Str("component", "app").Logger(),
		sceneManager: sceneManager,
		settings:     settings,
		audioManager: audioManager,
		dialog:       dialog,
	}

	// 奖励媒体：用户文件经铸造器复制为私有临时文件
	minter, err := media.NewFileMinter()
	if err != nil {
		return nil, fmt.Errorf("preparar almacén de medios: %w", err)
	}
	app.minter = minter

	library := media.NewLibrary(cfg.AssetsFS, audioContext)
	caps := reward.NewCapabilityLoader(func() (reward.RenderCapability, error) {
		face, err := resources.LoadFontFace("assets/fonts/Quicksand-Regular.ttf", 26)
		if err != nil {
			// 字体缺失时文字槽退化为平面面板
			logger.Warn().Err(err).Msg("overlay font unavailable")
			face = nil
		}
		return reward.RenderCapability{
			Font:   face,
			Images: library.Images(),
			Videos: library.Videos(),
			Audios: library.Audios(),
		}, nil
	})
	renderer := reward.NewAdapter(caps, logger)

	// 相机采集按设置接入；桌面端实现总是报告不可用，覆盖层按
	// 无相机背景降级
	var camera reward.CameraCapture
	if settings.GetSettings().CameraEnabled {
		camera = &media.NoCamera{}
	}

	// 每个游戏一套奖励装配
	type gameSpec struct {
		sceneID   game.SceneID
		namespace string
		title     string
		stages    []reward.StageName
	}
	specs := []gameSpec{
		{game.SceneArithmetic, "ar_calculo", "Cálculo Mental", reward.AllStages},
		{game.SceneCipher, "ar_cifrado", "Encriptación", reward.AllStages},
		{game.SceneBlocks, "ar_bloques", "Bloques", []reward.StageName{reward.StageSuccess}},
	}

	var infos []*scenes.GameInfo
	for _, spec := range specs {
		store := reward.NewStore(gdataManager, spec.namespace, spec.stages, logger)
		presenter := reward.NewPresenter(dialog, camera, renderer, decorationSymbols, logger)
		registry := reward.NewBlobRegistry(minter, logger)
		app.registries = append(app.registries, registry)

		infos = append(infos, &scenes.GameInfo{
			SceneID:      spec.sceneID,
			Namespace:    spec.namespace,
			Title:        spec.title,
			Orchestrator: reward.NewOrchestrator(store, presenter, dialog, logger),
			Registry:     registry,
		})
	}

	// 题库
	arithBank, err := arithmetic.LoadBank(cfg.DataFS, "data/arithmetic_exercises.yaml")
	if err != nil {
		return nil, fmt.Errorf("cargar banco de ejercicios: %w", err)
	}
	cipherBank, err := cipher.LoadBank(cfg.DataFS, "data/cipher_phrases.yaml")
	if err != nil {
		return nil, fmt.Errorf("cargar banco de frases: %w", err)
	}
	blocksBank, err := blocks.LoadBank(cfg.DataFS, "data/block_challenges.yaml")
	if err != nil {
		return nil, fmt.Errorf("cargar banco de desafíos: %w", err)
	}

	ctx := &scenes.Context{
		SceneManager:   sceneManager,
		Resources:      resources,
		Audio:          audioManager,
		Settings:       settings,
		Dialog:         dialog,
		Logger:         logger,
		Games:          infos,
		ArithmeticBank: arithBank,
		CipherBank:     cipherBank,
		BlocksBank:     blocksBank,
		ScreenWidth:    ScreenWidth,
		ScreenHeight:   ScreenHeight,
		RequestQuit:    func() { app.quit = true },
	}

	sceneManager.SetSceneFactory(func(id game.SceneID, param string) game.Scene {
		switch id {
		case game.SceneMenu:
			return scenes.NewMenuScene(ctx)
		case game.SceneSettings:
			return scenes.NewSettingsScene(ctx)
		case game.SceneStageConfig:
			if s := scenes.NewStageConfigScene(ctx, param); s != nil {
				return s
			}
			return nil
		case game.SceneArithmetic:
			return scenes.NewArithmeticScene(ctx)
		case game.SceneCipher:
			return scenes.NewCipherScene(ctx)
		case game.SceneBlocks:
			return scenes.NewBlocksScene(ctx)
		}
		return nil
	})
	sceneManager.Open(game.SceneMenu, "")

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return app, nil
}

// Update 推进当前场景与对话框
func (a *App) Update() error {
	if a.quit {
		return ebiten.Termination
	}

	const deltaTime = 1.0 / 60

	a.dialog.SetScreenSize(ScreenWidth, ScreenHeight)
	a.dialog.Update(deltaTime)
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制当前场景，对话框覆盖在最上层
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
	a.dialog.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Shutdown 释放进程资源：打开的对话框、blob 引用与临时文件
func (a *App) Shutdown() {
	a.dialog.CloseActive(false)
	for _, registry := range a.registries {
		registry.ReleaseAll()
	}
	if a.minter != nil {
		a.minter.Close()
	}
	a.logger.Info().Msg("shutdown complete")
}

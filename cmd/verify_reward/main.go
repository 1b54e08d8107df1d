// Package main provides a headless exerciser for the staged reward
// playback core.
//
// Usage:
//
//	go run ./cmd/verify_reward [flags]
//
// Flags:
//
//	--frames <n>    Frames to pump per stage (default: 30)
//	--verbose       Enable verbose logging
//
// Purpose:
//   - Drive Play(Inicio/Acierto/Final) against an in-memory store with
//     every content combination, without opening a window
//   - Verify the cleanup invariant: every mounted slot renderer is
//     disposed exactly once per open/close cycle
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/JR-amirez/juegos-ar/internal/media"
	"github.com/JR-amirez/juegos-ar/pkg/infra"
	"github.com/JR-amirez/juegos-ar/pkg/reward"
)

var (
	framesFlag  = flag.Int("frames", 30, "frames to pump per stage")
	verboseFlag = flag.Bool("verbose", false, "enable verbose logging")
)

// autoDialog 无界面对话框：同步驱动内容区若干帧后确认关闭
type autoDialog struct {
	frames int
}

func (d *autoDialog) Available() bool { return true }

func (d *autoDialog) Fire(opts reward.DialogOptions) reward.DialogResult {
	if opts.Content != nil {
		opts.Content.Resize(640, 420)
		for i := 0; i < d.frames; i++ {
			opts.Content.Update(1.0 / 60)
		}
		opts.Content.HandleClick(320, 210)
		opts.Content.Update(1.0 / 60)
	}
	if opts.OnClose != nil {
		opts.OnClose()
	}
	return reward.DialogResult{Confirmed: true}
}

func main() {
	flag.Parse()
	logger := infra.NewLogger(*verboseFlag)

	dialog := &autoDialog{frames: *framesFlag}
	library := media.NewLibrary(nil, nil)
	caps := reward.NewCapabilityLoader(func() (reward.RenderCapability, error) {
		return reward.RenderCapability{
			Images: library.Images(),
			Videos: library.Videos(),
			Audios: library.Audios(),
		}, nil
	})
	renderer := reward.NewAdapter(caps, logger)
	presenter := reward.NewPresenter(dialog, media.NoCamera{}, renderer, []string{"✶", "♪"}, logger)

	// 内存存储：逐阶段配置不同的内容组合
	store := reward.NewStore(nil, "verify", reward.AllStages, logger)
	contents := map[reward.StageName]map[reward.ContentField]string{
		reward.StageStart:   {reward.FieldText: "¡Bienvenido!"},
		reward.StageSuccess: {reward.FieldText: "¡Muy bien!", reward.FieldImage: "no-existe.png"},
		reward.StageEnd:     {reward.FieldAudio: "no-existe.mp3"},
	}
	for stage, fields := range contents {
		store.ToggleStage(stage)
		for field, value := range fields {
			store.SetField(stage, field, value)
		}
	}

	orchestrator := reward.NewOrchestrator(store, presenter, dialog, logger)
	failed := false
	for _, stage := range reward.AllStages {
		confirmed := orchestrator.Play(stage, reward.DialogOverrides{Title: string(stage)})
		fmt.Printf("stage %-8s confirmed=%v\n", stage, confirmed)
		if !confirmed {
			failed = true
		}
	}

	ledger := renderer.Ledger()
	fmt.Printf("mounts=%d disposes=%d outstanding=%d\n", ledger.Mounts(), ledger.Disposes(), ledger.Outstanding())
	if ledger.Outstanding() != 0 {
		fmt.Println("FAIL: leaked slot renderers")
		failed = true
	}
	if failed {
		os.Exit(1)
	}
	fmt.Println("OK")
}

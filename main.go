package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/JR-amirez/juegos-ar/pkg/app"
)

func main() {
	verbose := flag.Bool("verbose", false, "registro detallado")
	flag.Parse()

	a, err := app.New(app.Config{
		Verbose:  *verbose,
		AssetsFS: nil, // 界面资源走磁盘路径（assets/）
		DataFS:   dataFS,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer a.Shutdown()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Juegos RA")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

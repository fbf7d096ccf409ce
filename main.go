package main

import (
	"flag"
	"log"

	"github.com/decker502/slotreel/pkg/app"
	"github.com/decker502/slotreel/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试日志")
	configPath = flag.String("config", "", "配置文件路径（默认使用内置配置）")
	assetsDir  = flag.String("assets", "assets", "图片和音频资源目录")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	game, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		AssetsDir:  *assetsDir,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	w, h := game.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Slot Reel")

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}

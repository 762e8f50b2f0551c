package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/modal"
	"github.com/milk9111/easekit/prefabs"
)

func main() {
	var opts options
	flag.Func("hint", "loading hint to show (repeatable, replaces the prefab hints)", func(s string) error {
		opts.hints = append(opts.hints, s)
		return nil
	})
	style := flag.String("style", "", "modal open style override (scale, slide_up, slide_down, slide_left, slide_right, fade)")
	flag.BoolVar(&opts.watch, "watch", false, "reload prefabs and scripts when they change on disk")
	flag.BoolVar(&opts.debug, "debug", false, "show debug overlay")
	flag.StringVar(&prefabs.Dir, "prefabs", prefabs.Dir, "prefab directory checked before the embedded copies")
	flag.Parse()

	if *style != "" {
		s, err := modal.ParseStyle(*style)
		if err != nil {
			log.Fatal(err)
		}
		opts.style = &s
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("easekit demo")

	game, err := NewGame(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

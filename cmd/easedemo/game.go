package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/entity"
	"github.com/milk9111/easekit/ecs/render"
	"github.com/milk9111/easekit/ecs/system"
	"github.com/milk9111/easekit/modal"
	"github.com/milk9111/easekit/prefabs"
	"github.com/milk9111/easekit/script"
	"github.com/milk9111/easekit/transition"
	"github.com/milk9111/easekit/tween"
	"golang.org/x/image/colornames"
)

// Demo actions. Keys, control panel buttons and clickable prefab buttons all
// resolve to one of these.
const (
	actionToggleModal = "toggle_settings"
	actionOpenModal   = "open_settings"
	actionCloseModal  = "close_settings"
	actionShake       = "shake"
	actionLoad        = "load"
	actionIntro       = "intro"
	actionCooldown    = "cooldown"
	actionPause       = "pause"
)

const loadFrames = 90

var demoScenes = []string{"forest", "caves", "summit"}

type options struct {
	hints []string
	style *modal.Style
	watch bool
	debug bool
}

var keyActions = map[ebiten.Key]string{
	ebiten.KeyM:      actionToggleModal,
	ebiten.KeyEscape: actionCloseModal,
	ebiten.KeyS:      actionShake,
	ebiten.KeyL:      actionLoad,
	ebiten.KeyI:      actionIntro,
	ebiten.KeyC:      actionCooldown,
	ebiten.KeyP:      actionPause,
}

type Game struct {
	frames int
	opts   options

	world  *ecs.World
	runner *tween.Runner
	tweens *system.TweenSystem
	sched  *ecs.Scheduler
	scene  *entity.Scene
	modal  *entity.Modal
	ui     *ebitenui.UI
	watch  *prefabs.Watcher

	nextScene int
	status    string
}

func NewGame(opts options) (*Game, error) {
	g := &Game{opts: opts}
	if err := g.build(); err != nil {
		return nil, err
	}
	g.ui = NewControlUI(g)

	if opts.watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.ScriptDir())
		if err != nil {
			log.Printf("easedemo: watch disabled: %v", err)
		} else {
			g.watch = w
		}
	}
	return g, nil
}

// build creates a fresh world from the prefabs. Pause state survives a
// rebuild.
func (g *Game) build() error {
	w := ecs.NewWorld()
	runner := tween.NewRunner()
	scene := entity.NewScene(w, runner)

	var err error
	if scene.Curves, err = prefabs.LoadCurveLibrary(); err != nil {
		return err
	}

	stageSpec, err := prefabs.LoadStageSpec()
	if err != nil {
		return err
	}
	_, names, err := entity.Build(w, stageSpec, 0)
	if err != nil {
		return fmt.Errorf("easedemo: build stage: %w", err)
	}
	scene.Adopt(names)

	camSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return err
	}
	if scene.Camera, err = entity.NewCamera(w, runner, camSpec); err != nil {
		return err
	}

	modalSpec, err := prefabs.LoadModalSpec()
	if err != nil {
		return err
	}
	if g.opts.style != nil {
		modalSpec.OpenStyle = *g.opts.style
		modalSpec.CloseStyle = *g.opts.style
	}
	m, err := entity.NewModal(w, runner, modalSpec, entity.BaseScreen)
	if err != nil {
		return err
	}
	scene.AddModal(modalSpec.Panel.Name, m)

	loadingSpec, err := prefabs.LoadLoadingScreenSpec()
	if err != nil {
		return err
	}
	if len(g.opts.hints) > 0 {
		loadingSpec.Hints = g.opts.hints
	}
	loading, err := entity.NewLoadingScreen(w, runner, transition.SimulatedLoader{Frames: loadFrames, Known: demoScenes}, loadingSpec, nil)
	if err != nil {
		return err
	}
	loading.OnPhase = func(p transition.Phase) {
		if g.opts.debug {
			log.Printf("easedemo: loading %s", p)
		}
	}
	scene.SetLoading(loading)

	paused := g.tweens != nil && g.tweens.Paused()
	tweens := system.NewTweenSystem(runner, func() float64 { return 1 / float64(ebiten.TPS()) })
	tweens.SetPaused(paused)

	g.world, g.runner, g.scene, g.modal, g.tweens = w, runner, scene, m, tweens
	g.sched = ecs.NewScheduler(
		system.NewCameraShakeSystem(scene.Camera.Rig),
		tweens,
		render.NewSystem(),
	)
	return nil
}

func (g *Game) Close() {
	if g.watch != nil {
		_ = g.watch.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	g.pollWatcher()

	for key, action := range keyActions {
		if inpututil.IsKeyJustPressed(key) {
			g.do(action)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if _, btn, ok := buttonAt(g.world, float64(x), float64(y)); ok {
			g.do(btn.Action)
		}
	}

	g.ui.Update()
	g.sched.Update(g.world)
	return nil
}

// do runs a demo action, reporting failures on the status line.
func (g *Game) do(action string) {
	var err error
	switch action {
	case actionToggleModal:
		err = g.modal.Toggle()
	case actionOpenModal:
		err = g.modal.OpenDefault(nil)
	case actionCloseModal:
		err = g.modal.CloseDefault(nil)
	case actionShake:
		err = g.runStep(script.StepSpec{Kind: entity.ActionShake})
	case actionLoad:
		name := demoScenes[g.nextScene%len(demoScenes)]
		if _, err = g.scene.Loading.StartAsyncLoad(name); err == nil {
			g.nextScene++
		}
	case actionIntro:
		_, err = g.scene.RunScript("intro.tengo", nil)
	case actionCooldown:
		_, err = g.scene.RunScript("cooldown.tengo", nil)
	case actionPause:
		g.tweens.SetPaused(!g.tweens.Paused())
	default:
		err = fmt.Errorf("unknown action %q", action)
	}
	if err != nil {
		g.status = fmt.Sprintf("%s: %v", action, err)
		log.Printf("easedemo: %s", g.status)
		return
	}
	g.status = action
}

func (g *Game) runStep(spec script.StepSpec) error {
	step, err := g.scene.Action(spec)
	if err != nil {
		return err
	}
	g.runner.Start(step)
	return nil
}

// pollWatcher drains pending change notifications without blocking and
// rebuilds once if any prefab changed. Scripts are read on every run so they
// need no rebuild.
func (g *Game) pollWatcher() {
	if g.watch == nil {
		return
	}
	rebuild := false
	for {
		select {
		case path, ok := <-g.watch.Events:
			if !ok {
				g.watch = nil
				g.reload(rebuild)
				return
			}
			log.Printf("easedemo: %s changed: %s", prefabs.Kind(path), path)
			if prefabs.Kind(path) == "spec" {
				rebuild = true
			}
		case err, ok := <-g.watch.Errors:
			if ok {
				log.Printf("easedemo: watch: %v", err)
			}
		default:
			g.reload(rebuild)
			return
		}
	}
}

func (g *Game) reload(rebuild bool) {
	if !rebuild {
		return
	}
	if err := g.build(); err != nil {
		g.status = fmt.Sprintf("reload: %v", err)
		log.Printf("easedemo: %s", g.status)
		return
	}
	g.status = "reloaded"
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	g.sched.Draw(g.world, screen)
	g.ui.Draw(screen)

	line := fmt.Sprintf("modal %s  loading %s  tweens %d", g.modal.State(), g.scene.Loading.Phase(), g.runner.Active())
	if g.tweens.Paused() {
		line += "  [paused]"
	}
	if g.status != "" {
		line += "  " + g.status
	}
	if g.opts.debug {
		line = fmt.Sprintf("Frames: %d    FPS: %.2f\n%s", g.frames, ebiten.ActualFPS(), line)
	}
	ebitenutil.DebugPrintAt(screen, line, 8, common.BaseHeight-32)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

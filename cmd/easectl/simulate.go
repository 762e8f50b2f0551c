package main

import (
	"fmt"
	"io"

	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/component"
	"github.com/milk9111/easekit/ecs/entity"
	"github.com/milk9111/easekit/ecs/prop"
	"github.com/milk9111/easekit/ecs/system"
	"github.com/milk9111/easekit/prefabs"
	"github.com/milk9111/easekit/transition"
	"github.com/milk9111/easekit/tween"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run effects headlessly and print what happens each frame",
}

var simulateTransitionCmd = &cobra.Command{
	Use:   "transition [scene]",
	Short: "Play the loading screen against a simulated loader",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scene := "next_scene"
		if len(args) > 0 {
			scene = args[0]
		}
		opts := simulateOptions{scene: scene}
		opts.dt, _ = cmd.Flags().GetFloat64("dt")
		opts.loadFrames, _ = cmd.Flags().GetInt("load-frames")
		opts.maxFrames, _ = cmd.Flags().GetInt("max-frames")
		opts.progress, _ = cmd.Flags().GetBool("progress")
		return simulateTransition(cmd.OutOrStdout(), opts)
	},
}

func init() {
	simulateTransitionCmd.Flags().Float64("dt", 1.0/60.0, "seconds per frame")
	simulateTransitionCmd.Flags().Int("load-frames", 30, "frames the simulated load takes")
	simulateTransitionCmd.Flags().Int("max-frames", 3600, "give up after this many frames")
	simulateTransitionCmd.Flags().Bool("progress", false, "print the progress bar value every frame while loading")
	simulateCmd.AddCommand(simulateTransitionCmd)
	rootCmd.AddCommand(simulateCmd)
}

type simulateOptions struct {
	scene      string
	dt         float64
	loadFrames int
	maxFrames  int
	progress   bool
}

func simulateTransition(out io.Writer, opts simulateOptions) error {
	spec, err := prefabs.LoadLoadingScreenSpec()
	if err != nil {
		return err
	}
	w := ecs.NewWorld()
	runner := tween.NewRunner()
	ls, err := entity.NewLoadingScreen(w, runner, transition.SimulatedLoader{Frames: opts.loadFrames}, spec, nil)
	if err != nil {
		return err
	}

	frame := 0
	ls.OnPhase = func(p transition.Phase) {
		fmt.Fprintf(out, "%6.3fs  %s\n", float64(frame)*opts.dt, p)
	}
	h, err := ls.StartAsyncLoad(opts.scene)
	if err != nil {
		return err
	}
	if g, ok := ecs.Get(w, ls.Names[spec.Hint], component.GraphicComponent.Kind()); ok && g.Text != "" {
		fmt.Fprintf(out, "hint: %s\n", g.Text)
	}

	sched := ecs.NewScheduler(system.NewTweenSystem(runner, func() float64 { return opts.dt }))
	bar := prop.Slider(w, ls.Names[spec.Progress])
	for !h.Done() {
		if frame >= opts.maxFrames {
			return fmt.Errorf("transition did not finish within %d frames (phase %s)", opts.maxFrames, ls.Phase())
		}
		frame++
		sched.Update(w)
		if opts.progress && ls.Phase() == transition.Loading {
			v, _ := bar.Get()
			fmt.Fprintf(out, "%6.3fs  progress %.2f\n", float64(frame)*opts.dt, v)
		}
	}
	if err := ls.Err(); err != nil {
		return err
	}
	fmt.Fprintf(out, "finished %q in %d frames\n", opts.scene, frame)
	return nil
}

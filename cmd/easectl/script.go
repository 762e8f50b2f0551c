package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/milk9111/easekit/ecs"
	"github.com/milk9111/easekit/ecs/entity"
	"github.com/milk9111/easekit/script"
	"github.com/milk9111/easekit/tween"
	"github.com/spf13/cobra"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Work with tween scripts",
}

var scriptCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Compile and run a script, then validate the steps it produces",
	Long: `check accepts a path on disk or the name of an embedded script such as
intro.tengo. Parameters are passed with --param key=value; numeric values
are converted to numbers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetStringToString("param")
		return checkScript(cmd.OutOrStdout(), args[0], parseParams(raw))
	},
}

func init() {
	scriptCheckCmd.Flags().StringToString("param", nil, "script parameter, repeatable")
	scriptCmd.AddCommand(scriptCheckCmd)
	rootCmd.AddCommand(scriptCmd)
}

func parseParams(raw map[string]string) map[string]any {
	params := make(map[string]any, len(raw))
	for k, v := range raw {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			params[k] = i
		} else if f, err := strconv.ParseFloat(v, 64); err == nil {
			params[k] = f
		} else {
			params[k] = v
		}
	}
	return params
}

func compileScript(name string) (*script.Program, error) {
	if src, err := os.ReadFile(name); err == nil {
		return script.Compile(name, src)
	}
	return script.Load(name)
}

func checkScript(out io.Writer, name string, params map[string]any) error {
	p, err := compileScript(name)
	if err != nil {
		return err
	}
	specs, err := p.Run(params)
	if err != nil {
		return err
	}
	scene := entity.NewScene(ecs.NewWorld(), tween.NewRunner())
	if err := script.Validate(specs, scene.Actions()...); err != nil {
		return err
	}

	counts := map[string]int{}
	total := 0.0
	for _, s := range specs {
		counts[s.Kind]++
		total += s.Duration
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	fmt.Fprintf(out, "%s: %d steps, %.2fs of timed steps\n", p.Name(), len(specs), total)
	for _, k := range kinds {
		fmt.Fprintf(out, "  %-12s %d\n", k, counts[k])
	}
	return nil
}

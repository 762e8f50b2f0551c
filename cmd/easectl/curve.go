package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/milk9111/easekit/curve"
	"github.com/milk9111/easekit/prefabs"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Work with easing curves",
}

var curveSampleCmd = &cobra.Command{
	Use:   "sample <name>",
	Short: "Print a curve evaluated at evenly spaced points",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		copyOut, _ := cmd.Flags().GetBool("copy")
		hold, _ := cmd.Flags().GetDuration("hold")

		lib, err := prefabs.LoadCurveLibrary()
		if err != nil {
			return err
		}
		c, err := lib.Lookup(args[0])
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := sampleCurve(&buf, c, steps); err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return err
		}
		if copyOut {
			if err := clipboard.Init(); err != nil {
				return fmt.Errorf("clipboard: %w", err)
			}
			changed := clipboard.Write(clipboard.FmtText, buf.Bytes())
			holdClipboard(cmd.Context(), cmd.ErrOrStderr(), changed, hold)
		}
		return nil
	},
}

var curveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets and curves from curves.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := prefabs.LoadCurveLibrary()
		if err != nil {
			return err
		}
		return listCurves(cmd.OutOrStdout(), lib)
	},
}

func init() {
	curveSampleCmd.Flags().Int("steps", 10, "number of intervals between 0 and 1")
	curveSampleCmd.Flags().Bool("copy", false, "also copy the table to the clipboard")
	curveSampleCmd.Flags().Duration("hold", 30*time.Second, "how long to keep serving the clipboard after --copy (0 waits until it is replaced)")
	curveCmd.AddCommand(curveSampleCmd, curveListCmd)
	rootCmd.AddCommand(curveCmd)
}

// holdClipboard keeps the process alive while it owns the clipboard, since
// on X11 the copied text disappears when the owner exits. It returns once
// the contents are replaced or the wait ends.
func holdClipboard(ctx context.Context, w io.Writer, changed <-chan struct{}, hold time.Duration) {
	if ctx == nil {
		ctx = context.Background()
	}
	if hold > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hold)
		defer cancel()
		fmt.Fprintf(w, "copied to clipboard, serving for %s or until replaced\n", hold)
	} else {
		fmt.Fprintln(w, "copied to clipboard, serving until replaced (Ctrl-C to stop)")
	}
	select {
	case <-changed:
	case <-ctx.Done():
	}
}

func sampleCurve(w io.Writer, c *curve.Curve, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", steps)
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if _, err := fmt.Fprintf(w, "%.4f\t%.6f\n", t, c.Evaluate(t)); err != nil {
			return err
		}
	}
	return nil
}

func listCurves(w io.Writer, lib prefabs.CurveLibrary) error {
	names := make([]string, 0, len(lib.Curves))
	for name := range lib.Curves {
		names = append(names, name)
	}
	sort.Strings(names)

	if _, err := fmt.Fprintf(w, "presets: %s\n", strings.Join(curve.Presets(), ", ")); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s\t%d keys\n", name, len(lib.Curves[name].Keys())); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/milk9111/easekit/prefabs"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "easectl",
	Short: "Inspect curves, scripts and transitions without opening a window",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if dir, _ := cmd.Flags().GetString("prefabs"); dir != "" {
			prefabs.Dir = dir
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("prefabs", "prefabs", "directory whose files override the embedded prefabs")
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/decker502/virtuallab/pkg/app"
	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var cfg app.Config

var rootCmd = &cobra.Command{
	Use:   "virtuallab",
	Short: "Virtual Lab is an interactive 3D lab tutorial",
	Long: `Virtual Lab walks through a microbiology experiment step by step.
Click the highlighted props to follow the instructions shown in the popup.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data", "", "Directory containing steps.yaml, gates.yaml, layout.yaml and models/ (default: embedded data)")
	rootCmd.Flags().BoolVar(&cfg.Watch, "watch", false, "Reload step texts when steps.yaml changes (requires --data)")
	rootCmd.Flags().BoolVar(&cfg.Fullscreen, "fullscreen", false, "Start in fullscreen mode")
	rootCmd.Flags().BoolVar(&cfg.SkipStart, "skip-start", false, "Skip the start screen and enter the lab directly")
}

func run() error {
	a, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}

func main() {
	embedded.Init(dataFS)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.SetOutput(os.Stderr)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gonewx/carousel/pkg/app"
	"github.com/gonewx/carousel/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	cfg, err := app.ConfigFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "carousel",
		Short: "Drag-to-scroll image track",
		Long: `carousel shows a horizontal strip of images that follows the pointer
while dragging and scrolls back to the start once released past the end.`,
		Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&cfg.ConfigPath, "config", "c", cfg.ConfigPath, "path to a carousel YAML config (defaults to the embedded one)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable logging and the debug overlay")
	flags.BoolVarP(&cfg.Watch, "watch", "w", cfg.Watch, "reload --config when the file changes")
	flags.BoolVar(&cfg.Fullscreen, "fullscreen", cfg.Fullscreen, "start in fullscreen")
	flags.BoolVar(&cfg.Reset, "reset", cfg.Reset, "ignore the saved track position")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("初始化失败: %w", err)
	}

	viewport := gameApp.CarouselConfig().Viewport
	ebiten.SetWindowSize(viewport.Width, viewport.Height)
	ebiten.SetWindowTitle(viewport.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(gameApp.StartFullscreen())

	runErr := ebiten.RunGame(gameApp)

	// 无论如何退出都保存轨道位置
	if err := gameApp.Close(); err != nil {
		log.Printf("[Main] 关闭时出错: %v", err)
	}
	return runErr
}

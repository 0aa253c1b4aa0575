// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/game"
	"github.com/gonewx/carousel/pkg/scenes"
	"github.com/gonewx/carousel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "carousel"

// Config 定义应用启动配置
// 环境变量提供默认值，命令行参数覆盖环境变量
type Config struct {
	// Verbose 启用详细日志输出和调试信息
	Verbose bool `env:"CAROUSEL_VERBOSE"`
	// ConfigPath 外部配置文件路径，为空则使用嵌入配置
	ConfigPath string `env:"CAROUSEL_CONFIG"`
	// Watch 监视外部配置文件并热重载（需要 ConfigPath）
	Watch bool `env:"CAROUSEL_WATCH"`
	// Fullscreen 以全屏启动
	Fullscreen bool `env:"CAROUSEL_FULLSCREEN"`
	// Reset 忽略已保存的轨道位置，从起点开始
	Reset bool `env:"CAROUSEL_RESET"`
}

// ConfigFromEnv 从环境变量读取启动配置
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.CarouselConfig
	sceneManager *game.SceneManager
	scene        *scenes.CarouselScene
	stateStore   *game.StateStore
	watcher      *config.Watcher
	cancel       context.CancelFunc

	launchFullscreen bool // --fullscreen 仅影响本次启动，不写入存储

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	carouselConfig, err := config.LoadCarouselConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	log.Printf("[App] 配置加载完成: %d 张图片, 视口 %dx%d",
		len(carouselConfig.Images), carouselConfig.Viewport.Width, carouselConfig.Viewport.Height)

	stateStore := game.NewStateStore(openStorage())
	if cfg.Reset {
		stateStore.Reset()
		log.Printf("[App] --reset: 从轨道起点开始")
	}

	resourceManager := game.NewResourceManager(int(carouselConfig.Track.ImageHeight))
	scene, err := scenes.NewCarouselScene(carouselConfig, resourceManager, stateStore, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	a := &App{
		cfg:          carouselConfig,
		sceneManager: sceneManager,
		scene:        scene,
		stateStore:   stateStore,

		launchFullscreen: cfg.Fullscreen,
	}

	if cfg.Watch {
		if err := a.startWatcher(cfg.ConfigPath); err != nil {
			// 热重载不可用时继续运行
			log.Printf("[App] Warning: 配置热重载不可用: %v", err)
		}
	}

	return a, nil
}

// openStorage 打开 gdata 存储，失败时返回 nil（降级模式）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: 存储目录不可用: %v", err)
	} else if path := utils.GetStoragePath(); path != "" {
		log.Printf("[App] 存储目录: %s", path)
	}
	manager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata 初始化失败，轨道位置不会被保存: %v", err)
		return nil
	}
	return manager
}

func (a *App) startWatcher(path string) error {
	if path == "" {
		return fmt.Errorf("--watch requires --config")
	}
	w, err := config.NewWatcher(path)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	a.watcher = w
	a.cancel = cancel
	log.Printf("[App] 正在监视配置文件: %s", path)
	return nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口关闭由 main 在 RunGame 返回后保存状态
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Viewport.Width, a.cfg.Viewport.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.cfg.Viewport.Width, a.cfg.Viewport.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.applyPendingConfig()

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.stateStore.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.stateStore.SetFullscreen(true)
}

// applyPendingConfig 在游戏循环中应用监视器送来的新配置
func (a *App) applyPendingConfig() {
	if a.watcher == nil {
		return
	}
	select {
	case cfg := <-a.watcher.Updates():
		if err := a.scene.ApplyConfig(cfg); err != nil {
			log.Printf("[App] 配置未应用: %v", err)
			return
		}
		if cfg.Viewport.Title != a.cfg.Viewport.Title {
			ebiten.SetWindowTitle(cfg.Viewport.Title)
		}
		a.cfg = cfg
	default:
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Viewport.Width, a.cfg.Viewport.Height
}

// CarouselConfig 返回当前生效的配置
func (a *App) CarouselConfig() *config.CarouselConfig {
	return a.cfg
}

// StartFullscreen 返回是否应以全屏启动
// 命令行覆盖优先，否则使用上次 F11 保存的偏好
func (a *App) StartFullscreen() bool {
	return a.launchFullscreen || a.stateStore.Fullscreen()
}

// GetSceneManager 返回场景管理器
// 用于在关闭时保存状态
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Close 保存状态并停止配置监视
func (a *App) Close() error {
	a.sceneManager.SaveCurrent()
	if a.cancel != nil {
		a.cancel()
	}
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

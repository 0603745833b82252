// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载数据文件、打开本地存储、注册场景。
package app

import (
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/embedded"
	"github.com/decker502/virtuallab/pkg/game"
	"github.com/decker502/virtuallab/pkg/scenes"
	"github.com/decker502/virtuallab/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName 本地存储使用的应用名
const AppName = "virtuallab"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// DataDir 磁盘上的数据目录（包含 steps.yaml 等），为空则使用嵌入数据
	DataDir string
	// Watch 监视 DataDir 中的 steps.yaml 并热更新步骤文本
	Watch bool
	// Fullscreen 全屏启动（覆盖保存的设置）
	Fullscreen bool
	// SkipStart 跳过开始界面直接进入实验室
	SkipStart bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// ConfigureLogging 非 verbose 模式下丢弃日志
func ConfigureLogging(verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
}

// OpenData 返回数据所在的文件系统与目录
// dataDir 为空时使用嵌入数据（调用前必须先调用 embedded.Init()）
func OpenData(dataDir string) (fs.FS, string, error) {
	if dataDir == "" {
		fsys, err := embedded.FS()
		if err != nil {
			return nil, "", err
		}
		return fsys, embedded.Dir, nil
	}

	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, "", fmt.Errorf("数据目录不可用: %w", err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("数据路径不是目录: %s", dataDir)
	}
	return os.DirFS(dataDir), ".", nil
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	ConfigureLogging(cfg.Verbose)

	fsys, dir, err := OpenData(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	data, err := config.LoadLabData(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("数据加载失败: %w", err)
	}

	var watchPath string
	if cfg.Watch {
		if cfg.DataDir == "" {
			log.Printf("[App] --watch requires --data, hot reload disabled")
		} else {
			watchPath = filepath.Join(cfg.DataDir, config.StepsFile)
		}
	}

	fonts, err := ui.LoadFonts()
	if err != nil {
		return nil, err
	}

	// 存储不可用时降级为仅内存
	storage, err := game.OpenStorage(AppName)
	if err != nil {
		log.Printf("[App] Warning: %v (progress will not be saved)", err)
	}
	settings := game.NewSettingsManager(storage)
	progress := game.NewProgressManager(storage)

	if cfg.Fullscreen || settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.Register(scenes.SceneStart, func() game.Scene {
		return scenes.NewStartScene(sceneManager, fonts, progress)
	})
	sceneManager.Register(scenes.SceneLab, func() game.Scene {
		return scenes.NewLabScene(sceneManager, scenes.LabSceneOptions{
			Data:      data,
			Fonts:     fonts,
			Progress:  progress,
			Settings:  settings,
			WatchPath: watchPath,
		})
	})

	first := scenes.SceneStart
	if cfg.SkipStart {
		first = scenes.SceneLab
	}
	if !sceneManager.Load(first) {
		return nil, fmt.Errorf("无法创建场景: %s", first)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，并记住选择
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}

	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制画面
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
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 关闭当前场景（程序退出时调用）
func (a *App) Close() {
	a.sceneManager.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

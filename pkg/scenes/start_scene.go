package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/virtuallab/pkg/game"
	"github.com/decker502/virtuallab/pkg/ui"
	"github.com/decker502/virtuallab/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	startTitle = "Virtual Microbiology Lab"
	startIntro = "Welcome to the virtual lab. Follow the instructions to complete the experiment step by step. " +
		"Drag on empty space to look around and use the mouse wheel to zoom."
)

var startBackground = color.RGBA{R: 0xbf, G: 0xbf, B: 0xbf, A: 0xff}

// StartScene 开始界面，点击 "Start Experiment" 进入实验室
type StartScene struct {
	sceneManager *game.SceneManager
	popup        *ui.StartPopup
}

// NewStartScene 创建开始界面
// progress 非 nil 且已有完成记录时，在简介后附上历史成绩
func NewStartScene(sm *game.SceneManager, fonts *ui.Fonts, progress *game.ProgressManager) *StartScene {
	intro := startIntro
	if progress != nil {
		if p := progress.Progress(); p.CompletedRuns > 0 {
			intro += fmt.Sprintf("\n\nCompleted runs: %d. Fastest run: %.0f s.", p.CompletedRuns, p.FastestRun)
		}
	}

	s := &StartScene{sceneManager: sm}
	s.popup = ui.NewStartPopup(fonts, startTitle, intro)
	s.popup.OnStart = func() {
		sm.Load(SceneLab)
	}
	return s
}

// Update 处理开始按钮
func (s *StartScene) Update(deltaTime float64) {
	x, y := ebiten.CursorPosition()
	s.popup.HandleHover(float64(x), float64(y))

	if released, rx, ry := utils.IsPointerJustReleased(); released {
		s.popup.HandleClick(float64(rx), float64(ry))
	}
}

// Draw 绘制开始界面
func (s *StartScene) Draw(screen *ebiten.Image) {
	screen.Fill(startBackground)
	s.popup.Draw(screen)
}

package scenes

import (
	"context"
	"log"

	"github.com/decker502/virtuallab/pkg/assets"
	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/ecs"
	"github.com/decker502/virtuallab/pkg/game"
	"github.com/decker502/virtuallab/pkg/scene"
	"github.com/decker502/virtuallab/pkg/sequencer"
	"github.com/decker502/virtuallab/pkg/systems"
	"github.com/decker502/virtuallab/pkg/ui"
	"github.com/decker502/virtuallab/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// loadConcurrency 同时加载的模型数
const loadConcurrency = 4

// LabSceneOptions 实验室场景参数
type LabSceneOptions struct {
	Data     *config.LabData
	Fonts    *ui.Fonts // 可为 nil（不绘制文字）
	Progress *game.ProgressManager
	Settings *game.SettingsManager

	// WatchPath 磁盘上 steps.yaml 的路径，非空时监视文件并热更新步骤文本
	WatchPath string
}

// LabScene 3D 实验室场景
//
// 进入场景后异步加载全部道具，1 秒后显示第一个步骤。
// 所有状态只在 Update 中修改：模型加载回调和步骤文件热更新都在主循环中取出执行。
type LabScene struct {
	sceneManager *game.SceneManager
	opts         LabSceneOptions

	ctx    context.Context
	cancel context.CancelFunc

	entityManager *ecs.EntityManager
	cameraSystem  *systems.OrbitCameraSystem
	router        *systems.InteractionRouter
	inputSystem   *systems.InputSystem
	gloveSystem   *systems.GloveFollowSystem
	timerSystem   *systems.TimerSystem
	renderSystem  *systems.RenderSystem

	loader  *assets.Loader
	seq     *sequencer.Sequencer
	popup   *ui.InstructionPopup
	watcher *config.StepsWatcher

	finalResults []scene.Node // 完成后显示的实验结果
	completed    bool
	elapsed      float64 // 从进入场景开始计时，用于记录完成用时
}

// NewLabScene 创建实验室场景并开始加载道具
func NewLabScene(sm *game.SceneManager, opts LabSceneOptions) *LabScene {
	ctx, cancel := context.WithCancel(context.Background())
	data := opts.Data
	layout := data.Layout

	s := &LabScene{
		sceneManager:  sm,
		opts:          opts,
		ctx:           ctx,
		cancel:        cancel,
		entityManager: ecs.NewEntityManager(),
	}

	s.cameraSystem = systems.NewOrbitCameraSystem(s.entityManager, layout.Camera, config.GameWindowWidth, config.GameWindowHeight)
	if opts.Settings != nil {
		s.cameraSystem.Sensitivity = opts.Settings.GetSettings().OrbitSensitivity
	}

	s.popup = ui.NewInstructionPopup(opts.Fonts, data.Steps.Completion)
	s.seq = sequencer.New(data.Steps.Steps, s.popup)
	s.seq.OnStepComplete = s.onStepComplete
	s.popup.OnAcknowledge = s.seq.Acknowledge

	s.router = systems.NewInteractionRouter(s.entityManager, s.seq, s.cameraSystem.Camera(), s.cameraSystem.Controls(), systems.RouterConfig{
		Gates:          data.Gates,
		DragPlaneY:     layout.DragPlaneY,
		HighlightColor: scene.Color(layout.HighlightColor),
		ArmedColor:     scene.Color(layout.ArmedColor),
	})
	s.inputSystem = systems.NewInputSystem(s.router, s.cameraSystem, s.popup)
	s.gloveSystem = systems.NewGloveFollowSystem(s.entityManager)
	s.timerSystem = systems.NewTimerSystem(s.entityManager)

	s.renderSystem = systems.NewRenderSystem(s.entityManager, s.cameraSystem.Camera())
	var grid []systems.GridLine
	if opts.Settings == nil || opts.Settings.GetSettings().ShowGrid {
		grid = buildGrid(layout.Room)
	}
	s.renderSystem.SetEnvironment(buildRoom(layout.Room), grid)

	s.loader = assets.NewLoader(ctx, data.FS, data.ModelsPath(), loadConcurrency)
	for _, prop := range layout.Props {
		s.loader.Load(prop.Asset, s.onPropLoaded(prop))
	}

	s.timerSystem.After("first_step", config.FirstStepDelay, s.seq.Start)

	if opts.WatchPath != "" {
		s.startWatcher(opts.WatchPath)
	}

	log.Printf("[LabScene] Created: %d steps, %d props", len(data.Steps.Steps), len(layout.Props))
	return s
}

func (s *LabScene) startWatcher(path string) {
	watcher, err := config.NewStepsWatcher(path)
	if err != nil {
		log.Printf("[LabScene] Hot reload disabled: %v", err)
		return
	}
	if err := watcher.Start(s.ctx); err != nil {
		log.Printf("[LabScene] Hot reload disabled: %v", err)
		return
	}
	s.watcher = watcher
}

// Update 更新场景
func (s *LabScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.popup.Hide()
	}

	x, y := ebiten.CursorPosition()
	s.popup.HandleHover(float64(x), float64(y))
	if released, rx, ry := utils.IsPointerJustReleased(); released {
		s.popup.HandleClick(float64(rx), float64(ry))
	}

	s.tick(deltaTime)
}

// tick 推进一帧（不含弹窗按键处理）
func (s *LabScene) tick(dt float64) {
	if !s.completed {
		s.elapsed += dt
	}

	s.loader.Poll()
	s.pollWatcher()

	s.timerSystem.Update(dt)
	s.inputSystem.Update(dt)
	s.cameraSystem.Update(dt)
	s.gloveSystem.Update(dt)
	s.popup.Update(dt)
}

func (s *LabScene) pollWatcher() {
	if s.watcher == nil {
		return
	}
	select {
	case cfg := <-s.watcher.Updates():
		if !s.seq.ReplaceText(cfg.Steps) {
			return
		}
		s.popup.SetCompletion(cfg.Completion)
		// 已开始的实验同步更新步骤栏
		if step, ok := s.seq.CurrentStep(); ok && s.popup.Banner() != "" {
			s.popup.ShowBanner(step.Text)
		}
	default:
	}
}

// Draw 绘制场景
func (s *LabScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
	s.popup.Draw(screen)
}

// Close 停止后台加载与文件监视
func (s *LabScene) Close() {
	s.cancel()
	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher = nil
	}
	s.gloveSystem.Release()
	log.Printf("[LabScene] Closed")
}

// Sequencer 步骤状态机
func (s *LabScene) Sequencer() *sequencer.Sequencer {
	return s.seq
}

// Completed 实验是否已完成
func (s *LabScene) Completed() bool {
	return s.completed
}

package systems

import (
	"math"

	"github.com/decker502/virtuallab/pkg/config"
	"github.com/decker502/virtuallab/pkg/utils"
)

// PointerRouter 接收指针事件的交互路由，*InteractionRouter 实现此接口
type PointerRouter interface {
	OnPointerMove(p Pointer)
	OnPointerDown(p Pointer) bool
	OnPointerDrag(p Pointer)
	OnPointerUp()
	OnPointerClick(p Pointer)
	IsDragging() bool
}

// CameraOrbiter 环绕镜头输入，*OrbitCameraSystem 实现此接口
type CameraOrbiter interface {
	Rotate(dx, dy float64)
	Zoom(wheel float64)
}

// UIOverlay 覆盖在 3D 场景上方的界面
// 落在界面上的按下不会传给场景
type UIOverlay interface {
	Contains(x, y float64) bool
}

// InputSystem 将每帧的指针状态翻译为交互路由与镜头调用
//
// 同一帧内先处理拖拽位移，再重新计算悬停高亮。
// 只有未拖拽且位移不超过 config.ClickSlop 的释放才视为点击。
type InputSystem struct {
	router  PointerRouter
	orbiter CameraOrbiter
	overlay UIOverlay

	// ReadPointer 读取指针状态，测试中替换
	ReadPointer func() utils.PointerSample

	pressed    bool
	pressOnUI  bool
	dragging   bool // 本次按下开始了道具拖拽
	moved      bool // 本次按下位移超过点击容差
	downX      float64
	downY      float64
	lastX      float64
	lastY      float64
	hasLastPos bool
}

// NewInputSystem 创建输入系统，overlay 可为 nil
func NewInputSystem(router PointerRouter, orbiter CameraOrbiter, overlay UIOverlay) *InputSystem {
	return &InputSystem{
		router:      router,
		orbiter:     orbiter,
		overlay:     overlay,
		ReadPointer: utils.ReadPointer,
	}
}

// Update 读取并处理本帧输入
func (s *InputSystem) Update(dt float64) {
	s.Handle(s.ReadPointer())
}

// Handle 处理一帧的指针状态
func (s *InputSystem) Handle(sample utils.PointerSample) {
	p := Pointer{X: sample.X, Y: sample.Y}
	movedSinceLast := !s.hasLastPos || sample.X != s.lastX || sample.Y != s.lastY

	if sample.Wheel != 0 && s.orbiter != nil && !s.overUI(p) {
		s.orbiter.Zoom(sample.Wheel)
	}

	switch {
	case sample.Pressed && !s.pressed:
		s.press(p)
	case sample.Pressed && s.pressed:
		s.hold(p)
	case !sample.Pressed && s.pressed:
		s.release(p)
	}

	// 拖拽位移之后再计算悬停
	if movedSinceLast && !s.overUI(p) {
		s.router.OnPointerMove(p)
	}

	s.lastX, s.lastY = sample.X, sample.Y
	s.hasLastPos = true
}

func (s *InputSystem) press(p Pointer) {
	s.pressed = true
	s.moved = false
	s.downX, s.downY = p.X, p.Y
	s.pressOnUI = s.overUI(p)
	s.dragging = false
	if s.pressOnUI {
		return
	}
	s.dragging = s.router.OnPointerDown(p)
}

func (s *InputSystem) hold(p Pointer) {
	if s.pressOnUI {
		return
	}
	if math.Hypot(p.X-s.downX, p.Y-s.downY) > config.ClickSlop {
		s.moved = true
	}

	if s.router.IsDragging() {
		s.router.OnPointerDrag(p)
		return
	}
	if s.orbiter != nil && s.hasLastPos {
		s.orbiter.Rotate(p.X-s.lastX, p.Y-s.lastY)
	}
}

func (s *InputSystem) release(p Pointer) {
	s.pressed = false
	if s.pressOnUI {
		s.pressOnUI = false
		return
	}

	wasDrag := s.dragging || s.router.IsDragging()
	s.router.OnPointerUp()
	if !wasDrag && !s.moved {
		s.router.OnPointerClick(p)
	}
	s.dragging = false
}

func (s *InputSystem) overUI(p Pointer) bool {
	return s.overlay != nil && s.overlay.Contains(p.X, p.Y)
}

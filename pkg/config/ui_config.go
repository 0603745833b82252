package config

// UI 与窗口相关的常量配置
// 包括逻辑屏幕尺寸、指令弹窗布局、动画时长等

const (
	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 1280
	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 720

	// WindowTitle 窗口标题
	WindowTitle = "Virtual Lab"
)

// 指令弹窗
const (
	// PopupWidth 弹窗宽度
	PopupWidth = 520.0
	// PopupPadding 弹窗内边距
	PopupPadding = 24.0
	// PopupTitleFontSize 标题字号
	PopupTitleFontSize = 26.0
	// PopupTextFontSize 正文字号
	PopupTextFontSize = 18.0
	// PopupLineSpacing 行距倍数
	PopupLineSpacing = 1.4

	// PopupButtonWidth "OK" 按钮宽度
	PopupButtonWidth = 120.0
	// PopupButtonHeight "OK" 按钮高度
	PopupButtonHeight = 40.0

	// PopupFadeDuration 弹窗淡入淡出时长（秒）
	PopupFadeDuration = 0.5

	// BannerHeight 顶部步骤栏高度
	BannerHeight = 44.0
	// BannerFontSize 顶部步骤栏字号
	BannerFontSize = 18.0
)

// 开始界面
const (
	// StartButtonWidth "Start Experiment" 按钮宽度
	StartButtonWidth = 240.0
	// StartButtonHeight "Start Experiment" 按钮高度
	StartButtonHeight = 52.0
)

// 交互
const (
	// FirstStepDelay 进入实验室后显示第一个步骤前的延迟（秒）
	FirstStepDelay = 1.0

	// ClickSlop 按下到松开的最大位移（像素），超过则视为拖动而非点击
	ClickSlop = 5.0
)
